// Package templates holds the sample algorithms offered as starting points.
// Source text is carried verbatim. Nothing here parses or runs it.
package templates

import (
	"fmt"
	"sort"
	"strings"

	"github.com/complexity-sim/complexity-sim/sim"
)

// Template is a named algorithm source with the assumption its comment declares.
type Template struct {
	Name       string                   `json:"name" yaml:"name"`
	Slug       string                   `json:"slug" yaml:"slug"`
	Complexity string                   `json:"complexity" yaml:"complexity"` // as stated in the source comment
	Assumption sim.ComplexityAssumption `json:"assumption" yaml:"assumption"`
	Code       string                   `json:"code" yaml:"code"`
}

// catalog is ordered as presented to users.
var catalog = []Template{
	{
		Name:       "Linear Search",
		Slug:       "linear-search",
		Complexity: "O(n)",
		Assumption: sim.AssumptionLinear,
		Code: `def linear_search(arr, n, target):
    # O(n) time complexity
    for i in range(n):
        if arr[i] == target:
            return i
    return -1`,
	},
	{
		// O(log n) has no matching assumption; the default applies.
		Name:       "Binary Search",
		Slug:       "binary-search",
		Complexity: "O(log n)",
		Assumption: sim.DefaultAssumption,
		Code: `def binary_search(arr, n, target):
    # O(log n) time complexity
    left, right = 0, n - 1

    while left <= right:
        mid = (left + right) // 2
        if arr[mid] == target:
            return mid
        elif arr[mid] < target:
            left = mid + 1
        else:
            right = mid - 1

    return -1`,
	},
	{
		Name:       "Bubble Sort",
		Slug:       "bubble-sort",
		Complexity: "O(n²)",
		Assumption: sim.AssumptionQuadratic,
		Code: `def bubble_sort(arr, n, _):
    # O(n²) time complexity
    for i in range(n):
        for j in range(0, n - i - 1):
            if arr[j] > arr[j + 1]:
                arr[j], arr[j + 1] = arr[j + 1], arr[j]
    return arr`,
	},
	{
		Name:       "Quick Sort",
		Slug:       "quick-sort",
		Complexity: "O(n log n)",
		Assumption: sim.AssumptionLinearithmic,
		Code: `def quick_sort(arr, n, _):
    # O(n log n) average case
    if n <= 1:
        return arr

    def _quick_sort(arr, low, high):
        if low < high:
            pivot_index = partition(arr, low, high)
            _quick_sort(arr, low, pivot_index - 1)
            _quick_sort(arr, pivot_index + 1, high)

    def partition(arr, low, high):
        pivot = arr[high]
        i = low - 1

        for j in range(low, high):
            if arr[j] <= pivot:
                i += 1
                arr[i], arr[j] = arr[j], arr[i]

        arr[i + 1], arr[high] = arr[high], arr[i + 1]
        return i + 1

    _quick_sort(arr, 0, n - 1)
    return arr`,
	},
	{
		Name:       "Selection Sort",
		Slug:       "selection-sort",
		Complexity: "O(n²)",
		Assumption: sim.AssumptionQuadratic,
		Code: `def selection_sort(arr, n, _):
    # O(n²) time complexity
    for i in range(n):
        min_idx = i
        for j in range(i + 1, n):
            if arr[j] < arr[min_idx]:
                min_idx = j
        arr[i], arr[min_idx] = arr[min_idx], arr[i]
    return arr`,
	},
}

var defaultTemplate = Template{
	Name:       "Custom Algorithm",
	Slug:       "custom",
	Complexity: "O(n log n)",
	Assumption: sim.AssumptionLinearithmic,
	Code: `def custom_algorithm(arr, n, i):
    # Your algorithm implementation
    # arr: input array
    # n: size of array
    # i: target index or value

    # Example: O(n log n) sorting algorithm (merge sort)
    if n <= 1:
        return arr

    def merge_sort(arr):
        if len(arr) <= 1:
            return arr

        mid = len(arr) // 2
        left = merge_sort(arr[:mid])
        right = merge_sort(arr[mid:])

        return merge(left, right)

    def merge(left, right):
        result = []
        i = j = 0

        while i < len(left) and j < len(right):
            if left[i] <= right[j]:
                result.append(left[i])
                i += 1
            else:
                result.append(right[j])
                j += 1

        result.extend(left[i:])
        result.extend(right[j:])
        return result

    return merge_sort(arr)`,
}

// List returns a copy of the catalog.
func List() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// Default returns the editor's starting source.
func Default() Template {
	return defaultTemplate
}

// Lookup finds a template by slug or display name, ignoring case.
// "custom" and "default" resolve to Default().
func Lookup(name string) (Template, error) {
	key := normalize(name)
	if key == defaultTemplate.Slug || key == "default" {
		return defaultTemplate, nil
	}
	for _, t := range catalog {
		if key == t.Slug || key == normalize(t.Name) {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("unknown template %q; valid: %s", name, strings.Join(Slugs(), ", "))
}

// Slugs returns the sorted slugs of every catalog entry plus "custom".
func Slugs() []string {
	slugs := []string{defaultTemplate.Slug}
	for _, t := range catalog {
		slugs = append(slugs, t.Slug)
	}
	sort.Strings(slugs)
	return slugs
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
