package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/complexity-sim/complexity-sim/sim/templates"
)

var showTemplate string // Slug or name whose source to print

// templatesCmd lists the built-in algorithm templates
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List built-in algorithm templates",
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeTemplates(os.Stdout, showTemplate); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// writeTemplates prints the catalog, or one template's source when show is set.
func writeTemplates(w io.Writer, show string) error {
	if show != "" {
		tpl, err := templates.Lookup(show)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, tpl.Code)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Slug\tName\tComplexity\tAssumption")
	for _, tpl := range append(templates.List(), templates.Default()) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", tpl.Slug, tpl.Name, tpl.Complexity, tpl.Assumption)
	}
	return tw.Flush()
}

func init() {
	templatesCmd.Flags().StringVar(&showTemplate, "show", "", "Print the source of one template")
}
