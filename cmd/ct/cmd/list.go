package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List check templates",
	Long:    `Lists all check templates in the order they were created.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		templates := s.ctrl.ListTemplates()
		out := cmd.OutOrStdout()

		if jsonOut {
			return writeJSON(out, templates)
		}

		if len(templates) == 0 {
			fmt.Fprintln(out, "No templates found")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tPROTOCOL\tDESCRIPTION")
		for _, t := range templates {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Protocol, truncateDescription(t.Description))
		}
		return w.Flush()
	},
}

const maxDescriptionWidth = 50

// truncateDescription shortens s to maxDescriptionWidth display cells without
// splitting a rune.
func truncateDescription(s string) string {
	return runewidth.Truncate(s, maxDescriptionWidth, "...")
}

func init() {
	rootCmd.AddCommand(listCmd)
}
