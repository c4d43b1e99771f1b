package cmd

import (
	"fmt"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/tormodhaugland/ct/internal/template"
)

var showCmd = &cobra.Command{
	Use:   "show <id|query>",
	Short: "Show a check template",
	Long: `Shows a single check template.

The argument is matched against template ids first. If no id matches exactly,
it is fuzzy matched against titles and the best match is shown with a note
that the id was not found.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		tmpl, exact, err := resolveTemplate(s.ctrl.ListTemplates(), args[0])
		if err != nil {
			return err
		}
		if !exact {
			fmt.Fprintf(cmd.ErrOrStderr(), "No template with id %q; best title match: %s\n", args[0], tmpl.ID)
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			return writeJSON(out, tmpl)
		}

		fmt.Fprintf(out, "Template: %s\n", tmpl.Title)
		fmt.Fprintf(out, "ID: %s\n", tmpl.ID)
		fmt.Fprintf(out, "Protocol: %s\n", tmpl.Protocol)
		if tmpl.Description != "" {
			fmt.Fprintf(out, "\n%s\n", tmpl.Description)
		}
		return nil
	},
}

// templateSource adapts templates for fuzzy matching on title.
type templateSource []template.Template

func (s templateSource) String(i int) string { return s[i].Title }
func (s templateSource) Len() int            { return len(s) }

// resolveTemplate reports exact=false when the result came from a title match.
func resolveTemplate(templates []template.Template, query string) (tmpl template.Template, exact bool, err error) {
	for _, t := range templates {
		if t.ID == query {
			return t, true, nil
		}
	}

	matches := fuzzy.FindFrom(query, templateSource(templates))
	if len(matches) == 0 {
		return template.Template{}, false, &template.TemplateNotFoundError{ID: query}
	}
	return templates[matches[0].Index], false, nil
}

func init() {
	rootCmd.AddCommand(showCmd)
}
