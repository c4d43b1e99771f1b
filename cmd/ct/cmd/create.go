package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tormodhaugland/ct/internal/template"
)

var (
	createID          string
	createTitle       string
	createDescription string
	createProtocol    string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a check template",
	Long: `Creates a check template and appends it to the store.

When --id is omitted a random UUID is assigned. Creation fails if the id is
already taken, the title is blank, or the protocol is not supported
(see 'ct protocols').`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		id := createID
		if id == "" {
			id = uuid.NewString()
		}

		if err := s.ctrl.BeginCreate(); err != nil {
			return err
		}
		created, err := s.ctrl.SubmitCreate(template.Candidate{
			ID:          id,
			Title:       createTitle,
			Description: createDescription,
			Protocol:    createProtocol,
		})
		if err != nil {
			return fmt.Errorf("failed to create template: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			return writeJSON(out, created)
		}
		fmt.Fprintf(out, "Created template %s (%s)\n", created.Title, created.ID)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createID, "id", "", "template id (default: random UUID)")
	createCmd.Flags().StringVar(&createTitle, "title", "", "human-readable template name")
	createCmd.Flags().StringVar(&createDescription, "description", "", "what the check verifies")
	createCmd.Flags().StringVar(&createProtocol, "protocol", "", "check protocol (see 'ct protocols')")
	rootCmd.AddCommand(createCmd)
}
