package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tormodhaugland/ct/internal/config"
	"github.com/tormodhaugland/ct/internal/doctor"
	"github.com/tormodhaugland/ct/internal/store"
)

type doctorResult struct {
	Store    string           `json:"store"`
	Problems []doctor.Problem `json:"problems"`
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the template store for unloadable entries",
	Long: `Validates every stored template the same way ct does on startup and
lists each entry that would prevent the store from loading.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if storeFile != "" {
			cfg.StoreFile = storeFile
		}

		db, err := store.Open(cfg.StorePath())
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer db.Close()

		problems, err := doctor.Check(db)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			if err := writeJSON(out, doctorResult{Store: db.Path(), Problems: problems}); err != nil {
				return err
			}
		} else if len(problems) == 0 {
			fmt.Fprintf(out, "All templates in %s are valid\n", db.Path())
		} else {
			fmt.Fprintf(out, "%d template(s) in %s cannot be loaded:\n", len(problems), db.Path())
			for _, p := range problems {
				fmt.Fprintf(out, "✗ #%d %s: %s\n", p.Position, p.ID, p.Reason)
			}
		}

		if len(problems) > 0 {
			return fmt.Errorf("doctor found %d problem(s)", len(problems))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
