package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tormodhaugland/ct/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive template browser",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		return tui.Run(s.ctrl)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
