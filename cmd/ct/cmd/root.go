package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tormodhaugland/ct/internal/config"
	"github.com/tormodhaugland/ct/internal/log"
	"github.com/tormodhaugland/ct/internal/store"
	"github.com/tormodhaugland/ct/internal/workflow"
)

var (
	cfgFile   string
	storeFile string
	jsonOut   bool
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:   "ct",
	Short: "Check templates - browse and create monitoring check templates",
	Long: `ct manages the check templates a scoring engine runs against services.
Templates are kept in a local sqlite store, listed in creation order, and
can be created from the command line or from the TUI.

Running 'ct' without arguments launches the TUI.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tuiCmd.RunE(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/ct/config.json)")
	rootCmd.PersistentFlags().StringVar(&storeFile, "store", "", "template database (default: <data_dir>/templates.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug logs to the configured log file")
}

// session is one opened template store plus the controller driving it.
type session struct {
	db       *store.DB
	ctrl     *workflow.Controller
	closeLog func()
}

func openSession() (*session, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if storeFile != "" {
		cfg.StoreFile = storeFile
	}

	closeLog := func() {}
	if debug || cfg.Debug {
		cleanup, err := log.Init(cfg.LogPath())
		if err != nil {
			return nil, fmt.Errorf("failed to open log: %w", err)
		}
		closeLog = cleanup
	}
	log.Debug(log.CatConfig, "config loaded", "store", cfg.StorePath())

	db, err := store.Open(cfg.StorePath())
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	registry, err := store.OpenRegistry(db)
	if err != nil {
		db.Close()
		closeLog()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &session{
		db:       db,
		ctrl:     workflow.NewController(registry),
		closeLog: closeLog,
	}, nil
}

func (s *session) Close() {
	if err := s.db.Close(); err != nil {
		log.ErrorErr(log.CatStore, "close failed", err)
	}
	s.closeLog()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
