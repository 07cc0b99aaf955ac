package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"student-aid-matcher/config"
	"student-aid-matcher/db"
	"student-aid-matcher/logger"
	"student-aid-matcher/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "student-aid-matcher",
		Short: "Cross-reference a student roster with difficulty-type tables",
		Long: `student-aid-matcher finds the students of a roster who appear in a
social-assistance (difficulty-type) table, counts them per category and
exports the matches to Excel.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log to stderr")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newCategoriesCmd(opts),
		newValidateCmd(opts),
		newMatchCmd(opts),
		newStatsCmd(opts),
		newExportCmd(opts),
	)
	return rootCmd
}

// newCLIService builds a service for one-shot commands: sessions stay in
// memory and logging is off unless --verbose is given.
func newCLIService(opts *rootOptions) (*service.Service, func(), error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	log := logger.NewNop()
	if opts.verbose {
		if log, err = logger.New(cfg.Log.Mode); err != nil {
			return nil, nil, fmt.Errorf("failed to init logger: %w", err)
		}
	}
	svc := service.New(db.NewMemoryStore(cfg.Session.TTL), log, cfg.Session.PageSize)
	return svc, log.Sync, nil
}
