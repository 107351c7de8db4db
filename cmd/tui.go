package cmd

import (
	"github.com/spf13/cobra"

	"github.com/awwong1/semscrape/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(flagDebug)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.Info("starting", "api", cfg.ResolvedAPIURL(), "page_size", client.PageSize(), "version", version)

	return tui.Run(tui.RunOpts{
		Fetcher:  client,
		PageSize: client.PageSize(),
		Timeout:  cfg.TimeoutDuration(),
		Logger:   logger,
	})
}
