package main

import (
	"fmt"
	"os"

	"github.com/chaudl113/uptime-web-api/config"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "uptime",
		Short:        "Checks registered endpoints and alerts owners when they are down",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "env.yaml", "config file path (empty to use environment only)")

	root.AddCommand(serveCmd(opts))
	root.AddCommand(checkCmd(opts))
	root.AddCommand(migrateCmd(opts))
	root.AddCommand(tokenCmd(opts))
	root.AddCommand(addMonitorCmd(opts))
	root.AddCommand(setChannelCmd(opts))
	root.AddCommand(historyCmd(opts))

	return root
}

func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
