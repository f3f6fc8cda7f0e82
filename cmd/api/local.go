package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chaudl113/uptime-web-api/config"
	"github.com/chaudl113/uptime-web-api/internals/modules/monitor"
	"github.com/chaudl113/uptime-web-api/internals/modules/settings"
	"github.com/chaudl113/uptime-web-api/pkg/sqlitestore"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Monitors and settings are owned by the dashboard in a Postgres deployment.
// These commands only seed and inspect a local SQLite file.
var errNotSQLite = errors.New("only available with db.driver=sqlite; monitors are registered by the dashboard otherwise")

func (o *rootOptions) openSQLite() (*sqlitestore.Store, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	if cfg.DB.Driver != config.DriverSQLite {
		return nil, errNotSQLite
	}
	return sqlitestore.Open(cfg.DB.URL)
}

func addMonitorCmd(opts *rootOptions) *cobra.Command {
	var (
		m      monitor.Monitor
		userID string
	)

	cmd := &cobra.Command{
		Use:   "add-monitor",
		Short: "Register a monitor in the local SQLite store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
			m.ID = uuid.New()
			m.UserID = owner
			m.Active = true
			if err := m.Validate(); err != nil {
				return err
			}

			store, err := opts.openSQLite()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.CreateMonitor(cmd.Context(), m); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), m.ID)
			return err
		},
	}
	cmd.Flags().StringVar(&m.Name, "name", "", "display name used in alerts")
	cmd.Flags().StringVar(&m.URL, "url", "", "endpoint to check")
	cmd.Flags().Int32Var(&m.IntervalSec, "interval", 60, "seconds between checks")
	cmd.Flags().StringVar(&userID, "user", "", "owner id")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func setChannelCmd(opts *rootOptions) *cobra.Command {
	var (
		userID, chatID, botToken string
		disabled                 bool
	)

	cmd := &cobra.Command{
		Use:   "set-channel",
		Short: "Set an owner's Telegram destination in the local SQLite store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}

			store, err := opts.openSQLite()
			if err != nil {
				return err
			}
			defer store.Close()

			return store.UpsertChannelConfig(cmd.Context(), settings.ChannelConfig{
				UserID:   owner,
				Enabled:  !disabled,
				ChatID:   &chatID,
				BotToken: &botToken,
			})
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "owner id")
	cmd.Flags().StringVar(&chatID, "chat-id", "", "Telegram chat id")
	cmd.Flags().StringVar(&botToken, "bot-token", "", "Telegram bot token")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "store the channel with notifications off")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func historyCmd(opts *rootOptions) *cobra.Command {
	var monitorID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print a monitor's check history from the local SQLite store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(monitorID)
			if err != nil {
				return fmt.Errorf("invalid --monitor: %w", err)
			}

			store, err := opts.openSQLite()
			if err != nil {
				return err
			}
			defer store.Close()

			results, err := store.ListCheckResults(cmd.Context(), id)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		},
	}
	cmd.Flags().StringVar(&monitorID, "monitor", "", "monitor id")
	_ = cmd.MarkFlagRequired("monitor")

	return cmd
}
