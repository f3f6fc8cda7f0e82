package main

import (
	"fmt"

	"github.com/chaudl113/uptime-web-api/internals/security"
	"github.com/spf13/cobra"
)

func tokenCmd(opts *rootOptions) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the check trigger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			tokens, err := security.NewTokenService(&cfg.Auth)
			if err != nil {
				return fmt.Errorf("auth.secret must be set to mint tokens: %w", err)
			}

			token, err := tokens.GenerateAccessToken(subject)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "cron", "caller name stored in the token")

	return cmd
}
