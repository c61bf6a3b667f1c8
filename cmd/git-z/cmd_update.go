package main

import (
	"errors"
	"fmt"

	"github.com/gitz-dev/gitz"
	"github.com/spf13/cobra"
)

func newUpdateCmd(a *app) *cobra.Command {
	var (
		opts   gitz.UpgradeOptions
		ticket string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update git-z.toml to the latest configuration format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch mode := gitz.TicketMode(ticket); mode {
			case "", gitz.TicketNotAsked, gitz.TicketOptional, gitz.TicketRequired:
				opts.Ticket = mode
			default:
				return &usageError{msg: fmt.Sprintf("invalid value %q for --ticket: expected required, optional or none", ticket)}
			}

			dir, err := a.workDir()
			if err != nil {
				return err
			}

			path, err := gitz.Locate(cmd.Context(), dir)
			if err != nil {
				return err
			}

			res, err := gitz.Upgrade(path, opts)
			if errors.Is(err, gitz.ErrUpToDate) {
				success(a.stdout, "The configuration is already up to date.")

				return nil
			}
			if err != nil {
				return err
			}

			success(a.stdout, "The configuration has been updated from %s to %s.", res.From, res.To)

			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.SwitchScopesToAny, "scopes-any", false, "Accept any scope instead of a list")
	cmd.Flags().StringVar(&ticket, "ticket", "", "Ticket `mode` to set when upgrading past 0.2-dev.0: required, optional or none")
	cmd.Flags().BoolVar(&opts.EmptyPrefixToHash, "empty-prefix-to-hash", false, "Replace the empty ticket prefix by \"#\"")

	return cmd
}
