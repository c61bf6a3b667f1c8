package main

import (
	"fmt"

	"github.com/gitz-dev/gitz"
	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of git-z",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprintf(a.stdout, "git-z %s (configuration format %s)\n", version, gitz.Latest)

			return err
		},
	}
}
