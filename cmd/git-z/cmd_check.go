package main

import (
	"github.com/gitz-dev/gitz"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that git-z.toml is valid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := a.workDir()
			if err != nil {
				return err
			}

			path, err := gitz.Locate(cmd.Context(), dir)
			if err != nil {
				return err
			}

			l, err := gitz.Load(path)
			if err != nil {
				return err
			}

			success(a.stdout, "The configuration is valid (version %s).", l.Version)
			if l.Outdated {
				warnOutdated(a)
			}

			return nil
		},
	}
}

func warnOutdated(a *app) {
	warning(a.stderr, "The configuration in %s is out of date.", gitz.FileName)
	hint(a.stderr, "You can update it by running `git z update`.")
}
