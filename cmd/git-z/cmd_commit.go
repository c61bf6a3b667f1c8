package main

import (
	"errors"

	"github.com/gitz-dev/gitz"
	"github.com/gitz-dev/gitz/prompt"
	"github.com/gitz-dev/gitz/vcs"
	"github.com/gitz-dev/gitz/wizard"
	"github.com/spf13/cobra"
)

func newCommitCmd(a *app) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "commit [--print-only] [-- <git commit args>...]",
		Short: "Ask for the commit details and run git commit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && cmd.ArgsLenAtDash() != 0 {
				return &usageError{msg: "arguments for git commit must come after --"}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dir, err := a.workDir()
			if err != nil {
				return err
			}

			path, err := gitz.Locate(ctx, dir)
			if err != nil {
				return err
			}

			l, err := gitz.Load(path)
			if err != nil {
				return err
			}
			if l.Outdated {
				warnOutdated(a)
			}

			gitDir, err := vcs.GitDir(ctx, dir)
			if err != nil {
				return err
			}

			cache, err := wizard.LoadCache(wizard.CachePath(gitDir))
			if err != nil {
				return err
			}

			p, err := a.prompter()
			if err != nil {
				return err
			}
			values, err := wizard.Run(ctx, l.Config, p, cache)
			_ = p.Close()
			if errors.Is(err, prompt.ErrCancelled) {
				hint(a.stderr, "Your answers are kept, run `git z commit` again to resume.")
			}
			if err != nil {
				return err
			}

			msg, err := wizard.Message(l.Config, values)
			if err != nil {
				return err
			}

			if err := a.backend(printOnly, dir).Commit(ctx, msg, args); err != nil {
				return err
			}

			return cache.Discard()
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print-only", false, "Print the commit message instead of calling git commit")

	return cmd
}
