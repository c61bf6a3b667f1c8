package main

import (
	"fmt"

	"github.com/gitz-dev/gitz"
	"github.com/gitz-dev/gitz/vcs"
	"github.com/gitz-dev/gitz/wizard"
	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	var useDefault, force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a git-z.toml at the root of the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			dir, err := a.workDir()
			if err != nil {
				return err
			}
			if err := vcs.EnsureWorkTree(ctx, dir); err != nil {
				return err
			}

			path, err := gitz.Locate(ctx, dir)
			if err != nil {
				return err
			}

			var opts gitz.InitOptions
			if !useDefault {
				p, err := a.prompter()
				if err != nil {
					return err
				}
				defer func() { _ = p.Close() }()

				if opts, err = wizard.AskInit(p); err != nil {
					return err
				}
			}

			if force {
				text, err := gitz.InitDocument(opts)
				if err != nil {
					return err
				}
				if err := gitz.Save(path, text); err != nil {
					return err
				}
			} else if err := gitz.Init(path, opts); err != nil {
				return err
			}

			success(a.stdout, "A %s has been created!", gitz.FileName)
			hint(a.stdout, "You can now edit it to adjust the configuration.")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&useDefault, "default", "d", false, "Use the default configuration")
	cmd.Flags().BoolVarP(&force, "force", "f", false, fmt.Sprintf("Replace an existing %s", gitz.FileName))

	return cmd
}
