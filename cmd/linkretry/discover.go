package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/linkretry/internal/config"
	"github.com/alexisbeaulieu97/linkretry/internal/selector"
)

type discoverOptions struct {
	ConfigPath string
	Root       string
	NoGit      bool
	Verbose    bool
}

func newDiscoverCmd(root *rootFlags) *cobra.Command {
	opts := discoverOptions{}

	cmd := &cobra.Command{
		Use:   "discover [root]",
		Short: "List the files a discovery run would check",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Root = "."
			if len(args) == 1 {
				opts.Root = args[0]
			}
			opts.Verbose = root.verbose
			if err := validateConfigPath(opts.ConfigPath); err != nil {
				return err
			}
			return runDiscover(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default .linkretry.yml if present)")
	cmd.Flags().BoolVar(&opts.NoGit, "no-git", false, "Walk the filesystem even inside a git worktree")

	return cmd
}

func runDiscover(cmd *cobra.Command, opts discoverOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd.ErrOrStderr(), opts.Verbose, true)
	if err != nil {
		return err
	}

	discoverOpts := selector.OptionsFromConfig(opts.Root, cfg.Discover)
	discoverOpts.NoGit = opts.NoGit
	discoverOpts.Logger = log

	res, err := selector.Discover(discoverOpts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range res.Paths {
		fmt.Fprintln(out, p)
	}
	return nil
}
