package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/linkretry/internal/logger"
)

type rootFlags struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "linkretry",
		Short: "Validate Markdown links with bounded retries for flaky failures",
		Long: `linkretry runs an external link checker once per file and retries files
whose checks fail, so transient network errors do not fail a build.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newCheckCmd(flags))
	cmd.AddCommand(newDiscoverCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newLogger(w io.Writer, verbose, humanReadable bool) (*logger.Logger, error) {
	level := "info"
	if verbose {
		level = "debug"
	}
	return logger.New(logger.Options{
		Level:         level,
		HumanReadable: humanReadable,
		NoColor:       os.Getenv("NO_COLOR") != "",
		Writer:        w,
	})
}
