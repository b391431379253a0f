// Package cmd implements the freefood command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

type rootOptions struct {
	configPath string
	debug      bool
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "freefood",
		Short: "Find free-food events in student society posts",
		Long: `freefood classifies social media posts from student societies and extracts
structured free-food events: date, time, location, title and confidence.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"config file (default is $CONFIG_PATH or ./config.yml)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newClassifyCommand(opts),
		newExtractCommand(opts),
		newBatchCommand(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "freefood version %s\n", Version)
			},
		},
	)
	return root
}
