package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type commandContext struct {
	verbose bool
	stderr  io.Writer
	logger  zerolog.Logger
}

func (ctx *commandContext) initLogger() {
	level := zerolog.InfoLevel
	if ctx.verbose {
		level = zerolog.DebugLevel
	}
	ctx.logger = zerolog.New(ctx.stderr).With().Timestamp().Logger().Level(level)
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{stderr: os.Stderr, logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:           "iiifpaint",
		Short:         "Paint content onto IIIF canvases",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx.stderr = cmd.ErrOrStderr()
			ctx.initLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "Log every paint decision")

	rootCmd.AddCommand(newPaintCommand(ctx))
	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newFragmentCommand())

	return rootCmd
}
