package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	omnitree "github.com/reoring/omnitree"
	"github.com/reoring/omnitree/internal/logger"
)

// Exit statuses.
const (
	ExitOK         = 0
	ExitError      = 1
	ExitIncomplete = 3
)

func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(ExitCode(err))
	}
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, omnitree.ErrIncomplete):
		return ExitIncomplete
	default:
		return ExitError
	}
}

func NewRootCmd() *cobra.Command {
	var debug bool
	var logFormat string

	cmd := &cobra.Command{
		Use:          "omnitree",
		Short:        "Encode schema definitions as JSON, YAML or JSON Schema",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_, err := logger.Setup(logger.Config{
				Debug:  debug,
				Format: logFormat,
				Out:    cmd.ErrOrStderr(),
			})
			return err
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", logger.FormatText, "log format: text or json")

	cmd.AddCommand(encodeCmd(), jsonSchemaCmd(), serveCmd())
	return cmd
}

// openOutput returns the -o file, or the command's stdout when path is empty.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, &omnitree.OpError{Op: "cli.open_output", Path: path, Err: err}
	}
	return f, f.Close, nil
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q", format)
}
