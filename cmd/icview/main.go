package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/icview/internal/cli"
	icerrors "github.com/matzehuels/icview/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	cancel()
	os.Exit(exitCode(err))
}

// exitCode reports err on stderr and maps it to the process exit status.
// Interrupted runs exit 130.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	}
	fmt.Fprintln(os.Stderr, cli.FormatError(icerrors.UserMessage(err)))
	return 1
}

func newRootCommand() *cobra.Command {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	verbose := root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")
	attachLogger := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if attachLogger == nil {
			return nil
		}
		return attachLogger(cmd, args)
	}
	return root
}
