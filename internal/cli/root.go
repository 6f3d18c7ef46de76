// Package cli wires the cart-transform commands.
//
// run evaluates one transform against a cart snapshot read from a file or
// stdin and writes the operations JSON to stdout, which is the same contract
// the checkout host uses. Logs always go to stderr.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/eshaffer321/cart-bundle-transforms/internal/infrastructure/logging"
)

// NewRootCommand builds the cart-transform command tree.
func NewRootCommand() *cobra.Command {
	var global GlobalFlags

	root := &cobra.Command{
		Use:           "cart-transform",
		Short:         "Evaluate bundle cart transforms against cart snapshots.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	global.register(root)

	root.AddCommand(newRunCommand(&global))
	root.AddCommand(newListCommand(&global))
	root.AddCommand(newServeCommand(&global))
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		slog.New(logging.NewMavenHandler(os.Stderr, nil)).Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
