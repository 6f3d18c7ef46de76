package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eshaffer321/cart-bundle-transforms/internal/domain/cart"
	"github.com/eshaffer321/cart-bundle-transforms/internal/infrastructure/logging"
	"github.com/eshaffer321/cart-bundle-transforms/internal/transform"
)

func newRunCommand(global *GlobalFlags) *cobra.Command {
	var flags RunFlags

	cmd := &cobra.Command{
		Use:   "run <transform>",
		Short: "Run a transform on a cart snapshot and print its operations.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTransform(cmd, global, &flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.InputPath, "input", "i", "", "Cart snapshot JSON file (default: stdin)")
	cmd.Flags().StringVarP(&flags.OutputPath, "output", "o", "", "Write operations to this file (default: stdout)")
	cmd.Flags().BoolVar(&flags.Pretty, "pretty", false, "Indent the operations JSON")
	return cmd
}

// RunTransform decodes the cart snapshot, runs the named transform and
// encodes the result.
func RunTransform(cmd *cobra.Command, global *GlobalFlags, flags *RunFlags, name string) error {
	cfg, err := global.loadConfig()
	if err != nil {
		return err
	}
	logger := logging.NewLoggerTo(cmd.ErrOrStderr(), global.loggingConfig(cfg)).With("system", "cli")

	registry, err := transform.NewDefaultRegistry(cfg.Transforms, logger)
	if err != nil {
		return err
	}
	if _, err := registry.Get(name); err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if flags.InputPath != "" {
		f, err := os.Open(flags.InputPath)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	input, err := cart.DecodeInput(in)
	if err != nil {
		return err
	}

	result, err := registry.Run(name, input)
	if err != nil {
		return err
	}

	if err := writeResult(cmd.OutOrStdout(), flags, result); err != nil {
		return err
	}

	if global.Verbose {
		PrintRunSummary(cmd.ErrOrStderr(), name, result)
	}
	return nil
}

func writeResult(stdout io.Writer, flags *RunFlags, result cart.Result) error {
	if flags.OutputPath == "" {
		return result.Encode(stdout, flags.Pretty)
	}

	f, err := os.Create(flags.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := result.Encode(f, flags.Pretty); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
