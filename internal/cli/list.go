package cli

import (
	"github.com/spf13/cobra"

	"github.com/eshaffer321/cart-bundle-transforms/internal/infrastructure/logging"
	"github.com/eshaffer321/cart-bundle-transforms/internal/transform"
)

func newListCommand(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the enabled transforms.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			logger := logging.NewLoggerTo(cmd.ErrOrStderr(), global.loggingConfig(cfg))

			registry, err := transform.NewDefaultRegistry(cfg.Transforms, logger)
			if err != nil {
				return err
			}
			PrintTransformList(cmd.OutOrStdout(), registry.List())
			return nil
		},
	}
}
