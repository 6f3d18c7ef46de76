package cli

import (
	"github.com/spf13/cobra"

	"github.com/eshaffer321/cart-bundle-transforms/internal/infrastructure/config"
)

// GlobalFlags are shared by every command.
type GlobalFlags struct {
	ConfigPath string
	Verbose    bool
}

// RunFlags are the flags of the run command.
type RunFlags struct {
	InputPath  string
	OutputPath string
	Pretty     bool
}

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port int
}

func (f *GlobalFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.ConfigPath, "config", "", "Path to config.yaml (default: ./config.yaml, then environment)")
	cmd.PersistentFlags().BoolVarP(&f.Verbose, "verbose", "v", false, "Verbose output")
}

// loadConfig resolves configuration for a command. An explicit --config path
// must exist; otherwise config.yaml is tried before the environment.
func (f *GlobalFlags) loadConfig() (*config.Config, error) {
	if f.ConfigPath != "" {
		return config.Load(f.ConfigPath)
	}
	return config.LoadOrEnv()
}

// loggingConfig applies --verbose on top of the configured logging settings.
func (f *GlobalFlags) loggingConfig(cfg *config.Config) config.LoggingConfig {
	loggingCfg := cfg.Observability.Logging
	if f.Verbose {
		loggingCfg.Level = "debug"
	}
	return loggingCfg
}
