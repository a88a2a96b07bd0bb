package cmd

import (
	"fmt"
	"io"

	"github.com/cheerioskun/reqninja/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outputConfig string
	forceInit    bool
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	Long: `Write a TOML configuration file holding the built-in defaults.

Values passed with --endpoint or --timeout replace the defaults in the
written file. An existing file is kept unless --force is given.

Examples:
  reqninja init
  reqninja init --output-config ~/reqninja.toml
  reqninja init --endpoint http://localhost:3000/bfhl --force`,
	Args: cobra.NoArgs,
	// init must work even when the current configuration is broken
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&outputConfig, "output-config", "o", config.DefaultFileName, "output configuration file")
	initCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing configuration file")
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if endpoint := viper.GetString("endpoint"); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if timeout := viper.GetDuration("timeout"); timeout > 0 {
		cfg.Timeout = timeout
	}

	return writeConfig(cmd.OutOrStdout(), appFs, outputConfig, cfg, forceInit)
}

// writeConfig validates cfg and saves it to path
func writeConfig(out io.Writer, fs afero.Fs, path string, cfg *config.Config, force bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !force {
		exists, err := afero.Exists(fs, path)
		if err != nil {
			return fmt.Errorf("failed to check configuration file: %w", err)
		}
		if exists {
			return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
		}
	}

	if err := config.Save(fs, path, cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintf(out, "Configuration saved to: %s\n", path)
	fmt.Fprintf(out, "Use 'reqninja --config %s tui' to load this configuration\n", path)
	return nil
}
