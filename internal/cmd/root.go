package cmd

import (
	"fmt"
	"os"

	"github.com/cheerioskun/reqninja/internal/client"
	"github.com/cheerioskun/reqninja/internal/config"
	"github.com/cheerioskun/reqninja/internal/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	appConfig *config.Config
	appFs     = afero.NewOsFs()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reqninja",
	Short: "Submit a JSON payload and filter the response fields",
	Long: `reqninja posts a JSON payload with a "data" array to a remote endpoint
and shows the returned fields, filtered down to the ones you pick.

Examples:
  reqninja tui
  reqninja submit --data '{"data": ["M","1","334","4","B"]}' --filter alphabets
  reqninja init --output-config .reqninja.toml`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.DefaultFileName+")")
	rootCmd.PersistentFlags().String("endpoint", "", "remote endpoint URL (default "+config.DefaultEndpoint+")")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP timeout, 0 for none")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Bind flags to viper
	viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// loadConfig resolves configuration and opens the log file before any command runs
func loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper(), appFs, cfgFile)
	if err != nil {
		return err
	}
	appConfig = cfg

	if err := utils.Configure(cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging to stderr: %v\n", err)
	}

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "Endpoint: %s\n", cfg.Endpoint)
		fmt.Fprintf(os.Stderr, "Log file: %s\n", cfg.LogFile)
	}

	return nil
}

// newClient builds the endpoint client from configuration
func newClient(cfg *config.Config) *client.Client {
	return client.New(cfg.Endpoint, client.WithTimeout(cfg.Timeout))
}
