package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/seo-optimizer/contentquality/config"
	"github.com/seo-optimizer/contentquality/logging"
)

// flagKeys maps command line flags onto configuration keys
var flagKeys = map[string]string{
	"log-level": "logLevel",
	"data-dir":  "dataDir",
	"dev":       "devMode",
	"port":      "port",
	"format":    "format",
}

// NewRootCommand builds the contentquality command tree
func NewRootCommand() *cobra.Command {
	var cfgFile string
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "contentquality",
		Short: "Score the written content of web pages",
		Long: `contentquality audits the content of a web page: its length, readability,
keyword usage, heading outline and image to text balance. Each audit yields a
score between 0 and 1 with an explanation, and the scores are combined into a
Content Quality report.

Run it as an HTTP service with "serve" or on a single HTML document with "audit".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			if err := bindFlags(cmd.Flags()); err != nil {
				return err
			}

			loaded, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("error loading configuration: %w", err)
			}
			*cfg = *loaded

			return logging.Setup(cfg.LogLevel, cfg.DevMode)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .contentquality.yaml in the working directory)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("data-dir", config.DefaultDataDir(), "directory for statistics files")
	rootCmd.PersistentFlags().Bool("dev", false, "development mode: pretty logs and full statistics")

	rootCmd.AddCommand(newServeCommand(cfg))
	rootCmd.AddCommand(newAuditCommand(cfg))

	return rootCmd
}

// bindFlags lets explicitly set flags override file and environment values
func bindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("error binding flag %s: %w", name, err)
		}
	}
	return nil
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
