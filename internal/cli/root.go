package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/masamichhhhi/go-ja-tokenstream/config"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "jatokenize",
	Short: "Tokenize Japanese text into an offset-accurate token stream",
	Long: `jatokenize runs text through the morphological tokenizer and the configured
token filters, printing one token per line with its offsets, position and
feature string.

Example usage:
  jatokenize tokenize < doc.txt                  # Tokenize stdin
  jatokenize tokenize "docs/**/*.txt"            # Tokenize matching files
  jatokenize --config ja.yaml tokenize doc.txt   # Use filters from a config file`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg = config.DefaultConfig()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: cfg.LogLevel(),
		}))
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
}

func GetConfig() *config.Config {
	return cfg
}
