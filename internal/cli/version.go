package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ビルド時に-ldflagsで設定する
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "jatokenize %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
