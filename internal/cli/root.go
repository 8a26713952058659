// Package cli holds the connect4 commands.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/config"
)

// NewRootCmd builds the connect4 command tree
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect4",
		Short: "Connect Four for two players sharing one screen",
		Long: `connect4 runs a hot-seat game of Connect Four, either in a browser
served by "connect4 serve" or directly in the terminal with "connect4 play".`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// a missing .env is fine, the environment may already be set
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to a config file (yaml, json, toml or env)")

	cmd.AddCommand(ServeCmd())
	cmd.AddCommand(PlayCmd())
	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var path string
	if f := cmd.Flag("config"); f != nil {
		path = f.Value.String()
	}
	return config.Load(path)
}
