package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jaminalder/tictactoe-history/internal/config"
)

var rootCmd = &cobra.Command{
	Use:          "tictactoe",
	Short:        "Tic-tac-toe with a browsable move history",
	Long:         `Play tic-tac-toe in the browser (serve) or in the terminal (play), jumping back to any earlier move.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
}

// loadConfig reads configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	pf := cmd.Root().PersistentFlags()
	path, _ := pf.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if lvl, _ := pf.GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr, _ = cmd.Flags().GetString("addr")
	}
	if cmd.Flags().Changed("store") {
		cfg.Store, _ = cmd.Flags().GetString("store")
	}
	return cfg, cfg.Validate()
}
