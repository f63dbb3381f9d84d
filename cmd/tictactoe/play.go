package main

import (
	"github.com/spf13/cobra"

	"github.com/jaminalder/tictactoe-history/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a hot-seat game in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.New(cmd.OutOrStdout()).Run(cmd.InOrStdin())
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
