package main

import (
	"github.com/aretw0/chembot/internal/cli"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the full-screen terminal interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunTUI(globalOptions(cmd))
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
