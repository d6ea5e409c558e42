package main

import (
	"fmt"

	"github.com/aretw0/chembot"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of chembot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chembot version %s\n", chembot.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
