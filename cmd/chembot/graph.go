package main

import (
	"github.com/aretw0/chembot/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the conversation flow visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the screens and wizard steps.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunGraph(cli.StdIO())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
