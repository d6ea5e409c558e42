package main

import (
	"github.com/aretw0/chembot/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web interface",
	Long: `Serves the ChemBot web UI for a single local user, with file uploads,
a live event stream at /events and Prometheus metrics at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		return cli.RunServe(cli.ServeOptions{Options: globalOptions(cmd), Addr: addr}, cli.StdIO())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (default from config, 127.0.0.1:8080)")
}
