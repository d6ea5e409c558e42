package main

import (
	"github.com/aretw0/chembot/internal/cli"
	"github.com/spf13/cobra"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with ChemBot in the terminal",
	Long: `Starts a line-based conversation. Pick a card, walk through the past-paper
wizard and read the worked solution, or ask questions freely.

Commands: /new starts over, /attach <path> queues a file, /quit leaves.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := globalOptions(cmd)
		opts.Headless, _ = cmd.Flags().GetBool("headless")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		return cli.RunChat(opts, cli.StdIO())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().Bool("headless", false, "Plain output without banner or styling; input errors are fatal")
	chatCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")

	// Make 'chat' the default if no command is provided.
	rootCmd.RunE = chatCmd.RunE
	rootCmd.Flags().AddFlagSet(chatCmd.Flags())
}
