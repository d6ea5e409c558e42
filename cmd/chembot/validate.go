package main

import (
	"github.com/aretw0/chembot/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check a solution library for consistency",
	Long: `Reads every document in the library and reports front matter the wizard could
never select, duplicate selections and documents without content.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var dir string
		if len(args) > 0 {
			dir = args[0]
		}
		return cli.RunValidate(globalOptions(cmd), dir, cli.StdIO())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
