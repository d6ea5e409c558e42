package main

import (
	"fmt"
	"os"

	"github.com/aretw0/chembot/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chembot",
	Short: "ChemBot is a chemistry study assistant for past-paper solutions",
	Long: `ChemBot walks you through picking a past-paper question and shows its worked
solution, with formulas, calculations and answers laid out for reading.`,
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
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (.yaml or .toml)")
	rootCmd.PersistentFlags().StringP("library", "l", "", "Directory of solution documents")
	rootCmd.PersistentFlags().Bool("debug", false, "Log debug output to stderr")
}

// globalOptions reads the persistent flags.
func globalOptions(cmd *cobra.Command) cli.Options {
	configPath, _ := cmd.Flags().GetString("config")
	library, _ := cmd.Flags().GetString("library")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.Options{
		ConfigPath: configPath,
		Library:    library,
		Debug:      debug,
	}
}
