package main

import (
	"github.com/aretw0/chembot/internal/cli"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a solution document",
	Long: `Parses a solution document and prints it as HTML, Markdown, plain text or
styled terminal output. Without a file (or with "-") the document is read from stdin.
The default format is ansi on a terminal and text otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RenderOptions{Options: globalOptions(cmd)}
		if len(args) > 0 {
			opts.Path = args[0]
		}
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.Watch, _ = cmd.Flags().GetBool("watch")
		return cli.RunRender(opts, cli.StdIO())
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("format", "f", cli.FormatAuto, "Output format: html, markdown, text, ansi or auto")
	renderCmd.Flags().BoolP("watch", "w", false, "Render again whenever the file changes")
}
