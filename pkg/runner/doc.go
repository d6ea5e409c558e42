/*
Package runner implements the line-based execution loop for the ChemBot shell.

It acts as the bridge between the chat session (a ports.Shell) and the outside
world. Each turn the runner renders the shell, hands the actions to an IOHandler,
reads one line of input and navigates with it. Input mistakes are reported
through the handler and the loop carries on.

# Key Components

  - Runner: The main loop.
  - IOHandler: Decouples how actions are shown and input is read.
  - TextHandler: Interactive terminal usage, with an optional Markdown renderer.
  - JSONHandler: NDJSON for headless scripting.

# Usage

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithLogger(logger),
	)

	if err := r.Run(ctx, chat.New()); err != nil {
		log.Fatal(err)
	}
*/
package runner
