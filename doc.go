/*
Package chembot is a chemistry study assistant that walks a student to a past-paper
question and presents its worked solution.

Solutions are Markdown documents with a little extra structure: "**Answer:**" lines,
calculation lines and tables are recognised, and $...$ spans are typeset as chemical
formulas with real subscripts and superscripts. The same parsed document is rendered
as HTML for the web interface, as styled Markdown in the terminal or as plain text.

# Concept

A conversation starts on a welcome screen with two cards. "Solve Past Papers" opens
a wizard (year, session, paper, variant, question, subpart) and ends in a chat that
holds the worked solution; "Ask Questions" opens a free chat with canned replies.
Front ends (the line runner, the TUI and the local web UI) only render what the
session asks for and feed input back, so they all behave the same.

# Usage

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/aretw0/chembot"
	)

	func main() {
		// Answer selections from ./solutions (Markdown with YAML front matter).
		bot, err := chembot.New("./solutions")
		if err != nil {
			log.Fatal(err)
		}

		// Render -> Input -> Navigate until the user quits.
		if err := bot.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
			log.Fatal(err)
		}
	}

Passing an empty path answers every selection with a built-in sample solution,
which is handy for demos and tests.
*/
package chembot
