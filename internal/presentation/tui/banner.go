package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/aretw0/chembot/pkg/chat"
)

// PrintBanner writes the ChemBot banner to w, coloured for the terminal's profile.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Teal to green, like a titration endpoint.
	lines := []struct {
		text  string
		color string
	}{
		{`   ____ _                    ____        _   `, "#22d3ee"},
		{`  / ___| |__   ___ _ __ ___ | __ )  ___ | |_ `, "#2dd4bf"},
		{` | |   | '_ \ / _ \ '_ ' _ \|  _ \ / _ \| __|`, "#34d399"},
		{` | |___| | | |  __/ | | | | | |_) | (_) | |_ `, "#4ade80"},
		{`  \____|_| |_|\___|_| |_| |_|____/ \___/ \__|`, "#a3e635"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  "+chat.HeroSubtitle).Faint())
	fmt.Fprintln(w)
}
