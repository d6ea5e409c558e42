/*
Package chat implements the ChemBot conversation shell.

A Session moves between three screens:

	welcome ──Solve Past Papers──▶ selecting-paper ──complete──▶ chat
	   ▲  └──────────Ask Questions──────────────────────────────▶ │
	   └──────────────────────────── /new ◀───────────────────────┘

Front ends either call the screen operations directly (SolvePastPapers,
CompleteSelection, Send, Reply) or drive the session as a ports.Shell through
Render and Navigate, which interpret one line of user input at a time.

The transcript lives in memory only and is dropped by NewChat.
*/
package chat
