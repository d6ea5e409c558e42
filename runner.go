package chembot

import (
	"context"
	"io"

	"github.com/aretw0/chembot/pkg/runner"
)

// Run drives the conversation over plain text streams until it ends, in is
// exhausted or ctx is cancelled. Invalid input is reported and the
// conversation carries on.
func (b *Bot) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	r := runner.NewRunner(
		runner.WithLogger(b.logger),
		runner.WithInputHandler(runner.NewTextHandler(in, out)),
	)
	return r.Run(ctx, b.session)
}
