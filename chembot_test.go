package chembot_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/chembot"
	"github.com/aretw0/chembot/pkg/chat"
	"github.com/aretw0/chembot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacade_Integration(t *testing.T) {
	repoPath := t.TempDir()
	content := []byte(`---
year: 2024
session: may-june
paper: 2
variant: 1
question: 3
---
## Question 3 from disk

**Answer:** 42 g`)
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "q3.md"), content, 0644))

	var found []bool
	bot, err := chembot.New(repoPath, chembot.WithLifecycleHooks(domain.LifecycleHooks{
		OnSelectionComplete: func(_ context.Context, e *domain.SelectionEvent) { found = append(found, e.Found) },
	}))
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(repoPath), bot.Name)
	require.NotNil(t, bot.Library())

	ctx := context.Background()
	actions, done, err := bot.Render(ctx)
	require.NoError(t, err)
	assert.False(t, done)
	assert.NotEmpty(t, actions)

	require.NoError(t, bot.Navigate(ctx, domain.PaperSelection{
		Year: 2024, Session: domain.SessionMayJune, PaperNumber: 2, Variant: 1, QuestionNumber: 3, Subpart: "b",
	}))

	msgs := bot.Session().Messages()
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[2].Content, "Question 3 from disk", "a whole-question solution answers any subpart")
	assert.Equal(t, []bool{true}, found)
}

func TestFacade_SampleWithoutLibrary(t *testing.T) {
	bot, err := chembot.New("")
	require.NoError(t, err)
	assert.Nil(t, bot.Library())

	_, err = bot.Watch(context.Background())
	assert.Error(t, err)

	assert.Equal(t, chat.Flow(), bot.Inspect())
}

func TestFacade_Run(t *testing.T) {
	bot, err := chembot.New("", chembot.WithChatOptions(chat.WithReplyDelay(0), chat.WithReplies("canned")))
	require.NoError(t, err)

	in := strings.NewReader("nonsense\nask\nhello\n")
	out := &bytes.Buffer{}
	require.NoError(t, bot.Run(context.Background(), in, out))

	output := out.String()
	assert.Contains(t, output, "[System] invalid choice")
	assert.Contains(t, output, "You:\nhello")
	assert.Contains(t, output, "ChemBot:\ncanned")
}

func TestRenderHTML(t *testing.T) {
	html := chembot.RenderHTML("**Answer:** $H_2O$")
	assert.Contains(t, html, "chat-answer-section")
	assert.Contains(t, html, "<sub>2</sub>")

	assert.Contains(t, chembot.RenderHTML(""), "No content available")
}
