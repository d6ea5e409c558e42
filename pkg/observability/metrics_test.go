package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/chembot/pkg/chat"
	"github.com/aretw0/chembot/pkg/document"
	"github.com/aretw0/chembot/pkg/domain"
	"github.com/aretw0/chembot/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveRender(t *testing.T) {
	m := observability.NewMetrics()
	elements := document.Parse("## Title\n\nSome text\n\n**Answer:** 42")

	m.ObserveRender("html", elements, 2*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DocumentsRendered.WithLabelValues("html")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ElementsRendered.WithLabelValues("header")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ElementsRendered.WithLabelValues("answer")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RenderDuration))
}

func TestMetrics_HooksFollowSession(t *testing.T) {
	m := observability.NewMetrics()
	s := chat.New(chat.WithLifecycleHooks(m.Hooks()), chat.WithReplyDelay(0))
	ctx := context.Background()

	require.NoError(t, s.SolvePastPapers(ctx))
	_, err := s.CompleteSelection(ctx, domain.PaperSelection{
		Year: 2024, Session: domain.SessionMayJune, PaperNumber: 2, Variant: 1, QuestionNumber: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StateChanges.WithLabelValues("selecting-paper")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StateChanges.WithLabelValues("chat")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Messages.WithLabelValues("bot")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Messages.WithLabelValues("user")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Selections.WithLabelValues("false")))
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.Messages.WithLabelValues("user").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `chembot_messages_total{role="user"} 1`)
}

func TestChainHooks(t *testing.T) {
	var order []string
	first := domain.LifecycleHooks{
		OnStateChange: func(context.Context, *domain.StateEvent) { order = append(order, "first") },
	}
	second := domain.LifecycleHooks{
		OnStateChange: func(context.Context, *domain.StateEvent) { order = append(order, "second") },
		OnMessage:     func(context.Context, *domain.MessageEvent) { order = append(order, "message") },
	}

	hooks := observability.ChainHooks(first, domain.LifecycleHooks{}, second)
	hooks.OnStateChange(context.Background(), &domain.StateEvent{})
	hooks.OnMessage(context.Background(), &domain.MessageEvent{})

	assert.Equal(t, []string{"first", "second", "message"}, order)
	assert.Nil(t, hooks.OnSelectionComplete)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hooks := observability.LoggingHooks(logger)

	hooks.OnStateChange(context.Background(), &domain.StateEvent{From: domain.StateWelcome, To: domain.StateChat})
	hooks.OnMessage(context.Background(), &domain.MessageEvent{Message: domain.Message{ID: "m1", Role: domain.RoleUser, Content: "secret"}})

	out := buf.String()
	assert.Contains(t, out, "state_change")
	assert.Contains(t, out, "to=chat")
	assert.Contains(t, out, "role=user")
	assert.NotContains(t, out, "secret")
}
