package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/chembot/pkg/domain"
)

// StreamManager fans session events out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan<- string]struct{}
	logger      *slog.Logger
}

// NewStreamManager creates an empty manager.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &StreamManager{
		subscribers: make(map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a buffered channel. The returned func unsubscribes and
// closes it.
func (sm *StreamManager) Subscribe() (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Broadcast sends msg to every subscriber. Slow subscribers miss it.
func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: Client buffer full, dropping message")
		}
	}
}

func (sm *StreamManager) publish(event any) {
	data, err := json.Marshal(event)
	if err != nil {
		sm.logger.Error("SSE: encode event failed", "error", err)
		return
	}
	sm.Broadcast(string(data))
}

// Hooks returns lifecycle hooks that publish every session event.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateChange:       func(_ context.Context, e *domain.StateEvent) { sm.publish(e) },
		OnMessage:           func(_ context.Context, e *domain.MessageEvent) { sm.publish(e) },
		OnSelectionComplete: func(_ context.Context, e *domain.SelectionEvent) { sm.publish(e) },
	}
}

// SubscribeEvents handles the GET /events request (SSE). ?watch=message,state_change
// limits the stream to the named event types.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	watch := make(map[string]bool)
	if v := r.URL.Query().Get("watch"); v != "" {
		for _, field := range strings.Split(v, ",") {
			watch[strings.TrimSpace(field)] = true
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			name := eventName(msg)
			if len(watch) > 0 && !watch[name] {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, msg)
			flusher.Flush()
		}
	}
}

func eventName(msg string) string {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(msg), &head); err != nil || head.Type == "" {
		return "message"
	}
	return head.Type
}
