// Package http serves the local ChemBot web UI: welcome, wizard and chat pages,
// attachment downloads, a server-sent event stream and health endpoints.
package http

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/chembot/internal/presentation/graph"
	"github.com/aretw0/chembot/pkg/chat"
	"github.com/aretw0/chembot/pkg/document"
	"github.com/aretw0/chembot/pkg/domain"
	"github.com/aretw0/chembot/pkg/observability"
	"github.com/aretw0/chembot/pkg/runner"
	"github.com/aretw0/chembot/pkg/wizard"
)

// DefaultMaxUploadBytes bounds a message form including its files.
const DefaultMaxUploadBytes = 5 << 20

//go:embed templates/page.html
var templates embed.FS

var pageTemplate = template.Must(template.New("page.html").
	Funcs(template.FuncMap{"join": strings.Join}).
	ParseFS(templates, "templates/page.html"))

// AttachmentURL is the route serving attachment id. Sessions served by this
// package should be created with chat.WithAttachmentURL(AttachmentURL).
func AttachmentURL(id string) string {
	return "/attachments/" + id
}

// Server serves the local web UI for one chat session.
type Server struct {
	Session        *chat.Session
	Streams        *StreamManager
	Metrics        *observability.Metrics
	Logger         *slog.Logger
	MaxUploadBytes int64

	mu    sync.Mutex
	flash string
}

// Option configures a Server.
type Option func(*Server)

// WithStreams publishes session events on /events. The manager's Hooks must
// be installed on the session for events to flow.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithMetrics exposes the registry on /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMaxUploadBytes bounds the size of a message form.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		s.MaxUploadBytes = n
	}
}

// NewServer creates a server for session.
func NewServer(session *chat.Session, opts ...Option) *Server {
	s := &Server{
		Session:        session,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaxUploadBytes: DefaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler creates the HTTP handler for session.
func NewHandler(session *chat.Session, opts ...Option) http.Handler {
	return NewServer(session, opts...).Handler()
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.Page)
	r.Post("/navigate", s.Navigate)
	r.Post("/messages", s.SendMessage)
	r.Get("/attachments/{id}", s.GetAttachment)
	r.Get("/graph", s.GetGraph)
	r.Get("/healthz", s.GetHealth)
	if s.Streams != nil {
		r.Get("/events", s.SubscribeEvents)
	}
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics.Handler())
	}
	return r
}

type messageView struct {
	domain.Message
	Name     string
	Text     string
	Document template.HTML
}

type pageData struct {
	State           string
	Ended           bool
	HeroTitle       string
	HeroSubtitle    string
	HeroText        string
	Cards           []chat.Card
	Features        []string
	Wizard          chat.WizardView
	Optional        bool
	AssistantName   string
	AssistantStatus string
	EmptyTitle      string
	EmptyHint       string
	Placeholder     string
	Messages        []messageView
	Notices         []string
	Error           string
}

// Page handles GET / by rendering the current screen.
func (s *Server) Page(w http.ResponseWriter, r *http.Request) {
	actions, done, err := s.Session.Render(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Render error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Render failed", "error", err)
		return
	}

	data := pageData{
		State:           string(s.Session.State()),
		Ended:           done,
		HeroTitle:       chat.HeroTitle,
		HeroSubtitle:    chat.HeroSubtitle,
		HeroText:        chat.HeroText,
		Cards:           chat.Cards,
		Features:        chat.Features,
		Wizard:          s.Session.WizardView(),
		AssistantName:   chat.AssistantName,
		AssistantStatus: chat.AssistantStatus,
		EmptyTitle:      chat.EmptyChatTitle,
		EmptyHint:       chat.EmptyChatHint,
		Placeholder:     chat.InputPlaceholder,
		Error:           s.takeFlash(),
	}
	data.Optional = data.Wizard.Step == wizard.StepSubpart
	for _, a := range actions {
		if msg, ok := a.Payload.(string); ok && a.Type == domain.ActionSystemMessage {
			data.Notices = append(data.Notices, msg)
		}
	}
	for _, m := range s.Session.Messages() {
		v := messageView{Message: m, Name: "You", Text: m.Content}
		if m.IsBot() {
			v.Name = chat.AssistantName
		}
		if m.IsDocument() {
			v.Document = s.renderDocument(m.Content)
		}
		data.Messages = append(data.Messages, v)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.Logger.Error("Page render failed", "error", err)
	}
}

// renderDocument returns the HTML presentation of a worked solution. The
// tree carries all text in text nodes, so its serialisation is already escaped.
func (s *Server) renderDocument(content string) template.HTML {
	start := time.Now()
	elements := document.Parse(content)
	var buf bytes.Buffer
	if err := document.RenderHTML(&buf, elements); err != nil {
		s.Logger.Error("Document render failed", "error", err)
	}
	if s.Metrics != nil {
		s.Metrics.ObserveRender("html", elements, time.Since(start))
	}
	return template.HTML(buf.String())
}

// Navigate handles POST /navigate with a form field "input".
func (s *Server) Navigate(w http.ResponseWriter, r *http.Request) {
	input, err := runner.SanitizeInput(r.FormValue("input"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		s.Logger.Warn("Navigate: Input rejected", "error", err)
		return
	}
	s.apply(w, r, s.Session.Navigate(r.Context(), input))
}

// SendMessage handles POST /messages: a multipart form with "text" and any
// number of "files".
func (s *Server) SendMessage(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.MaxUploadBytes {
		http.Error(w, "Upload too large", http.StatusRequestEntityTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid form", http.StatusBadRequest)
		s.Logger.Warn("SendMessage: Invalid form", "error", err)
		return
	}

	text, err := runner.SanitizeInput(r.FormValue("text"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		return
	}
	if chat.IsCommand(text) {
		s.apply(w, r, s.Session.Navigate(r.Context(), text))
		return
	}

	ctx := r.Context()
	var attachments []domain.Attachment
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["files"] {
			f, err := fh.Open()
			if err != nil {
				http.Error(w, "Invalid upload", http.StatusBadRequest)
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				http.Error(w, "Invalid upload", http.StatusBadRequest)
				return
			}
			att, err := s.Session.Attach(ctx, fh.Filename, data)
			if err != nil {
				s.apply(w, r, err)
				return
			}
			attachments = append(attachments, att)
		}
	}

	if _, err := s.Session.Send(ctx, text, attachments); err != nil {
		s.apply(w, r, err)
		return
	}
	_, err = s.Session.Reply(ctx)
	s.apply(w, r, err)
}

// apply redirects back to the page. Input errors are shown there; anything
// else is a server error.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil && !chat.IsInputError(err) {
		http.Error(w, fmt.Sprintf("Navigate error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Navigate failed", "error", err)
		return
	}
	if err != nil {
		s.mu.Lock()
		s.flash = err.Error()
		s.mu.Unlock()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) takeFlash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.flash
	s.flash = ""
	return msg
}

// GetAttachment handles GET /attachments/{id}.
func (s *Server) GetAttachment(w http.ResponseWriter, r *http.Request) {
	att, data, err := s.Session.Attachments().Load(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrAttachmentNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Attachment error", http.StatusInternalServerError)
		s.Logger.Error("GetAttachment failed", "error", err)
		return
	}
	if att.MIMEType != "" {
		w.Header().Set("Content-Type", att.MIMEType)
	}
	// Only images are shown in place; anything else could render as a page
	// on this origin.
	disposition := "attachment"
	if att.Type == domain.AttachmentImage {
		disposition = "inline"
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": att.Name}))
	w.Write(data)
}

// GetGraph handles GET /graph. The flow is JSON by default; ?format=mermaid
// returns a flowchart highlighting the current screen.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	nodes := s.Session.Inspect()
	if r.URL.Query().Get("format") == "mermaid" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, graph.GenerateMermaid(nodes, &graph.GraphOverlay{CurrentNode: s.Session.CurrentNode()}))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(nodes); err != nil {
		s.Logger.Error("GetGraph response encode failed", "error", err)
	}
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
