package runner

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/chembot/pkg/document"
	"github.com/aretw0/chembot/pkg/domain"
)

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
// Each Output call emits one line holding the array of actions.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder
}

// jsonMessage adds a plain text rendering to document messages so scripts
// do not need to parse Markdown.
type jsonMessage struct {
	domain.Message
	Rendered string `json:"rendered,omitempty"`
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Output(ctx context.Context, actions []domain.ActionRequest) (bool, error) {
	if len(actions) == 0 {
		return false, nil
	}

	out := make([]domain.ActionRequest, len(actions))
	for i, act := range actions {
		out[i] = act
		if m, ok := act.Payload.(domain.Message); ok && m.IsDocument() {
			out[i].Payload = jsonMessage{
				Message:  m,
				Rendered: document.RenderText(document.Parse(m.Content), 0),
			}
		}
	}

	if err := h.Encoder.Encode(out); err != nil {
		return false, err
	}
	return needsInput(actions), nil
}

// Input reads one line. A JSON string is unquoted; anything else, including
// JSON objects, is returned as sent.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	text = strings.TrimSpace(text)

	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		return val, nil
	}
	return text, nil
}

// selectionInput accepts session labels as well as values.
type selectionInput struct {
	Year     int    `json:"year"`
	Session  string `json:"session"`
	Paper    int    `json:"paper"`
	Variant  int    `json:"variant"`
	Question int    `json:"question"`
	Subpart  string `json:"subpart"`
}

// DecodeInput turns a JSON object line into a domain.PaperSelection.
// Other lines are passed through unchanged.
func (h *JSONHandler) DecodeInput(line string) (any, error) {
	if !strings.HasPrefix(line, "{") {
		return line, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(line)))
	dec.DisallowUnknownFields()
	var in selectionInput
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("%w: malformed selection: %v", domain.ErrInvalidSelection, err)
	}
	session, err := domain.ParseSession(in.Session)
	if err != nil {
		return nil, err
	}
	return domain.PaperSelection{
		Year:           in.Year,
		Session:        session,
		PaperNumber:    in.Paper,
		Variant:        in.Variant,
		QuestionNumber: in.Question,
		Subpart:        in.Subpart,
	}, nil
}

// SystemOutput emits msg as a SYSTEM_MESSAGE action line.
func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode([]domain.ActionRequest{{Type: domain.ActionSystemMessage, Payload: msg}})
}
