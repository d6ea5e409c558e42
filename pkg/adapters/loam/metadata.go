package loam

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/chembot/pkg/document"
	"github.com/aretw0/chembot/pkg/domain"
)

// SolutionMetadata is the front matter of a solution document.
// It uses "mapstructure" tags to match the YAML keys written by authors.
type SolutionMetadata struct {
	ID       string `json:"id" mapstructure:"id"`
	Title    string `json:"title" mapstructure:"title"`
	Year     int    `json:"year" mapstructure:"year"`
	Session  string `json:"session" mapstructure:"session"`
	Paper    int    `json:"paper" mapstructure:"paper"`
	Variant  int    `json:"variant" mapstructure:"variant"`
	Question int    `json:"question" mapstructure:"question"`
	// Subpart is optional; a document without it answers the whole question.
	Subpart string `json:"subpart,omitempty" mapstructure:"subpart"`
}

// ToSolution converts a Loam document into a domain.Solution.
// docID is the repository path of the document and is used when the front
// matter carries no explicit id.
func ToSolution(docID string, meta SolutionMetadata, content string) (domain.Solution, error) {
	id := meta.ID
	if id == "" {
		id = docID
	}
	id = trimExtension(id)

	session, err := domain.ParseSession(meta.Session)
	if err != nil {
		return domain.Solution{}, fmt.Errorf("%s: %w", id, err)
	}

	sel := domain.PaperSelection{
		Year:           meta.Year,
		Session:        session,
		PaperNumber:    meta.Paper,
		Variant:        meta.Variant,
		QuestionNumber: meta.Question,
		Subpart:        domain.NormalizeSubpart(meta.Subpart),
	}
	if err := sel.Validate(); err != nil {
		return domain.Solution{}, fmt.Errorf("%s: %w", id, err)
	}

	title := meta.Title
	if title == "" {
		title = firstHeader(content)
	}

	return domain.Solution{
		ID:        id,
		Selection: sel,
		Title:     title,
		Content:   content,
	}, nil
}

// FromSolution builds the front matter for s, the inverse of ToSolution.
func FromSolution(s domain.Solution) SolutionMetadata {
	return SolutionMetadata{
		ID:       s.ID,
		Title:    s.Title,
		Year:     s.Selection.Year,
		Session:  string(s.Selection.Session),
		Paper:    s.Selection.PaperNumber,
		Variant:  s.Selection.Variant,
		Question: s.Selection.QuestionNumber,
		Subpart:  s.Selection.Subpart,
	}
}

func firstHeader(content string) string {
	for _, el := range document.Parse(content) {
		if el.Kind != document.KindHeader {
			continue
		}
		var sb strings.Builder
		for _, child := range el.Children {
			sb.WriteString(child.Text)
		}
		return strings.TrimSpace(sb.String())
	}
	return ""
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
