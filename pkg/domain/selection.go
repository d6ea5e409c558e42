package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Session is an examination series.
type Session string

const (
	SessionMayJune  Session = "may-june"
	SessionOctNov   Session = "oct-nov"
	SessionFebMarch Session = "feb-march"
)

// Sessions lists the known sessions in display order.
var Sessions = []Session{SessionMayJune, SessionOctNov, SessionFebMarch}

var sessionLabels = map[Session]string{
	SessionMayJune:  "May/June",
	SessionOctNov:   "Oct/Nov",
	SessionFebMarch: "Feb/March",
}

// Label returns the display name, e.g. "May/June".
func (s Session) Label() string {
	if label, ok := sessionLabels[s]; ok {
		return label
	}
	return string(s)
}

// Slug returns the lower-case form used in commands, e.g. "may/june".
func (s Session) Slug() string {
	return strings.Replace(string(s), "-", "/", 1)
}

// Valid reports whether s is a known session.
func (s Session) Valid() bool {
	_, ok := sessionLabels[s]
	return ok
}

// ParseSession accepts a session value ("may-june"), its label ("May/June") or
// its slug ("may/june"), case-insensitively.
func ParseSession(s string) (Session, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, session := range Sessions {
		if needle == string(session) || needle == session.Slug() || needle == strings.ToLower(session.Label()) {
			return session, nil
		}
	}
	return "", fmt.Errorf("%w: unknown session %q", ErrInvalidChoice, s)
}

// subpartPattern accepts "a", "ii", "a(i)" and "c(iv)".
var subpartPattern = regexp.MustCompile(`^([a-z]|[ivx]+)(\([ivx]+\))?$`)

// NormalizeSubpart lower-cases s and removes whitespace, so "A (ii)" becomes "a(ii)".
func NormalizeSubpart(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}

// ValidSubpart reports whether s, once normalized, is a well-formed subpart.
// The empty subpart is valid.
func ValidSubpart(s string) bool {
	s = NormalizeSubpart(s)
	return s == "" || subpartPattern.MatchString(s)
}

// PaperSelection identifies one past-paper question.
type PaperSelection struct {
	Year           int     `json:"year" mapstructure:"year"`
	Session        Session `json:"session" mapstructure:"session"`
	PaperNumber    int     `json:"paper" mapstructure:"paper"`
	Variant        int     `json:"variant" mapstructure:"variant"`
	QuestionNumber int     `json:"question" mapstructure:"question"`
	Subpart        string  `json:"subpart,omitempty" mapstructure:"subpart"`
}

// SessionLabel returns the display name of the session.
func (p PaperSelection) SessionLabel() string {
	return p.Session.Label()
}

// Command is the request the user is shown to have typed, e.g.
// "solve may/june 2024 paper 2 variant 1 q 3 a".
func (p PaperSelection) Command() string {
	cmd := fmt.Sprintf("solve %s %d paper %d variant %d q %d",
		p.Session.Slug(), p.Year, p.PaperNumber, p.Variant, p.QuestionNumber)
	if p.Subpart != "" {
		cmd += " " + p.Subpart
	}
	return cmd
}

// Describe is the bot's confirmation for the selection.
func (p PaperSelection) Describe() string {
	target := fmt.Sprintf("%s %d paper %d variant %d question %d",
		p.Session.Slug(), p.Year, p.PaperNumber, p.Variant, p.QuestionNumber)
	if p.Subpart != "" {
		target += " part " + p.Subpart
	}
	return "Great! I'll help you solve " + target + ". Let me find the solution for you."
}

// Key is a canonical identifier for the selection, stable across formatting
// differences in the subpart.
func (p PaperSelection) Key() string {
	parts := []string{
		strconv.Itoa(p.Year),
		string(p.Session),
		strconv.Itoa(p.PaperNumber),
		strconv.Itoa(p.Variant),
		strconv.Itoa(p.QuestionNumber),
	}
	if sub := NormalizeSubpart(p.Subpart); sub != "" {
		parts = append(parts, sub)
	}
	return strings.Join(parts, "/")
}

// Validate checks the selection is structurally complete. Catalog limits
// (which years or papers exist) are enforced by the wizard.
func (p PaperSelection) Validate() error {
	switch {
	case p.Year <= 0:
		return fmt.Errorf("%w: year is required", ErrInvalidSelection)
	case !p.Session.Valid():
		return fmt.Errorf("%w: unknown session %q", ErrInvalidSelection, p.Session)
	case p.PaperNumber <= 0:
		return fmt.Errorf("%w: paper number is required", ErrInvalidSelection)
	case p.Variant <= 0:
		return fmt.Errorf("%w: variant is required", ErrInvalidSelection)
	case p.QuestionNumber <= 0:
		return fmt.Errorf("%w: question number is required", ErrInvalidSelection)
	case !ValidSubpart(p.Subpart):
		return fmt.Errorf("%w: malformed subpart %q", ErrInvalidSelection, p.Subpart)
	}
	return nil
}

// Solution is a static worked solution for one selection.
// A solution with an empty Subpart covers every part of its question.
type Solution struct {
	ID        string         `json:"id"`
	Selection PaperSelection `json:"selection"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
}

// Matches reports whether s answers sel.
func (s Solution) Matches(sel PaperSelection) bool {
	a, b := s.Selection, sel
	if a.Year != b.Year || a.Session != b.Session || a.PaperNumber != b.PaperNumber ||
		a.Variant != b.Variant || a.QuestionNumber != b.QuestionNumber {
		return false
	}
	sub := NormalizeSubpart(a.Subpart)
	return sub == "" || sub == NormalizeSubpart(b.Subpart)
}

// BestMatch returns the solution in solutions that answers sel. A solution for
// the exact subpart wins over one covering the whole question.
func BestMatch(solutions []Solution, sel PaperSelection) (Solution, bool) {
	var best Solution
	found := false
	for _, s := range solutions {
		if !s.Matches(sel) {
			continue
		}
		if NormalizeSubpart(s.Selection.Subpart) != "" {
			return s, true
		}
		if !found {
			best, found = s, true
		}
	}
	return best, found
}
