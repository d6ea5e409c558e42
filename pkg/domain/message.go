package domain

import "strings"

// Role identifies who wrote a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// AttachmentType distinguishes inline images from other files.
type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentFile  AttachmentType = "file"
)

// Attachment is a file sent along with a user message.
// URL is a host-local reference (a file path or an in-memory route), never uploaded anywhere.
type Attachment struct {
	ID       string         `json:"id"`
	Type     AttachmentType `json:"type"`
	URL      string         `json:"url"`
	Name     string         `json:"name"`
	MIMEType string         `json:"mime_type,omitempty"`
}

// Message is one transcript entry.
type Message struct {
	ID          string       `json:"id"`
	Role        Role         `json:"role"`
	Content     string       `json:"content"`
	Timestamp   string       `json:"timestamp"` // wall clock, "15:04"
	Attachments []Attachment `json:"attachments,omitempty"`
}

// IsBot reports whether the bot wrote the message.
func (m Message) IsBot() bool {
	return m.Role == RoleBot
}

// IsDocument reports whether the message body should be parsed as a structured
// document rather than shown as plain text. Only bot messages with a header qualify.
func (m Message) IsDocument() bool {
	return m.IsBot() && strings.Contains(m.Content, "##")
}
