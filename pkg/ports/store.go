package ports

import (
	"context"

	"github.com/aretw0/chembot/pkg/domain"
)

// AttachmentStore keeps the bytes of files the user attached, so front ends can
// serve them back. Nothing is sent anywhere else.
type AttachmentStore interface {
	// Save stores data under a.ID.
	Save(ctx context.Context, a domain.Attachment, data []byte) error

	// Load retrieves an attachment and its bytes.
	// Returns domain.ErrAttachmentNotFound if the ID does not exist.
	Load(ctx context.Context, id string) (domain.Attachment, []byte, error)

	// Delete removes an attachment. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
}
