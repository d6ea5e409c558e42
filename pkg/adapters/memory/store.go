package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/chembot/pkg/domain"
)

type blob struct {
	meta domain.Attachment
	data []byte
}

// Store implements ports.AttachmentStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]blob
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]blob),
	}
}

// Save keeps a copy of data so the caller may reuse its buffer.
func (s *Store) Save(ctx context.Context, a domain.Attachment, data []byte) error {
	copied := make([]byte, len(data))
	copy(copied, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[a.ID] = blob{meta: a, data: copied}
	return nil
}

// Load retrieves the attachment from memory.
func (s *Store) Load(ctx context.Context, id string) (domain.Attachment, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.data[id]
	if !ok {
		return domain.Attachment{}, nil, domain.ErrAttachmentNotFound
	}

	// Copy on read so callers can't mutate the stored bytes.
	ret := make([]byte, len(b.data))
	copy(ret, b.data)
	return b.meta, ret, nil
}

// Delete removes the attachment.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored attachment IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
