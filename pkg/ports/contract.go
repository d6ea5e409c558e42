package ports

import (
	"context"
	"testing"

	"github.com/aretw0/chembot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunAttachmentStoreContract runs a suite of tests to verify that an AttachmentStore
// implementation adheres to the defined interface contract.
func RunAttachmentStoreContract(t *testing.T, store AttachmentStore) {
	ctx := context.Background()
	att := domain.Attachment{
		ID:       "contract-attachment",
		Type:     domain.AttachmentImage,
		Name:     "flask.png",
		MIMEType: "image/png",
	}

	t.Run("Save and Load", func(t *testing.T) {
		data := []byte("\x89PNG fake")
		err := store.Save(ctx, att, data)
		require.NoError(t, err, "Save should not return error")

		// Mutating the caller's buffer must not leak into the store.
		data[0] = 'X'

		loaded, bytes, err := store.Load(ctx, att.ID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, att, loaded)
		assert.Equal(t, []byte("\x89PNG fake"), bytes)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, _, err := store.Load(ctx, "non-existent-"+att.ID)
		assert.ErrorIs(t, err, domain.ErrAttachmentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, att, []byte("x")))

		err := store.Delete(ctx, att.ID)
		require.NoError(t, err, "Delete should not return error")

		_, _, err = store.Load(ctx, att.ID)
		assert.ErrorIs(t, err, domain.ErrAttachmentNotFound, "Load after Delete should return ErrAttachmentNotFound")

		assert.NoError(t, store.Delete(ctx, att.ID), "deleting twice is fine")
	})
}
