package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-works/portfolio-backend/internal/projects/domain"
)

func seed(t *testing.T, s *MemoryStore, p domain.Project) string {
	t.Helper()
	var id string
	err := s.RunInTx(context.Background(), func(ctx context.Context, tx Tx) error {
		var err error
		id, err = tx.Create(p)
		return err
	})
	require.NoError(t, err)
	return id
}

func TestMemoryStore_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id := seed(t, s, domain.Project{Title: "Site", Summary: "A portfolio site", URL: "https://example.com"})
	require.NotEmpty(t, id)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Site", got.Title)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// deleting again is fine
	assert.NoError(t, s.Delete(ctx, id))
}

func TestMemoryStore_ListOrdering(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seed(t, s, domain.Project{Title: "first", CreatedAt: domain.NewTimestamp(base)})
	seed(t, s, domain.Project{Title: "third", CreatedAt: domain.NewTimestamp(base.Add(2 * time.Hour))})
	seed(t, s, domain.Project{Title: "second", CreatedAt: domain.NewTimestamp(base.Add(time.Hour))})

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "third", items[0].Title)
	assert.Equal(t, "second", items[1].Title)
	assert.Equal(t, "first", items[2].Title)
}

func TestMemoryStore_TxDiscardsWritesOnError(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	boom := errors.New("boom")

	err := s.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		if _, err := tx.Create(domain.Project{Title: "ghost"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemoryStore_UpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	created := domain.NewTimestamp(time.Now())
	id := seed(t, s, domain.Project{Title: "old", CreatedAt: created})

	err := s.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		return tx.Update(id, domain.Project{ID: "other", Title: "new", CreatedAt: "overwritten", Featured: true})
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, "new", got.Title)
	assert.True(t, got.Featured)

	featured, err := s.ListFeatured(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, 1)
}

func TestMemoryStore_CountFeatured(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a := seed(t, s, domain.Project{Title: "a", Featured: true})
	seed(t, s, domain.Project{Title: "b"})

	err := s.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		n, err := tx.CountFeatured()
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		return tx.SetFeatured(a, false)
	})
	require.NoError(t, err)

	featured, err := s.ListFeatured(ctx)
	require.NoError(t, err)
	assert.Empty(t, featured)
}
