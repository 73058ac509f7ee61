package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/folio-works/portfolio-backend/internal/projects/domain"
)

// MemoryStore keeps projects in process memory. It backs the demo mode and tests.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]domain.Project
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]domain.Project)}
}

func (s *MemoryStore) List(ctx context.Context) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Project, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p)
	}
	domain.SortNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) ListFeatured(ctx context.Context) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Project, 0, domain.MaxFeatured)
	for _, p := range s.items {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(id)
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

// RunInTx holds the store lock for the whole of fn. Writes are staged and
// applied only when fn succeeds.
func (s *MemoryStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{store: s}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for _, w := range tx.writes {
		w()
	}
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) get(id string) (*domain.Project, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

type memoryTx struct {
	store  *MemoryStore
	writes []func()
}

func (t *memoryTx) Get(id string) (*domain.Project, error) {
	return t.store.get(id)
}

func (t *memoryTx) CountFeatured() (int, error) {
	n := 0
	for _, p := range t.store.items {
		if p.Featured {
			n++
		}
	}
	return n, nil
}

func (t *memoryTx) Create(p domain.Project) (string, error) {
	p.ID = uuid.NewString()
	t.writes = append(t.writes, func() { t.store.items[p.ID] = p })
	return p.ID, nil
}

func (t *memoryTx) Update(id string, p domain.Project) error {
	t.writes = append(t.writes, func() {
		cur, ok := t.store.items[id]
		if !ok {
			return
		}
		p.ID = cur.ID
		p.CreatedAt = cur.CreatedAt
		t.store.items[id] = p
	})
	return nil
}

func (t *memoryTx) SetFeatured(id string, featured bool) error {
	t.writes = append(t.writes, func() {
		cur, ok := t.store.items[id]
		if !ok {
			return
		}
		cur.Featured = featured
		t.store.items[id] = cur
	})
	return nil
}
