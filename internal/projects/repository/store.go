package repository

import (
	"context"

	"github.com/folio-works/portfolio-backend/internal/projects/domain"
)

// Store is the document-store contract the project service depends on.
// Reads return domain.ErrNotFound for missing documents; every other failure
// is returned as-is for the service to wrap.
type Store interface {
	// List returns every project ordered by createdAt descending.
	List(ctx context.Context) ([]domain.Project, error)
	// ListFeatured returns projects with featured == true in no particular order.
	ListFeatured(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	// Delete removes a project. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
	// RunInTx runs fn atomically. All Tx reads must happen before its writes.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Ping(ctx context.Context) error
}

// Tx is the transactional view used for writes guarded by the featured cap.
type Tx interface {
	Get(id string) (*domain.Project, error)
	CountFeatured() (int, error)
	// Create stores p under a new id and returns that id. p.ID is ignored.
	Create(p domain.Project) (string, error)
	// Update overwrites the mutable fields of an existing project.
	Update(id string, p domain.Project) error
	SetFeatured(id string, featured bool) error
}
