package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/folio-works/portfolio-backend/internal/metrics"
	"github.com/folio-works/portfolio-backend/internal/projects/domain"
	"github.com/folio-works/portfolio-backend/internal/projects/repository"
)

// Revalidator drops cached renderings of the given page paths.
type Revalidator interface {
	Invalidate(ctx context.Context, paths ...string) error
}

// ProjectService mediates every read and write of the project collection and
// enforces the featured cap.
type ProjectService struct {
	store    repository.Store
	pages    Revalidator
	log      *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

func NewProjectService(store repository.Store, pages Revalidator, log *zap.Logger) *ProjectService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProjectService{
		store:    store,
		pages:    pages,
		log:      log,
		validate: validator.New(),
		now:      time.Now,
	}
}

// ListAll returns every project, newest first.
func (s *ProjectService) ListAll(ctx context.Context) ([]domain.Project, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, s.storageError("list", err)
	}
	if items == nil {
		items = []domain.Project{}
	}
	return items, nil
}

// ListFeatured returns at most domain.MaxFeatured featured projects, newest first.
// Ordering happens here because the store only filters.
func (s *ProjectService) ListFeatured(ctx context.Context) ([]domain.Project, error) {
	items, err := s.store.ListFeatured(ctx)
	if err != nil {
		return nil, s.storageError("list_featured", err)
	}
	domain.SortNewestFirst(items)
	if len(items) > domain.MaxFeatured {
		items = items[:domain.MaxFeatured]
	}
	if items == nil {
		items = []domain.Project{}
	}
	return items, nil
}

// GetByID returns the project and whether it exists. A missing project is not an error.
func (s *ProjectService) GetByID(ctx context.Context, id string) (*domain.Project, bool, error) {
	p, err := s.store.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, s.storageError("get", err)
	}
	return p, true, nil
}

// Add validates in and stores it as a new project, returning the assigned id.
func (s *ProjectService) Add(ctx context.Context, in domain.ProjectInput) (id string, err error) {
	defer func() { record("add", err) }()

	if err := s.validate.Struct(in); err != nil {
		return "", domain.ErrValidation
	}

	p := domain.Project{
		Title:     in.Title,
		Summary:   in.Summary,
		URL:       in.URL,
		ImageURL:  in.ImageURL,
		CreatedAt: domain.NewTimestamp(s.now()),
		Featured:  in.Featured != nil && *in.Featured,
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		if p.Featured {
			if err := checkCapacity(tx); err != nil {
				return err
			}
		}
		var err error
		id, err = tx.Create(p)
		return err
	})
	if err != nil {
		return "", s.writeError("add", err)
	}

	s.invalidate(ctx, domain.PathHome, domain.PathProjects, domain.PathAdmin)
	return id, nil
}

// Update replaces the mutable fields of project id. id and createdAt never change.
func (s *ProjectService) Update(ctx context.Context, id string, in domain.ProjectInput) (err error) {
	defer func() { record("update", err) }()

	if err := s.validate.Struct(in); err != nil {
		return domain.ErrValidation
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		cur, err := tx.Get(id)
		if err != nil {
			return err
		}

		next := *cur
		next.Title = in.Title
		next.Summary = in.Summary
		next.URL = in.URL
		next.ImageURL = in.ImageURL
		if in.Featured != nil {
			next.Featured = *in.Featured
		}

		if next.Featured && !cur.Featured {
			if err := checkCapacity(tx); err != nil {
				return err
			}
		}
		return tx.Update(id, next)
	})
	if err != nil {
		return s.writeError("update", err)
	}

	s.invalidate(ctx, domain.PathHome, domain.PathProjects, domain.PathAdmin,
		domain.ProjectPath(id), domain.AdminEditPath(id))
	return nil
}

// SetFeatured flips only the featured flag. The cap is checked on the
// not-featured to featured transition, the same rule Add and Update use.
func (s *ProjectService) SetFeatured(ctx context.Context, id string, featured bool) (err error) {
	defer func() { record("set_featured", err) }()

	err = s.store.RunInTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		cur, err := tx.Get(id)
		if err != nil {
			return err
		}
		// Same value is a no-op, so re-featuring at the cap succeeds
		// without a capacity check.
		if cur.Featured == featured {
			return nil
		}
		if featured {
			if err := checkCapacity(tx); err != nil {
				return err
			}
		}
		return tx.SetFeatured(id, featured)
	})
	if err != nil {
		return s.writeError("set_featured", err)
	}

	s.invalidate(ctx, domain.PathHome, domain.PathProjects, domain.PathAdmin,
		domain.ProjectPath(id), domain.AdminEditPath(id))
	return nil
}

// Delete removes project id. Deleting a missing project succeeds.
func (s *ProjectService) Delete(ctx context.Context, id string) (err error) {
	defer func() { record("delete", err) }()

	if err := s.store.Delete(ctx, id); err != nil {
		return s.writeError("delete", err)
	}

	s.invalidate(ctx, domain.PathHome, domain.PathProjects, domain.PathAdmin,
		domain.ProjectPath(id), domain.AdminEditPath(id))
	return nil
}

func checkCapacity(tx repository.Tx) error {
	n, err := tx.CountFeatured()
	if err != nil {
		return err
	}
	if n >= domain.MaxFeatured {
		return domain.ErrCapacity
	}
	return nil
}

// writeError passes domain outcomes through and wraps everything else.
func (s *ProjectService) writeError(op string, err error) error {
	if errors.Is(err, domain.ErrCapacity) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
		return err
	}
	return s.storageError(op, err)
}

func (s *ProjectService) storageError(op string, err error) error {
	se := domain.NewStorageError(op, err)
	s.log.Error("project store failure",
		zap.String("op", op),
		zap.String("message", se.Message),
		zap.Error(err),
	)
	return se
}

func (s *ProjectService) invalidate(ctx context.Context, paths ...string) {
	if s.pages == nil {
		return
	}
	if err := s.pages.Invalidate(ctx, paths...); err != nil {
		s.log.Warn("page invalidation failed", zap.Strings("paths", paths), zap.Error(err))
	}
}

func record(op string, err error) {
	metrics.ProjectMutations.WithLabelValues(op, Outcome(err)).Inc()
}

// Outcome classifies a service error for metrics and HTTP status mapping.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrCapacity):
		return "capacity"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "storage"
	}
}
