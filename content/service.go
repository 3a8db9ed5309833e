package content

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Invalidator marks locale-qualified renderings of logical pages stale.
// Invalidation runs after the store acknowledged the write and its failures
// never surface to the editor, so the interface reports nothing back here.
type Invalidator interface {
	Invalidate(ctx context.Context, logicalPaths []string) []string
}

// Service is the repository facade: thin CRUD pass-through per entity type,
// with the one added responsibility that every successful write hands the
// affected logical pages to the invalidator before returning.
type Service struct {
	repo        Repo
	invalidator Invalidator
	log         zerolog.Logger
	nowTime     func() time.Time // nowTime function (injectable for testing)
}

type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(repo Repo, invalidator Invalidator, logger zerolog.Logger, options ...ServiceOption) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[NewService] content repo is required")
	}
	if invalidator == nil {
		return nil, errors.New("[NewService] invalidator is required")
	}

	s := &Service{
		repo:        repo,
		invalidator: invalidator,
		log:         logger,
		nowTime:     time.Now,
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

func (s *Service) Get(ctx context.Context, t Type, id string) (*Entity, error) {
	e, err := s.repo.Get(ctx, t, id)
	if err != nil {
		if errors.Is(err, NotFoundErr) {
			return nil, err
		}
		return nil, storageFailure("Service.Get", err)
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, t Type, orderBy string) ([]*Entity, error) {
	list, err := s.repo.List(ctx, t, orderBy)
	if err != nil {
		return nil, storageFailure("Service.List", err)
	}
	return list, nil
}

func (s *Service) Create(ctx context.Context, e *Entity) (*Entity, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.CreatedAt = s.nowTime()
	e.UpdatedAt = e.CreatedAt

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, storageFailure("Service.Create", err)
	}

	s.invalidateFor(ctx, e.Type, e.Slug)
	return e, nil
}

func (s *Service) Update(ctx context.Context, e *Entity) (*Entity, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, e.Type, e.ID)
	if err != nil {
		if errors.Is(err, NotFoundErr) {
			return nil, err
		}
		return nil, storageFailure("Service.Update", err)
	}

	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = s.nowTime()

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, storageFailure("Service.Update", err)
	}

	s.invalidateFor(ctx, e.Type, e.Slug)
	return e, nil
}

func (s *Service) Delete(ctx context.Context, t Type, id string) error {
	existing, err := s.repo.Get(ctx, t, id)
	if err != nil {
		if errors.Is(err, NotFoundErr) {
			return err
		}
		return storageFailure("Service.Delete", err)
	}

	if err := s.repo.Delete(ctx, t, id); err != nil {
		return storageFailure("Service.Delete", err)
	}

	s.invalidateFor(ctx, t, existing.Slug)
	return nil
}

// GetPageHero returns the hero record for a page slug.
func (s *Service) GetPageHero(ctx context.Context, slug string) (*Entity, error) {
	e, err := s.repo.GetBySlug(ctx, TypePageHero, slug)
	if err != nil {
		if errors.Is(err, NotFoundErr) {
			return nil, err
		}
		return nil, storageFailure("Service.GetPageHero", err)
	}
	return e, nil
}

// UpsertPageHero creates or replaces the hero record for a page slug.
func (s *Service) UpsertPageHero(ctx context.Context, slug string, fields Fields) (*Entity, error) {
	e := &Entity{
		Type:      TypePageHero,
		Slug:      slug,
		Fields:    fields,
		UpdatedAt: s.nowTime(),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.CreatedAt = e.UpdatedAt

	if err := s.repo.UpsertBySlug(ctx, e); err != nil {
		return nil, storageFailure("Service.UpsertPageHero", err)
	}

	s.invalidateFor(ctx, TypePageHero, slug)
	return e, nil
}

// invalidateFor fans the affected logical pages out to the invalidator.
// Failures are the invalidator's to log; a committed write never rolls back
// because the cache layer hiccupped.
func (s *Service) invalidateFor(ctx context.Context, t Type, slug string) {
	pages := AffectedPages(t, slug)
	if len(pages) == 0 {
		return
	}
	invalidated := s.invalidator.Invalidate(ctx, pages)
	s.log.Debug().
		Str("entity_type", string(t)).
		Strs("paths", invalidated).
		Msg("invalidated rendered pages after write")
}

func storageFailure(op string, err error) error {
	return errors.WithMessagef(StorageErr, "[%s] %v", op, err)
}
