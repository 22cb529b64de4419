package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"confusion/internal/cache"
	apperrors "confusion/internal/errors"
	"confusion/internal/model"
	"confusion/internal/repository"
)

const catalogCacheTTL = 5 * time.Minute

// CatalogService exposes the admin-gated lifecycle shared by dishes, promotions and leaders.
type CatalogService[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, item *T) (*T, error)
	// Update loads the stored item, lets apply merge client fields into it and saves the result.
	Update(ctx context.Context, id uuid.UUID, apply func(*T) error) (*T, error)
	DeleteAll(ctx context.Context) (model.RemovalSummary, error)
	Delete(ctx context.Context, id uuid.UUID) (*T, error)
}

// validatable is implemented by models with invariants beyond struct tags.
type validatable interface {
	Validate() error
}

type catalogService[T any, PT model.Entity[T]] struct {
	repo     repository.CatalogRepository[T]
	cache    *cache.Client
	kind     string
	notFound error
}

// NewCatalogService builds a CatalogService. kind prefixes cache keys; notFound is
// returned for unknown ids.
func NewCatalogService[T any, PT model.Entity[T]](repo repository.CatalogRepository[T], cache *cache.Client, kind string, notFound error) CatalogService[T] {
	return newCatalogService[T, PT](repo, cache, kind, notFound)
}

func newCatalogService[T any, PT model.Entity[T]](repo repository.CatalogRepository[T], cache *cache.Client, kind string, notFound error) *catalogService[T, PT] {
	return &catalogService[T, PT]{repo: repo, cache: cache, kind: kind, notFound: notFound}
}

// NewPromotionService manages promotions.
func NewPromotionService(repo repository.CatalogRepository[model.Promotion], cache *cache.Client) CatalogService[model.Promotion] {
	return NewCatalogService[model.Promotion](repo, cache, "promotions", apperrors.ErrPromotionNotFound)
}

// NewLeaderService manages leaders.
func NewLeaderService(repo repository.CatalogRepository[model.Leader], cache *cache.Client) CatalogService[model.Leader] {
	return NewCatalogService[model.Leader](repo, cache, "leaders", apperrors.ErrLeaderNotFound)
}

func (s *catalogService[T, PT]) listKey() string {
	return s.kind + ":all"
}

func (s *catalogService[T, PT]) itemKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", s.kind, id)
}

func (s *catalogService[T, PT]) invalidate(ctx context.Context, id uuid.UUID) {
	_ = s.cache.Delete(ctx, s.listKey(), s.itemKey(id))
}

func (s *catalogService[T, PT]) List(ctx context.Context) ([]T, error) {
	var cached []T
	if s.cache.GetJSON(ctx, s.listKey(), &cached) {
		return cached, nil
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind, err)
	}
	s.cache.SetJSON(ctx, s.listKey(), items, catalogCacheTTL)
	return items, nil
}

func (s *catalogService[T, PT]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var cached T
	if s.cache.GetJSON(ctx, s.itemKey(id), &cached) {
		return &cached, nil
	}

	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, s.itemKey(id), item, catalogCacheTTL)
	return item, nil
}

// find reads straight from the store; mutations never start from a cached copy.
func (s *catalogService[T, PT]) find(ctx context.Context, id uuid.UUID) (*T, error) {
	item, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, s.notFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.kind, err)
	}
	return item, nil
}

func (s *catalogService[T, PT]) Create(ctx context.Context, item *T) (*T, error) {
	if err := validate(item); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateName
		}
		return nil, fmt.Errorf("create %s: %w", s.kind, err)
	}
	s.invalidate(ctx, PT(item).GetID())
	return item, nil
}

func (s *catalogService[T, PT]) Update(ctx context.Context, id uuid.UUID, apply func(*T) error) (*T, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := *item
	if err := apply(item); err != nil {
		return nil, err
	}
	PT(item).Preserve(&prev)
	if err := validate(item); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateName
		}
		return nil, fmt.Errorf("update %s: %w", s.kind, err)
	}
	s.invalidate(ctx, id)
	return item, nil
}

func (s *catalogService[T, PT]) DeleteAll(ctx context.Context) (model.RemovalSummary, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return model.RemovalSummary{}, fmt.Errorf("list %s: %w", s.kind, err)
	}
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return model.RemovalSummary{}, fmt.Errorf("delete %s: %w", s.kind, err)
	}

	keys := make([]string, 0, len(items)+1)
	keys = append(keys, s.listKey())
	for i := range items {
		keys = append(keys, s.itemKey(PT(&items[i]).GetID()))
	}
	_ = s.cache.Delete(ctx, keys...)
	return model.Removed(n), nil
}

func (s *catalogService[T, PT]) Delete(ctx context.Context, id uuid.UUID) (*T, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", s.kind, err)
	}
	if n == 0 {
		return nil, s.notFound
	}
	s.invalidate(ctx, id)
	return item, nil
}

func validate(item any) error {
	v, ok := item.(validatable)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		if errors.Is(err, model.ErrNegativePrice) {
			return apperrors.ErrInvalidPrice
		}
		return err
	}
	return nil
}
