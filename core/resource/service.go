package resource

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/chuo/core"
)

var ErrNotFound = errors.New("resource not found")

type (
	Repository interface {
		CreateResource(ctx context.Context, res Resource) (Resource, error)
		GetResourceByID(ctx context.Context, id string) (Resource, error)
		// FilterResources applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Resource.Title.
		FilterResources(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]Resource, error)
		UpdateResource(ctx context.Context, res Resource) (Resource, error)
		DeleteResourcesByID(ctx context.Context, ids ...string) error
	}

	ServiceInterface interface {
		Create(ctx context.Context, nr NewResource) (Resource, error)
		GetByID(ctx context.Context, id string) (Resource, error)
		Filter(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Resource, error)
		Update(ctx context.Context, id string, ur UpdateResource) (Resource, error)
		Delete(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nr NewResource) (Resource, error) {
	now := time.Now().UTC()
	res := Resource{
		Title:     nr.Title,
		Kind:      nr.Kind,
		FileURL:   nr.FileURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateResource(ctx, res)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Resource, error) {
	return svc.repo.GetResourceByID(ctx, id)
}

func (svc *Service) Filter(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Resource, error) {
	if filter == nil {
		return svc.repo.FilterResources(ctx, QueryFilter{}, ordering...)
	}
	return svc.repo.FilterResources(ctx, *filter, ordering...)
}

func (svc *Service) Update(ctx context.Context, id string, ur UpdateResource) (Resource, error) {
	res := Resource{
		ID:        id,
		Title:     ur.Title,
		Kind:      ur.Kind,
		FileURL:   ur.FileURL,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateResource(ctx, res)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteResourcesByID(ctx, ids...)
}
