package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/chuo/core"
	"github.com/trezcool/chuo/core/resource"
)

type resourceRepository struct {
	db *resourceTable
}

var _ resource.Repository = (*resourceRepository)(nil) // interface compliance check

func NewResourceRepository(db *DB) resource.Repository {
	return &resourceRepository{db: db.resource}
}

func (repo *resourceRepository) query() []resource.Resource {
	resources := make([]resource.Resource, 0, len(repo.db.table))
	for _, r := range repo.db.table {
		resources = append(resources, *r)
	}
	sort.Slice(resources, func(i, j int) bool { return resources[i].CreatedAt.Before(resources[j].CreatedAt) })
	return resources
}

func (repo *resourceRepository) CreateResource(ctx context.Context, res resource.Resource) (resource.Resource, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	res.ID = uuid.NewString()
	repo.db.table[res.ID] = &res
	return res, nil
}

func (repo *resourceRepository) GetResourceByID(ctx context.Context, id string) (resource.Resource, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if res, ok := repo.db.table[id]; ok {
		return *res, nil
	}
	return resource.Resource{}, resource.ErrNotFound
}

func (repo *resourceRepository) FilterResources(ctx context.Context, filter resource.QueryFilter, ordering ...core.DBOrdering) ([]resource.Resource, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	resources := repo.query()

	if filter.Search != "" {
		var filtered []resource.Resource
		for _, r := range resources {
			if containsFold(r.Title, filter.Search) {
				filtered = append(filtered, r)
			}
		}
		resources = filtered
	}
	if resources != nil && filter.Kind != "" {
		var filtered []resource.Resource
		for _, r := range resources {
			if r.Kind == filter.Kind {
				filtered = append(filtered, r)
			}
		}
		resources = filtered
	}

	return resources, nil
}

func (repo *resourceRepository) UpdateResource(ctx context.Context, res resource.Resource) (resource.Resource, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	origRes, ok := repo.db.table[res.ID]
	if !ok {
		return resource.Resource{}, resource.ErrNotFound
	}
	if res.Title != "" {
		origRes.Title = res.Title
	}
	if res.Kind != "" {
		origRes.Kind = res.Kind
	}
	if res.FileURL != "" {
		origRes.FileURL = res.FileURL
	}
	if !res.UpdatedAt.IsZero() {
		origRes.UpdatedAt = res.UpdatedAt
	}

	repo.db.table[res.ID] = origRes
	return *origRes, nil
}

func (repo *resourceRepository) DeleteResourcesByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
