package notice

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/chuo/core"
)

var ErrNotFound = errors.New("notice not found")

type (
	Repository interface {
		CreateNotice(ctx context.Context, ntc Notice) (Notice, error)
		GetNoticeByID(ctx context.Context, id string) (Notice, error)
		// FilterNotices applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Notice.Title or Notice.Body.
		FilterNotices(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]Notice, error)
		UpdateNotice(ctx context.Context, ntc Notice) (Notice, error)
		DeleteNoticesByID(ctx context.Context, ids ...string) error
	}

	ServiceInterface interface {
		Create(ctx context.Context, nn NewNotice) (Notice, error)
		GetByID(ctx context.Context, id string) (Notice, error)
		Filter(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Notice, error)
		Update(ctx context.Context, id string, un UpdateNotice) (Notice, error)
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

func (svc *Service) Create(ctx context.Context, nn NewNotice) (Notice, error) {
	now := time.Now().UTC()
	ntc := Notice{
		Title:     nn.Title,
		Body:      nn.Body,
		PublishAt: nn.PublishAt.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ntc.PublishAt.IsZero() {
		ntc.PublishAt = now
	}
	return svc.repo.CreateNotice(ctx, ntc)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Notice, error) {
	return svc.repo.GetNoticeByID(ctx, id)
}

func (svc *Service) Filter(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Notice, error) {
	if filter == nil {
		return svc.repo.FilterNotices(ctx, QueryFilter{}, ordering...)
	}
	return svc.repo.FilterNotices(ctx, *filter, ordering...)
}

func (svc *Service) Update(ctx context.Context, id string, un UpdateNotice) (Notice, error) {
	ntc := Notice{
		ID:        id,
		Title:     un.Title,
		Body:      un.Body,
		PublishAt: un.PublishAt.UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateNotice(ctx, ntc)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteNoticesByID(ctx, ids...)
}
