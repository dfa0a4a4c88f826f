package faculty

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/chuo/core"
)

var ErrNotFound = errors.New("faculty member not found")

type (
	Repository interface {
		CreateMember(ctx context.Context, mbr Member) (Member, error)
		GetMemberByID(ctx context.Context, id string) (Member, error)
		// FilterMembers applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Member.Name or Member.Designation.
		FilterMembers(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]Member, error)
		UpdateMember(ctx context.Context, mbr Member) (Member, error)
		DeleteMembersByID(ctx context.Context, ids ...string) error
	}

	ServiceInterface interface {
		Create(ctx context.Context, nm NewMember) (Member, error)
		GetByID(ctx context.Context, id string) (Member, error)
		Filter(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Member, error)
		Update(ctx context.Context, id string, um UpdateMember) (Member, error)
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

func (svc *Service) Create(ctx context.Context, nm NewMember) (Member, error) {
	now := time.Now().UTC()
	mbr := Member{
		Name:        nm.Name,
		Designation: nm.Designation,
		Department:  nm.Department,
		Email:       nm.Email,
		Phone:       nm.Phone,
		PhotoURL:    nm.PhotoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateMember(ctx, mbr)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Member, error) {
	return svc.repo.GetMemberByID(ctx, id)
}

func (svc *Service) Filter(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Member, error) {
	if filter == nil {
		return svc.repo.FilterMembers(ctx, QueryFilter{}, ordering...)
	}
	return svc.repo.FilterMembers(ctx, *filter, ordering...)
}

func (svc *Service) Update(ctx context.Context, id string, um UpdateMember) (Member, error) {
	mbr := Member{
		ID:          id,
		Name:        um.Name,
		Designation: um.Designation,
		Department:  um.Department,
		Email:       um.Email,
		Phone:       um.Phone,
		PhotoURL:    um.PhotoURL,
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repo.UpdateMember(ctx, mbr)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteMembersByID(ctx, ids...)
}
