package event

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/chuo/core"
)

var ErrNotFound = errors.New("event not found")

type (
	Repository interface {
		CreateEvent(ctx context.Context, evt Event) (Event, error)
		GetEventByID(ctx context.Context, id string) (Event, error)
		// FilterEvents applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Event.Title, Event.Body or Event.Venue.
		FilterEvents(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]Event, error)
		UpdateEvent(ctx context.Context, evt Event) (Event, error)
		DeleteEventsByID(ctx context.Context, ids ...string) error
	}

	ServiceInterface interface {
		Create(ctx context.Context, ne NewEvent) (Event, error)
		GetByID(ctx context.Context, id string) (Event, error)
		Filter(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Event, error)
		Update(ctx context.Context, id string, ue UpdateEvent) (Event, error)
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

func (svc *Service) Create(ctx context.Context, ne NewEvent) (Event, error) {
	now := time.Now().UTC()
	evt := Event{
		Title:     ne.Title,
		Body:      ne.Body,
		Venue:     ne.Venue,
		StartsAt:  ne.StartsAt.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !ne.EndsAt.IsZero() {
		evt.EndsAt = ne.EndsAt.UTC()
	}
	return svc.repo.CreateEvent(ctx, evt)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Event, error) {
	return svc.repo.GetEventByID(ctx, id)
}

func (svc *Service) Filter(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Event, error) {
	if filter == nil {
		return svc.repo.FilterEvents(ctx, QueryFilter{}, ordering...)
	}
	return svc.repo.FilterEvents(ctx, *filter, ordering...)
}

func (svc *Service) Update(ctx context.Context, id string, ue UpdateEvent) (Event, error) {
	evt := Event{
		ID:        id,
		Title:     ue.Title,
		Body:      ue.Body,
		Venue:     ue.Venue,
		StartsAt:  ue.StartsAt.UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if !ue.EndsAt.IsZero() {
		evt.EndsAt = ue.EndsAt.UTC()
	}
	return svc.repo.UpdateEvent(ctx, evt)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteEventsByID(ctx, ids...)
}
