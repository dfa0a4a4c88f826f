package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/chuo/core"
	"github.com/trezcool/chuo/core/event"
)

type eventRepository struct {
	db *eventTable
}

var _ event.Repository = (*eventRepository)(nil) // interface compliance check

func NewEventRepository(db *DB) event.Repository {
	return &eventRepository{db: db.event}
}

func (repo *eventRepository) query() []event.Event {
	events := make([]event.Event, 0, len(repo.db.table))
	for _, e := range repo.db.table {
		events = append(events, *e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].CreatedAt.Before(events[j].CreatedAt) })
	return events
}

func (repo *eventRepository) CreateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	evt.ID = uuid.NewString()
	repo.db.table[evt.ID] = &evt
	return evt, nil
}

func (repo *eventRepository) GetEventByID(ctx context.Context, id string) (event.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if evt, ok := repo.db.table[id]; ok {
		return *evt, nil
	}
	return event.Event{}, event.ErrNotFound
}

func (repo *eventRepository) FilterEvents(ctx context.Context, filter event.QueryFilter, ordering ...core.DBOrdering) ([]event.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	events := repo.query()

	if filter.Search != "" {
		var filtered []event.Event
		for _, e := range events {
			if containsFold(e.Title, filter.Search) || containsFold(e.Venue, filter.Search) {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}
	if events != nil && filter.UpcomingOnly {
		var filtered []event.Event
		for _, e := range events {
			if e.Upcoming() {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}

	return events, nil
}

func (repo *eventRepository) UpdateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	origEvt, ok := repo.db.table[evt.ID]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}
	if evt.Title != "" {
		origEvt.Title = evt.Title
	}
	if evt.Body != "" {
		origEvt.Body = evt.Body
	}
	if evt.Venue != "" {
		origEvt.Venue = evt.Venue
	}
	if !evt.StartsAt.IsZero() {
		origEvt.StartsAt = evt.StartsAt
	}
	if !evt.EndsAt.IsZero() {
		origEvt.EndsAt = evt.EndsAt
	}
	if !evt.UpdatedAt.IsZero() {
		origEvt.UpdatedAt = evt.UpdatedAt
	}

	repo.db.table[evt.ID] = origEvt
	return *origEvt, nil
}

func (repo *eventRepository) DeleteEventsByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
