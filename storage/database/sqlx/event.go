package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/chuo/core"
	"github.com/trezcool/chuo/core/event"
)

type eventRow struct {
	ID        string      `db:"id"`
	Title     null.String `db:"title"`
	Body      null.String `db:"body"`
	Venue     null.String `db:"venue"`
	StartsAt  null.Time   `db:"starts_at"`
	EndsAt    null.Time   `db:"ends_at"`
	CreatedAt null.Time   `db:"created_at"`
	UpdatedAt null.Time   `db:"updated_at"`
}

func (r eventRow) unpack() event.Event {
	return event.Event{
		ID:        r.ID,
		Title:     r.Title.String,
		Body:      r.Body.String,
		Venue:     r.Venue.String,
		StartsAt:  r.StartsAt.Time,
		EndsAt:    r.EndsAt.Time,
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
}

func packEvent(evt event.Event) eventRow {
	return eventRow{
		ID:        evt.ID,
		Title:     null.NewString(evt.Title, evt.Title != ""),
		Body:      null.NewString(evt.Body, evt.Body != ""),
		Venue:     null.NewString(evt.Venue, evt.Venue != ""),
		StartsAt:  null.NewTime(evt.StartsAt.UTC(), !evt.StartsAt.IsZero()),
		EndsAt:    null.NewTime(evt.EndsAt.UTC(), !evt.EndsAt.IsZero()),
		CreatedAt: null.NewTime(evt.CreatedAt.UTC(), !evt.CreatedAt.IsZero()),
		UpdatedAt: null.NewTime(evt.UpdatedAt.UTC(), !evt.UpdatedAt.IsZero()),
	}
}

type eventRepository struct {
	db *sqlx.DB
}

var _ event.Repository = (*eventRepository)(nil) // interface compliance check

func NewEventRepository(db *sqlx.DB) *eventRepository {
	return &eventRepository{db: db}
}

func (repo eventRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return event.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo eventRepository) CreateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	evt.ID = uuid.NewString()
	row := packEvent(evt)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO event (id, title, body, venue, starts_at, ends_at, created_at, updated_at)
		VALUES (:id, :title, :body, :venue, :starts_at, :ends_at, :created_at, :updated_at)`,
		row)
	if err != nil {
		return event.Event{}, errors.Wrap(err, "inserting event")
	}
	return evt, nil
}

func (repo eventRepository) GetEventByID(ctx context.Context, id string) (event.Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return event.Event{}, event.ErrNotFound
	}
	var row eventRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM event WHERE id = $1`, id); err != nil {
		return event.Event{}, repo.trapNoRowsErr(err, "finding event by ID")
	}
	return row.unpack(), nil
}

func (repo eventRepository) FilterEvents(ctx context.Context, filter event.QueryFilter, ordering ...core.DBOrdering) ([]event.Event, error) {
	q := `SELECT * FROM event WHERE true`
	var args []interface{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		ph := fmt.Sprintf("$%d", len(args))
		q += fmt.Sprintf(" AND (title ILIKE %[1]s OR venue ILIKE %[1]s)", ph)
	}
	if filter.UpcomingOnly {
		q += " AND starts_at > NOW() AT TIME ZONE 'utc'"
	}
	q += orderClause(ordering)

	var rows []eventRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering events")
	}
	events := make([]event.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, r.unpack())
	}
	return events, nil
}

func (repo eventRepository) UpdateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	row := packEvent(evt)
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE event SET
			title      = COALESCE(:title, title),
			body       = COALESCE(:body, body),
			venue      = COALESCE(:venue, venue),
			starts_at  = COALESCE(:starts_at, starts_at),
			ends_at    = COALESCE(:ends_at, ends_at),
			updated_at = COALESCE(:updated_at, updated_at)
		WHERE id = :id`,
		row)
	if err != nil {
		return event.Event{}, errors.Wrap(err, "updating event")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return event.Event{}, event.ErrNotFound
	}
	return repo.GetEventByID(ctx, evt.ID)
}

func (repo eventRepository) DeleteEventsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	_, err := repo.db.ExecContext(ctx, `DELETE FROM event WHERE id IN `+inArgs(1, len(ids)), args...)
	return errors.Wrap(err, "deleting events")
}
