package event

import (
	"time"

	"github.com/trezcool/chuo/core"
)

// Event is one campus event entry.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Venue     string    `json:"venue,omitempty"`
	StartsAt  time.Time `json:"starts_at"` // UTC
	EndsAt    time.Time `json:"ends_at"`   // UTC; zero means open-ended
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// Upcoming reports whether the event has not started yet.
func (e *Event) Upcoming() bool {
	return e.StartsAt.After(time.Now().UTC())
}

// NewEvent contains information needed to create a new Event.
type NewEvent struct {
	Title    string    `json:"title" validate:"required"`
	Body     string    `json:"body" validate:"required"`
	Venue    string    `json:"venue"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"omitempty,gtfield=StartsAt"`
}

func (ne *NewEvent) Validate() error {
	ne.Title = core.CleanString(ne.Title)
	ne.Body = core.CleanString(ne.Body)
	ne.Venue = core.CleanString(ne.Venue)
	return core.Validate.Struct(ne)
}

// UpdateEvent defines what information may be provided to modify an existing Event.
type UpdateEvent struct {
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Venue    string    `json:"venue"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

func (ue *UpdateEvent) Validate(orig Event) error {
	title := core.CleanString(ue.Title)
	if title != "" {
		ue.Title = title
	} else {
		ue.Title = orig.Title
	}

	body := core.CleanString(ue.Body)
	if body != "" {
		ue.Body = body
	} else {
		ue.Body = orig.Body
	}

	venue := core.CleanString(ue.Venue)
	if venue != "" {
		ue.Venue = venue
	} else {
		ue.Venue = orig.Venue
	}

	if ue.StartsAt.IsZero() {
		ue.StartsAt = orig.StartsAt
	}
	if ue.EndsAt.IsZero() {
		ue.EndsAt = orig.EndsAt
	}
	return core.Validate.Struct(ue)
}

type QueryFilter struct {
	Search       string `query:"search"`
	UpcomingOnly bool   `query:"upcoming_only"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
