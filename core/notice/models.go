package notice

import (
	"time"

	"github.com/trezcool/chuo/core"
)

// Notice is one notice-board entry.
type Notice struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	PublishAt time.Time `json:"publish_at"` // UTC; not shown publicly before this
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// Published reports whether the notice is publicly visible.
func (n *Notice) Published() bool {
	return !n.PublishAt.IsZero() && !n.PublishAt.After(time.Now().UTC())
}

// NewNotice contains information needed to create a new Notice.
type NewNotice struct {
	Title     string    `json:"title" validate:"required"`
	Body      string    `json:"body" validate:"required"`
	PublishAt time.Time `json:"publish_at"`
}

func (nn *NewNotice) Validate() error {
	nn.Title = core.CleanString(nn.Title)
	nn.Body = core.CleanString(nn.Body)
	return core.Validate.Struct(nn)
}

// UpdateNotice defines what information may be provided to modify an existing Notice.
type UpdateNotice struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	PublishAt time.Time `json:"publish_at"`
}

func (un *UpdateNotice) Validate(orig Notice) error {
	title := core.CleanString(un.Title)
	if title != "" {
		un.Title = title
	} else {
		un.Title = orig.Title
	}

	body := core.CleanString(un.Body)
	if body != "" {
		un.Body = body
	} else {
		un.Body = orig.Body
	}

	if un.PublishAt.IsZero() {
		un.PublishAt = orig.PublishAt
	}
	return core.Validate.Struct(un)
}

type QueryFilter struct {
	Search        string `query:"search"`
	PublishedOnly bool   `query:"published_only"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
