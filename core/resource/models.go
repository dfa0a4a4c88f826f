package resource

import (
	"time"

	"github.com/trezcool/chuo/core"
)

// Known resource kinds. Kind is free-form but these cover the usual downloads.
const (
	KindSyllabus = "syllabus"
	KindForm     = "form"
	KindRoutine  = "routine"
	KindOther    = "other"
)

// Resource is a downloadable file published on the site (syllabus, admission
// form, class routine and the like).
type Resource struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	FileURL   string    `json:"file_url"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// NewResource contains information needed to create a new Resource.
type NewResource struct {
	Title   string `json:"title" validate:"required"`
	Kind    string `json:"kind" validate:"required"`
	FileURL string `json:"file_url" validate:"required,url"`
}

func (nr *NewResource) Validate() error {
	nr.Title = core.CleanString(nr.Title)
	nr.Kind = core.CleanString(nr.Kind, true)
	nr.FileURL = core.CleanString(nr.FileURL)
	return core.Validate.Struct(nr)
}

// UpdateResource defines what information may be provided to modify an existing Resource.
type UpdateResource struct {
	Title   string `json:"title"`
	Kind    string `json:"kind"`
	FileURL string `json:"file_url" validate:"omitempty,url"`
}

func (ur *UpdateResource) Validate(orig Resource) error {
	title := core.CleanString(ur.Title)
	if title != "" {
		ur.Title = title
	} else {
		ur.Title = orig.Title
	}

	kind := core.CleanString(ur.Kind, true)
	if kind != "" {
		ur.Kind = kind
	} else {
		ur.Kind = orig.Kind
	}

	fileURL := core.CleanString(ur.FileURL)
	if fileURL != "" {
		ur.FileURL = fileURL
	} else {
		ur.FileURL = orig.FileURL
	}
	return core.Validate.Struct(ur)
}

type QueryFilter struct {
	Search string `query:"search"`
	Kind   string `query:"kind"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Kind = core.CleanString(qf.Kind, true)
}
