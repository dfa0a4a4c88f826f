package faculty

import (
	"time"

	"github.com/trezcool/chuo/core"
)

// Member is one faculty member's public profile.
type Member struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"` // e.g. "Chief Instructor"
	Department  string    `json:"department"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"` // hosted elsewhere; upload is not ours
	CreatedAt   time.Time `json:"created_at"`          // UTC
	UpdatedAt   time.Time `json:"updated_at"`          // UTC
}

// NewMember contains information needed to create a new Member.
type NewMember struct {
	Name        string `json:"name" validate:"required"`
	Designation string `json:"designation" validate:"required"`
	Department  string `json:"department" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,min=7"`
	PhotoURL    string `json:"photo_url" validate:"omitempty,url"`
}

func (nm *NewMember) Validate() error {
	nm.Name = core.CleanString(nm.Name)
	nm.Designation = core.CleanString(nm.Designation)
	nm.Department = core.CleanString(nm.Department)
	nm.Email = core.CleanString(nm.Email, true /* lower */)
	nm.Phone = core.CleanString(nm.Phone)
	nm.PhotoURL = core.CleanString(nm.PhotoURL)
	return core.Validate.Struct(nm)
}

// UpdateMember defines what information may be provided to modify an existing Member.
type UpdateMember struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,min=7"`
	PhotoURL    string `json:"photo_url" validate:"omitempty,url"`
}

func (um *UpdateMember) Validate(orig Member) error {
	name := core.CleanString(um.Name)
	if name != "" {
		um.Name = name
	} else {
		um.Name = orig.Name
	}

	desig := core.CleanString(um.Designation)
	if desig != "" {
		um.Designation = desig
	} else {
		um.Designation = orig.Designation
	}

	dept := core.CleanString(um.Department)
	if dept != "" {
		um.Department = dept
	} else {
		um.Department = orig.Department
	}

	um.Email = core.CleanString(um.Email, true /* lower */)
	um.Phone = core.CleanString(um.Phone)
	um.PhotoURL = core.CleanString(um.PhotoURL)
	return core.Validate.Struct(um)
}

type QueryFilter struct {
	Search     string `query:"search"`
	Department string `query:"department"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Department = core.CleanString(qf.Department)
}
