package student

import (
	"time"

	"github.com/trezcool/chuo/core"
)

// Student is one enrolled student's record. Roll is the unique lookup key
// within a session; it is also the key used against the results documents.
type Student struct {
	ID         string    `json:"id"`
	Roll       string    `json:"roll"`
	Name       string    `json:"name"`
	Session    string    `json:"session"` // e.g. "2025-2026"
	Department string    `json:"department"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	Roll       string `json:"roll" validate:"required,digits"`
	Name       string `json:"name" validate:"required"`
	Session    string `json:"session" validate:"required"`
	Department string `json:"department" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"omitempty,min=7"`
}

func (ns *NewStudent) Validate(svc ServiceInterface) error {
	ns.Roll = core.CleanString(ns.Roll)
	ns.Name = core.CleanString(ns.Name)
	ns.Session = core.CleanString(ns.Session)
	ns.Department = core.CleanString(ns.Department)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Phone = core.CleanString(ns.Phone)

	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckRollUniqueness(ns.Roll, ns.Session)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
type UpdateStudent struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"omitempty,min=7"`
}

func (us *UpdateStudent) Validate(orig Student) error {
	name := core.CleanString(us.Name)
	if name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}

	dept := core.CleanString(us.Department)
	if dept != "" {
		us.Department = dept
	} else {
		us.Department = orig.Department
	}

	us.Email = core.CleanString(us.Email, true /* lower */)
	us.Phone = core.CleanString(us.Phone)
	return core.Validate.Struct(us)
}

type QueryFilter struct {
	Search     string `query:"search"`
	Session    string `query:"session"`
	Department string `query:"department"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Session == "" && qf.Department == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Session = core.CleanString(qf.Session)
	qf.Department = core.CleanString(qf.Department)
}
