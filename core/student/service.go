package student

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/chuo/core"
)

var (
	// errors
	ErrNotFound   = errors.New("student not found")
	ErrRollExists = errors.New("a student with this roll number already exists for this session")
)

type (
	Repository interface {
		CheckRollUniqueness(ctx context.Context, roll, session string) error
		CreateStudent(ctx context.Context, std Student) (Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		GetStudentByRoll(ctx context.Context, roll, session string) (Student, error)
		// FilterStudents applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of Student.Name or Student.Roll.
		FilterStudents(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]Student, error)
		UpdateStudent(ctx context.Context, std Student) (Student, error)
		DeleteStudentsByID(ctx context.Context, ids ...string) error
	}

	// ServiceInterface is consumed by the API layer; *Service implements it.
	ServiceInterface interface {
		CheckRollUniqueness(roll, session string) error
		Create(ctx context.Context, ns NewStudent) (Student, error)
		GetByID(ctx context.Context, id string) (Student, error)
		GetByRoll(ctx context.Context, roll, session string) (Student, error)
		Filter(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Student, error)
		Update(ctx context.Context, id string, us UpdateStudent) (Student, error)
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

func (svc *Service) CheckRollUniqueness(roll, session string) error {
	if err := svc.repo.CheckRollUniqueness(context.Background(), roll, session); err != nil {
		if err == ErrRollExists {
			return core.NewValidationError(err, core.FieldError{Field: "roll", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	std := Student{
		Roll:       ns.Roll,
		Name:       ns.Name,
		Session:    ns.Session,
		Department: ns.Department,
		Email:      ns.Email,
		Phone:      ns.Phone,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateStudent(ctx, std)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) GetByRoll(ctx context.Context, roll, session string) (Student, error) {
	return svc.repo.GetStudentByRoll(ctx, core.CleanString(roll), core.CleanString(session))
}

func (svc *Service) Filter(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Student, error) {
	if filter == nil {
		return svc.repo.FilterStudents(ctx, QueryFilter{}, ordering...)
	}
	return svc.repo.FilterStudents(ctx, *filter, ordering...)
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	std := Student{
		ID:         id,
		Name:       us.Name,
		Department: us.Department,
		Email:      us.Email,
		Phone:      us.Phone,
		UpdatedAt:  time.Now().UTC(),
	}
	return svc.repo.UpdateStudent(ctx, std)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteStudentsByID(ctx, ids...)
}
