package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/chuo/core"
	"github.com/trezcool/chuo/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		students = append(students, *s)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].CreatedAt.Before(students[j].CreatedAt) })
	return students
}

func (repo *studentRepository) CheckRollUniqueness(ctx context.Context, roll, session string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, std := range repo.query() {
		if std.Roll == roll && std.Session == session {
			return student.ErrRollExists
		}
	}
	return nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	std.ID = uuid.NewString()
	repo.db.table[std.ID] = &std
	return std, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if std, ok := repo.db.table[id]; ok {
		return *std, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) GetStudentByRoll(ctx context.Context, roll, session string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, std := range repo.query() {
		if std.Roll == roll && std.Session == session {
			return std, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) FilterStudents(ctx context.Context, filter student.QueryFilter, ordering ...core.DBOrdering) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := repo.query()

	if filter.Search != "" {
		var filtered []student.Student
		for _, s := range students {
			if containsFold(s.Name, filter.Search) || containsFold(s.Roll, filter.Search) {
				filtered = append(filtered, s)
			}
		}
		students = filtered
	}
	if students != nil && filter.Session != "" {
		var filtered []student.Student
		for _, s := range students {
			if s.Session == filter.Session {
				filtered = append(filtered, s)
			}
		}
		students = filtered
	}
	if students != nil && filter.Department != "" {
		var filtered []student.Student
		for _, s := range students {
			if s.Department == filter.Department {
				filtered = append(filtered, s)
			}
		}
		students = filtered
	}

	return students, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	// only save set fields
	origStd, ok := repo.db.table[std.ID]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	if std.Name != "" {
		origStd.Name = std.Name
	}
	if std.Department != "" {
		origStd.Department = std.Department
	}
	if std.Email != "" {
		origStd.Email = std.Email
	}
	if std.Phone != "" {
		origStd.Phone = std.Phone
	}
	if !std.UpdatedAt.IsZero() {
		origStd.UpdatedAt = std.UpdatedAt
	}

	repo.db.table[std.ID] = origStd
	return *origStd, nil
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
