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
	"github.com/trezcool/chuo/core/student"
)

type studentRow struct {
	ID         string      `db:"id"`
	Roll       string      `db:"roll"`
	Name       null.String `db:"name"`
	Session    string      `db:"session"`
	Department null.String `db:"department"`
	Email      null.String `db:"email"`
	Phone      null.String `db:"phone"`
	CreatedAt  null.Time   `db:"created_at"`
	UpdatedAt  null.Time   `db:"updated_at"`
}

func (r studentRow) unpack() student.Student {
	return student.Student{
		ID:         r.ID,
		Roll:       r.Roll,
		Name:       r.Name.String,
		Session:    r.Session,
		Department: r.Department.String,
		Email:      r.Email.String,
		Phone:      r.Phone.String,
		CreatedAt:  r.CreatedAt.Time,
		UpdatedAt:  r.UpdatedAt.Time,
	}
}

func packStudent(std student.Student) studentRow {
	return studentRow{
		ID:         std.ID,
		Roll:       std.Roll,
		Name:       null.NewString(std.Name, std.Name != ""),
		Session:    std.Session,
		Department: null.NewString(std.Department, std.Department != ""),
		Email:      null.NewString(std.Email, std.Email != ""),
		Phone:      null.NewString(std.Phone, std.Phone != ""),
		CreatedAt:  null.NewTime(std.CreatedAt.UTC(), !std.CreatedAt.IsZero()),
		UpdatedAt:  null.NewTime(std.UpdatedAt.UTC(), !std.UpdatedAt.IsZero()),
	}
}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo studentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) CheckRollUniqueness(ctx context.Context, roll, session string) error {
	var exists bool
	err := repo.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM student WHERE roll = $1 AND session = $2)`, roll, session)
	if err != nil {
		return errors.Wrap(err, "checking roll uniqueness")
	}
	if exists {
		return student.ErrRollExists
	}
	return nil
}

func (repo studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	std.ID = uuid.NewString()
	row := packStudent(std)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO student (id, roll, name, session, department, email, phone, created_at, updated_at)
		VALUES (:id, :roll, :name, :session, :department, :email, :phone, :created_at, :updated_at)`,
		row)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return std, nil
}

func (repo studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	if _, err := uuid.Parse(id); err != nil {
		return student.Student{}, student.ErrNotFound
	}
	var row studentRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM student WHERE id = $1`, id); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "finding student by ID")
	}
	return row.unpack(), nil
}

func (repo studentRepository) GetStudentByRoll(ctx context.Context, roll, session string) (student.Student, error) {
	var row studentRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM student WHERE roll = $1 AND session = $2`, roll, session)
	if err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "finding student by roll")
	}
	return row.unpack(), nil
}

func (repo studentRepository) FilterStudents(ctx context.Context, filter student.QueryFilter, ordering ...core.DBOrdering) ([]student.Student, error) {
	q := `SELECT * FROM student WHERE true`
	var args []interface{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		ph := fmt.Sprintf("$%d", len(args))
		q += fmt.Sprintf(" AND (name ILIKE %[1]s OR roll ILIKE %[1]s)", ph)
	}
	if filter.Session != "" {
		args = append(args, filter.Session)
		q += fmt.Sprintf(" AND session = $%d", len(args))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		q += fmt.Sprintf(" AND department = $%d", len(args))
	}
	q += orderClause(ordering)

	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering students")
	}
	students := make([]student.Student, 0, len(rows))
	for _, r := range rows {
		students = append(students, r.unpack())
	}
	return students, nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	row := packStudent(std)
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE student SET
			name       = COALESCE(:name, name),
			department = COALESCE(:department, department),
			email      = COALESCE(:email, email),
			phone      = COALESCE(:phone, phone),
			updated_at = COALESCE(:updated_at, updated_at)
		WHERE id = :id`,
		row)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return repo.GetStudentByID(ctx, std.ID)
}

func (repo studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	_, err := repo.db.ExecContext(ctx, `DELETE FROM student WHERE id IN `+inArgs(1, len(ids)), args...)
	return errors.Wrap(err, "deleting students")
}
