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
	"github.com/trezcool/chuo/core/faculty"
)

type facultyRow struct {
	ID          string      `db:"id"`
	Name        null.String `db:"name"`
	Designation null.String `db:"designation"`
	Department  null.String `db:"department"`
	Email       null.String `db:"email"`
	Phone       null.String `db:"phone"`
	PhotoURL    null.String `db:"photo_url"`
	CreatedAt   null.Time   `db:"created_at"`
	UpdatedAt   null.Time   `db:"updated_at"`
}

func (r facultyRow) unpack() faculty.Member {
	return faculty.Member{
		ID:          r.ID,
		Name:        r.Name.String,
		Designation: r.Designation.String,
		Department:  r.Department.String,
		Email:       r.Email.String,
		Phone:       r.Phone.String,
		PhotoURL:    r.PhotoURL.String,
		CreatedAt:   r.CreatedAt.Time,
		UpdatedAt:   r.UpdatedAt.Time,
	}
}

func packMember(mbr faculty.Member) facultyRow {
	return facultyRow{
		ID:          mbr.ID,
		Name:        null.NewString(mbr.Name, mbr.Name != ""),
		Designation: null.NewString(mbr.Designation, mbr.Designation != ""),
		Department:  null.NewString(mbr.Department, mbr.Department != ""),
		Email:       null.NewString(mbr.Email, mbr.Email != ""),
		Phone:       null.NewString(mbr.Phone, mbr.Phone != ""),
		PhotoURL:    null.NewString(mbr.PhotoURL, mbr.PhotoURL != ""),
		CreatedAt:   null.NewTime(mbr.CreatedAt.UTC(), !mbr.CreatedAt.IsZero()),
		UpdatedAt:   null.NewTime(mbr.UpdatedAt.UTC(), !mbr.UpdatedAt.IsZero()),
	}
}

type facultyRepository struct {
	db *sqlx.DB
}

var _ faculty.Repository = (*facultyRepository)(nil) // interface compliance check

func NewFacultyRepository(db *sqlx.DB) *facultyRepository {
	return &facultyRepository{db: db}
}

func (repo facultyRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return faculty.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo facultyRepository) CreateMember(ctx context.Context, mbr faculty.Member) (faculty.Member, error) {
	mbr.ID = uuid.NewString()
	row := packMember(mbr)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO faculty_member (id, name, designation, department, email, phone, photo_url, created_at, updated_at)
		VALUES (:id, :name, :designation, :department, :email, :phone, :photo_url, :created_at, :updated_at)`,
		row)
	if err != nil {
		return faculty.Member{}, errors.Wrap(err, "inserting faculty member")
	}
	return mbr, nil
}

func (repo facultyRepository) GetMemberByID(ctx context.Context, id string) (faculty.Member, error) {
	if _, err := uuid.Parse(id); err != nil {
		return faculty.Member{}, faculty.ErrNotFound
	}
	var row facultyRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM faculty_member WHERE id = $1`, id); err != nil {
		return faculty.Member{}, repo.trapNoRowsErr(err, "finding faculty member by ID")
	}
	return row.unpack(), nil
}

func (repo facultyRepository) FilterMembers(ctx context.Context, filter faculty.QueryFilter, ordering ...core.DBOrdering) ([]faculty.Member, error) {
	q := `SELECT * FROM faculty_member WHERE true`
	var args []interface{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		ph := fmt.Sprintf("$%d", len(args))
		q += fmt.Sprintf(" AND (name ILIKE %[1]s OR designation ILIKE %[1]s)", ph)
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		q += fmt.Sprintf(" AND department = $%d", len(args))
	}
	q += orderClause(ordering)

	var rows []facultyRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering faculty members")
	}
	members := make([]faculty.Member, 0, len(rows))
	for _, r := range rows {
		members = append(members, r.unpack())
	}
	return members, nil
}

func (repo facultyRepository) UpdateMember(ctx context.Context, mbr faculty.Member) (faculty.Member, error) {
	row := packMember(mbr)
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE faculty_member SET
			name        = COALESCE(:name, name),
			designation = COALESCE(:designation, designation),
			department  = COALESCE(:department, department),
			email       = COALESCE(:email, email),
			phone       = COALESCE(:phone, phone),
			photo_url   = COALESCE(:photo_url, photo_url),
			updated_at  = COALESCE(:updated_at, updated_at)
		WHERE id = :id`,
		row)
	if err != nil {
		return faculty.Member{}, errors.Wrap(err, "updating faculty member")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return faculty.Member{}, faculty.ErrNotFound
	}
	return repo.GetMemberByID(ctx, mbr.ID)
}

func (repo facultyRepository) DeleteMembersByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	_, err := repo.db.ExecContext(ctx, `DELETE FROM faculty_member WHERE id IN `+inArgs(1, len(ids)), args...)
	return errors.Wrap(err, "deleting faculty members")
}
