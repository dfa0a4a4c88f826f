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
	"github.com/trezcool/chuo/core/resource"
)

type resourceRow struct {
	ID        string      `db:"id"`
	Title     null.String `db:"title"`
	Kind      null.String `db:"kind"`
	FileURL   null.String `db:"file_url"`
	CreatedAt null.Time   `db:"created_at"`
	UpdatedAt null.Time   `db:"updated_at"`
}

func (r resourceRow) unpack() resource.Resource {
	return resource.Resource{
		ID:        r.ID,
		Title:     r.Title.String,
		Kind:      r.Kind.String,
		FileURL:   r.FileURL.String,
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
}

func packResource(res resource.Resource) resourceRow {
	return resourceRow{
		ID:        res.ID,
		Title:     null.NewString(res.Title, res.Title != ""),
		Kind:      null.NewString(res.Kind, res.Kind != ""),
		FileURL:   null.NewString(res.FileURL, res.FileURL != ""),
		CreatedAt: null.NewTime(res.CreatedAt.UTC(), !res.CreatedAt.IsZero()),
		UpdatedAt: null.NewTime(res.UpdatedAt.UTC(), !res.UpdatedAt.IsZero()),
	}
}

type resourceRepository struct {
	db *sqlx.DB
}

var _ resource.Repository = (*resourceRepository)(nil) // interface compliance check

func NewResourceRepository(db *sqlx.DB) *resourceRepository {
	return &resourceRepository{db: db}
}

func (repo resourceRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return resource.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo resourceRepository) CreateResource(ctx context.Context, res resource.Resource) (resource.Resource, error) {
	res.ID = uuid.NewString()
	row := packResource(res)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO resource (id, title, kind, file_url, created_at, updated_at)
		VALUES (:id, :title, :kind, :file_url, :created_at, :updated_at)`,
		row)
	if err != nil {
		return resource.Resource{}, errors.Wrap(err, "inserting resource")
	}
	return res, nil
}

func (repo resourceRepository) GetResourceByID(ctx context.Context, id string) (resource.Resource, error) {
	if _, err := uuid.Parse(id); err != nil {
		return resource.Resource{}, resource.ErrNotFound
	}
	var row resourceRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM resource WHERE id = $1`, id); err != nil {
		return resource.Resource{}, repo.trapNoRowsErr(err, "finding resource by ID")
	}
	return row.unpack(), nil
}

func (repo resourceRepository) FilterResources(ctx context.Context, filter resource.QueryFilter, ordering ...core.DBOrdering) ([]resource.Resource, error) {
	q := `SELECT * FROM resource WHERE true`
	var args []interface{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		q += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		q += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	q += orderClause(ordering)

	var rows []resourceRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering resources")
	}
	resources := make([]resource.Resource, 0, len(rows))
	for _, r := range rows {
		resources = append(resources, r.unpack())
	}
	return resources, nil
}

func (repo resourceRepository) UpdateResource(ctx context.Context, res resource.Resource) (resource.Resource, error) {
	row := packResource(res)
	result, err := repo.db.NamedExecContext(ctx, `
		UPDATE resource SET
			title      = COALESCE(:title, title),
			kind       = COALESCE(:kind, kind),
			file_url   = COALESCE(:file_url, file_url),
			updated_at = COALESCE(:updated_at, updated_at)
		WHERE id = :id`,
		row)
	if err != nil {
		return resource.Resource{}, errors.Wrap(err, "updating resource")
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return resource.Resource{}, resource.ErrNotFound
	}
	return repo.GetResourceByID(ctx, res.ID)
}

func (repo resourceRepository) DeleteResourcesByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	_, err := repo.db.ExecContext(ctx, `DELETE FROM resource WHERE id IN `+inArgs(1, len(ids)), args...)
	return errors.Wrap(err, "deleting resources")
}
