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
	"github.com/trezcool/chuo/core/notice"
)

type noticeRow struct {
	ID        string      `db:"id"`
	Title     null.String `db:"title"`
	Body      null.String `db:"body"`
	PublishAt null.Time   `db:"publish_at"`
	CreatedAt null.Time   `db:"created_at"`
	UpdatedAt null.Time   `db:"updated_at"`
}

func (r noticeRow) unpack() notice.Notice {
	return notice.Notice{
		ID:        r.ID,
		Title:     r.Title.String,
		Body:      r.Body.String,
		PublishAt: r.PublishAt.Time,
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
}

func packNotice(ntc notice.Notice) noticeRow {
	return noticeRow{
		ID:        ntc.ID,
		Title:     null.NewString(ntc.Title, ntc.Title != ""),
		Body:      null.NewString(ntc.Body, ntc.Body != ""),
		PublishAt: null.NewTime(ntc.PublishAt.UTC(), !ntc.PublishAt.IsZero()),
		CreatedAt: null.NewTime(ntc.CreatedAt.UTC(), !ntc.CreatedAt.IsZero()),
		UpdatedAt: null.NewTime(ntc.UpdatedAt.UTC(), !ntc.UpdatedAt.IsZero()),
	}
}

type noticeRepository struct {
	db *sqlx.DB
}

var _ notice.Repository = (*noticeRepository)(nil) // interface compliance check

func NewNoticeRepository(db *sqlx.DB) *noticeRepository {
	return &noticeRepository{db: db}
}

func (repo noticeRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return notice.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo noticeRepository) CreateNotice(ctx context.Context, ntc notice.Notice) (notice.Notice, error) {
	ntc.ID = uuid.NewString()
	row := packNotice(ntc)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO notice (id, title, body, publish_at, created_at, updated_at)
		VALUES (:id, :title, :body, :publish_at, :created_at, :updated_at)`,
		row)
	if err != nil {
		return notice.Notice{}, errors.Wrap(err, "inserting notice")
	}
	return ntc, nil
}

func (repo noticeRepository) GetNoticeByID(ctx context.Context, id string) (notice.Notice, error) {
	if _, err := uuid.Parse(id); err != nil {
		return notice.Notice{}, notice.ErrNotFound
	}
	var row noticeRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM notice WHERE id = $1`, id); err != nil {
		return notice.Notice{}, repo.trapNoRowsErr(err, "finding notice by ID")
	}
	return row.unpack(), nil
}

func (repo noticeRepository) FilterNotices(ctx context.Context, filter notice.QueryFilter, ordering ...core.DBOrdering) ([]notice.Notice, error) {
	q := `SELECT * FROM notice WHERE true`
	var args []interface{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		ph := fmt.Sprintf("$%d", len(args))
		q += fmt.Sprintf(" AND (title ILIKE %[1]s OR body ILIKE %[1]s)", ph)
	}
	if filter.PublishedOnly {
		q += " AND publish_at <= NOW() AT TIME ZONE 'utc'"
	}
	q += orderClause(ordering)

	var rows []noticeRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering notices")
	}
	notices := make([]notice.Notice, 0, len(rows))
	for _, r := range rows {
		notices = append(notices, r.unpack())
	}
	return notices, nil
}

func (repo noticeRepository) UpdateNotice(ctx context.Context, ntc notice.Notice) (notice.Notice, error) {
	row := packNotice(ntc)
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE notice SET
			title      = COALESCE(:title, title),
			body       = COALESCE(:body, body),
			publish_at = COALESCE(:publish_at, publish_at),
			updated_at = COALESCE(:updated_at, updated_at)
		WHERE id = :id`,
		row)
	if err != nil {
		return notice.Notice{}, errors.Wrap(err, "updating notice")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notice.Notice{}, notice.ErrNotFound
	}
	return repo.GetNoticeByID(ctx, ntc.ID)
}

func (repo noticeRepository) DeleteNoticesByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	_, err := repo.db.ExecContext(ctx, `DELETE FROM notice WHERE id IN `+inArgs(1, len(ids)), args...)
	return errors.Wrap(err, "deleting notices")
}
