package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/chuo/core/result"
)

type resultDocumentRow struct {
	ID        string      `db:"id"`
	Session   string      `db:"session"`
	Title     null.String `db:"title"`
	Body      string      `db:"body"`
	CreatedAt null.Time   `db:"created_at"`
	UpdatedAt null.Time   `db:"updated_at"`
}

func (r resultDocumentRow) unpack() result.ResultDocument {
	return result.ResultDocument{
		ID:        r.ID,
		Session:   r.Session,
		Title:     r.Title.String,
		Text:      r.Body,
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
}

func packResultDocument(doc result.ResultDocument) resultDocumentRow {
	return resultDocumentRow{
		ID:        doc.ID,
		Session:   doc.Session,
		Title:     null.NewString(doc.Title, doc.Title != ""),
		Body:      doc.Text,
		CreatedAt: null.NewTime(doc.CreatedAt.UTC(), !doc.CreatedAt.IsZero()),
		UpdatedAt: null.NewTime(doc.UpdatedAt.UTC(), !doc.UpdatedAt.IsZero()),
	}
}

type resultRepository struct {
	db *sqlx.DB
}

var _ result.Repository = (*resultRepository)(nil) // interface compliance check

func NewResultRepository(db *sqlx.DB) *resultRepository {
	return &resultRepository{db: db}
}

func (repo resultRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return result.ErrDocumentNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo resultRepository) CreateDocument(ctx context.Context, doc result.ResultDocument) (result.ResultDocument, error) {
	doc.ID = uuid.NewString()
	row := packResultDocument(doc)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO result_document (id, session, title, body, created_at, updated_at)
		VALUES (:id, :session, :title, :body, :created_at, :updated_at)`,
		row)
	if err != nil {
		return result.ResultDocument{}, errors.Wrap(err, "inserting results document")
	}
	return doc, nil
}

func (repo resultRepository) GetDocumentByID(ctx context.Context, id string) (result.ResultDocument, error) {
	if _, err := uuid.Parse(id); err != nil {
		return result.ResultDocument{}, result.ErrDocumentNotFound
	}
	var row resultDocumentRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM result_document WHERE id = $1`, id); err != nil {
		return result.ResultDocument{}, repo.trapNoRowsErr(err, "finding results document by ID")
	}
	return row.unpack(), nil
}

func (repo resultRepository) GetDocumentBySession(ctx context.Context, session string) (result.ResultDocument, error) {
	var row resultDocumentRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM result_document WHERE session = $1`, session)
	if err != nil {
		return result.ResultDocument{}, repo.trapNoRowsErr(err, "finding results document by session")
	}
	return row.unpack(), nil
}

func (repo resultRepository) QueryAllDocuments(ctx context.Context) ([]result.ResultDocument, error) {
	// the document body can be huge; listings do not need it
	var rows []resultDocumentRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT id, session, title, '' AS body, created_at, updated_at FROM result_document ORDER BY session DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying results documents")
	}
	docs := make([]result.ResultDocument, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, r.unpack())
	}
	return docs, nil
}

func (repo resultRepository) UpdateDocument(ctx context.Context, doc result.ResultDocument) (result.ResultDocument, error) {
	row := packResultDocument(doc)
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE result_document SET
			title      = COALESCE(:title, title),
			body       = :body,
			updated_at = COALESCE(:updated_at, updated_at)
		WHERE id = :id`,
		row)
	if err != nil {
		return result.ResultDocument{}, errors.Wrap(err, "updating results document")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return result.ResultDocument{}, result.ErrDocumentNotFound
	}
	return repo.GetDocumentByID(ctx, doc.ID)
}

func (repo resultRepository) DeleteDocumentsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	_, err := repo.db.ExecContext(ctx, `DELETE FROM result_document WHERE id IN `+inArgs(1, len(ids)), args...)
	return errors.Wrap(err, "deleting results documents")
}
