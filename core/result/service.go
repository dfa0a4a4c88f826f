package result

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/chuo/core"
)

var (
	// errors
	ErrDocumentNotFound = errors.New("results document not found")
	ErrSessionExists    = errors.New("a results document for this session already exists")
)

type (
	// ResultDocument holds the full extracted text of one session's shared
	// results document. The text is produced elsewhere (page-by-page
	// export of the original report, order-preserving); we only store and
	// search it.
	ResultDocument struct {
		ID        string    `json:"id"`
		Session   string    `json:"session"` // e.g. "2025-2026"
		Title     string    `json:"title"`
		Text      string    `json:"-"` // raw document text; never serialized
		CreatedAt time.Time `json:"created_at"` // UTC
		UpdatedAt time.Time `json:"updated_at"` // UTC
	}

	Repository interface {
		CreateDocument(ctx context.Context, doc ResultDocument) (ResultDocument, error)
		GetDocumentByID(ctx context.Context, id string) (ResultDocument, error)
		GetDocumentBySession(ctx context.Context, session string) (ResultDocument, error)
		QueryAllDocuments(ctx context.Context) ([]ResultDocument, error)
		UpdateDocument(ctx context.Context, doc ResultDocument) (ResultDocument, error)
		DeleteDocumentsByID(ctx context.Context, ids ...string) error
	}

	// ServiceInterface is consumed by the API layer; *Service implements it.
	ServiceInterface interface {
		Import(ctx context.Context, nd NewResultDocument) (ResultDocument, error)
		QueryAll(ctx context.Context) ([]ResultDocument, error)
		GetByID(ctx context.Context, id string) (ResultDocument, error)
		GetBySession(ctx context.Context, session string) (ResultDocument, error)
		Delete(ctx context.Context, ids ...string) error
		Lookup(ctx context.Context, q LookupQuery) (Outcome, error)
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewResultDocument contains information needed to import a results document.
type NewResultDocument struct {
	Session string `json:"session" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Text    string `json:"text" validate:"required"`
}

func (nd *NewResultDocument) Validate() error {
	nd.Session = core.CleanString(nd.Session)
	nd.Title = core.CleanString(nd.Title)
	return core.Validate.Struct(nd)
}

// LookupQuery is one student's result query against a stored document.
type LookupQuery struct {
	Session string `json:"session" query:"session" validate:"required"`
	Roll    string `json:"roll" query:"roll" validate:"required,digits"`
}

func (q *LookupQuery) Validate() error {
	q.Session = core.CleanString(q.Session)
	q.Roll = core.CleanString(q.Roll)
	return core.Validate.Struct(q)
}

func (svc *Service) Import(ctx context.Context, nd NewResultDocument) (ResultDocument, error) {
	if _, err := svc.repo.GetDocumentBySession(ctx, nd.Session); err == nil {
		return ResultDocument{}, core.NewValidationError(ErrSessionExists,
			core.FieldError{Field: "session", Error: ErrSessionExists.Error()})
	} else if err != ErrDocumentNotFound {
		return ResultDocument{}, err
	}

	now := time.Now().UTC()
	doc := ResultDocument{
		Session:   nd.Session,
		Title:     nd.Title,
		Text:      nd.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateDocument(ctx, doc)
}

func (svc *Service) QueryAll(ctx context.Context) ([]ResultDocument, error) {
	return svc.repo.QueryAllDocuments(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (ResultDocument, error) {
	return svc.repo.GetDocumentByID(ctx, id)
}

func (svc *Service) GetBySession(ctx context.Context, session string) (ResultDocument, error) {
	return svc.repo.GetDocumentBySession(ctx, core.CleanString(session))
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteDocumentsByID(ctx, ids...)
}

// Lookup resolves the session's document and runs the extraction engine on
// it. Document retrieval is the only side effect; the engine itself is pure.
func (svc *Service) Lookup(ctx context.Context, q LookupQuery) (Outcome, error) {
	doc, err := svc.repo.GetDocumentBySession(ctx, q.Session)
	if err != nil {
		return Outcome{}, err
	}
	return Extract(doc.Text, q.Roll), nil
}
