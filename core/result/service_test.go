package result

import (
	"context"
	"testing"

	"github.com/trezcool/chuo/core"
)

type fakeRepo struct {
	bySession map[string]ResultDocument
}

var _ Repository = (*fakeRepo)(nil)

func (r *fakeRepo) CreateDocument(_ context.Context, doc ResultDocument) (ResultDocument, error) {
	doc.ID = "doc-" + doc.Session
	r.bySession[doc.Session] = doc
	return doc, nil
}

func (r *fakeRepo) GetDocumentByID(_ context.Context, id string) (ResultDocument, error) {
	for _, doc := range r.bySession {
		if doc.ID == id {
			return doc, nil
		}
	}
	return ResultDocument{}, ErrDocumentNotFound
}

func (r *fakeRepo) GetDocumentBySession(_ context.Context, session string) (ResultDocument, error) {
	if doc, ok := r.bySession[session]; ok {
		return doc, nil
	}
	return ResultDocument{}, ErrDocumentNotFound
}

func (r *fakeRepo) QueryAllDocuments(_ context.Context) ([]ResultDocument, error) {
	docs := make([]ResultDocument, 0, len(r.bySession))
	for _, doc := range r.bySession {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (r *fakeRepo) UpdateDocument(_ context.Context, doc ResultDocument) (ResultDocument, error) {
	r.bySession[doc.Session] = doc
	return doc, nil
}

func (r *fakeRepo) DeleteDocumentsByID(_ context.Context, ids ...string) error {
	for _, id := range ids {
		for session, doc := range r.bySession {
			if doc.ID == id {
				delete(r.bySession, session)
			}
		}
	}
	return nil
}

func setup() (*Service, *fakeRepo) {
	repo := &fakeRepo{bySession: make(map[string]ResultDocument)}
	return NewService(repo), repo
}

func TestServiceLookup(t *testing.T) {
	svc, _ := setup()
	ctx := context.Background()

	_, err := svc.Import(ctx, NewResultDocument{
		Session: "2025-2026",
		Title:   "Diploma Final Results",
		Text:    "702893 gpa1:3.45 gpa2:3.60 702900 gpa1:2.00",
	})
	if err != nil {
		t.Fatalf("Import() failed: %v", err)
	}

	out, err := svc.Lookup(ctx, LookupQuery{Session: "2025-2026", Roll: "702893"})
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if !out.Found() || len(out.GPAs) != 2 {
		t.Errorf("Lookup() = %+v; want found with 2 gpas", out)
	}

	// unknown session
	if _, err = svc.Lookup(ctx, LookupQuery{Session: "1999-2000", Roll: "702893"}); err != ErrDocumentNotFound {
		t.Errorf("Lookup() error = %v; want %v", err, ErrDocumentNotFound)
	}

	// known session, absent roll
	out, err = svc.Lookup(ctx, LookupQuery{Session: "2025-2026", Roll: "111111"})
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if out.Status != StatusNotFound || out.Reason != ReasonRollNotPresent {
		t.Errorf("Lookup() = %+v; want not_found (%s)", out, ReasonRollNotPresent)
	}
}

func TestServiceImportDuplicateSession(t *testing.T) {
	svc, _ := setup()
	ctx := context.Background()

	nd := NewResultDocument{Session: "2025-2026", Title: "Finals", Text: "702893 ( 3.47 )"}
	if _, err := svc.Import(ctx, nd); err != nil {
		t.Fatalf("Import() failed: %v", err)
	}
	_, err := svc.Import(ctx, nd)
	if _, ok := err.(*core.ValidationError); !ok {
		t.Errorf("Import() error = %v; want *core.ValidationError", err)
	}
}

func TestLookupQueryValidate(t *testing.T) {
	core.InitValidators()

	tests := []struct {
		name    string
		query   LookupQuery
		wantErr bool
	}{
		{name: "valid", query: LookupQuery{Session: "2025-2026", Roll: "702893"}},
		{name: "roll trimmed", query: LookupQuery{Session: "2025-2026", Roll: " 702893 "}},
		{name: "missing session", query: LookupQuery{Roll: "702893"}, wantErr: true},
		{name: "missing roll", query: LookupQuery{Session: "2025-2026"}, wantErr: true},
		{name: "non-digit roll", query: LookupQuery{Session: "2025-2026", Roll: "70A893"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.query.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}
