package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/chuo/core/result"
)

type resultRepository struct {
	db *resultTable
}

var _ result.Repository = (*resultRepository)(nil) // interface compliance check

func NewResultRepository(db *DB) result.Repository {
	return &resultRepository{db: db.result}
}

func (repo *resultRepository) query() []result.ResultDocument {
	docs := make([]result.ResultDocument, 0, len(repo.db.table))
	for _, d := range repo.db.table {
		docs = append(docs, *d)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Session > docs[j].Session })
	return docs
}

func (repo *resultRepository) CreateDocument(ctx context.Context, doc result.ResultDocument) (result.ResultDocument, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	doc.ID = uuid.NewString()
	repo.db.table[doc.ID] = &doc
	return doc, nil
}

func (repo *resultRepository) GetDocumentByID(ctx context.Context, id string) (result.ResultDocument, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if doc, ok := repo.db.table[id]; ok {
		return *doc, nil
	}
	return result.ResultDocument{}, result.ErrDocumentNotFound
}

func (repo *resultRepository) GetDocumentBySession(ctx context.Context, session string) (result.ResultDocument, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, doc := range repo.query() {
		if doc.Session == session {
			return doc, nil
		}
	}
	return result.ResultDocument{}, result.ErrDocumentNotFound
}

func (repo *resultRepository) QueryAllDocuments(ctx context.Context) ([]result.ResultDocument, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *resultRepository) UpdateDocument(ctx context.Context, doc result.ResultDocument) (result.ResultDocument, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	origDoc, ok := repo.db.table[doc.ID]
	if !ok {
		return result.ResultDocument{}, result.ErrDocumentNotFound
	}
	if doc.Title != "" {
		origDoc.Title = doc.Title
	}
	if doc.Text != "" {
		origDoc.Text = doc.Text
	}
	if !doc.UpdatedAt.IsZero() {
		origDoc.UpdatedAt = doc.UpdatedAt
	}

	repo.db.table[doc.ID] = origDoc
	return *origDoc, nil
}

func (repo *resultRepository) DeleteDocumentsByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
