package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/chuo/core"
	"github.com/trezcool/chuo/core/notice"
)

type noticeRepository struct {
	db *noticeTable
}

var _ notice.Repository = (*noticeRepository)(nil) // interface compliance check

func NewNoticeRepository(db *DB) notice.Repository {
	return &noticeRepository{db: db.notice}
}

func (repo *noticeRepository) query() []notice.Notice {
	notices := make([]notice.Notice, 0, len(repo.db.table))
	for _, n := range repo.db.table {
		notices = append(notices, *n)
	}
	sort.Slice(notices, func(i, j int) bool { return notices[i].CreatedAt.Before(notices[j].CreatedAt) })
	return notices
}

func (repo *noticeRepository) CreateNotice(ctx context.Context, ntc notice.Notice) (notice.Notice, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	ntc.ID = uuid.NewString()
	repo.db.table[ntc.ID] = &ntc
	return ntc, nil
}

func (repo *noticeRepository) GetNoticeByID(ctx context.Context, id string) (notice.Notice, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if ntc, ok := repo.db.table[id]; ok {
		return *ntc, nil
	}
	return notice.Notice{}, notice.ErrNotFound
}

func (repo *noticeRepository) FilterNotices(ctx context.Context, filter notice.QueryFilter, ordering ...core.DBOrdering) ([]notice.Notice, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	notices := repo.query()

	if filter.Search != "" {
		var filtered []notice.Notice
		for _, n := range notices {
			if containsFold(n.Title, filter.Search) || containsFold(n.Body, filter.Search) {
				filtered = append(filtered, n)
			}
		}
		notices = filtered
	}
	if notices != nil && filter.PublishedOnly {
		var filtered []notice.Notice
		for _, n := range notices {
			if n.Published() {
				filtered = append(filtered, n)
			}
		}
		notices = filtered
	}

	return notices, nil
}

func (repo *noticeRepository) UpdateNotice(ctx context.Context, ntc notice.Notice) (notice.Notice, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	origNtc, ok := repo.db.table[ntc.ID]
	if !ok {
		return notice.Notice{}, notice.ErrNotFound
	}
	if ntc.Title != "" {
		origNtc.Title = ntc.Title
	}
	if ntc.Body != "" {
		origNtc.Body = ntc.Body
	}
	if !ntc.PublishAt.IsZero() {
		origNtc.PublishAt = ntc.PublishAt
	}
	if !ntc.UpdatedAt.IsZero() {
		origNtc.UpdatedAt = ntc.UpdatedAt
	}

	repo.db.table[ntc.ID] = origNtc
	return *origNtc, nil
}

func (repo *noticeRepository) DeleteNoticesByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
