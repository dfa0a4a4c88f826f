package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/chuo/core"
	"github.com/trezcool/chuo/core/faculty"
)

type facultyRepository struct {
	db *facultyTable
}

var _ faculty.Repository = (*facultyRepository)(nil) // interface compliance check

func NewFacultyRepository(db *DB) faculty.Repository {
	return &facultyRepository{db: db.faculty}
}

func (repo *facultyRepository) query() []faculty.Member {
	members := make([]faculty.Member, 0, len(repo.db.table))
	for _, m := range repo.db.table {
		members = append(members, *m)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].CreatedAt.Before(members[j].CreatedAt) })
	return members
}

func (repo *facultyRepository) CreateMember(ctx context.Context, mbr faculty.Member) (faculty.Member, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	mbr.ID = uuid.NewString()
	repo.db.table[mbr.ID] = &mbr
	return mbr, nil
}

func (repo *facultyRepository) GetMemberByID(ctx context.Context, id string) (faculty.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if mbr, ok := repo.db.table[id]; ok {
		return *mbr, nil
	}
	return faculty.Member{}, faculty.ErrNotFound
}

func (repo *facultyRepository) FilterMembers(ctx context.Context, filter faculty.QueryFilter, ordering ...core.DBOrdering) ([]faculty.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	members := repo.query()

	if filter.Search != "" {
		var filtered []faculty.Member
		for _, m := range members {
			if containsFold(m.Name, filter.Search) || containsFold(m.Designation, filter.Search) {
				filtered = append(filtered, m)
			}
		}
		members = filtered
	}
	if members != nil && filter.Department != "" {
		var filtered []faculty.Member
		for _, m := range members {
			if m.Department == filter.Department {
				filtered = append(filtered, m)
			}
		}
		members = filtered
	}

	return members, nil
}

func (repo *facultyRepository) UpdateMember(ctx context.Context, mbr faculty.Member) (faculty.Member, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	origMbr, ok := repo.db.table[mbr.ID]
	if !ok {
		return faculty.Member{}, faculty.ErrNotFound
	}
	if mbr.Name != "" {
		origMbr.Name = mbr.Name
	}
	if mbr.Designation != "" {
		origMbr.Designation = mbr.Designation
	}
	if mbr.Department != "" {
		origMbr.Department = mbr.Department
	}
	if mbr.Email != "" {
		origMbr.Email = mbr.Email
	}
	if mbr.Phone != "" {
		origMbr.Phone = mbr.Phone
	}
	if mbr.PhotoURL != "" {
		origMbr.PhotoURL = mbr.PhotoURL
	}
	if !mbr.UpdatedAt.IsZero() {
		origMbr.UpdatedAt = mbr.UpdatedAt
	}

	repo.db.table[mbr.ID] = origMbr
	return *origMbr, nil
}

func (repo *facultyRepository) DeleteMembersByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
