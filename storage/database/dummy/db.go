package dummydb

import (
	"strings"
	"sync"

	"github.com/trezcool/chuo/core/event"
	"github.com/trezcool/chuo/core/faculty"
	"github.com/trezcool/chuo/core/notice"
	"github.com/trezcool/chuo/core/resource"
	"github.com/trezcool/chuo/core/result"
	"github.com/trezcool/chuo/core/student"
	"github.com/trezcool/chuo/core/user"
)

type (
	DB struct {
		user     *userTable
		student  *studentTable
		notice   *noticeTable
		event    *eventTable
		faculty  *facultyTable
		resource *resourceTable
		result   *resultTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*student.Student
	}

	noticeTable struct {
		sync.RWMutex
		table map[string]*notice.Notice
	}

	eventTable struct {
		sync.RWMutex
		table map[string]*event.Event
	}

	facultyTable struct {
		sync.RWMutex
		table map[string]*faculty.Member
	}

	resourceTable struct {
		sync.RWMutex
		table map[string]*resource.Resource
	}

	resultTable struct {
		sync.RWMutex
		table map[string]*result.ResultDocument
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:     &userTable{table: make(map[string]*user.User)},
		student:  &studentTable{table: make(map[string]*student.Student)},
		notice:   &noticeTable{table: make(map[string]*notice.Notice)},
		event:    &eventTable{table: make(map[string]*event.Event)},
		faculty:  &facultyTable{table: make(map[string]*faculty.Member)},
		resource: &resourceTable{table: make(map[string]*resource.Resource)},
		result:   &resultTable{table: make(map[string]*result.ResultDocument)},
	}
	return db, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
