package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/chuo/core"
	"github.com/trezcool/chuo/core/result"
	"github.com/trezcool/chuo/core/student"
	"github.com/trezcool/chuo/core/user"
	dummydb "github.com/trezcool/chuo/storage/database/dummy"
)

// NewConfig installs a minimal test configuration into the core.Conf global.
func NewConfig() *core.Config {
	core.Conf = &core.Config{
		AppName:                   "Chuo",
		Env:                       "test",
		Debug:                     false,
		TestMode:                  true,
		WorkDir:                   core.Getwd(),
		SecretKey:                 "secret",
		FrontendBaseURL:           "http://localhost:8080",
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
	}
	core.Conf.Server.JWTExpirationDelta = 10 * time.Minute
	core.Conf.Server.JWTRefreshExpirationDelta = 4 * time.Hour
	return core.Conf
}

// OpenDB returns a fresh in-memory database.
func OpenDB(t *testing.T) *dummydb.DB {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}
	return db
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	usr.SetActive(isActive)
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser(): %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}

func CreateStudent(
	t *testing.T,
	repo student.Repository,
	roll, name, session string,
	createdAt ...time.Time,
) student.Student {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	std := student.Student{
		Roll:      roll,
		Name:      name,
		Session:   session,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	std, err := repo.CreateStudent(context.Background(), std)
	if err != nil {
		t.Fatalf("CreateStudent(): %v", err)
	}
	return std
}

func CreateResultDocument(
	t *testing.T,
	repo result.Repository,
	session, title, text string,
) result.ResultDocument {
	now := time.Now().UTC()
	doc := result.ResultDocument{
		Session:   session,
		Title:     title,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	doc, err := repo.CreateDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("CreateResultDocument(): %v", err)
	}
	return doc
}
