package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/chuo/core"
	"github.com/trezcool/chuo/core/result"
	"github.com/trezcool/chuo/core/user"
	dummydb "github.com/trezcool/chuo/storage/database/dummy"
	testutil "github.com/trezcool/chuo/tests"
)

var (
	usrRepo user.Repository
	resRepo result.Repository
)

func init() {
	testutil.NewConfig()
	core.InitValidators()
	user.InitValidators()
}

func setup(t *testing.T) *commandLine {
	// set up DB & repos
	db := testutil.OpenDB(t)
	usrRepo = dummydb.NewUserRepository(db)
	resRepo = dummydb.NewResultRepository(db)

	// start CLI
	return &commandLine{
		db:         new(sqlx.DB),
		usrRepo:    usrRepo,
		resultRepo: resRepo,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "course", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "username but no email", args: []string{"adduser", "-username", "wonder"}, wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-username", "wonder", "-email", "wonder@test.bd"}, wantErr: errHelp},
		{name: "created", args: []string{"adduser", "-username", "wonder", "-email", "wonder@test.bd"}, extra: extra{pwd: "lol"}},
		{name: "created as admin", args: []string{"adduser", "-username", "altron", "-email", "altron@test.bd", "-admin"}, extra: extra{pwd: "lol"}},
		{name: "updated", args: []string{"adduser", "-username", "wonder", "-email", "wonder@test.bd"}, extra: extra{pwd: "lmao"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				usr, err := usrRepo.GetUser(context.Background(), user.GetFilter{UsernameOrEmail: []string{args[3]}})
				if err != nil {
					t.Fatalf("GetUser(): %v", err)
				}
				if !usr.Active() {
					t.Error("failed! user not active")
				}
				if usr.CheckPassword(tt.extra.(extra).pwd) != nil {
					t.Error("failed! password not set")
				}
				if wantAdmin := args[len(args)-1] == "-admin"; wantAdmin != usr.IsAdmin() {
					t.Errorf("failed! IsAdmin() = %v; want %v", usr.IsAdmin(), wantAdmin)
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "User", "awe001", "awe@test.bd", "mdr", nil, true)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, extra: extra{pwd: "lol"}, wantErr: user.ErrNotFound},
		{name: "reset with username", args: []string{"resetpassword", "-username", usr.Username}, extra: extra{pwd: "lol"}},
		{name: "reset with email", args: []string{"resetpassword", "-username", usr.Email}, extra: extra{pwd: "lmao"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshedUsr, err := usrRepo.GetUserByID(context.Background(), usr.ID)
				if err != nil {
					t.Fatalf("GetUserByID(): %v", err)
				}
				if bytes.Equal(refreshedUsr.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_importResults(t *testing.T) {
	cli := setup(t)

	path := filepath.Join(t.TempDir(), "results.txt")
	if err := ioutil.WriteFile(path, []byte("Roll 123456 gpa1:3.50"), 0o644); err != nil {
		t.Fatalf("ioutil.WriteFile(): %v", err)
	}

	tests := []cliTest{
		{name: "no args", args: []string{"importresults"}, wantErr: errHelp},
		{name: "missing file", args: []string{"importresults", "-session", "2024-2025", "-title", "Results"}, wantErr: errHelp},
		{name: "imported", args: []string{"importresults", "-session", "2024-2025", "-title", "Results", "-file", path}},
		{name: "replaced", args: []string{"importresults", "-session", "2024-2025", "-title", "Results v2", "-file", path}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				doc, err := resRepo.GetDocumentBySession(context.Background(), "2024-2025")
				if err != nil {
					t.Fatalf("GetDocumentBySession(): %v", err)
				}
				if doc.Title != args[5] {
					t.Errorf("failed! title = %v; want %v", doc.Title, args[5])
				}
				if doc.Text != "Roll 123456 gpa1:3.50" {
					t.Errorf("failed! unexpected document text %q", doc.Text)
				}

				docs, err := resRepo.QueryAllDocuments(context.Background())
				if err != nil {
					t.Fatalf("QueryAllDocuments(): %v", err)
				}
				if len(docs) != 1 {
					t.Errorf("failed! len(docs) = %d; want 1", len(docs))
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
