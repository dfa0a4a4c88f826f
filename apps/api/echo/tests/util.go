package tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/chuo/apps/api/echo"
	"github.com/trezcool/chuo/core"
	"github.com/trezcool/chuo/core/event"
	"github.com/trezcool/chuo/core/faculty"
	"github.com/trezcool/chuo/core/notice"
	"github.com/trezcool/chuo/core/resource"
	"github.com/trezcool/chuo/core/result"
	"github.com/trezcool/chuo/core/student"
	"github.com/trezcool/chuo/core/user"
	emailsvc "github.com/trezcool/chuo/services/email"
	logsvc "github.com/trezcool/chuo/services/logger"
	dummydb "github.com/trezcool/chuo/storage/database/dummy"
	testutil "github.com/trezcool/chuo/tests"
)

var (
	usrRepo user.Repository
	stdRepo student.Repository
	ntcRepo notice.Repository
	resRepo result.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

func init() {
	testutil.NewConfig()
	core.InitValidators()
	user.InitValidators()
}

func setup(t *testing.T) Server {
	// set up DB & repos
	db := testutil.OpenDB(t)
	usrRepo = dummydb.NewUserRepository(db)
	stdRepo = dummydb.NewStudentRepository(db)
	ntcRepo = dummydb.NewNoticeRepository(db)
	evtRepo := dummydb.NewEventRepository(db)
	facRepo := dummydb.NewFacultyRepository(db)
	rscRepo := dummydb.NewResourceRepository(db)
	resRepo = dummydb.NewResultRepository(db)

	// set up services
	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags), core.Conf)
	logger.Enable(false)
	mailSvc := emailsvc.NewConsoleServiceMock()
	usrSvc := user.NewServiceMock(usrRepo, mailSvc)

	// set up server
	return NewServer(
		"", /* addr */
		&ServerDeps{
			Logger:      logger,
			UserSvc:     usrSvc,
			StudentSvc:  student.NewService(stdRepo),
			NoticeSvc:   notice.NewService(ntcRepo),
			EventSvc:    event.NewService(evtRepo),
			FacultySvc:  faculty.NewService(facRepo),
			ResourceSvc: resource.NewService(rscRepo),
			ResultSvc:   result.NewService(resRepo),
		},
	)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
