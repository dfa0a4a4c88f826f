package tests

import (
	"net/http"
	"testing"

	"github.com/trezcool/chuo/core/student"
	"github.com/trezcool/chuo/core/user"
	testutil "github.com/trezcool/chuo/tests"
)

func Test_studentApi_studentQuery(t *testing.T) {
	app := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "Hero", "hero01", "user3@test.bd", "", []string{user.RoleStudent}, true)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin1", "admin@test.bd", "", []string{user.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	std1 := testutil.CreateStudent(t, stdRepo, "123456", "Asma Khatun", "2025-2026")
	std2 := testutil.CreateStudent(t, stdRepo, "234567", "Rahim Uddin", "2025-2026")
	std3 := testutil.CreateStudent(t, stdRepo, "123457", "Karim Mia", "2024-2025")

	tests := []httpTest{
		{name: "Auth required", path: "/v1/students", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", path: "/v1/students", token: getToken(t, usr),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "get all", path: "/v1/students", token: adminToken,
			wantData: marchallList(t, std1, std2, std3),
		},
		{
			name: "search by name", path: "/v1/students?search=rahim", token: adminToken,
			wantData: marchallList(t, std2),
		},
		{
			name: "search by roll", path: "/v1/students?search=12345", token: adminToken,
			wantData: marchallList(t, std1, std3),
		},
		{
			name: "session filter", path: "/v1/students?session=2024-2025", token: adminToken,
			wantData: marchallList(t, std3),
		},
		{name: "search (unknown)", path: "/v1/students?search=lol", token: adminToken, wantData: marchallList(t)},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_studentCreate(t *testing.T) {
	app := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "Hero", "hero01", "user3@test.bd", "", []string{user.RoleStudent}, true)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin1", "admin@test.bd", "", []string{user.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	testutil.CreateStudent(t, stdRepo, "123456", "Asma Khatun", "2025-2026")

	reqMsg := "this field is required"
	type fieldErrs map[string]string

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", token: getToken(t, usr), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "required fields", token: adminToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, fieldErrs{"roll": reqMsg, "name": reqMsg, "session": reqMsg, "department": reqMsg}),
		},
		{
			name: "roll must be digits", token: adminToken, wantCode: http.StatusBadRequest,
			body: marchallObj(t, student.NewStudent{
				Roll: "12A456", Name: "Rahim Uddin", Session: "2025-2026", Department: "CSE",
			}),
			wantData: marchallObj(t, fieldErrs{"roll": "only digits are allowed"}),
		},
		{
			name: "roll taken for session", token: adminToken, wantCode: http.StatusBadRequest,
			body: marchallObj(t, student.NewStudent{
				Roll: "123456", Name: "Rahim Uddin", Session: "2025-2026", Department: "CSE",
			}),
			wantData: marchallObj(t, fieldErrs{"roll": student.ErrRollExists.Error()}),
		},
		{
			name: "same roll, other session ok", token: adminToken, wantCode: http.StatusCreated,
			body: marchallObj(t, student.NewStudent{
				Roll: "123456", Name: "Rahim Uddin", Session: "2024-2025", Department: "CSE",
			}),
		},
		{
			name: "created", token: adminToken, wantCode: http.StatusCreated,
			body: marchallObj(t, student.NewStudent{
				Roll: "234567", Name: "Karim Mia", Session: "2025-2026", Department: "EEE",
			}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/students"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_studentRetrieveDestroy(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin1", "admin@test.bd", "", []string{user.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	std := testutil.CreateStudent(t, stdRepo, "123456", "Asma Khatun", "2025-2026")

	tests := []httpTest{
		{
			name: "retrieve", method: http.MethodGet, path: "/v1/students/" + std.ID,
			wantCode: http.StatusOK, wantData: marchallObj(t, std),
		},
		{
			name: "retrieve (unknown)", method: http.MethodGet, path: "/v1/students/nope",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "destroy", method: http.MethodDelete, path: "/v1/students/" + std.ID,
			wantCode: http.StatusNoContent,
		},
		{
			name: "destroyed for good", method: http.MethodGet, path: "/v1/students/" + std.ID,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		tt.token = adminToken

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusNoContent {
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}
