package tests

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/trezcool/chuo/core/result"
	"github.com/trezcool/chuo/core/user"
	testutil "github.com/trezcool/chuo/tests"
)

// documentText mimics the export of the shared results report: one
// continuous stream, no record separators, all three historical layouts.
const documentText = `
Roll 123456 gpa1:3.50 gpa2:ref {512(Data Structures) 513 (Algorithms)}
Roll 234567 ( 3.47 )
Roll 345678 ref_sub: 101(Math) 102(Physics) 103(Chemistry) 104(English)
Roll 456789 lorem ipsum
`

func Test_resultApi_lookup(t *testing.T) {
	app := setup(t)

	testutil.CreateResultDocument(t, resRepo, "2024-2025", "B.Sc. Final Results", documentText)

	path := func(session, roll string) string {
		v := make(url.Values)
		if session != "" {
			v.Add("session", session)
		}
		if roll != "" {
			v.Add("roll", roll)
		}
		return "/v1/results/lookup?" + v.Encode()
	}
	type fieldErrs map[string]string

	tests := []httpTest{
		{
			name: "required fields", path: path("", ""), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, fieldErrs{"session": "this field is required", "roll": "this field is required"}),
		},
		{
			name: "roll must be digits", path: path("2024-2025", "12a456"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, fieldErrs{"roll": "only digits are allowed"}),
		},
		{
			name: "unknown session", path: path("1999-2000", "123456"), wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "tagged record", path: path("2024-2025", "123456"), wantCode: http.StatusOK,
			wantData: marchallObj(t, result.Outcome{
				Roll:   "123456",
				Status: result.StatusFound,
				GPAs: []result.GPA{
					{Semester: 1, Label: "1st", Score: 3.5},
					{Semester: 2, Label: "2nd", Referred: true},
				},
				Referred: []string{"512(DataStructures)", "513(Algorithms)"},
			}),
		},
		{
			name: "legacy compact record", path: path("2024-2025", "234567"), wantCode: http.StatusOK,
			wantData: marchallObj(t, result.Outcome{
				Roll:   "234567",
				Status: result.StatusFound,
				GPAs:   []result.GPA{{Semester: 1, Label: "1st", Score: 3.47}},
			}),
		},
		{
			name: "dropout record", path: path("2024-2025", "345678"), wantCode: http.StatusOK,
			wantData: marchallObj(t, result.Outcome{Roll: "345678", Status: result.StatusDropout}),
		},
		{
			name: "record with no parseable data", path: path("2024-2025", "456789"), wantCode: http.StatusOK,
			wantData: marchallObj(t, result.Outcome{Roll: "456789", Status: result.StatusNotFound, Reason: result.ReasonNoParseableData}),
		},
		{
			name: "roll not present", path: path("2024-2025", "999999"), wantCode: http.StatusOK,
			wantData: marchallObj(t, result.Outcome{Roll: "999999", Status: result.StatusNotFound, Reason: result.ReasonRollNotPresent}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_resultApi_importDocument(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero01", "user3@test.bd", "", []string{user.RoleStudent}, true)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin1", "admin@test.bd", "", []string{user.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	testutil.CreateResultDocument(t, resRepo, "2023-2024", "Old Results", "Roll 111111 ( 2.50 )")

	reqMsg := "this field is required"
	type fieldErrs map[string]string

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", token: getToken(t, student), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "required fields", token: adminToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, fieldErrs{"session": reqMsg, "title": reqMsg, "text": reqMsg}),
		},
		{
			name: "duplicate session", token: adminToken, wantCode: http.StatusBadRequest,
			body:     marchallObj(t, result.NewResultDocument{Session: "2023-2024", Title: "Old Results Again", Text: documentText}),
			wantData: marchallObj(t, fieldErrs{"session": "a results document for this session already exists"}),
		},
		{
			name: "imported", token: adminToken, wantCode: http.StatusCreated,
			body: marchallObj(t, result.NewResultDocument{Session: "2024-2025", Title: "B.Sc. Final Results", Text: documentText}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/results/documents"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			// cannot guess the generated ID; check the fields instead
			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var doc result.ResultDocument
				if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
					t.Errorf("json.Unmarshal() failed! err %v", err)
				}
				if doc.ID == "" {
					t.Error("failed! empty document ID")
				}
				if doc.Session != "2024-2025" {
					t.Errorf("failed! session = %v; want 2024-2025", doc.Session)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_resultApi_documents(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin1", "admin@test.bd", "", []string{user.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	doc1 := testutil.CreateResultDocument(t, resRepo, "2023-2024", "Old Results", "Roll 111111 ( 2.50 )")
	doc2 := testutil.CreateResultDocument(t, resRepo, "2024-2025", "B.Sc. Final Results", documentText)

	t.Run("query all", func(t *testing.T) {
		tt := httpTest{path: "/v1/results/documents", wantCode: http.StatusOK, wantData: marchallList(t, doc2, doc1)}
		req, rec := newAuthRequest(http.MethodGet, tt.path, adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("retrieve", func(t *testing.T) {
		tt := httpTest{path: "/v1/results/documents/" + doc1.ID, wantCode: http.StatusOK, wantData: marchallObj(t, doc1)}
		req, rec := newAuthRequest(http.MethodGet, tt.path, adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("retrieve unknown", func(t *testing.T) {
		tt := httpTest{
			path: "/v1/results/documents/lol", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		}
		req, rec := newAuthRequest(http.MethodGet, tt.path, adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("destroy", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/results/documents?id="+doc1.ID, adminToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusNoContent)
		}

		// the lookups of the deleted session now miss
		tt := httpTest{
			path: "/v1/results/lookup?session=2023-2024&roll=111111", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		}
		req, rec = newRequest(http.MethodGet, tt.path)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}
