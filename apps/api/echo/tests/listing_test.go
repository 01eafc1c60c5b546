package tests

import (
	"encoding/csv"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/tutoria/core"
	"github.com/trezcool/tutoria/core/listing"
	"github.com/trezcool/tutoria/core/student"
	"github.com/trezcool/tutoria/tests"
)

var (
	day0 = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

	staffA   = core.Caller{TenantID: "tenant-a", UserID: "u1", Username: "principal", Roles: []string{core.RoleAdminPrincipal}}
	tutorB   = core.Caller{TenantID: "tenant-b", UserID: "u2", Roles: []string{"tutor:math"}}
	guardian = core.Caller{TenantID: "tenant-a", UserID: "u3", Roles: []string{core.RoleGuardian}}
	noTenant = core.Caller{UserID: "u4", Roles: []string{core.RoleAdmin}}

	janeID, johnID, roeID = testutil.UUID(1), testutil.UUID(2), testutil.UUID(3)
)

func seedStudents(t *testing.T) (jane, john student.Student) {
	db.Truncate()
	testutil.Insert(t, db, student.Table,
		testutil.StudentRow("tenant-a", janeID, "Jane", "Doe", "", day0),
		testutil.StudentRow("tenant-a", johnID, "John", "Smith", "Johnny", day0.AddDate(0, 0, 1)),
		testutil.StudentRow("tenant-b", roeID, "Jane", "Roe", "", day0),
	)
	jane = student.Student{
		ID: janeID, FirstName: "Jane", LastName: "Doe", GradeLevel: 5, Status: student.StatusActive, CreatedAt: day0,
	}
	john = student.Student{
		ID: johnID, FirstName: "John", LastName: "Smith", PreferredName: null.StringFrom("Johnny"),
		GradeLevel: 5, Status: student.StatusActive, CreatedAt: day0.AddDate(0, 0, 1),
	}
	return jane, john
}

func listPath(key string, params url.Values) string {
	p := "/v1/admin/" + key
	if len(params) > 0 {
		p += "?" + params.Encode()
	}
	return p
}

func TestListingAPI_auth(t *testing.T) {
	seedStudents(t)

	runHTTPTests(t, []httpTest{
		{
			name:     "no token",
			method:   http.MethodGet,
			path:     listPath(student.Key, nil),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name:     "bad token",
			method:   http.MethodGet,
			path:     listPath(student.Key, nil),
			token:    "not.a.jwt",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "invalid or expired jwt"}),
		},
		{
			name:     "not staff",
			method:   http.MethodGet,
			path:     listPath(student.Key, nil),
			token:    getToken(t, guardian),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name:     "no tenant",
			method:   http.MethodGet,
			path:     listPath(student.Key, nil),
			token:    getToken(t, noTenant),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "no tenant for this account"}),
		},
		{
			name:     "no export without token",
			method:   http.MethodGet,
			path:     listPath(student.Key+"/export", nil),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name:     "unknown table",
			method:   http.MethodGet,
			path:     listPath("users", nil),
			token:    getToken(t, staffA),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Not Found"}),
		},
	})
}

func TestListingAPI_list(t *testing.T) {
	jane, john := seedStudents(t)
	tokenA := getToken(t, staffA)
	roe := student.Student{ID: roeID, FirstName: "Jane", LastName: "Roe", GradeLevel: 5, Status: student.StatusActive, CreatedAt: day0}

	runHTTPTests(t, []httpTest{
		{
			name:     "defaults",
			method:   http.MethodGet,
			path:     listPath(student.Key, nil),
			token:    tokenA,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, listing.Result{
				Rows:           []interface{}{jane, john},
				TotalCount:     2,
				Page:           1,
				PageSize:       25,
				Sort:           listing.Sort{Field: "name", Dir: listing.Asc},
				AppliedFilters: map[string]interface{}{},
			}),
		},
		{
			name:   "search, sort & paginate",
			method: http.MethodGet,
			path: listPath(student.Key, url.Values{
				"search":    {"JOHNNY"},
				"sortField": {"createdAt"},
				"sortDir":   {"DESC"},
				"pageSize":  {"1000"},
			}),
			token:    tokenA,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, listing.Result{
				Rows:           []interface{}{john},
				TotalCount:     1,
				Page:           1,
				PageSize:       100,
				Sort:           listing.Sort{Field: "createdAt", Dir: listing.Desc},
				Search:         "JOHNNY",
				AppliedFilters: map[string]interface{}{},
			}),
		},
		{
			name:     "filters",
			method:   http.MethodGet,
			path:     listPath(student.Key, url.Values{"filters": {`{"from":"2024-01-11","to":"2024-01-11","status":"ACTIVE"}`}}),
			token:    tokenA,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, listing.Result{
				Rows:           []interface{}{john},
				TotalCount:     1,
				Page:           1,
				PageSize:       25,
				Sort:           listing.Sort{Field: "name", Dir: listing.Asc},
				AppliedFilters: map[string]interface{}{"from": "2024-01-11", "to": "2024-01-11", "status": "ACTIVE"},
			}),
		},
		{
			name:     "other tenant",
			method:   http.MethodGet,
			path:     listPath(student.Key, nil),
			token:    getToken(t, tutorB),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, listing.Result{
				Rows:           []interface{}{roe},
				TotalCount:     1,
				Page:           1,
				PageSize:       25,
				Sort:           listing.Sort{Field: "name", Dir: listing.Asc},
				AppliedFilters: map[string]interface{}{},
			}),
		},
		{
			name:     "page past the end",
			method:   http.MethodGet,
			path:     listPath(student.Key, url.Values{"page": {"9"}}),
			token:    tokenA,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, listing.Result{
				Rows:           []interface{}{},
				TotalCount:     2,
				Page:           9,
				PageSize:       25,
				Sort:           listing.Sort{Field: "name", Dir: listing.Asc},
				AppliedFilters: map[string]interface{}{},
			}),
		},
		{
			name:     "sort field not allowed",
			method:   http.MethodGet,
			path:     listPath(student.Key, url.Values{"sortField": {"medicalNotes"}}),
			token:    tokenA,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"sortField": "sortField must be one of [createdAt gradeLevel name status]"}),
		},
		{
			name:     "bogus filter value",
			method:   http.MethodGet,
			path:     listPath(student.Key, url.Values{"filters": {`{"status":"BOGUS"}`}}),
			token:    tokenA,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"filters.status": "must be one of [ACTIVE INACTIVE]"}),
		},
		{
			name:     "inverted range",
			method:   http.MethodGet,
			path:     listPath(student.Key, url.Values{"filters": {`{"from":"2024-02-01","to":"2024-01-01"}`}}),
			token:    tokenA,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"filters.from": "must not be after filters.to"}),
		},
		{
			name:     "malformed filters",
			method:   http.MethodGet,
			path:     listPath(student.Key, url.Values{"filters": {`{"status"`}}),
			token:    tokenA,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"filters": "filters must be valid JSON"}),
		},
		{
			name:     "bad page",
			method:   http.MethodGet,
			path:     listPath(student.Key, url.Values{"page": {"0"}, "pageSize": {"x"}}),
			token:    tokenA,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"page":     "page must be a positive integer",
				"pageSize": "pageSize must be a positive integer",
			}),
		},
		{
			name:     "page overflowing the offset",
			method:   http.MethodGet,
			path:     listPath(student.Key, url.Values{"page": {"4611686018427387905"}, "pageSize": {"3"}}),
			token:    tokenA,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"page": "page is out of range"}),
		},
		{
			name:     "non-uuid id filter",
			method:   http.MethodGet,
			path:     listPath(student.Key, url.Values{"filters": {`{"programId":"abc"}`}}),
			token:    tokenA,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"filters.programId": "must be a valid UUID"}),
		},
	})
}

func TestListingAPI_export(t *testing.T) {
	seedStudents(t)
	tokenA := getToken(t, staffA)

	t.Run("csv", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, listPath(student.Key+"/export", url.Values{"page": {"2"}, "pageSize": {"1"}}), tokenA)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "false", rec.Header().Get("X-Export-Truncated"))
		assert.Equal(t, "2", rec.Header().Get("X-Total-Count"))
		assert.Equal(t, "2", rec.Header().Get("X-Export-Row-Count"))

		disposition := rec.Header().Get("Content-Disposition")
		assert.True(t, strings.HasPrefix(disposition, `attachment; filename="students-`), disposition)
		assert.True(t, strings.HasSuffix(disposition, `.csv"`), disposition)

		records, err := csv.NewReader(rec.Body).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "ID", records[0][0])
		assert.Equal(t, []string{janeID, johnID}, []string{records[1][0], records[2][0]})
		assert.NotContains(t, rec.Body.String(), testutil.Sensitive)
	})

	t.Run("xlsx", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, listPath(student.Key+"/export", url.Values{"format": {"xlsx"}}), tokenA)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, listing.FormatXLSX.ContentType(), rec.Header().Get("Content-Type"))
		assert.True(t, strings.HasSuffix(rec.Header().Get("Content-Disposition"), `.xlsx"`))
	})

	runHTTPTests(t, []httpTest{
		{
			name:     "unknown format",
			method:   http.MethodGet,
			path:     listPath(student.Key+"/export", url.Values{"format": {"pdf"}}),
			token:    tokenA,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"format": "format must be one of [csv xlsx]"}),
		},
		{
			name:     "invalid query",
			method:   http.MethodGet,
			path:     listPath(student.Key+"/export", url.Values{"sortField": {"guardianEmail"}}),
			token:    tokenA,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"sortField": "sortField must be one of [createdAt gradeLevel name status]"}),
		},
	})
}
