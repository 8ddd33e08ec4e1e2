package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/logbook"
	"alcyxob/exercise-tracker/internal/service"
)

type testServer struct {
	router    *gin.Engine
	users     *MockUserService
	exercises *MockExerciseService
	exports   *MockExportService
}

func newTestServer(t *testing.T, assets Assets) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &testServer{
		router:    gin.New(),
		users:     new(MockUserService),
		exercises: new(MockExerciseService),
		exports:   new(MockExportService),
	}
	s.router.Use(RequestID(), RequestLogger())
	SetupRoutes(s.router, assets, s.users, s.exercises, s.exports)
	return s
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestPing(t *testing.T) {
	s := newTestServer(t, Assets{})
	w := s.do(httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestID_ReusesHeader(t *testing.T) {
	s := newTestServer(t, Assets{})
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")

	w := s.do(req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name      string
		req       *http.Request
		mockSetup func(*MockUserService)
		wantCode  int
		wantBody  string
	}{
		{
			name: "form body",
			req:  postForm("/api/users", url.Values{"username": {"alice"}}),
			mockSetup: func(m *MockUserService) {
				m.On("Register", mock.Anything, "alice").Return(&domain.User{ID: "u1", Username: "alice"}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"username":"alice","_id":"u1"}`,
		},
		{
			name: "json body",
			req:  postJSON("/api/users", `{"username":"bob"}`),
			mockSetup: func(m *MockUserService) {
				m.On("Register", mock.Anything, "bob").Return(&domain.User{ID: "u2", Username: "bob"}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"username":"bob","_id":"u2"}`,
		},
		{
			name: "missing username",
			req:  postForm("/api/users", url.Values{}),
			mockSetup: func(m *MockUserService) {
				m.On("Register", mock.Anything, "").Return(nil, service.ErrInvalidUsername)
			},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Username is required"}`,
		},
		{
			name: "duplicate",
			req:  postForm("/api/users", url.Values{"username": {"alice"}}),
			mockSetup: func(m *MockUserService) {
				m.On("Register", mock.Anything, "alice").Return(nil, service.ErrUsernameTaken)
			},
			wantCode: http.StatusConflict,
			wantBody: `{"error":"Username already taken"}`,
		},
		{
			name:      "malformed json",
			req:       postJSON("/api/users", `{"username":`),
			mockSetup: func(m *MockUserService) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Assets{})
			tt.mockSetup(s.users)

			w := s.do(tt.req)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
			s.users.AssertExpectations(t)
		})
	}
}

func TestListUsers(t *testing.T) {
	s := newTestServer(t, Assets{})
	s.users.On("ListUsers", mock.Anything).Return([]domain.User{
		{ID: "u1", Username: "alice"},
		{ID: "u2", Username: "bob"},
	}, nil)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"username":"alice","_id":"u1"},{"username":"bob","_id":"u2"}]`, w.Body.String())
}

func TestListUsers_Empty(t *testing.T) {
	s := newTestServer(t, Assets{})
	s.users.On("ListUsers", mock.Anything).Return([]domain.User{}, nil)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAddExercise(t *testing.T) {
	logged := &service.LoggedExercise{
		UserID:      "u1",
		Username:    "alice",
		Description: "swim",
		Duration:    45,
		Date:        "Thu Jun 01 2023",
	}
	const wantOK = `{"_id":"u1","username":"alice","description":"swim","duration":45,"date":"Thu Jun 01 2023"}`

	tests := []struct {
		name      string
		req       *http.Request
		mockSetup func(*MockExerciseService)
		wantCode  int
		wantBody  string
	}{
		{
			name: "form body",
			req: postForm("/api/users/u1/exercises", url.Values{
				"description": {"swim"}, "duration": {"45"}, "date": {"2023-06-01"},
			}),
			mockSetup: func(m *MockExerciseService) {
				m.On("AddExercise", mock.Anything, "u1", logbook.NewExerciseInput{
					Description: "swim", Duration: "45", Date: "2023-06-01",
				}).Return(logged, nil)
			},
			wantCode: http.StatusOK,
			wantBody: wantOK,
		},
		{
			name: "json with numeric duration",
			req:  postJSON("/api/users/u1/exercises", `{"description":"swim","duration":45,"date":"2023-06-01"}`),
			mockSetup: func(m *MockExerciseService) {
				m.On("AddExercise", mock.Anything, "u1", logbook.NewExerciseInput{
					Description: "swim", Duration: "45", Date: "2023-06-01",
				}).Return(logged, nil)
			},
			wantCode: http.StatusOK,
			wantBody: wantOK,
		},
		{
			name: "json with null date",
			req:  postJSON("/api/users/u1/exercises", `{"description":"swim","duration":"45","date":null}`),
			mockSetup: func(m *MockExerciseService) {
				m.On("AddExercise", mock.Anything, "u1", logbook.NewExerciseInput{
					Description: "swim", Duration: "45",
				}).Return(logged, nil)
			},
			wantCode: http.StatusOK,
			wantBody: wantOK,
		},
		{
			name: "unknown user",
			req:  postForm("/api/users/ghost/exercises", url.Values{"description": {"swim"}, "duration": {"45"}}),
			mockSetup: func(m *MockExerciseService) {
				m.On("AddExercise", mock.Anything, "ghost", mock.Anything).Return(nil, service.ErrUserNotFound)
			},
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"User not found"}`,
		},
		{
			name: "bad date",
			req:  postForm("/api/users/u1/exercises", url.Values{"description": {"swim"}, "duration": {"45"}, "date": {"2023-02-30"}}),
			mockSetup: func(m *MockExerciseService) {
				m.On("AddExercise", mock.Anything, "u1", mock.Anything).
					Return(nil, &logbook.Error{Kind: logbook.KindInvalidDateFormat, Field: "date", Value: "2023-02-30"})
			},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"invalid date format for date: \"2023-02-30\" (expected YYYY-MM-DD)"}`,
		},
		{
			name: "store failure",
			req:  postForm("/api/users/u1/exercises", url.Values{"description": {"swim"}, "duration": {"45"}}),
			mockSetup: func(m *MockExerciseService) {
				m.On("AddExercise", mock.Anything, "u1", mock.Anything).Return(nil, errors.New("socket closed"))
			},
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"An unexpected error occurred"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Assets{})
			tt.mockSetup(s.exercises)

			w := s.do(tt.req)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			s.exercises.AssertExpectations(t)
		})
	}
}

func TestGetLog(t *testing.T) {
	s := newTestServer(t, Assets{})
	s.exercises.On("GetLog", mock.Anything, service.LogRequest{
		UserID: "u1", From: "2023-01-01", To: "2023-12-31", Limit: "1",
	}).Return(&logbook.LogResult{
		ID:       "u1",
		Username: "alice",
		Count:    1,
		Log:      []logbook.NormalizedEntry{{Description: "swim", Duration: 45, Date: "Thu Jun 01 2023"}},
	}, nil)

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/users/u1/logs?from=2023-01-01&to=2023-12-31&limit=1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"_id":"u1","username":"alice","count":1,"log":[{"description":"swim","duration":45,"date":"Thu Jun 01 2023"}]}`,
		w.Body.String())
}

func TestGetLog_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"unknown user", service.ErrUserNotFound, http.StatusNotFound},
		{"invalid limit", &logbook.Error{Kind: logbook.KindInvalidLimit, Field: "limit", Value: "0"}, http.StatusBadRequest},
		{"invalid bound", &logbook.Error{Kind: logbook.KindInvalidDateFormat, Field: "from", Value: "01/02/2023"}, http.StatusBadRequest},
		{"wrapped store error", errors.New("list exercises: timeout"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Assets{})
			s.exercises.On("GetLog", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := s.do(httptest.NewRequest(http.MethodGet, "/api/users/u1/logs", nil))
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, decodeBody(t, w), "error")
		})
	}
}

func TestExportLog(t *testing.T) {
	expires := time.Date(2023, time.October, 22, 12, 15, 0, 0, time.UTC)

	t.Run("uploaded", func(t *testing.T) {
		s := newTestServer(t, Assets{})
		s.exports.On("ExportLog", mock.Anything, service.LogRequest{UserID: "u1", Limit: "5"}).
			Return(&service.LogExport{Key: "exports/u1/x.json", URL: "https://s3.local/x", ExpiresAt: expires, Count: 3}, nil)

		w := s.do(httptest.NewRequest(http.MethodPost, "/api/users/u1/logs/export?limit=5", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t,
			`{"key":"exports/u1/x.json","url":"https://s3.local/x","expiresAt":"2023-10-22T12:15:00Z","count":3}`,
			w.Body.String())
	})

	t.Run("not configured", func(t *testing.T) {
		s := newTestServer(t, Assets{})
		s.exports.On("ExportLog", mock.Anything, mock.Anything).Return(nil, service.ErrExportDisabled)

		w := s.do(httptest.NewRequest(http.MethodPost, "/api/users/u1/logs/export", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestStaticAssets(t *testing.T) {
	dir := t.TempDir()
	views := filepath.Join(dir, "views")
	public := filepath.Join(dir, "public")
	require.NoError(t, os.MkdirAll(views, 0o755))
	require.NoError(t, os.MkdirAll(public, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(views, "index.html"), []byte("<h1>Exercise tracker</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(public, "style.css"), []byte("body{}"), 0o644))

	s := newTestServer(t, Assets{ViewsDir: views, PublicDir: public})

	w := s.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Exercise tracker")

	w = s.do(httptest.NewRequest(http.MethodGet, "/public/style.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body{}", w.Body.String())
}

func TestNoRoute(t *testing.T) {
	s := newTestServer(t, Assets{})
	w := s.do(httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}
