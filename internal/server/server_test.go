package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/memstore"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

func testConfig() *config.App {
	return &config.App{
		HTTPAddr: "127.0.0.1:0",
		CORS: config.CORS{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAge:         3600,
		},
	}
}

func newTestHandler(t *testing.T, deps ...Dependency) http.Handler {
	t.Helper()
	store := memstore.New()
	store.AddCategory(1, "Science")
	store.AddCategory(2, "Art")
	store.AddQuestion("What is the heaviest organ in the human body?", "The Liver", 1, 4)
	store.AddQuestion("Who discovered penicillin?", "Alexander Fleming", 1, 3)
	store.AddQuestion("La Giaconda is better known as what?", "Mona Lisa", 2, 3)

	svc := question.NewService(
		repository.NewQuestionRepository(store),
		repository.NewCategoryRepository(store),
		zerolog.Nop(),
		question.ServiceOptions{},
	)
	return NewHandler(testConfig(), zerolog.Nop(), Routes{
		Questions:    question.NewHTTPHandler(svc, zerolog.Nop()),
		Dependencies: deps,
	})
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := serve(newTestHandler(t), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRequestIDIsPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-123")

	rec := serve(newTestHandler(t), req)
	assert.Equal(t, "req-123", rec.Header().Get(requestIDHeader))
}

func TestUnknownPathIsJSONNotFound(t *testing.T) {
	rec := serve(newTestHandler(t), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":404,"message":"Resource not found"}`, rec.Body.String())
}

func TestPing(t *testing.T) {
	healthy := Dependency{Name: "postgres", Ping: func(context.Context) error { return nil }}
	rec := serve(newTestHandler(t, healthy), httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pong":true}`, rec.Body.String())

	down := Dependency{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }}
	rec = serve(newTestHandler(t, healthy, down), httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":502,"message":"Bad Gateway"}`, rec.Body.String())
}

func TestPingFailureLogsWithRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	down := Dependency{Name: "postgres", Ping: func(context.Context) error { return errors.New("connection refused") }}
	h := NewHandler(testConfig(), zerolog.New(&buf), Routes{Dependencies: []Dependency{down}})

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set(requestIDHeader, "ping-1")
	rec := serve(h, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	logs := buf.String()
	assert.Contains(t, logs, `"message":"dependency ping failed"`)
	assert.Contains(t, logs, `"error":"ping postgres: connection refused"`)
	assert.Contains(t, logs, `"request_id":"ping-1"`)
	assert.Contains(t, logs, `"component":"http_server"`)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/questions/1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	rec := serve(newTestHandler(t), req)
	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
}

func TestCORSOnSimpleRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rec := serve(newTestHandler(t), req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsExposeRequestCounts(t *testing.T) {
	h := newTestHandler(t)
	serve(h, httptest.NewRequest(http.MethodGet, "/categories", nil))
	serve(h, httptest.NewRequest(http.MethodDelete, "/questions/99", nil))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `trivia_http_requests_total{method="GET",route="/categories",status="200"} 1`)
	assert.Contains(t, body, `trivia_http_requests_total{method="DELETE",route="/questions/{id}",status="422"} 1`)
	assert.Contains(t, body, "trivia_http_request_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}

func TestTriviaFlowThroughServer(t *testing.T) {
	h := newTestHandler(t)

	create := httptest.NewRequest(http.MethodPost, "/questions", strings.NewReader(`{"question":"Which planet is known as the Red Planet?","answer":"Mars","category":1,"difficulty":1}`))
	rec := serve(h, create)
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		Success bool `json:"success"`
		Created int  `json:"created"`
		Total   int  `json:"total_questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Equal(t, 4, created.Created)
	assert.Equal(t, 4, created.Total)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/categories/1/questions", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var byCategory struct {
		Questions       []question.Question `json:"questions"`
		CurrentCategory *string             `json:"current_category"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &byCategory))
	assert.Len(t, byCategory.Questions, 3)
	require.NotNil(t, byCategory.CurrentCategory)
	assert.Equal(t, "Science", *byCategory.CurrentCategory)

	quiz := httptest.NewRequest(http.MethodPost, "/quizzes", strings.NewReader(`{"previous_questions":[1,2],"quiz_category":{"id":1,"type":"Science"}}`))
	rec = serve(h, quiz)
	require.Equal(t, http.StatusOK, rec.Code)
	var next struct {
		Question *question.Question `json:"question"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &next))
	require.NotNil(t, next.Question)
	assert.Equal(t, 4, next.Question.ID)

	rec = serve(h, httptest.NewRequest(http.MethodDelete, "/questions/4", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := testConfig()
	h := newTestHandler(t)
	srv := NewHTTPServer(cfg, h)

	assert.Equal(t, cfg.HTTPAddr, srv.Addr)
	assert.Equal(t, cfg.ReadHeaderTimeout, srv.ReadHeaderTimeout)
	assert.NotNil(t, srv.Handler)
}
