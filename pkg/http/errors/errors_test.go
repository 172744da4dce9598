package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRespondHelpers(t *testing.T) {
	tests := []struct {
		name    string
		respond func(http.ResponseWriter)
		status  int
		message string
	}{
		{"not found", RespondNotFound, http.StatusNotFound, MsgNotFound},
		{"unprocessable", RespondUnprocessable, http.StatusUnprocessableEntity, MsgUnprocessable},
		{"internal", RespondInternalError, http.StatusInternalServerError, MsgInternalError},
		{"bad gateway", RespondBadGateway, http.StatusBadGateway, MsgUpstreamError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.respond(rec)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			body := decode(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.status, body.Error)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestRespondMethodNotAllowedSetsAllow(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondMethodNotAllowed(rec, http.MethodGet, http.MethodPost)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
	body := decode(t, rec)
	assert.Equal(t, http.StatusMethodNotAllowed, body.Error)
	assert.Equal(t, MsgMethodNotAllowed, body.Message)
}
