package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRespondErrorMapsSentinels(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: fmt.Errorf("view: %w", ErrNotFound), status: http.StatusNotFound},
		{err: ErrValidation, status: http.StatusBadRequest},
		{err: fmt.Errorf("catalog: %w", ErrUnavailable), status: http.StatusServiceUnavailable},
		{err: fmt.Errorf("boom"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		RespondError(rr, tt.err)
		require.Equal(t, tt.status, rr.Code)
		require.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))

		var problem ProblemDetail
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &problem))
		require.Equal(t, tt.status, problem.Status)
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondError(rr, fmt.Errorf("pg: password authentication failed"))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &problem))
	require.Empty(t, problem.Detail)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Query string `json:"query"`
	}

	var ok payload
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"query":"nước hoa"}`))
	require.NoError(t, DecodeJSON(req, &ok))
	require.Equal(t, "nước hoa", ok.Query)

	for _, body := range []string{`{"query":`, `{"unknown":1}`, `{"query":"a"}{"query":"b"}`} {
		var target payload
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		require.ErrorIs(t, DecodeJSON(req, &target), ErrValidation, body)
	}
}
