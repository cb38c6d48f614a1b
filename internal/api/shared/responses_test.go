package shared

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	RespondWithJSON(rec, req, http.StatusCreated, map[string]string{"word": "serendipity"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "serendipity", body["word"])
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	t.Run("includes the trace ID when set", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := SetTraceID(req.Context())
		rec := httptest.NewRecorder()

		RespondWithError(rec, req.WithContext(ctx), http.StatusNotFound, "Card not found")

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Card not found", resp.Error)
		assert.Equal(t, GetTraceID(ctx), resp.TraceID)
	})

	t.Run("omits the trace ID when absent", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		RespondWithError(rec, req, http.StatusBadRequest, "Invalid request format")

		assert.NotContains(t, rec.Body.String(), "trace_id")
	})

	t.Run("status code is not serialized", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		RespondWithError(rec, req, http.StatusConflict, "Email already exists")

		assert.NotContains(t, rec.Body.String(), "409")
	})
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError,
		"Failed to create user", assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Failed to create user", resp.Error)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Word string `json:"word"`
	}

	t.Run("decodes a valid body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"word": "petrichor"}`))

		var p payload
		require.NoError(t, DecodeJSON(req, &p))
		assert.Equal(t, "petrichor", p.Word)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"word": `))

		var p payload
		assert.Error(t, DecodeJSON(req, &p))
	})
}

func TestTraceID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips through the context", func(t *testing.T) {
		t.Parallel()

		ctx := SetTraceID(context.Background())
		traceID := GetTraceID(ctx)
		assert.Len(t, traceID, traceIDLength*2, "hex-encoded trace ID")
	})

	t.Run("empty without a trace ID", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, GetTraceID(context.Background()))
	})

	t.Run("successive IDs differ", func(t *testing.T) {
		t.Parallel()

		first := GetTraceID(SetTraceID(context.Background()))
		second := GetTraceID(SetTraceID(context.Background()))
		assert.NotEqual(t, first, second)
	})
}
