package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var got ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func TestHandleError_ServiceError(t *testing.T) {
	h := HandleError(func(w http.ResponseWriter, r *http.Request) error {
		return apperrors.ConfigurationError(nil, "master agreement address is not configured")
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clear_balance", nil))

	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	got := decodeError(t, rec)
	assert.Equal(t, "master agreement address is not configured", got.ErrMsg)
	assert.Equal(t, "ConfigurationError", got.ErrKind)
	assert.Equal(t, http.StatusPreconditionFailed, got.ErrMsgCode)
	assert.Nil(t, got.Data)
}

func TestHandleError_ServiceErrorIncludesCause(t *testing.T) {
	cause := errors.New("insufficient funds for gas * price + value")
	h := HandleError(func(w http.ResponseWriter, r *http.Request) error {
		return apperrors.SubmissionError(cause, "ledger rejected transaction")
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/vote_termination_a", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	got := decodeError(t, rec)
	assert.Equal(t, "ledger rejected transaction: insufficient funds for gas * price + value", got.ErrMsg)
	assert.Equal(t, "SubmissionError", got.ErrKind)
}

func TestHandleError_GeneralErrorStaysOpaque(t *testing.T) {
	h := HandleError(func(w http.ResponseWriter, r *http.Request) error {
		return apperrors.GeneralError(errors.New("dial tcp 10.0.0.7:8545: connection refused"))
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	got := decodeError(t, rec)
	assert.Equal(t, "Internal Server Error", got.ErrMsg)
	assert.NotContains(t, rec.Body.String(), "10.0.0.7")
}

func TestHandleError_UnknownError(t *testing.T) {
	h := HandleError(func(w http.ResponseWriter, r *http.Request) error {
		return errors.New("boom")
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	got := decodeError(t, rec)
	assert.Equal(t, "Unexpected Service Error", got.ErrMsg)
	assert.Equal(t, "GeneralError", got.ErrKind)
}

func TestWriteError_WithData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, apperrors.ConfigurationError(nil, "session is closed"), map[string]string{"address": "0x01"})

	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	got := decodeError(t, rec)
	assert.Equal(t, map[string]any{"address": "0x01"}, got.Data)
}
