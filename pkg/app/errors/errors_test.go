package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf_WrappedServiceError(t *testing.T) {
	base := ValidationError(nil, "invalid derivative address")
	wrapped := fmt.Errorf("report event: %w", base)

	assert.Equal(t, KindValidation, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindValidation))
	assert.False(t, Is(wrapped, KindSigning))
}

func TestKindOf_PlainErrorIsGeneral(t *testing.T) {
	assert.Equal(t, KindGeneral, KindOf(errors.New("boom")))
	assert.Equal(t, KindNone, KindOf(nil))
}

func TestServiceError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("nonce too low")
	err := SubmissionError(cause, "ledger rejected transaction")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "ledger rejected transaction: nonce too low", err.Error())

	bare := ConfigurationError(nil, "parties are not configured")
	assert.Equal(t, "parties are not configured", bare.Error())
}

func TestServiceError_StatusCode(t *testing.T) {
	cases := map[Kind]int{
		KindConfiguration:   http.StatusPreconditionFailed,
		KindValidation:      http.StatusBadRequest,
		KindSigning:         http.StatusForbidden,
		KindSubmission:      http.StatusBadGateway,
		KindReverted:        http.StatusUnprocessableEntity,
		KindFinalityTimeout: http.StatusGatewayTimeout,
		KindDecode:          http.StatusBadGateway,
		KindUnknownSelector: http.StatusInternalServerError,
		KindUnauthorized:    http.StatusUnauthorized,
		KindGeneral:         http.StatusInternalServerError,
	}
	for kind, want := range cases {
		svcErr := ServiceError{Kind: kind}
		assert.Equal(t, want, svcErr.StatusCode(), kind.String())
	}
}
