package response

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/memberhub/memberhub/pkg/apperr"
)

func TestCodeForError_MapsKinds(t *testing.T) {
	cases := []struct {
		err  error
		code APIResponseCode
	}{
		{apperr.NotFound("user"), APIResponseCodeNotFound},
		{apperr.Conflict("email already registered"), APIResponseCodeConflict},
		{apperr.Validation("bad rate"), APIResponseCodeValidation},
		{apperr.Unauthorized("invalid token"), APIResponseCodeUnauthorized},
		{apperr.Forbidden("admin access required"), APIResponseCodeForbidden},
		{errors.New("pq: connection refused"), APIResponseCodeError},
		{fmt.Errorf("wrapped: %w", apperr.NotFound("content")), APIResponseCodeNotFound},
	}
	for _, tc := range cases {
		require.Equal(t, tc.code, CodeForError(tc.err), tc.err.Error())
	}
}

func TestEnvelopeHelpers(t *testing.T) {
	ok := OKT(map[string]int{"n": 1})
	require.Equal(t, APIResponseCodeOK, ok.Code)
	require.Equal(t, "ok", ok.Message)

	bad := ErrorT[any](APIResponseCodeBadRequest, "missing user_id")
	require.Equal(t, APIResponseCodeBadRequest, bad.Code)
	require.Equal(t, "bad request", bad.Message)
	require.Equal(t, "missing user_id", bad.Data)
}

func TestErrorMsg_MessageCarriesCause(t *testing.T) {
	e := ErrorMsg[any](APIResponseCodeNotFound, "affiliate not found")
	require.Equal(t, APIResponseCodeNotFound, e.Code)
	require.Equal(t, "affiliate not found", e.Message)
	require.Nil(t, e.Data)

	// Empty message falls back to the generic code text.
	fallback := ErrorMsg[any](APIResponseCodeError, "")
	require.Equal(t, "internal error", fallback.Message)
}
