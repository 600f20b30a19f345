package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf_SurvivesWrapping(t *testing.T) {
	base := NotFound("affiliate")
	wrapped := fmt.Errorf("loading stats: %w", base)

	require.Equal(t, KindNotFound, KindOf(wrapped))
	require.True(t, IsNotFound(wrapped))
	require.Equal(t, "affiliate not found", base.Error())
}

func TestKindOf_ForeignError(t *testing.T) {
	require.Equal(t, Kind(0), KindOf(errors.New("boom")))
	require.Equal(t, Kind(0), KindOf(nil))
	require.False(t, IsNotFound(errors.New("boom")))
}

func TestError_UnwrapChain(t *testing.T) {
	cause := errors.New("connection reset")
	e := &Error{Kind: KindValidation, Msg: "bad input", Err: cause}

	require.ErrorIs(t, e, cause)
	require.Equal(t, "bad input: connection reset", e.Error())
}
