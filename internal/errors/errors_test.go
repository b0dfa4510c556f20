package errors_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	domainerrors "github.com/DeafMist/job-radar/internal/errors"
)

func TestDomainErrorMessage(t *testing.T) {
	err := domainerrors.InvalidInput("decode jobs.json", io.ErrUnexpectedEOF)
	require.Equal(t, "INVALID_INPUT: decode jobs.json: unexpected EOF", err.Error())
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.NotEmpty(t, err.StackTrace())

	bare := domainerrors.Unavailable("all backends exhausted", nil)
	require.Equal(t, "UNAVAILABLE: all backends exhausted", bare.Error())
}

func TestIsTypeThroughWrapping(t *testing.T) {
	inner := domainerrors.NotFound("open input", io.EOF)
	wrapped := fmt.Errorf("clean stage: %w", inner)

	require.True(t, domainerrors.IsType(wrapped, domainerrors.ErrTypeNotFound))
	require.False(t, domainerrors.IsType(wrapped, domainerrors.ErrTypeUnavailable))
	require.True(t, domainerrors.IsFatal(wrapped))
	require.False(t, domainerrors.IsFatal(domainerrors.Unavailable("x", nil)))
	require.False(t, domainerrors.IsFatal(io.EOF))
}

func TestExitMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		err  error
		want string
	}{
		{name: "missing file", msg: "read input", err: domainerrors.NotFound("input file jobs.json", io.EOF), want: "input error: read input: NOT_FOUND: input file jobs.json: EOF"},
		{name: "other", msg: "write output", err: io.ErrClosedPipe, want: "error: write output: io: read/write on closed pipe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, domainerrors.ExitMessage(tt.msg, tt.err))
		})
	}
}
