package errors_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/flashdeck/internal/errors"
)

func TestInvalidDeckError(t *testing.T) {
	cause := stderrors.New("boom")
	err := errors.NewInvalidDeckError("rust", cause)

	assert.Equal(t, errors.ErrCodeInvalidDeck, err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Contains(t, err.Error(), `"rust"`)
	assert.ErrorIs(t, err, cause)
}

func TestAppError_ErrorWithoutCause(t *testing.T) {
	err := errors.NewBadRequestError("unknown key")
	assert.Equal(t, "BAD_REQUEST: unknown key", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestInternalErrorWrapsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := errors.NewInternalError(cause)

	var appErr *errors.AppError
	assert.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.ErrorIs(t, err, cause)
}
