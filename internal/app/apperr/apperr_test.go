package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Resource: "demande"}
	assert.Equal(t, "demande introuvable", err.Error())
	assert.True(t, IsNotFound(err))
	assert.False(t, IsAccessDenied(err))
	assert.False(t, IsValidation(err))
}

func TestAccessDeniedError(t *testing.T) {
	assert.Equal(t, "accès refusé", (&AccessDeniedError{}).Error())
	assert.Equal(t, "demande appartenant à un autre utilisateur",
		(&AccessDeniedError{Reason: "demande appartenant à un autre utilisateur"}).Error())
	assert.True(t, IsAccessDenied(&AccessDeniedError{}))
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Code:    CodeMissingSerial,
		Device:  "ipad",
		Message: "numéro de série manquant pour ipad",
	}
	assert.True(t, IsValidation(err))

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, CodeMissingSerial, verr.Code)
	assert.Equal(t, "ipad", verr.Device)
}

func TestHelpersDetectWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("lecture demande: %w", &NotFoundError{Resource: "demande"})
	assert.True(t, IsNotFound(wrapped))
}

func TestDependencyErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &DependencyError{Op: "topdesk webhook", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "topdesk webhook")
}
