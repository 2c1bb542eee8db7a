package casqlerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfWrapped(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(IoOther, cause)
	assert.Equal(t, IoOther, KindOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, IoOther, KindOf(errors.New("plain")))
}

func TestNewBackendMessage(t *testing.T) {
	err := NewBackend(BackendFields{Severity: "ERROR", SQLState: "42601", Message: "syntax error at end of input"})
	assert.Equal(t, BackendError, KindOf(err))
	assert.Contains(t, err.Error(), "42601")
	assert.Contains(t, err.Error(), "syntax error")
}
