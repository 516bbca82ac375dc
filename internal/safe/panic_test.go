package safe

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPanicErr(t *testing.T) {
	err := NewPanicErr("info", []byte("stack"))
	assert.Equal(t, "panic error: info, \nstack: stack", err.Error())
	assert.True(t, IsPanicErr(err))
	assert.False(t, IsPanicErr(errors.New("info")))
	assert.True(t, IsPanicErr(fmt.Errorf("wrapped: %w", err)))
}
