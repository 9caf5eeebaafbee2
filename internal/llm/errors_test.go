package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransientStatus(t *testing.T) {
	tests := []struct {
		code      int
		transient bool
	}{
		{400, false},
		{401, false},
		{403, false},
		{404, false},
		{408, true},
		{422, false},
		{429, true},
		{500, true},
		{502, true},
		{503, true},
		{504, true},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("status %d", test.code), func(t *testing.T) {
			assert.Equal(t, test.transient, transientStatus(test.code))
		})
	}
}

func TestIsTransient(t *testing.T) {
	t.Run("transient model error", func(t *testing.T) {
		err := &ModelError{StatusCode: 429, Transient: true, Err: errors.New("rate limited")}
		assert.True(t, IsTransient(err))
	})

	t.Run("permanent model error", func(t *testing.T) {
		err := &ModelError{StatusCode: 401, Err: errors.New("bad key")}
		assert.False(t, IsTransient(err))
	})

	t.Run("wrapped model error", func(t *testing.T) {
		err := fmt.Errorf("generate: %w", &ModelError{Transient: true, Err: errors.New("timeout")})
		assert.True(t, IsTransient(err))
	})

	t.Run("plain error", func(t *testing.T) {
		assert.False(t, IsTransient(errors.New("something else")))
	})
}

func TestClassifyDeadline(t *testing.T) {
	err := classify(fmt.Errorf("request: %w", context.DeadlineExceeded))

	var modelErr *ModelError
	assert.ErrorAs(t, err, &modelErr)
	assert.True(t, modelErr.Transient)
}

func TestClassifyUnknown(t *testing.T) {
	err := classify(errors.New("connection reset"))

	var modelErr *ModelError
	assert.ErrorAs(t, err, &modelErr)
	assert.False(t, modelErr.Transient)
}

func TestModelErrorMessage(t *testing.T) {
	err := &ModelError{StatusCode: 429, Transient: true, Err: errors.New("rate limited")}
	assert.Contains(t, err.Error(), "transient")
	assert.Contains(t, err.Error(), "429")

	err = &ModelError{Err: errors.New("empty completion")}
	assert.Contains(t, err.Error(), "permanent")
}
