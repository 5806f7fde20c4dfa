package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/pyramid-climb/internal/protocol"
)

func TestCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"sentinel", ErrInvalidCard, protocol.ErrCodeInvalidCard},
		{"wrapped", fmt.Errorf("draw: %w", ErrInvalidCardState), protocol.ErrCodeInvalidState},
		{"double wrapped", fmt.Errorf("a: %w", fmt.Errorf("b: %w", ErrOutOfBoardRange)), protocol.ErrCodeOutOfBoard},
		{"plain error", errors.New("boom"), protocol.ErrCodeUnknown},
		{"nil", nil, protocol.ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Code(tt.err))
		})
	}
}

func TestGameError_Message(t *testing.T) {
	t.Parallel()

	assert.Equal(t, protocol.ErrorMessages[protocol.ErrCodeInvalidPlayerID], ErrInvalidPlayerID.Error())
	assert.NotEmpty(t, ErrNotYourTurn.Error())
	assert.ErrorIs(t, fmt.Errorf("ctx: %w", ErrCannotPlay), ErrCannotPlay)
}
