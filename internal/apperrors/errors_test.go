package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/word-imposter/internal/protocol"
)

func TestGameError_Messages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Room not found", ErrRoomNotFound.Error())
	assert.Equal(t, "Name must be 2–16 characters", ErrInvalidName.Error())
	assert.Equal(t, "Name already taken", ErrNameTaken.Error())
}

func TestCodeOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, protocol.ErrCodeNameTaken, CodeOf(ErrNameTaken))
	assert.Equal(t, protocol.ErrCodeNotHost, CodeOf(fmt.Errorf("start round: %w", ErrNotHost)))
	assert.Equal(t, protocol.ErrCodeUnknown, CodeOf(errors.New("boom")))
	assert.Equal(t, protocol.ErrCodeUnknown, CodeOf(nil))
}

func TestGameError_Is(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("join: %w", ErrRoomNotFound)
	assert.ErrorIs(t, wrapped, ErrRoomNotFound)
	assert.NotErrorIs(t, wrapped, ErrNameTaken)
}
