package apperrors

import (
	"errors"

	"github.com/palemoky/word-imposter/internal/protocol"
)

// GameError 游戏错误（房间和回合共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

func newError(code int) *GameError {
	return &GameError{Code: code, Message: protocol.ErrorMessages[code]}
}

// 预定义错误
var (
	ErrRoomNotFound     = newError(protocol.ErrCodeRoomNotFound)
	ErrInvalidName      = newError(protocol.ErrCodeInvalidName)
	ErrNameTaken        = newError(protocol.ErrCodeNameTaken)
	ErrNotInRoom        = newError(protocol.ErrCodeNotInRoom)
	ErrNotHost          = newError(protocol.ErrCodeNotHost)
	ErrNotEnoughPlayers = newError(protocol.ErrCodeNotEnoughPlayers)
)

// CodeOf 提取错误码，非 GameError 返回 ErrCodeUnknown
func CodeOf(err error) int {
	var gameErr *GameError
	if errors.As(err, &gameErr) {
		return gameErr.Code
	}
	return protocol.ErrCodeUnknown
}
