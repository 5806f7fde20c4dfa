package apperrors

import (
	"errors"

	"github.com/palemoky/pyramid-climb/internal/protocol"
)

// GameError 游戏错误（引擎、快照编解码共享）
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
	ErrInvalidPlayerID  = newError(protocol.ErrCodeInvalidPlayerID)
	ErrInvalidCard      = newError(protocol.ErrCodeInvalidCard)
	ErrInvalidCardState = newError(protocol.ErrCodeInvalidState)
	ErrOutOfBoardRange  = newError(protocol.ErrCodeOutOfBoard)
	ErrNotYourTurn      = newError(protocol.ErrCodeNotYourTurn)
	ErrCannotPlay       = newError(protocol.ErrCodeCannotPlay)
	ErrInvalidSnapshot  = newError(protocol.ErrCodeInvalidSnapshot)
)

// Code 返回错误链中 GameError 的错误码，没有则返回 ErrCodeUnknown
func Code(err error) int {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return protocol.ErrCodeUnknown
}
