package engine

import (
	"errors"
	"fmt"

	"github.com/palemoky/pyramid-climb/internal/game/board"
	"github.com/palemoky/pyramid-climb/internal/game/card"
	"github.com/palemoky/pyramid-climb/internal/game/state"
)

const (
	// DefaultPlayers 玩家人数
	DefaultPlayers = 2
	// DefaultHandSize 开局每人手牌数
	DefaultHandSize = 7
)

// Rules 一局游戏的固定参数
type Rules struct {
	Players  int
	HandSize int
	Profile  board.Profile
}

// DefaultRules 两人、七张手牌、七层金字塔
func DefaultRules() Rules {
	return Rules{
		Players:  DefaultPlayers,
		HandSize: DefaultHandSize,
		Profile:  board.DefaultProfile,
	}
}

// Layout 状态编码维度
func (r Rules) Layout() state.Layout {
	return state.Layout{Players: r.Players, Levels: r.Profile.Levels()}
}

// Validate 校验规则能否用一副牌开局
func (r Rules) Validate() error {
	if r.Players < 2 {
		return fmt.Errorf("need at least 2 players, got %d", r.Players)
	}
	if r.HandSize < 1 {
		return fmt.Errorf("hand size must be positive, got %d", r.HandSize)
	}
	if err := r.Profile.Validate(); err != nil {
		return err
	}
	if need := r.Profile.Size() + r.Players*r.HandSize; need > len(card.NewDeck()) {
		return errors.New("board and starting hands need more cards than the deck holds")
	}
	return nil
}
