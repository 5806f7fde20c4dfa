package engine

import (
	"slices"

	"github.com/google/uuid"

	"github.com/palemoky/pyramid-climb/internal/game/state"
)

// Player 玩家进度：已通过的层数，等于牌桌层数时获胜
type Player struct {
	Level int
}

// Snapshot 一局游戏在某一时刻的完整状态。发布后不再修改
type Snapshot struct {
	GameID        uuid.UUID
	CurrentPlayer int
	Cards         state.Cards
	Players       []Player
}

// Clone 深拷贝
func (s *Snapshot) Clone() *Snapshot {
	return &Snapshot{
		GameID:        s.GameID,
		CurrentPlayer: s.CurrentPlayer,
		Cards:         s.Cards.Clone(),
		Players:       slices.Clone(s.Players),
	}
}
