package state

import (
	"fmt"

	"github.com/palemoky/pyramid-climb/internal/apperrors"
)

// Kind 牌所处的位置类别
type Kind uint8

const (
	KindDeck   Kind = iota // 牌堆中，可被抽取
	KindHand               // 玩家手中
	KindBoard              // 牌桌某一层
	KindPlayed             // 已由某玩家在某一层打出
)

var kindNames = map[Kind]string{
	KindDeck:   "deck",
	KindHand:   "hand",
	KindBoard:  "board",
	KindPlayed: "played",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Code 牌的状态。零值表示牌在牌堆中
type Code struct {
	kind   Kind
	player int
	level  int
}

// InDeck 牌堆状态
func InDeck() Code { return Code{} }

// InHand 玩家 player 的手牌状态
func InHand(player int) Code { return Code{kind: KindHand, player: player} }

// OnBoard 牌桌第 level 层状态
func OnBoard(level int) Code { return Code{kind: KindBoard, level: level} }

// Played 玩家 player 在第 level 层打出的牌
func Played(player, level int) Code { return Code{kind: KindPlayed, player: player, level: level} }

func (c Code) Kind() Kind { return c.kind }

// Player 手牌或已出牌所属玩家，其他状态为 -1
func (c Code) Player() int {
	if c.kind == KindHand || c.kind == KindPlayed {
		return c.player
	}
	return -1
}

// Level 牌桌层或出牌层，其他状态为 -1
func (c Code) Level() int {
	if c.kind == KindBoard || c.kind == KindPlayed {
		return c.level
	}
	return -1
}

func (c Code) IsDeck() bool  { return c.kind == KindDeck }
func (c Code) IsHand() bool  { return c.kind == KindHand }
func (c Code) IsBoard() bool { return c.kind == KindBoard }

func (c Code) String() string {
	switch c.kind {
	case KindHand:
		return fmt.Sprintf("hand(%d)", c.player)
	case KindBoard:
		return fmt.Sprintf("board(%d)", c.level)
	case KindPlayed:
		return fmt.Sprintf("played(%d,%d)", c.player, c.level)
	default:
		return "deck"
	}
}

// NoCode 牌堆状态的整数编码
const NoCode = -1

// Layout 状态整数编码所依赖的玩家数与牌桌层数
//
// 编码规则：
//
//	0 .. P-1            玩家手牌
//	P .. P+L-1          牌桌第 0..L-1 层
//	P+L*(1+p)+l         玩家 p 在第 l 层打出的牌
type Layout struct {
	Players int
	Levels  int
}

// Limit 合法编码的上界（不含）
func (l Layout) Limit() int {
	return l.Players + l.Levels*(1+l.Players)
}

// PlayedCode 玩家在某层打出牌的整数编码
func (l Layout) PlayedCode(player, level int) int {
	return l.Players + l.Levels*(1+player) + level
}

// ValidatePlayer 校验玩家编号
func (l Layout) ValidatePlayer(player int) error {
	if player < 0 || player >= l.Players {
		return fmt.Errorf("%w: %d", apperrors.ErrInvalidPlayerID, player)
	}
	return nil
}

// Validate 校验状态是否落在本布局的合法范围内
func (l Layout) Validate(c Code) error {
	switch c.kind {
	case KindDeck:
		return nil
	case KindHand:
		if c.player >= 0 && c.player < l.Players {
			return nil
		}
	case KindBoard:
		if c.level >= 0 && c.level < l.Levels {
			return nil
		}
	case KindPlayed:
		if c.player >= 0 && c.player < l.Players && c.level >= 0 && c.level < l.Levels {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", apperrors.ErrInvalidCardState, c)
}

// ValidateCode 校验整数编码，NoCode 表示牌堆
func (l Layout) ValidateCode(n int) error {
	if n == NoCode || (n >= 0 && n < l.Limit()) {
		return nil
	}
	return fmt.Errorf("%w: %d", apperrors.ErrInvalidCardState, n)
}

// Encode 将状态编码为整数，调用前状态必须已通过 Validate
func (l Layout) Encode(c Code) int {
	switch c.kind {
	case KindHand:
		return c.player
	case KindBoard:
		return l.Players + c.level
	case KindPlayed:
		return l.PlayedCode(c.player, c.level)
	default:
		return NoCode
	}
}

// Decode 是 Encode 的逆操作
func (l Layout) Decode(n int) (Code, error) {
	if err := l.ValidateCode(n); err != nil {
		return Code{}, err
	}
	switch {
	case n == NoCode:
		return InDeck(), nil
	case n < l.Players:
		return InHand(n), nil
	case n < l.Players+l.Levels:
		return OnBoard(n - l.Players), nil
	default:
		rest := n - l.Players - l.Levels
		return Played(rest/l.Levels, rest%l.Levels), nil
	}
}
