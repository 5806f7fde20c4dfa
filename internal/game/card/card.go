package card

import (
	"fmt"
	"strconv"

	"github.com/palemoky/pyramid-climb/internal/apperrors"
)

// Suit 定义花色
type Suit int

// Value 定义点数，0 为王牌（万能牌）
type Value int

// CardColor 定义牌的颜色
type CardColor int

const (
	Black CardColor = iota
	Red
)

const (
	Heart   Suit = iota // 红心
	Diamond             // 方块
	Club                // 梅花
	Spade               // 黑桃
)

// Suits 按发牌顺序排列的全部花色
var Suits = []Suit{Heart, Diamond, Club, Spade}

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Heart:   "♥",
	Diamond: "♦",
	Club:    "♣",
	Spade:   "♠",
}

// suitLetters 花色在牌 ID 中的首字母
var suitLetters = map[Suit]byte{
	Heart:   'H',
	Diamond: 'D',
	Club:    'C',
	Spade:   'S',
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

// Valid 判断是否为四种花色之一
func (s Suit) Valid() bool {
	_, ok := suitLetters[s]
	return ok
}

const (
	Joker Value = iota
	Ace
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// valueNames 牌面值字符串映射表
var valueNames = map[Value]string{
	Joker: "★",
	Ace:   "A",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
}

func (v Value) String() string {
	if name, ok := valueNames[v]; ok {
		return name
	}
	return strconv.Itoa(int(v))
}

// Valid 判断点数是否在 0..13 之间
func (v Value) Valid() bool {
	return v >= Joker && v <= King
}

// Card 定义一张牌
type Card struct {
	Suit  Suit
	Value Value
}

// IsJoker 是否为王牌
func (c Card) IsJoker() bool {
	return c.Value == Joker
}

// Color 红心方块为红色，其余为黑色
func (c Card) Color() CardColor {
	if c.Suit == Heart || c.Suit == Diamond {
		return Red
	}
	return Black
}

// ID 返回牌的唯一标识，例如 H0、D13、S7。调用前牌必须合法
func (c Card) ID() string {
	return string(suitLetters[c.Suit]) + strconv.Itoa(int(c.Value))
}

func (c Card) String() string {
	return c.Suit.String() + c.Value.String()
}

// Identify 校验牌并返回其 ID
func Identify(c Card) (string, error) {
	if !c.Suit.Valid() || !c.Value.Valid() {
		return "", fmt.Errorf("%w: suit=%d value=%d", apperrors.ErrInvalidCard, c.Suit, c.Value)
	}
	return c.ID(), nil
}

// ParseID 将 ID 解析回牌，是 ID 的逆操作
func ParseID(id string) (Card, error) {
	if len(id) < 2 {
		return Card{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidCard, id)
	}
	var suit Suit = -1
	for s, letter := range suitLetters {
		if letter == id[0] {
			suit = s
			break
		}
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil || suit < 0 {
		return Card{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidCard, id)
	}
	c := Card{Suit: suit, Value: Value(n)}
	if _, err := Identify(c); err != nil {
		return Card{}, err
	}
	// 拒绝 "H07" 这类非规范写法，保证 ID 唯一
	if c.ID() != id {
		return Card{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidCard, id)
	}
	return c, nil
}

// Deck 定义一副牌
type Deck []Card

// NewDeck 返回 52 张普通牌加红心、黑桃两张王牌，共 54 张
func NewDeck() Deck {
	deck := make(Deck, 0, 54)
	for _, s := range Suits {
		for v := Ace; v <= King; v++ {
			deck = append(deck, Card{Suit: s, Value: v})
		}
	}
	deck = append(deck,
		Card{Suit: Heart, Value: Joker},
		Card{Suit: Spade, Value: Joker},
	)
	return deck
}
