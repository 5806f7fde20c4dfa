package state

import (
	"slices"

	"github.com/palemoky/pyramid-climb/internal/game/card"
)

// Card 一张牌及其在本局中的状态
type Card struct {
	card.Card
	State    Code
	Position int  // 同一状态内的顺序
	Active   bool // 手牌被选中，准备打出
	Open     bool // 牌桌上的牌已翻开，可以被匹配
}

// Cards 本局全部牌，下标在一局内保持稳定
type Cards []Card

// NewCards 从整副牌创建全部在牌堆中的牌集合
func NewCards(deck card.Deck) Cards {
	cards := make(Cards, len(deck))
	for i, c := range deck {
		cards[i] = Card{Card: c}
	}
	return cards
}

// Clone 复制牌集合（Card 不含引用，浅拷贝即可）
func (cs Cards) Clone() Cards {
	return slices.Clone(cs)
}

// Find 按 ID 查找牌的下标，找不到返回 -1
func (cs Cards) Find(id string) int {
	return slices.IndexFunc(cs, func(c Card) bool { return c.ID() == id })
}

// InState 返回状态完全相同的牌的下标，顺序不保证
func (cs Cards) InState(code Code) []int {
	var idx []int
	for i := range cs {
		if cs[i].State == code {
			idx = append(idx, i)
		}
	}
	return idx
}

// Count 某状态下的牌数
func (cs Cards) Count(code Code) int {
	n := 0
	for i := range cs {
		if cs[i].State == code {
			n++
		}
	}
	return n
}

// AtLevel 返回牌桌某层的牌的下标，按 Position 升序
func (cs Cards) AtLevel(level int) []int {
	idx := cs.InState(OnBoard(level))
	slices.SortFunc(idx, func(a, b int) int { return cs[a].Position - cs[b].Position })
	return idx
}

// Available 牌堆中可抽取的牌
func (cs Cards) Available() []int {
	return cs.InState(InDeck())
}

// Select 按下标取出牌的副本
func (cs Cards) Select(idx []int) []Card {
	out := make([]Card, len(idx))
	for i, j := range idx {
		out[i] = cs[j]
	}
	return out
}

// NextPosition 某状态的追加位置。没有空缺时等于该状态的牌数，
// 有牌离开后也不会与现有位置重复
func (cs Cards) NextPosition(code Code) int {
	next := 0
	for i := range cs {
		if cs[i].State == code && cs[i].Position >= next {
			next = cs[i].Position + 1
		}
	}
	return next
}

// Move 将牌移到新状态并追加到该状态末尾
func (cs Cards) Move(i int, code Code) {
	if cs[i].State == code {
		return
	}
	cs[i].Position = cs.NextPosition(code)
	cs[i].State = code
}
