// Package match decides whether the active cards of a hand can claim a board card.
package match

import (
	"iter"

	"github.com/palemoky/pyramid-climb/internal/game/card"
	"github.com/palemoky/pyramid-climb/internal/game/state"
)

// Combinations yields every signed sum of values: each value takes part in
// every sum, added or subtracted, giving 2^n results (a single 0 for n=0).
// Equal sums from different sign choices are all yielded.
func Combinations(values []int) iter.Seq[int] {
	return func(yield func(int) bool) {
		combine(values, 0, yield)
	}
}

func combine(values []int, acc int, yield func(int) bool) bool {
	if len(values) == 0 {
		return yield(acc)
	}
	head, rest := values[0], values[1:]
	return combine(rest, acc+head, yield) && combine(rest, acc-head, yield)
}

// ActiveValues returns the values of the active cards in hand.
func ActiveValues(hand []state.Card) []int {
	var values []int
	for _, c := range hand {
		if c.Active {
			values = append(values, int(c.Value))
		}
	}
	return values
}

// HandMatches reports whether the active cards in hand match target.
// A closed target never matches; a joker on either side always does.
func HandMatches(hand []state.Card, target state.Card) bool {
	if !target.Open {
		return false
	}

	values := ActiveValues(hand)
	if target.Value == card.Joker {
		return true
	}
	for _, v := range values {
		if v == int(card.Joker) {
			return true
		}
	}

	for sum := range Combinations(values) {
		if sum == int(target.Value) {
			return true
		}
	}
	return false
}
