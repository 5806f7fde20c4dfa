// Package board describes the pyramid board: per-level capacities, the
// direction each player climbs in and which cards a newly opened card unlocks.
package board

import (
	"errors"
	"fmt"
	"slices"

	"github.com/palemoky/pyramid-climb/internal/apperrors"
	"github.com/palemoky/pyramid-climb/internal/game/state"
)

// Profile holds the capacity of each board level, from level 0 upwards.
type Profile []int

// DefaultProfile is the seven-level pyramid.
var DefaultProfile = Profile{1, 2, 3, 4, 3, 2, 1}

// Levels returns the board depth L.
func (p Profile) Levels() int { return len(p) }

// Cap returns the capacity of a level, or 0 outside the board.
func (p Profile) Cap(level int) int {
	if level < 0 || level >= len(p) {
		return 0
	}
	return p[level]
}

// Size is the number of cards the board holds when fully dealt.
func (p Profile) Size() int {
	n := 0
	for _, c := range p {
		n += c
	}
	return n
}

// Validate rejects empty profiles and non-positive capacities.
func (p Profile) Validate() error {
	if len(p) == 0 {
		return errors.New("board profile is empty")
	}
	for i, c := range p {
		if c <= 0 {
			return fmt.Errorf("board level %d has capacity %d", i, c)
		}
	}
	return nil
}

// Heading is the direction a player climbs the board in.
type Heading int

const (
	Ascending  Heading = 1
	Descending Heading = -1
)

// HeadingFor alternates headings by seat: player 0 climbs from level 0,
// player 1 from the last level.
func HeadingFor(player int) Heading {
	if player%2 == 0 {
		return Ascending
	}
	return Descending
}

// Level maps a player's progress (plus offset) to an absolute board level.
// The result may fall outside the board once the player has finished.
func (p Profile) Level(h Heading, progress, offset int) int {
	if h == Ascending {
		return progress + offset
	}
	return len(p) - 1 - progress - offset
}

// Progress is the inverse of Level with a zero offset.
func (p Profile) Progress(h Heading, level int) int {
	if h == Ascending {
		return level
	}
	return len(p) - 1 - level
}

// Coord addresses a slot on the board.
type Coord struct {
	Level int
	Index int
}

// Next returns the slots on the adjacent level, in heading direction, that a
// card at `at` unlocks: the same index, plus the diagonal neighbour when the
// next level is wider (index+1) or narrower (index-1).
func (p Profile) Next(h Heading, at Coord) []Coord {
	next := at.Level + int(h)
	if next < 0 || next >= len(p) {
		return nil
	}

	candidates := []Coord{{Level: next, Index: at.Index}}
	switch {
	case p[next] > p.Cap(at.Level):
		candidates = append(candidates, Coord{Level: next, Index: at.Index + 1})
	case p[next] < p.Cap(at.Level):
		candidates = append(candidates, Coord{Level: next, Index: at.Index - 1})
	}

	return slices.DeleteFunc(candidates, func(c Coord) bool {
		return c.Index < 0 || c.Index >= p[next]
	})
}

// NextCards resolves Next against the cards currently dealt and returns the
// indices of the unlocked cards. The card at i must be on the board.
func (p Profile) NextCards(cards state.Cards, h Heading, i int) ([]int, error) {
	code := cards[i].State
	if !code.IsBoard() || code.Level() >= len(p) {
		return nil, fmt.Errorf("%w: %s is %s", apperrors.ErrOutOfBoardRange, cards[i].ID(), code)
	}

	row := cards.AtLevel(code.Level())
	at := Coord{Level: code.Level(), Index: slices.Index(row, i)}

	var result []int
	var nextRow []int
	for _, c := range p.Next(h, at) {
		if nextRow == nil {
			nextRow = cards.AtLevel(c.Level)
		}
		if c.Index < len(nextRow) {
			result = append(result, nextRow[c.Index])
		}
	}
	return result, nil
}
