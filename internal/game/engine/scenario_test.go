package engine

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/pyramid-climb/internal/game/card"
	"github.com/palemoky/pyramid-climb/internal/game/state"
)

// scenario builds a hand-crafted snapshot. Cards not placed stay in the deck.
type scenario struct {
	t    *testing.T
	snap *Snapshot
}

func newScenario(t *testing.T) *scenario {
	t.Helper()
	return &scenario{t: t, snap: &Snapshot{
		GameID:  uuid.New(),
		Cards:   state.NewCards(card.NewDeck()),
		Players: make([]Player, DefaultPlayers),
	}}
}

func (sc *scenario) idx(id string) int {
	sc.t.Helper()
	i := sc.snap.Cards.Find(id)
	require.GreaterOrEqual(sc.t, i, 0, "unknown card %s", id)
	return i
}

// board appends cards to a level in order; a trailing "+" marks the card open.
func (sc *scenario) board(level int, ids ...string) *scenario {
	for _, id := range ids {
		open := strings.HasSuffix(id, "+")
		i := sc.idx(strings.TrimSuffix(id, "+"))
		sc.snap.Cards.Move(i, state.OnBoard(level))
		sc.snap.Cards[i].Open = open
	}
	return sc
}

func (sc *scenario) hand(player int, ids ...string) *scenario {
	for _, id := range ids {
		sc.snap.Cards.Move(sc.idx(id), state.InHand(player))
	}
	return sc
}

func (sc *scenario) played(player, level int, ids ...string) *scenario {
	for _, id := range ids {
		i := sc.idx(id)
		sc.snap.Cards.Move(i, state.Played(player, level))
		sc.snap.Cards[i].Active = true
	}
	return sc
}

func (sc *scenario) progress(player, level int) *scenario {
	sc.snap.Players[player].Level = level
	return sc
}

func (sc *scenario) game(listener Listener) *Game {
	sc.t.Helper()
	g, err := Restore(DefaultRules(), sc.snap, NewRand(1), listener)
	require.NoError(sc.t, err)
	return g
}

// cardOf returns the current record of a card.
func cardOf(t *testing.T, g *Game, id string) state.Card {
	t.Helper()
	snap := g.Snapshot()
	i := snap.Cards.Find(id)
	require.GreaterOrEqual(t, i, 0, "unknown card %s", id)
	return snap.Cards[i]
}
