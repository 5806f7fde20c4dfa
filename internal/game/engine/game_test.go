package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/pyramid-climb/internal/apperrors"
	"github.com/palemoky/pyramid-climb/internal/game/board"
	"github.com/palemoky/pyramid-climb/internal/game/state"
)

func newSeeded(t *testing.T, seed uint64) *Game {
	t.Helper()
	g, err := New(DefaultRules(), NewRand(seed), nil)
	require.NoError(t, err)
	return g
}

// assertFreshDeal checks the invariants of a game that was just dealt.
func assertFreshDeal(t *testing.T, g *Game) {
	t.Helper()

	snap := g.Snapshot()
	require.Len(t, snap.Cards, 54)
	assert.Equal(t, 0, snap.CurrentPlayer)

	ids := make(map[string]bool)
	for _, c := range snap.Cards {
		assert.False(t, ids[c.ID()], "duplicate card %s", c.ID())
		ids[c.ID()] = true
		assert.False(t, c.Active, "stale active flag on %s", c.ID())
		require.NoError(t, g.Rules().Layout().Validate(c.State))
		assert.NotEqual(t, state.KindPlayed, c.State.Kind())
	}

	open := 0
	for level, row := range g.BoardCards() {
		assert.Len(t, row, board.DefaultProfile.Cap(level))
		for pos, c := range row {
			assert.Equal(t, pos, c.Position)
			if c.Open {
				open++
			}
		}
	}
	assert.Equal(t, 2, open)

	rows := g.BoardCards()
	assert.True(t, rows[0][0].Open)
	last := rows[len(rows)-1]
	assert.True(t, last[len(last)-1].Open)

	for p := range DefaultPlayers {
		hand, err := g.Hand(p)
		require.NoError(t, err)
		assert.Len(t, hand, DefaultHandSize)
		progress, err := g.Progress(p)
		require.NoError(t, err)
		assert.Zero(t, progress)
	}
	assert.Equal(t, 54-16-2*DefaultHandSize, g.DeckSize())
}

func TestNew_DealsFullState(t *testing.T) {
	t.Parallel()

	g := newSeeded(t, 42)
	assertFreshDeal(t, g)
	assert.False(t, g.CanPlay())
}

func TestNew_InvalidRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rules Rules
	}{
		{"one player", Rules{Players: 1, HandSize: 7, Profile: board.DefaultProfile}},
		{"empty hand", Rules{Players: 2, HandSize: 0, Profile: board.DefaultProfile}},
		{"empty profile", Rules{Players: 2, HandSize: 7, Profile: board.Profile{}}},
		{"too many cards", Rules{Players: 2, HandSize: 20, Profile: board.DefaultProfile}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g, err := New(tt.rules, nil, nil)
			assert.Error(t, err)
			assert.Nil(t, g)
		})
	}
}

func TestNew_SameSeedSameDeal(t *testing.T) {
	t.Parallel()

	a := newSeeded(t, 7).Snapshot()
	b := newSeeded(t, 7).Snapshot()
	c := newSeeded(t, 8).Snapshot()

	assert.Equal(t, a.Cards, b.Cards)
	assert.NotEqual(t, a.Cards, c.Cards)
	assert.NotEqual(t, a.GameID, b.GameID)
}

func TestStartGame_Twice(t *testing.T) {
	t.Parallel()

	g := newSeeded(t, 3)
	hand, err := g.Hand(0)
	require.NoError(t, err)
	require.NoError(t, g.ToggleCardActive(hand[0].ID()))
	require.NoError(t, g.NextTurn())
	firstID := g.Snapshot().GameID

	g.StartGame()
	assertFreshDeal(t, g)
	g.StartGame()
	assertFreshDeal(t, g)
	assert.NotEqual(t, firstID, g.Snapshot().GameID)
}

func TestDrawCard(t *testing.T) {
	t.Parallel()

	g := newSeeded(t, 5)
	before := g.Snapshot()

	err := g.DrawCard(state.OnBoard(7))
	assert.ErrorIs(t, err, apperrors.ErrInvalidCardState)
	err = g.DrawCard(state.InHand(2))
	assert.ErrorIs(t, err, apperrors.ErrInvalidCardState)
	assert.Equal(t, before, g.Snapshot(), "failed draw must not mutate")

	require.NoError(t, g.DrawCard(state.InHand(1)))
	hand, err := g.Hand(1)
	require.NoError(t, err)
	assert.Len(t, hand, DefaultHandSize+1)
	assert.Equal(t, DefaultHandSize, hand[len(hand)-1].Position)
}

func TestDrawCard_EmptyDeck(t *testing.T) {
	t.Parallel()

	g := newSeeded(t, 9)
	for g.DeckSize() > 0 {
		require.NoError(t, g.DrawCard(state.InHand(0)))
	}

	before := g.Snapshot()
	require.NoError(t, g.DrawCard(state.InHand(0)))
	assert.Equal(t, before, g.Snapshot())
}

func TestQueries(t *testing.T) {
	t.Parallel()

	g := newSeeded(t, 11)

	tests := []struct {
		name     string
		player   int
		offset   int
		expected int
	}{
		{"player 0 current", 0, 0, 0},
		{"player 0 next", 0, 1, 1},
		{"player 1 current", 1, 0, 6},
		{"player 1 next", 1, 1, 5},
	}
	for _, tt := range tests {
		level, err := g.PlayerLevel(tt.player, tt.offset)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.expected, level, tt.name)
	}

	_, err := g.PlayerLevel(2, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPlayerID)
	_, err = g.Hand(-1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPlayerID)
	_, err = g.LevelCards(7)
	assert.ErrorIs(t, err, apperrors.ErrOutOfBoardRange)
	_, err = g.CanPlayerPlay(5)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPlayerID)

	row, err := g.LevelCards(3)
	require.NoError(t, err)
	assert.Len(t, row, 4)
}

func TestSnapshot_IsCopy(t *testing.T) {
	t.Parallel()

	g := newSeeded(t, 13)
	snap := g.Snapshot()
	snap.Cards[0].State = state.Played(0, 0)
	snap.Players[0].Level = 5

	fresh := g.Snapshot()
	assert.NotEqual(t, state.Played(0, 0), fresh.Cards[0].State)
	assert.Zero(t, fresh.Players[0].Level)
}

func TestRestore_Invalid(t *testing.T) {
	t.Parallel()

	valid := newSeeded(t, 17).Snapshot()

	tests := []struct {
		name   string
		mutate func(s *Snapshot)
		target error
	}{
		{"player count", func(s *Snapshot) { s.Players = s.Players[:1] }, apperrors.ErrInvalidSnapshot},
		{"current player", func(s *Snapshot) { s.CurrentPlayer = 4 }, apperrors.ErrInvalidPlayerID},
		{"level too high", func(s *Snapshot) { s.Players[1].Level = 8 }, apperrors.ErrInvalidSnapshot},
		{"missing card", func(s *Snapshot) { s.Cards = s.Cards[1:] }, apperrors.ErrInvalidSnapshot},
		{"duplicate card", func(s *Snapshot) { s.Cards[1].Card = s.Cards[0].Card }, apperrors.ErrInvalidSnapshot},
		{"bad card", func(s *Snapshot) { s.Cards[0].Value = 20 }, apperrors.ErrInvalidCard},
		{"bad state", func(s *Snapshot) { s.Cards[0].State = state.Played(3, 0) }, apperrors.ErrInvalidCardState},
		{"duplicate position", func(s *Snapshot) {
			idx := s.Cards.AtLevel(3)
			s.Cards[idx[1]].Position = s.Cards[idx[0]].Position
		}, apperrors.ErrInvalidSnapshot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			snap := valid.Clone()
			tt.mutate(snap)
			g, err := Restore(DefaultRules(), snap, nil, nil)
			assert.ErrorIs(t, err, tt.target)
			assert.Nil(t, g)
		})
	}

	g, err := Restore(DefaultRules(), valid, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, valid, g.Snapshot())
}
