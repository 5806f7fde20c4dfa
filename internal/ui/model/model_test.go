package model

import (
	"fmt"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/pyramid-climb/internal/apperrors"
	"github.com/palemoky/pyramid-climb/internal/game/engine"
	"github.com/palemoky/pyramid-climb/internal/logger"
	"github.com/palemoky/pyramid-climb/internal/protocol"
	"github.com/palemoky/pyramid-climb/internal/sound"
	"github.com/palemoky/pyramid-climb/internal/testutil"
)

func newModel(t *testing.T, snd SoundPlayer) *Model {
	t.Helper()
	m, err := New(engine.DefaultRules(), engine.NewRand(1), snd)
	require.NoError(t, err)
	return m
}

func typeLine(m *Model, line string) tea.Cmd {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestNew(t *testing.T) {
	t.Parallel()

	m := newModel(t, nil)
	assert.NotNil(t, m.Game())
	assert.Equal(t, 0, m.Game().CurrentPlayer())
	notice, isErr := m.Notice()
	assert.Empty(t, notice)
	assert.False(t, isErr)
	assert.NotNil(t, m.Init())

	_, err := New(engine.Rules{Players: 1}, nil, nil)
	assert.Error(t, err)
}

func TestToggleCommand(t *testing.T) {
	t.Parallel()

	snd := new(testutil.MockSound)
	snd.On("Play", sound.EffectSelect).Twice()
	m := newModel(t, snd)

	hand, err := m.Game().Hand(0)
	require.NoError(t, err)
	id := hand[0].ID()

	typeLine(m, id)
	hand, err = m.Game().Hand(0)
	require.NoError(t, err)
	assert.True(t, hand[0].Active)

	typeLine(m, hand[0].ID()[:1]+"x")
	_, isErr := m.Notice()
	assert.True(t, isErr)

	// 小写输入同样有效
	typeLine(m, strings.ToLower(id))
	hand, err = m.Game().Hand(0)
	require.NoError(t, err)
	assert.False(t, hand[0].Active)

	snd.AssertExpectations(t)
}

func TestToggleCommand_OpponentCard(t *testing.T) {
	t.Parallel()

	m := newModel(t, nil)
	opponent, err := m.Game().Hand(1)
	require.NoError(t, err)

	typeLine(m, opponent[0].ID())
	notice, isErr := m.Notice()
	assert.True(t, isErr)
	assert.Contains(t, notice, errNotYourCard.Error())

	opponent, err = m.Game().Hand(1)
	require.NoError(t, err)
	assert.False(t, opponent[0].Active)
}

func TestToggleCommand_AllOrNothing(t *testing.T) {
	t.Parallel()

	m := newModel(t, nil)
	hand, err := m.Game().Hand(0)
	require.NoError(t, err)

	typeLine(m, hand[0].ID()+" Z9")
	_, isErr := m.Notice()
	assert.True(t, isErr)

	hand, err = m.Game().Hand(0)
	require.NoError(t, err)
	assert.False(t, hand[0].Active)
}

func TestPassKey(t *testing.T) {
	t.Parallel()

	snd := new(testutil.MockSound)
	snd.On("Play", sound.EffectPass).Twice()
	m := newModel(t, snd)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, 1, m.Game().CurrentPlayer())

	typeLine(m, "pass")
	assert.Equal(t, 0, m.Game().CurrentPlayer())
	notice, isErr := m.Notice()
	assert.False(t, isErr)
	assert.Contains(t, notice, "玩家2")

	snd.AssertExpectations(t)
}

func TestPlayWithoutSelection(t *testing.T) {
	t.Parallel()

	m := newModel(t, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})

	notice, isErr := m.Notice()
	assert.True(t, isErr)
	assert.Equal(t, apperrors.ErrCannotPlay.Error(), notice)
}

// 不并行：logger 是全局的
func TestCommandErrorLogsCode(t *testing.T) {
	require.NoError(t, logger.Init(t.TempDir()))
	path := logger.GetLogPath()

	m := newModel(t, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	logger.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), fmt.Sprintf("command failed (code %d)", protocol.ErrCodeCannotPlay))
}

func TestNewGameCommand(t *testing.T) {
	t.Parallel()

	m := newModel(t, nil)
	id := m.Game().Snapshot().GameID

	typeLine(m, "new")
	assert.NotEqual(t, id, m.Game().Snapshot().GameID)

	id = m.Game().Snapshot().GameID
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.NotEqual(t, id, m.Game().Snapshot().GameID)
}

func TestJokerCommand(t *testing.T) {
	t.Parallel()

	m := newModel(t, nil)

	typeLine(m, "joker")
	notice, isErr := m.Notice()
	assert.True(t, isErr)
	assert.Contains(t, notice, "joker")

	typeLine(m, "joker Q9")
	_, isErr = m.Notice()
	assert.True(t, isErr)

	// 手中的牌不能和自己交换
	hand, err := m.Game().Hand(0)
	require.NoError(t, err)
	typeLine(m, "j "+hand[0].ID())
	notice, isErr = m.Notice()
	assert.False(t, isErr)
	assert.Equal(t, "没有可以交换的牌", notice)
}

func TestEvents(t *testing.T) {
	t.Parallel()

	snd := new(testutil.MockSound)
	snd.On("Play", mock.Anything).Return()
	ev := &events{sound: snd}

	ev.LevelReverted(1, 3)
	ev.GameWon(0)

	notices := ev.drain()
	require.Len(t, notices, 2)
	assert.Contains(t, notices[0], "玩家2")
	assert.Contains(t, notices[0], "3")
	assert.Contains(t, notices[1], "玩家1")
	assert.Empty(t, ev.drain())

	snd.AssertCalled(t, "Play", sound.EffectRevert)
	snd.AssertCalled(t, "Play", sound.EffectWin)
}

func TestHelpAndQuit(t *testing.T) {
	t.Parallel()

	m := newModel(t, nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.NotContains(t, m.View(), "【游戏目标】")
	m.Update(tea.KeyMsg{Type: tea.KeyF1})
	assert.Contains(t, m.View(), "【游戏目标】")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestQuitCommand(t *testing.T) {
	t.Parallel()

	m := newModel(t, nil)
	cmd := typeLine(m, "quit")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestView(t *testing.T) {
	t.Parallel()

	m := newModel(t, nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	out := m.View()

	assert.Contains(t, out, "金字塔攀登")
	assert.Contains(t, out, "玩家1")
	assert.Contains(t, out, "玩家2")
	assert.Contains(t, out, "L0")
	assert.Contains(t, out, "L6")

	hand, err := m.Game().Hand(0)
	require.NoError(t, err)
	for _, c := range hand {
		assert.Contains(t, out, c.ID())
	}
}
