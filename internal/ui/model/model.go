// Package model contains the hot-seat game model.
package model

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/pyramid-climb/internal/apperrors"
	"github.com/palemoky/pyramid-climb/internal/game/card"
	"github.com/palemoky/pyramid-climb/internal/game/engine"
	"github.com/palemoky/pyramid-climb/internal/game/state"
	"github.com/palemoky/pyramid-climb/internal/logger"
	"github.com/palemoky/pyramid-climb/internal/sound"
	"github.com/palemoky/pyramid-climb/internal/ui/common"
	"github.com/palemoky/pyramid-climb/internal/ui/view"
)

var errNotYourCard = errors.New("只能选择自己的手牌")

// Model 同屏轮流对战的界面模型。只负责把输入翻译成引擎命令，不包含任何规则
type Model struct {
	game   *engine.Game
	events *events
	sound  SoundPlayer

	keys  KeyMap
	help  help.Model
	input textinput.Model

	width int

	notice      string
	isError     bool
	showingHelp bool
	quitting    bool
}

// New 创建模型并开始一局。rng 为 nil 时随机开局，snd 为 nil 时静音
func New(rules engine.Rules, rng *rand.Rand, snd SoundPlayer) (*Model, error) {
	if snd == nil {
		snd = noSound{}
	}
	ev := &events{sound: snd}

	g, err := engine.New(rules, rng, ev)
	if err != nil {
		return nil, err
	}

	input := textinput.New()
	input.Placeholder = "输入牌 ID（如 H5 D10）或 play / pass / joker H0"
	input.CharLimit = 64
	input.Width = 48
	input.Prompt = "> "
	input.Focus()

	return &Model{
		game:   g,
		events: ev,
		sound:  snd,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  input,
	}, nil
}

// Game 返回当前对局，供测试与入口程序查询
func (m *Model) Game() *engine.Game { return m.game }

// Notice 最近一条提示，以及它是否为错误
func (m *Model) Notice() (string, bool) { return m.notice, m.isError }

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showingHelp = !m.showingHelp
			m.help.ShowAll = m.showingHelp
			return m, nil
		case key.Matches(msg, m.keys.Play):
			m.apply(m.play())
			return m, nil
		case key.Matches(msg, m.keys.Pass):
			m.apply(m.pass())
			return m, nil
		case key.Matches(msg, m.keys.NewGame):
			m.apply(m.newGame())
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			line := m.input.Value()
			m.input.SetValue("")
			return m, m.exec(line)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// exec 执行一行文本命令
func (m *Model) exec(line string) tea.Cmd {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "q", "exit":
		m.quitting = true
		return tea.Quit
	case "play", "p":
		m.apply(m.play())
	case "pass", "s", "skip":
		m.apply(m.pass())
	case "new", "n":
		m.apply(m.newGame())
	case "help", "h", "?":
		m.showingHelp = !m.showingHelp
		m.help.ShowAll = m.showingHelp
	case "joker", "j":
		if len(fields) != 2 {
			m.apply("", errors.New("用法：joker <牌 ID>"))
			return nil
		}
		m.apply(m.switchJoker(strings.ToUpper(fields[1])))
	default:
		m.apply(m.toggle(fields))
	}
	return nil
}

// apply 显示命令结果，再追加引擎通知
func (m *Model) apply(notice string, err error) {
	if err != nil {
		logger.LogError("command failed (code %d): %v", apperrors.Code(err), err)
		m.notice, m.isError = err.Error(), true
		return
	}
	m.notice, m.isError = notice, false
	if extra := m.events.drain(); len(extra) > 0 {
		m.notice = strings.Join(append([]string{notice}, extra...), "  ")
		m.notice = strings.TrimSpace(m.notice)
	}
}

func (m *Model) toggle(ids []string) (string, error) {
	hand, err := m.game.Hand(m.game.CurrentPlayer())
	if err != nil {
		return "", err
	}

	// 先全部校验，避免只切换了一部分
	upper := make([]string, len(ids))
	for i, raw := range ids {
		id := strings.ToUpper(raw)
		if _, err := card.ParseID(id); err != nil {
			return "", err
		}
		if !slices.ContainsFunc(hand, func(c state.Card) bool { return c.ID() == id }) {
			return "", fmt.Errorf("%w: %s", errNotYourCard, id)
		}
		upper[i] = id
	}

	for _, id := range upper {
		if err := m.game.ToggleCardActive(id); err != nil {
			return "", err
		}
	}
	m.sound.Play(sound.EffectSelect)

	if m.game.CanPlay() {
		return "可以出牌", nil
	}
	return "", nil
}

func (m *Model) play() (string, error) {
	player := m.game.CurrentPlayer()
	result, err := m.game.PlayHand(player)
	if err != nil {
		return "", err
	}
	if result.Winner >= 0 {
		return "", nil
	}
	m.sound.Play(sound.EffectPlay)
	progress, _ := m.game.Progress(player)
	return fmt.Sprintf("%s 出牌成功，进度 %d/%d", common.PlayerName(player), progress, m.game.Rules().Profile.Levels()), nil
}

func (m *Model) pass() (string, error) {
	player := m.game.CurrentPlayer()
	if err := m.game.NextTurn(); err != nil {
		return "", err
	}
	m.sound.Play(sound.EffectPass)
	return fmt.Sprintf("%s 过牌，轮到 %s", common.PlayerName(player), common.PlayerName(m.game.CurrentPlayer())), nil
}

func (m *Model) newGame() (string, error) {
	m.game.StartGame()
	return "新的一局已开始", nil
}

func (m *Model) switchJoker(id string) (string, error) {
	player := m.game.CurrentPlayer()
	before := m.game.Snapshot()
	if err := m.game.SwitchJoker(id, player); err != nil {
		return "", err
	}

	i := before.Cards.Find(id)
	if m.game.Snapshot().Cards[i].State == before.Cards[i].State {
		return "没有可以交换的牌", nil
	}
	m.sound.Play(sound.EffectSelect)
	return fmt.Sprintf("已交换 %s", id), nil
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	g := m.game
	rules := g.Rules()
	current := g.CurrentPlayer()

	players := make([]view.PlayerInfo, rules.Players)
	for p := range players {
		progress, _ := g.Progress(p)
		target, _ := g.PlayerLevel(p, 0)
		hand, _ := g.Hand(p)
		players[p] = view.PlayerInfo{Progress: progress, Target: target, HandSize: len(hand)}
	}
	hand, _ := g.Hand(current)

	helpText := m.help.View(m.keys)
	if m.showingHelp {
		helpText = lipgloss.JoinVertical(lipgloss.Left, view.RenderGameRules(), helpText)
	}

	content := view.GameView(view.Screen{
		Width:   m.width,
		Levels:  rules.Profile.Levels(),
		Rows:    g.BoardCards(),
		Players: players,
		Current: current,
		Hand:    hand,
		CanPlay: g.CanPlay(),
		Deck:    g.DeckSize(),
		Notice:  m.notice,
		IsError: m.isError,
		Input:   m.input.View(),
		Help:    helpText,
	})
	return common.DocStyle.Render(content)
}
