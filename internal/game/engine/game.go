package engine

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/palemoky/pyramid-climb/internal/apperrors"
	"github.com/palemoky/pyramid-climb/internal/game/board"
	"github.com/palemoky/pyramid-climb/internal/game/card"
	"github.com/palemoky/pyramid-climb/internal/game/match"
	"github.com/palemoky/pyramid-climb/internal/game/state"
	"github.com/palemoky/pyramid-climb/internal/logger"
)

// Game 对局会话。每个命令复制当前快照、在副本上修改、校验通过后整体替换，
// 读者永远看不到修改到一半的状态
type Game struct {
	rules    Rules
	layout   state.Layout
	rng      *rand.Rand
	listener Listener

	snap *Snapshot
	mu   sync.RWMutex
}

// NewRand 创建可复现的随机源
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// New 创建并开始一局游戏。rng 为 nil 时使用随机种子，listener 可为 nil
func New(rules Rules, rng *rand.Rand, listener Listener) (*Game, error) {
	g, err := newGame(rules, rng, listener)
	if err != nil {
		return nil, err
	}
	g.StartGame()
	return g, nil
}

// Restore 从快照恢复对局，快照中的每张牌和每个玩家都会被校验
func Restore(rules Rules, snap *Snapshot, rng *rand.Rand, listener Listener) (*Game, error) {
	g, err := newGame(rules, rng, listener)
	if err != nil {
		return nil, err
	}
	if err := g.validateSnapshot(snap); err != nil {
		return nil, err
	}
	g.snap = snap.Clone()
	return g, nil
}

func newGame(rules Rules, rng *rand.Rand, listener Listener) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(rand.Uint64())
	}
	if listener == nil {
		listener = nopListener{}
	}
	return &Game{
		rules:    rules,
		layout:   rules.Layout(),
		rng:      rng,
		listener: listener,
	}, nil
}

func (g *Game) validateSnapshot(snap *Snapshot) error {
	if snap == nil || len(snap.Players) != g.rules.Players {
		return fmt.Errorf("%w: player count mismatch", apperrors.ErrInvalidSnapshot)
	}
	if err := g.layout.ValidatePlayer(snap.CurrentPlayer); err != nil {
		return err
	}
	for i, p := range snap.Players {
		if p.Level < 0 || p.Level > g.rules.Profile.Levels() {
			return fmt.Errorf("%w: player %d level %d", apperrors.ErrInvalidSnapshot, i, p.Level)
		}
	}

	deck := card.NewDeck()
	if len(snap.Cards) != len(deck) {
		return fmt.Errorf("%w: %d cards", apperrors.ErrInvalidSnapshot, len(snap.Cards))
	}
	seen := make(map[string]bool, len(deck))
	// 牌堆无序，其余状态内的位置不能重复
	positions := make(map[state.Code]map[int]bool)
	for _, c := range snap.Cards {
		id, err := card.Identify(c.Card)
		if err != nil {
			return err
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate card %s", apperrors.ErrInvalidSnapshot, id)
		}
		seen[id] = true
		if err := g.layout.Validate(c.State); err != nil {
			return err
		}
		if c.State.IsDeck() {
			continue
		}
		if positions[c.State] == nil {
			positions[c.State] = make(map[int]bool)
		}
		if positions[c.State][c.Position] {
			return fmt.Errorf("%w: %s position %d repeated", apperrors.ErrInvalidSnapshot, c.State, c.Position)
		}
		positions[c.State][c.Position] = true
	}
	return nil
}

// StartGame 重新洗牌发牌，完全替换之前的状态
func (g *Game) StartGame() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.snap = g.deal()
	logger.LogInfo("game %s started: %d players, %d levels", g.snap.GameID, g.rules.Players, g.rules.Profile.Levels())
}

// deal 牌桌逐层发满，翻开两个角上的牌，再依次给每位玩家发手牌
func (g *Game) deal() *Snapshot {
	s := &Snapshot{
		GameID:  uuid.New(),
		Cards:   state.NewCards(card.NewDeck()),
		Players: make([]Player, g.rules.Players),
	}

	levels := g.rules.Profile.Levels()
	for level := range levels {
		for range g.rules.Profile.Cap(level) {
			g.draw(s, state.OnBoard(level))
		}
	}

	if first := s.Cards.AtLevel(0); len(first) > 0 {
		s.Cards[first[0]].Open = true
	}
	if last := s.Cards.AtLevel(levels - 1); len(last) > 0 {
		s.Cards[last[len(last)-1]].Open = true
	}

	for p := range g.rules.Players {
		for range g.rules.HandSize {
			g.draw(s, state.InHand(p))
		}
	}
	return s
}

// draw 从牌堆随机抽一张牌放入 code 状态末尾。牌堆为空时什么也不做
func (g *Game) draw(s *Snapshot, code state.Code) {
	available := s.Cards.Available()
	if len(available) == 0 {
		return
	}
	i := available[g.rng.IntN(len(available))]
	s.Cards.Move(i, code)
}

// update 在当前快照的副本上执行 fn，成功后发布副本
func (g *Game) update(fn func(s *Snapshot) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	next := g.snap.Clone()
	if err := fn(next); err != nil {
		return err
	}
	g.snap = next
	return nil
}

// heading 玩家的攀登方向
func (g *Game) heading(player int) board.Heading {
	return board.HeadingFor(player)
}

// level 玩家当前（加偏移后）的目标层
func (g *Game) level(s *Snapshot, player, offset int) int {
	return g.rules.Profile.Level(g.heading(player), s.Players[player].Level, offset)
}

// hand 玩家手牌下标，按位置排序
func (g *Game) hand(s *Snapshot, player int) []int {
	idx := s.Cards.InState(state.InHand(player))
	slices.SortFunc(idx, func(a, b int) int { return s.Cards[a].Position - s.Cards[b].Position })
	return idx
}

func (g *Game) onBoard(level int) bool {
	return level >= 0 && level < g.rules.Profile.Levels()
}

func (g *Game) canPlay(s *Snapshot, player int) bool {
	level := g.level(s, player, 0)
	if !g.onBoard(level) {
		return false
	}
	for _, i := range s.Cards.AtLevel(level) {
		if s.Cards[i].Active {
			return true
		}
	}
	return false
}

// preview 按当前玩家选中的手牌重新标记目标层上可匹配的牌
func (g *Game) preview(s *Snapshot) {
	player := s.CurrentPlayer
	level := g.level(s, player, 0)
	if !g.onBoard(level) {
		return
	}
	hand := s.Cards.Select(g.hand(s, player))
	for _, i := range s.Cards.AtLevel(level) {
		s.Cards[i].Active = match.HandMatches(hand, s.Cards[i])
	}
}

func (g *Game) findCard(s *Snapshot, id string) (int, error) {
	i := s.Cards.Find(id)
	if i < 0 {
		return -1, fmt.Errorf("%w: %q", apperrors.ErrInvalidCard, id)
	}
	return i, nil
}

// --- 只读查询 ---

// Rules 对局规则
func (g *Game) Rules() Rules { return g.rules }

// Snapshot 当前状态的副本
func (g *Game) Snapshot() *Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snap.Clone()
}

// CurrentPlayer 当前行动的玩家
func (g *Game) CurrentPlayer() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snap.CurrentPlayer
}

// Hand 玩家手牌，按位置排序
func (g *Game) Hand(player int) ([]state.Card, error) {
	if err := g.layout.ValidatePlayer(player); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snap.Cards.Select(g.hand(g.snap, player)), nil
}

// LevelCards 牌桌某层的牌，按位置排序
func (g *Game) LevelCards(level int) ([]state.Card, error) {
	if !g.onBoard(level) {
		return nil, fmt.Errorf("%w: level %d", apperrors.ErrOutOfBoardRange, level)
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snap.Cards.Select(g.snap.Cards.AtLevel(level)), nil
}

// BoardCards 整个牌桌，按层排列
func (g *Game) BoardCards() [][]state.Card {
	g.mu.RLock()
	defer g.mu.RUnlock()

	rows := make([][]state.Card, g.rules.Profile.Levels())
	for level := range rows {
		rows[level] = g.snap.Cards.Select(g.snap.Cards.AtLevel(level))
	}
	return rows
}

// PlayerLevel 玩家的目标层（考虑攀登方向），offset 为向前看的层数
func (g *Game) PlayerLevel(player, offset int) (int, error) {
	if err := g.layout.ValidatePlayer(player); err != nil {
		return 0, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.level(g.snap, player, offset), nil
}

// Progress 玩家已通过的层数
func (g *Game) Progress(player int) (int, error) {
	if err := g.layout.ValidatePlayer(player); err != nil {
		return 0, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snap.Players[player].Level, nil
}

// CanPlay 当前玩家能否出牌
func (g *Game) CanPlay() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.canPlay(g.snap, g.snap.CurrentPlayer)
}

// CanPlayerPlay 指定玩家的目标层上是否有被标记为可匹配的牌
func (g *Game) CanPlayerPlay(player int) (bool, error) {
	if err := g.layout.ValidatePlayer(player); err != nil {
		return false, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.canPlay(g.snap, player), nil
}

// DeckSize 牌堆剩余牌数
func (g *Game) DeckSize() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.snap.Cards.Available())
}
