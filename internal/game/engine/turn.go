package engine

import (
	"fmt"

	"github.com/palemoky/pyramid-climb/internal/apperrors"
	"github.com/palemoky/pyramid-climb/internal/game/match"
	"github.com/palemoky/pyramid-climb/internal/game/state"
	"github.com/palemoky/pyramid-climb/internal/logger"
)

// DrawCard 从牌堆随机抽一张牌放入 code 状态。牌堆为空不是错误
func (g *Game) DrawCard(code state.Code) error {
	if err := g.layout.Validate(code); err != nil {
		return err
	}
	return g.update(func(s *Snapshot) error {
		g.draw(s, code)
		return nil
	})
}

// SetCardActive 设置手牌的选中状态
func (g *Game) SetCardActive(id string, active bool) error {
	return g.setActive(id, func(bool) bool { return active })
}

// ToggleCardActive 切换手牌的选中状态
func (g *Game) ToggleCardActive(id string) error {
	return g.setActive(id, func(was bool) bool { return !was })
}

func (g *Game) setActive(id string, next func(bool) bool) error {
	return g.update(func(s *Snapshot) error {
		i, err := g.findCard(s, id)
		if err != nil {
			return err
		}
		code := s.Cards[i].State
		if !code.IsHand() {
			return fmt.Errorf("%w: %s is %s, not in a hand", apperrors.ErrInvalidCardState, id, code)
		}

		s.Cards[i].Active = next(s.Cards[i].Active)

		// 只预览当前玩家能匹配到哪些牌，不消耗回合
		if code.Player() == s.CurrentPlayer {
			g.preview(s)
		}
		return nil
	})
}

// PlayHand 打出玩家选中的手牌，向上一层推进，并检查对手此前的出牌是否仍然成立
func (g *Game) PlayHand(player int) (PlayResult, error) {
	result := PlayResult{Winner: -1}
	if err := g.layout.ValidatePlayer(player); err != nil {
		return result, err
	}

	var gameID string
	err := g.update(func(s *Snapshot) error {
		if player != s.CurrentPlayer {
			return fmt.Errorf("%w: player %d, current %d", apperrors.ErrNotYourTurn, player, s.CurrentPlayer)
		}
		if !g.canPlay(s, player) {
			return apperrors.ErrCannotPlay
		}
		gameID = s.GameID.String()

		var turn []int
		for _, i := range g.hand(s, player) {
			if s.Cards[i].Active {
				turn = append(turn, i)
			}
		}
		turnCards := s.Cards.Select(turn)

		currentLevel := g.level(s, player, 0)
		nextLevel := g.level(s, player, 1)

		// 下一层先全部合上，再由本层匹配到的牌重新翻开
		if g.onBoard(nextLevel) {
			for _, i := range s.Cards.AtLevel(nextLevel) {
				s.Cards[i].Open = false
			}
		}

		for _, i := range s.Cards.AtLevel(currentLevel) {
			s.Cards[i].Active = false
			if !match.HandMatches(turnCards, s.Cards[i]) {
				s.Cards[i].Open = false
				continue
			}
			s.Cards[i].Open = true
			next, err := g.rules.Profile.NextCards(s.Cards, g.heading(player), i)
			if err != nil {
				return err
			}
			for _, j := range next {
				s.Cards[j].Open = true
			}
		}

		// 打出的牌保留 Active，退回检查依赖它
		for _, i := range turn {
			s.Cards.Move(i, state.Played(player, currentLevel))
		}
		s.Players[player].Level++

		result.Reverts = g.revertOpponents(s, player, nextLevel, currentLevel)

		if s.Players[player].Level >= g.rules.Profile.Levels() {
			result.Winner = player
		}

		logger.LogInfo("game %s: player %d played %d card(s) at level %d", gameID, player, len(turn), currentLevel)
		return nil
	})
	if err != nil {
		return result, err
	}

	for _, r := range result.Reverts {
		logger.LogInfo("game %s: player %d reverted to level %d, %d card(s) returned", gameID, r.Player, r.Level, len(r.Cards))
		g.listener.LevelReverted(r.Player, r.Level)
	}
	if result.Winner >= 0 {
		logger.LogInfo("game %s: player %d wins", gameID, result.Winner)
		g.listener.GameWon(result.Winner)
		g.StartGame()
	}
	return result, nil
}

// revertOpponents 对手在 levels 上打出的牌若不再匹配该层任何牌，则退回手牌并回到该层
func (g *Game) revertOpponents(s *Snapshot, mover int, levels ...int) []Revert {
	var reverts []Revert
	for opponent := range s.Players {
		if opponent == mover {
			continue
		}
		for _, level := range levels {
			if !g.onBoard(level) {
				continue
			}
			played := s.Cards.InState(state.Played(opponent, level))
			if len(played) == 0 {
				continue
			}

			playedCards := s.Cards.Select(played)
			matched := false
			for _, i := range s.Cards.AtLevel(level) {
				if match.HandMatches(playedCards, s.Cards[i]) {
					matched = true
					break
				}
			}
			if matched {
				continue
			}

			r := Revert{Player: opponent, Level: level}
			for _, i := range played {
				s.Cards.Move(i, state.InHand(opponent))
				s.Cards[i].Active = false
				r.Cards = append(r.Cards, s.Cards[i].ID())
			}
			s.Players[opponent].Level = g.rules.Profile.Progress(g.heading(opponent), level)
			reverts = append(reverts, r)
		}
	}
	return reverts
}

// NextTurn 当前玩家摸一张牌，清除牌桌上的预览标记，轮到下一位玩家
func (g *Game) NextTurn() error {
	return g.update(func(s *Snapshot) error {
		g.draw(s, state.InHand(s.CurrentPlayer))
		for level := range g.rules.Profile.Levels() {
			for _, i := range s.Cards.AtLevel(level) {
				s.Cards[i].Active = false
			}
		}
		s.CurrentPlayer = (s.CurrentPlayer + 1) % g.rules.Players
		return nil
	})
}

// SwitchJoker 用玩家的手牌与 id 指定的牌交换位置：
// id 是王牌时换入玩家选中的（或第一张）手牌；否则换入玩家手中的王牌。
// 已打出的牌要留给回退检查，不参与交换。没有可交换的牌时什么也不做
func (g *Game) SwitchJoker(id string, player int) error {
	if err := g.layout.ValidatePlayer(player); err != nil {
		return err
	}

	swapped := false
	err := g.update(func(s *Snapshot) error {
		i, err := g.findCard(s, id)
		if err != nil {
			return err
		}
		if s.Cards[i].State == state.InHand(player) || s.Cards[i].State.Kind() == state.KindPlayed {
			return nil
		}

		hand := g.hand(s, player)
		var candidates []int
		if s.Cards[i].IsJoker() {
			for _, j := range hand {
				if s.Cards[j].Active {
					candidates = append(candidates, j)
				}
			}
			if len(candidates) == 0 {
				candidates = hand
			}
		} else {
			for _, j := range hand {
				if s.Cards[j].IsJoker() {
					candidates = append(candidates, j)
				}
			}
		}
		if len(candidates) == 0 {
			return nil
		}

		swap(s.Cards, i, candidates[0])
		if player == s.CurrentPlayer {
			g.preview(s)
		}
		swapped = true
		return nil
	})
	if err == nil && swapped {
		logger.LogInfo("player %d switched a joker with %s", player, id)
	}
	return err
}

// swap 交换两张牌的状态、位置与翻开标记，保持牌桌顺序不变
func swap(cards state.Cards, a, b int) {
	ca, cb := &cards[a], &cards[b]
	ca.State, cb.State = cb.State, ca.State
	ca.Position, cb.Position = cb.Position, ca.Position
	ca.Open, cb.Open = cb.Open, ca.Open
	ca.Active, cb.Active = false, false
	for _, c := range []*state.Card{ca, cb} {
		if !c.State.IsBoard() {
			c.Open = false
		}
	}
}
