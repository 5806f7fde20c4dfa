package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/pyramid-climb/internal/game/state"
	"github.com/palemoky/pyramid-climb/internal/ui/common"
)

// PlayerInfo is the per-seat status line.
type PlayerInfo struct {
	Progress int
	Target   int
	HandSize int
}

// Screen holds everything the game view draws.
type Screen struct {
	Width   int
	Levels  int
	Rows    [][]state.Card
	Players []PlayerInfo
	Current int
	Hand    []state.Card // current player's hand
	CanPlay bool
	Deck    int
	Notice  string
	IsError bool
	Input   string
	Help    string
}

// GameView renders the hot-seat game screen.
func GameView(s Screen) string {
	var sb strings.Builder

	title := common.TitleStyle("🔺 金字塔攀登")
	sb.WriteString(center(s.Width, title))
	sb.WriteString("\n\n")

	targets := make(map[int][]int)
	for p, info := range s.Players {
		if info.Progress < s.Levels {
			targets[info.Target] = append(targets[info.Target], p)
		}
	}
	sb.WriteString(center(s.Width, RenderBoard(s.Rows, targets)))
	sb.WriteString("\n")

	sb.WriteString(center(s.Width, renderPlayers(s)))
	sb.WriteString("\n\n")

	handTitle := fmt.Sprintf("%s %s 的手牌", common.CurrentIcon, common.PlayerName(s.Current))
	hand := lipgloss.JoinVertical(lipgloss.Center, handTitle, RenderHand(s.Hand))
	sb.WriteString(center(s.Width, hand))
	sb.WriteString("\n")

	sb.WriteString(center(s.Width, renderPrompt(s)))
	sb.WriteString("\n")
	sb.WriteString(center(s.Width, s.Input))

	if s.Notice != "" {
		style := common.NoticeStyle
		if s.IsError {
			style = common.ErrorStyle
		}
		sb.WriteString("\n")
		sb.WriteString(center(s.Width, style.Render(s.Notice)))
	}
	if s.Help != "" {
		sb.WriteString("\n\n")
		sb.WriteString(center(s.Width, s.Help))
	}
	return sb.String()
}

func renderPlayers(s Screen) string {
	parts := make([]string, 0, len(s.Players)+1)
	for p, info := range s.Players {
		nameStyle := lipgloss.NewStyle()
		if p == s.Current {
			nameStyle = nameStyle.Foreground(lipgloss.Color("220")).Bold(true)
		}
		line := fmt.Sprintf("%s\n进度 %d/%d\n🃏 %d张", nameStyle.Render(common.PlayerName(p)), info.Progress, s.Levels, info.HandSize)
		parts = append(parts, common.BoxStyle.Width(14).Render(line))
	}
	parts = append(parts, common.BoxStyle.Width(10).Render(fmt.Sprintf("牌堆\n%d张", s.Deck)))
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderPrompt(s Screen) string {
	if s.CanPlay {
		return common.PromptStyle.Render("可以出牌：输入 play 或按 ctrl+p")
	}
	return common.PromptStyle.Render("输入牌 ID 选牌，pass 过牌，joker <ID> 换王牌")
}

func center(width int, s string) string {
	if width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
