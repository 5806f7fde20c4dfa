// Package view provides UI rendering functions.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/pyramid-climb/internal/game/state"
	"github.com/palemoky/pyramid-climb/internal/ui/common"
)

// RenderBoardCard renders a board slot: face and ID when open, the card back otherwise.
func RenderBoardCard(c state.Card) string {
	if !c.Open {
		return lipgloss.JoinVertical(lipgloss.Center,
			common.BackStyle().Render(common.CardBack),
			strings.Repeat(" ", common.CardWidth))
	}
	return renderFace(c)
}

// RenderHandCard renders a hand card with its ID below.
func RenderHandCard(c state.Card) string {
	return renderFace(c)
}

func renderFace(c state.Card) string {
	face := common.FaceStyle(c.Card, c.Active).Render(c.String())
	id := common.LabelStyle.Width(common.CardWidth).Align(lipgloss.Center).Render(c.ID())
	return lipgloss.JoinVertical(lipgloss.Center, face, id)
}

// RenderBoard draws the pyramid with the last level on top, so player 1
// climbs down from the top while player 0 climbs up from the bottom.
// targets maps a level to the players currently aiming at it.
func RenderBoard(rows [][]state.Card, targets map[int][]int) string {
	lines := make([]string, 0, len(rows))
	markers := make([]string, 0, len(rows))

	for level := len(rows) - 1; level >= 0; level-- {
		slots := make([]string, 0, len(rows[level]))
		for _, c := range rows[level] {
			slots = append(slots, RenderBoardCard(c))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, joinSpaced(slots)...)
		lines = append(lines, row)

		label := common.LabelStyle.Render(fmt.Sprintf("L%d", level))
		if players := targets[level]; len(players) > 0 {
			names := make([]string, len(players))
			for i, p := range players {
				names[i] = common.PlayerName(p)
			}
			label += " " + common.NoticeStyle.Render(common.TargetIcon+" "+strings.Join(names, " "))
		}
		markers = append(markers, lipgloss.NewStyle().Height(lipgloss.Height(row)).Render(label))
	}

	pyramid := lipgloss.JoinVertical(lipgloss.Center, lines...)
	column := lipgloss.JoinVertical(lipgloss.Left, markers...)
	return common.BoxStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, pyramid, "  ", column))
}

// RenderHand draws a hand left to right in position order.
func RenderHand(cards []state.Card) string {
	if len(cards) == 0 {
		return common.LabelStyle.Render("(没有手牌)")
	}

	slots := make([]string, 0, len(cards))
	for _, c := range cards {
		slots = append(slots, RenderHandCard(c))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinSpaced(slots)...)
}

func joinSpaced(parts []string) []string {
	if len(parts) < 2 {
		return parts
	}
	out := make([]string, 0, 2*len(parts)-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}
