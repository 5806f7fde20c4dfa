// Package common provides shared styles and utilities for the UI.
package common

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/pyramid-climb/internal/game/card"
)

// Icon constants
const (
	CardBack    = "▒▒▒"
	TargetIcon  = "◀"
	CurrentIcon = "👉"
	WinnerIcon  = "🏆"
)

// Lipgloss Styles
var (
	DocStyle    = lipgloss.NewStyle().Margin(1, 2)
	RedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	BlackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	GrayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	PromptStyle = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	NoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	LabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	JokerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B008B")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
)

// CardWidth is the rendered width of a card face
const CardWidth = 5

// FaceStyle returns the style for a face-up card; active cards are highlighted.
func FaceStyle(c card.Card, active bool) lipgloss.Style {
	style := BlackStyle
	switch {
	case c.IsJoker():
		style = JokerStyle
	case c.Color() == card.Red:
		style = RedStyle
	}
	style = style.Width(CardWidth).Align(lipgloss.Center)
	if active {
		style = style.Background(lipgloss.Color("#FFD700")).Underline(true)
	}
	return style
}

// BackStyle is used for closed board cards
func BackStyle() lipgloss.Style {
	return GrayStyle.Width(CardWidth).Align(lipgloss.Center)
}
