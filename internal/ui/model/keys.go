package model

import "github.com/charmbracelet/bubbles/key"

// KeyMap 快捷键
type KeyMap struct {
	Submit  key.Binding
	Play    key.Binding
	Pass    key.Binding
	NewGame key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap 默认快捷键
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "执行命令"),
		),
		Play: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "出牌"),
		),
		Pass: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "过牌"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "重新开局"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "规则"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "退出"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Play, k.Pass, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Play, k.Pass},
		{k.NewGame, k.Help, k.Quit},
	}
}
