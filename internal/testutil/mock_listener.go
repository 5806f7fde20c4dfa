//go:build !production

package testutil

import "github.com/stretchr/testify/mock"

// MockListener 对局通知 mock
type MockListener struct {
	mock.Mock
}

func (m *MockListener) GameWon(player int) {
	m.Called(player)
}

func (m *MockListener) LevelReverted(player, level int) {
	m.Called(player, level)
}

// MockSound 音效 mock
type MockSound struct {
	mock.Mock
}

func (m *MockSound) Play(name string) {
	m.Called(name)
}
