// Package ui provides the main entry point for the UI.
package ui

import (
	"math/rand/v2"

	"github.com/palemoky/pyramid-climb/internal/game/engine"
	"github.com/palemoky/pyramid-climb/internal/ui/model"
)

// SoundPlayer plays named sound effects; nil means silent.
type SoundPlayer = model.SoundPlayer

// NewHotSeatModel creates the model for players sharing one terminal.
func NewHotSeatModel(rules engine.Rules, rng *rand.Rand, snd SoundPlayer) (*model.Model, error) {
	return model.New(rules, rng, snd)
}
