package sound

import "time"

// 音效名称，音效目录中同名的 .wav / .mp3 文件会替换内置音调
const (
	EffectSelect = "select" // 选中或取消选中手牌
	EffectPlay   = "play"   // 出牌成功
	EffectRevert = "revert" // 对手被退回
	EffectWin    = "win"    // 获胜
	EffectPass   = "pass"   // 过牌
)

// Effects 全部音效
var Effects = []string{EffectSelect, EffectPlay, EffectRevert, EffectWin, EffectPass}

// tone 没有音效文件时使用的内置音调
type tone struct {
	freq     float64
	duration time.Duration
}

var tones = map[string]tone{
	EffectSelect: {freq: 880, duration: 60 * time.Millisecond},
	EffectPlay:   {freq: 660, duration: 150 * time.Millisecond},
	EffectRevert: {freq: 220, duration: 300 * time.Millisecond},
	EffectWin:    {freq: 1046.5, duration: 450 * time.Millisecond},
	EffectPass:   {freq: 440, duration: 90 * time.Millisecond},
}
