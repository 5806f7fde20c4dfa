package model

import (
	"fmt"

	"github.com/palemoky/pyramid-climb/internal/sound"
	"github.com/palemoky/pyramid-climb/internal/ui/common"
)

// SoundPlayer 播放音效，sound.SoundManager 实现了它
type SoundPlayer interface {
	Play(name string)
}

type noSound struct{}

func (noSound) Play(string) {}

// events 接收引擎通知，攒成提示信息，下一次刷新时显示
type events struct {
	sound   SoundPlayer
	notices []string
}

func (e *events) GameWon(player int) {
	e.sound.Play(sound.EffectWin)
	e.notices = append(e.notices, fmt.Sprintf("%s %s 登顶获胜！新的一局已开始", common.WinnerIcon, common.PlayerName(player)))
}

func (e *events) LevelReverted(player, level int) {
	e.sound.Play(sound.EffectRevert)
	e.notices = append(e.notices, fmt.Sprintf("%s 在第 %d 层的牌不再匹配，退回手牌", common.PlayerName(player), level))
}

// drain 取出并清空已攒的提示
func (e *events) drain() []string {
	n := e.notices
	e.notices = nil
	return n
}
