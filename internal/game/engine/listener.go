package engine

// Listener 接收对局中的通知。回调在状态发布之后、不持锁时调用
type Listener interface {
	// GameWon 玩家到达终点层，回调返回后开始新的一局
	GameWon(player int)
	// LevelReverted 玩家已出的牌不再匹配，退回手牌并回到该层
	LevelReverted(player, level int)
}

type nopListener struct{}

func (nopListener) GameWon(int)            {}
func (nopListener) LevelReverted(int, int) {}

// Revert 一次退回
type Revert struct {
	Player int
	Level  int
	Cards  []string
}

// PlayResult 一次出牌的结果
type PlayResult struct {
	Reverts []Revert
	Winner  int // 获胜玩家，没有则为 -1
}
