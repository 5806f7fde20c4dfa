package view

import "strings"

// RenderGameRules returns the rules text shown by the help key
func RenderGameRules() string {
	var sb strings.Builder
	sb.WriteString("【游戏目标】\n")
	sb.WriteString("两名玩家从金字塔两端出发，先走完全部层数者获胜。\n\n")
	sb.WriteString("【出牌规则】\n")
	sb.WriteString("选中的手牌全部参与计算，每张可加可减，结果等于目标层某张翻开的牌即可出牌。\n")
	sb.WriteString("王牌（★）可以匹配任何牌，也可以被任何牌匹配。\n")
	sb.WriteString("匹配成功的牌翻开，并解锁下一层相邻的牌。\n")
	sb.WriteString("对手已出的牌若不再匹配所在层的任何牌，将退回手牌并回到该层。\n\n")
	sb.WriteString("【命令】\n")
	sb.WriteString("H5 D10 …：选中或取消选中手牌\n")
	sb.WriteString("play：出牌    pass：摸一张牌并结束回合\n")
	sb.WriteString("joker <ID>：用手中的王牌交换牌桌上的牌，或用手牌换下牌桌上的王牌\n")
	sb.WriteString("new：重新开局    ESC：退出\n")
	return sb.String()
}
