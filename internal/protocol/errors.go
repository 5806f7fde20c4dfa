package protocol

// 错误码
const (
	ErrCodeUnknown         = 1000
	ErrCodeInvalidSnapshot = 1001 // 快照数据损坏
	ErrCodeInvalidPlayerID = 2001
	ErrCodeInvalidCard     = 2002
	ErrCodeInvalidState    = 2003
	ErrCodeOutOfBoard      = 2004
	ErrCodeNotYourTurn     = 3001
	ErrCodeCannotPlay      = 3002
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:         "未知错误",
	ErrCodeInvalidSnapshot: "无效的快照数据",
	ErrCodeInvalidPlayerID: "无效的玩家编号",
	ErrCodeInvalidCard:     "无效的牌",
	ErrCodeInvalidState:    "无效的牌状态",
	ErrCodeOutOfBoard:      "牌不在牌桌上",
	ErrCodeNotYourTurn:     "还没轮到您",
	ErrCodeCannotPlay:      "当前没有可匹配的牌",
}
