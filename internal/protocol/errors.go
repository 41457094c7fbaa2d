package protocol

// 错误码
const (
	ErrCodeUnknown           = 1000
	ErrCodeInvalidMsg        = 1001
	ErrCodeRateLimit         = 1002 // 速率限制
	ErrCodeRoomNotFound      = 2001
	ErrCodeInvalidName       = 2002 // 昵称长度不合法
	ErrCodeNameTaken         = 2003 // 昵称已被占用
	ErrCodeNotInRoom         = 2004
	ErrCodeNotHost           = 3001 // 非房主
	ErrCodeNotEnoughPlayers  = 3002 // 人数不足
	ErrCodeServerMaintenance = 5003 // 服务器维护中
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:           "Unknown error",
	ErrCodeInvalidMsg:        "Invalid message",
	ErrCodeRateLimit:         "Too many requests",
	ErrCodeRoomNotFound:      "Room not found",
	ErrCodeInvalidName:       "Name must be 2–16 characters",
	ErrCodeNameTaken:         "Name already taken",
	ErrCodeNotInRoom:         "You are not in this room",
	ErrCodeNotHost:           "Only the host can start a round",
	ErrCodeNotEnoughPlayers:  "Need at least 3 players",
	ErrCodeServerMaintenance: "Server is under maintenance",
}
