package protocol

import "errors"

// ErrMissingField 必填字段缺失
var ErrMissingField = errors.New("missing required field")

// Validator 请求 payload 自校验
type Validator interface {
	Validate() error
}

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomCode string  `json:"room_code"`
	Name     string  `json:"name"`
	Icon     *string `json:"icon,omitempty"`
}

// 加入请求不做字段校验：房间号缺失按房间不存在、昵称缺失按昵称不合法处理，
// 先查房间再查昵称

// RoomCodePayload 仅携带房间号的请求（开局、离开）
type RoomCodePayload struct {
	RoomCode string `json:"room_code"`
}

// Validate 校验必填字段
func (p *RoomCodePayload) Validate() error {
	if p.RoomCode == "" {
		return ErrMissingField
	}
	return nil
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功
type ConnectedPayload struct {
	PlayerID string `json:"player_id"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// RoomCreatedAck createRoom 应答
type RoomCreatedAck struct {
	RoomCode string `json:"room_code"`
}

// JoinAck joinRoom 应答，失败时 IsHost/HostName/Round 为零值
type JoinAck struct {
	OK       bool    `json:"ok"`
	IsHost   bool    `json:"is_host"`
	HostName *string `json:"host_name"`
	Round    int     `json:"round"`
	Error    string  `json:"error,omitempty"`
	Code     int     `json:"code,omitempty"`
}

// ResultAck 通用结果应答
type ResultAck struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Code  int    `json:"code,omitempty"`
}

// PlayerView 公开视图中的玩家
type PlayerView struct {
	Name string  `json:"name"`
	Icon *string `json:"icon"`
}

// RoomUpdatePayload 房间公开视图
type RoomUpdatePayload struct {
	Players  []PlayerView `json:"players"`
	Round    int          `json:"round"`
	HostName *string      `json:"host_name"`
	Order    []string     `json:"order"`
}

// RoundStartedPayload 新一轮公开信息
type RoundStartedPayload struct {
	Round    int      `json:"round"`
	HostName *string  `json:"host_name"`
	Order    []string `json:"order"`
}

// RolePayload 私有身份，仅发给本人
type RolePayload struct {
	IsImposter bool   `json:"is_imposter"`
	Word       string `json:"word"`
	Round      int    `json:"round"`
}

// ErrorPayload 错误消息
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
