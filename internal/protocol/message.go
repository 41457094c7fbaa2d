package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	ID      string          `json:"id,omitempty"` // 请求 ID，服务端以同 ID 的 ack 应答
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	MsgPing MessageType = "ping" // 心跳 ping

	// 房间操作
	MsgCreateRoom MessageType = "create_room" // 创建房间
	MsgJoinRoom   MessageType = "join_room"   // 加入房间
	MsgLeaveRoom  MessageType = "leave_room"  // 离开房间
	MsgStartRound MessageType = "start_round" // 房主开局
)

// 服务端 → 客户端 消息类型
const (
	MsgConnected MessageType = "connected" // 连接成功
	MsgPong      MessageType = "pong"      // 心跳 pong
	MsgAck       MessageType = "ack"       // 请求应答

	// 房间广播
	MsgRoomUpdate   MessageType = "room_update"   // 房间公开视图
	MsgRoundStarted MessageType = "round_started" // 新一轮开始

	// 单播
	MsgRole MessageType = "role" // 私有身份与词语

	MsgError MessageType = "error" // 错误消息
)

// IsRequest 是否是客户端可发送的消息类型
func (t MessageType) IsRequest() bool {
	switch t {
	case MsgPing, MsgCreateRoom, MsgJoinRoom, MsgLeaveRoom, MsgStartRound:
		return true
	}
	return false
}
