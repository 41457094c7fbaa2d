package handler

import (
	"go.uber.org/zap"

	"github.com/palemoky/word-imposter/internal/game/room"
	"github.com/palemoky/word-imposter/internal/protocol"
	"github.com/palemoky/word-imposter/internal/protocol/codec"
	"github.com/palemoky/word-imposter/internal/types"
)

// HandlerDeps 处理器依赖
type HandlerDeps struct {
	Server      types.ServerInterface
	RoomManager *room.RoomManager
}

// Handler 消息处理器
type Handler struct {
	server      types.ServerInterface
	roomManager *room.RoomManager
	handlers    map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		server:      deps.Server,
		roomManager: deps.RoomManager,
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing: h.handlePing,

		// 房间操作
		protocol.MsgCreateRoom: h.handleCreateRoom,
		protocol.MsgJoinRoom:   h.handleJoinRoom,
		protocol.MsgLeaveRoom:  h.handleLeaveRoom,

		// 游戏操作
		protocol.MsgStartRound: h.handleStartRound,
	}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok && msg.Type.IsRequest() {
		handler(client, msg)
		return
	}

	zap.S().Warnf("⚠️  未知消息类型: '%s' (连接: %s, payload %d bytes)", msg.Type, client.GetID(), len(msg.Payload))
	h.fail(client, msg, protocol.ErrCodeInvalidMsg)
}

// reply 回复请求应答，请求未携带 id 时不回复
func (h *Handler) reply(client types.ClientInterface, msg *protocol.Message, payload any) {
	if ack := codec.NewAck(msg.ID, payload); ack != nil {
		client.SendMessage(ack)
	}
}

// fail 请求失败：携带 id 时以应答返回，否则发送错误消息
func (h *Handler) fail(client types.ClientInterface, msg *protocol.Message, code int) {
	if msg.ID != "" {
		h.reply(client, msg, protocol.ResultAck{
			OK:    false,
			Error: protocol.ErrorMessages[code],
			Code:  code,
		})
		return
	}
	client.SendMessage(codec.NewErrorMessage(code))
}

// broadcast 把同一条消息发给房间内的所有玩家
func (h *Handler) broadcast(recipients []string, msg *protocol.Message) {
	for _, id := range recipients {
		if c := h.server.GetClientByID(id); c != nil {
			c.SendMessage(msg)
		}
	}
}

// broadcastUpdate 广播房间公开视图，房间已销毁时无人可收
func (h *Handler) broadcastUpdate(update *room.Update) {
	if update == nil || update.Destroyed {
		return
	}
	h.broadcast(update.Recipients, codec.MustNewMessage(protocol.MsgRoomUpdate, update.View))
}
