package handler

import (
	"time"

	"github.com/palemoky/word-imposter/internal/protocol"
	"github.com/palemoky/word-imposter/internal/protocol/codec"
	"github.com/palemoky/word-imposter/internal/types"
)

// handlePing 处理心跳消息
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}

	// 立即回复 pong
	client.SendMessage(codec.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// HandleDisconnect 连接断开，等同于离开所在房间
func (h *Handler) HandleDisconnect(client types.ClientInterface) {
	update := h.roomManager.DisconnectAny(client.GetID())
	client.SetRoom("")
	h.broadcastUpdate(update)
}
