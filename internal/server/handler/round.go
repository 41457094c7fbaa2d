package handler

import (
	"go.uber.org/zap"

	"github.com/palemoky/word-imposter/internal/apperrors"
	"github.com/palemoky/word-imposter/internal/protocol"
	"github.com/palemoky/word-imposter/internal/protocol/codec"
	"github.com/palemoky/word-imposter/internal/types"
)

// handleStartRound 房主开局。
// 非房主、人数不足等失败仅在请求携带 id 时应答，否则静默忽略。
func (h *Handler) handleStartRound(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.RoomCodePayload](msg)
	if err != nil {
		h.fail(client, msg, protocol.ErrCodeInvalidMsg)
		return
	}

	res, err := h.roomManager.StartRound(payload.RoomCode, client.GetID())
	if err != nil {
		zap.S().Debugf("开局被拒绝 (房间: %s, 连接: %s): %v", payload.RoomCode, client.GetID(), err)
		if msg.ID != "" {
			h.fail(client, msg, apperrors.CodeOf(err))
		}
		return
	}

	// 身份逐个单播，绝不广播
	for _, role := range res.Roles {
		if c := h.server.GetClientByID(role.PlayerID); c != nil {
			c.SendMessage(codec.MustNewMessage(protocol.MsgRole, role.RolePayload))
		}
	}

	h.broadcast(res.Recipients, codec.MustNewMessage(protocol.MsgRoundStarted, res.Started))
	h.broadcastUpdate(&res.Update)
	h.reply(client, msg, protocol.ResultAck{OK: true})
}
