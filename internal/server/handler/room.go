package handler

import (
	"go.uber.org/zap"

	"github.com/palemoky/word-imposter/internal/apperrors"
	"github.com/palemoky/word-imposter/internal/protocol"
	"github.com/palemoky/word-imposter/internal/protocol/codec"
	"github.com/palemoky/word-imposter/internal/types"
)

// handleCreateRoom 处理创建房间，创建者不会自动加入
func (h *Handler) handleCreateRoom(client types.ClientInterface, msg *protocol.Message) {
	// 维护模式检查
	if h.server.IsMaintenanceMode() {
		h.fail(client, msg, protocol.ErrCodeServerMaintenance)
		return
	}

	code := h.roomManager.CreateRoom()
	h.respond(client, msg, protocol.RoomCreatedAck{RoomCode: code})
}

// handleJoinRoom 处理加入房间（首次加入与断线后重新加入走同一路径）
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	if h.server.IsMaintenanceMode() {
		h.joinFailed(client, msg, protocol.ErrCodeServerMaintenance)
		return
	}

	payload, err := codec.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		zap.S().Debugf("join_room 请求格式错误 (连接: %s): %v", client.GetID(), err)
		h.joinFailed(client, msg, protocol.ErrCodeInvalidMsg)
		return
	}

	// 先加入新房间，失败时原房间保持不变
	res, err := h.roomManager.Join(payload.RoomCode, client.GetID(), payload.Name, payload.Icon)
	if err != nil {
		h.joinFailed(client, msg, apperrors.CodeOf(err))
		return
	}

	// 一个连接只能占一个位置：加入成功后离开原房间
	if prev := client.GetRoom(); prev != "" && prev != payload.RoomCode {
		if update, err := h.roomManager.Leave(prev, client.GetID()); err == nil {
			h.broadcastUpdate(update)
		}
	}
	client.SetRoom(payload.RoomCode)
	h.respond(client, msg, protocol.JoinAck{
		OK:       true,
		IsHost:   res.IsHost,
		HostName: res.HostName,
		Round:    res.Round,
	})
	h.broadcastUpdate(&res.Update)
}

// handleLeaveRoom 处理离开房间，房间或玩家不存在时仅在请求带 id 时应答失败
func (h *Handler) handleLeaveRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.RoomCodePayload](msg)
	if err != nil {
		h.fail(client, msg, protocol.ErrCodeInvalidMsg)
		return
	}

	update, err := h.roomManager.Leave(payload.RoomCode, client.GetID())
	if err != nil {
		if msg.ID != "" {
			h.fail(client, msg, apperrors.CodeOf(err))
		}
		return
	}

	if client.GetRoom() == payload.RoomCode {
		client.SetRoom("")
	}
	h.reply(client, msg, protocol.ResultAck{OK: true})
	h.broadcastUpdate(update)
}

// respond 创建与加入房间总是有且仅有一个应答，请求未携带 id 时应答 id 为空
func (h *Handler) respond(client types.ClientInterface, msg *protocol.Message, payload any) {
	ack := codec.MustNewMessage(protocol.MsgAck, payload)
	ack.ID = msg.ID
	client.SendMessage(ack)
}

// joinFailed 加入失败应答
func (h *Handler) joinFailed(client types.ClientInterface, msg *protocol.Message, code int) {
	h.respond(client, msg, protocol.JoinAck{
		OK:    false,
		Error: protocol.ErrorMessages[code],
		Code:  code,
	})
}
