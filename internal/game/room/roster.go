package room

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/palemoky/word-imposter/internal/apperrors"
)

// Update 一次成员变化的结果
type Update struct {
	Code       string
	View       View     // 广播内容
	Recipients []string // 广播对象（当前房间内玩家 ID）
	Destroyed  bool     // 房间已销毁，无需广播
}

// JoinResult 加入房间的结果
type JoinResult struct {
	Update
	IsHost   bool
	HostName *string
	Round    int
}

// Join 加入房间。
// 昵称去除首尾空白后长度须在 [NameMin, NameMax]，且在房间内大小写不敏感唯一。
func (rm *RoomManager) Join(code, playerID, name string, icon *string) (*JoinResult, error) {
	room := rm.GetRoom(code)
	if room == nil {
		return nil, apperrors.ErrRoomNotFound
	}

	trimmed := strings.TrimSpace(name)
	if n := utf8.RuneCountInString(trimmed); n < rm.opts.NameMin || n > rm.opts.NameMax {
		return nil, apperrors.ErrInvalidName
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.closed {
		return nil, apperrors.ErrRoomNotFound
	}

	// 昵称被在场玩家占用（包括同一连接自己）时拒绝
	for _, p := range room.Players {
		if strings.EqualFold(p.Name, trimmed) {
			return nil, apperrors.ErrNameTaken
		}
	}
	// 一个连接在房间内只占一个位置
	if room.findPlayer(playerID) != nil {
		return nil, apperrors.ErrNameTaken
	}

	room.Players = append(room.Players, &Player{
		ID:   playerID,
		Name: trimmed,
		Icon: icon,
	})
	room.electHost()

	rm.opts.Mirror.SaveRoom(room.Code, room.toRoomData())

	zap.S().Infof("👤 玩家 %s 加入房间 %s (%d 人)", trimmed, code, len(room.Players))

	return room.joinResult(playerID), nil
}

func (r *Room) joinResult(playerID string) *JoinResult {
	return &JoinResult{
		Update:   r.update(),
		IsHost:   r.HostID == playerID,
		HostName: r.hostName(),
		Round:    r.Round,
	}
}

// update 当前公开视图及广播对象，调用方持有 room.mu
func (r *Room) update() Update {
	return Update{
		Code:       r.Code,
		View:       r.project(),
		Recipients: r.playerIDs(),
	}
}

// Leave 主动离开房间。房间不存在或玩家不在房间内时不改动状态并返回错误
func (rm *RoomManager) Leave(code, playerID string) (*Update, error) {
	room := rm.GetRoom(code)
	if room == nil {
		return nil, apperrors.ErrRoomNotFound
	}
	update := rm.removePlayer(room, playerID, "离开")
	if update == nil {
		return nil, apperrors.ErrNotInRoom
	}
	return update, nil
}

// DisconnectAny 连接断开时在所有房间中查找并移除该玩家。
// 一个连接最多占用一个玩家位置，因此至多命中一个房间。
func (rm *RoomManager) DisconnectAny(playerID string) *Update {
	rm.mu.RLock()
	rooms := make([]*Room, 0, len(rm.rooms))
	for _, room := range rm.rooms {
		rooms = append(rooms, room)
	}
	rm.mu.RUnlock()

	for _, room := range rooms {
		if update := rm.removePlayer(room, playerID, "断开"); update != nil {
			return update
		}
	}
	return nil
}

// removePlayer 移除玩家并重新选举房主；房间变空时立即销毁
func (rm *RoomManager) removePlayer(room *Room, playerID, reason string) *Update {
	room.mu.Lock()

	if room.closed {
		room.mu.Unlock()
		return nil
	}

	idx := -1
	for i, p := range room.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		room.mu.Unlock()
		return nil
	}

	leaving := room.Players[idx]
	room.Players = append(room.Players[:idx], room.Players[idx+1:]...)

	zap.S().Infof("👋 玩家 %s %s房间 %s", leaving.Name, reason, room.Code)

	if len(room.Players) == 0 {
		room.closed = true
		room.HostID = ""
		rm.opts.Mirror.DeleteRoom(room.Code)
		room.mu.Unlock()

		rm.removeRoom(room)
		zap.S().Infof("🏠 房间 %s 已解散", room.Code)

		return &Update{Code: room.Code, Destroyed: true}
	}

	room.electHost()
	update := room.update()
	rm.opts.Mirror.SaveRoom(room.Code, room.toRoomData())
	room.mu.Unlock()

	return &update
}

// electHost 房主不在房间内时，由加入最早的玩家接任；房间为空时清空房主
func (r *Room) electHost() {
	if r.findPlayer(r.HostID) != nil {
		return
	}
	if len(r.Players) == 0 {
		r.HostID = ""
		return
	}
	previous := r.HostID
	r.HostID = r.Players[0].ID
	if previous != "" {
		zap.S().Infof("👑 房间 %s 房主移交给 %s", r.Code, r.Players[0].Name)
	}
}
