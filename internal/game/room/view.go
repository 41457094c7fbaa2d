package room

import (
	"github.com/palemoky/word-imposter/internal/protocol"
	"github.com/palemoky/word-imposter/internal/server/storage"
)

// View 房间公开视图，广播给房间内所有人。
// 只从玩家的 Name/Icon 构造，身份与词语不会出现在这里。
type View = protocol.RoomUpdatePayload

// project 计算公开视图，调用方持有 room.mu
func (r *Room) project() View {
	players := make([]protocol.PlayerView, len(r.Players))
	for i, p := range r.Players {
		players[i] = protocol.PlayerView{Name: p.Name, Icon: p.Icon}
	}

	order := make([]string, len(r.Order))
	copy(order, r.Order)

	return View{
		Players:  players,
		Round:    r.Round,
		HostName: r.hostName(),
		Order:    order,
	}
}

// hostName 房主昵称，无房主返回 nil
func (r *Room) hostName() *string {
	if host := r.findPlayer(r.HostID); host != nil {
		name := host.Name
		return &name
	}
	return nil
}

// playerIDs 当前房间内所有玩家 ID（广播对象）
func (r *Room) playerIDs() []string {
	ids := make([]string, len(r.Players))
	for i, p := range r.Players {
		ids[i] = p.ID
	}
	return ids
}

// findPlayer 按 ID 查找玩家
func (r *Room) findPlayer(id string) *Player {
	if id == "" {
		return nil
	}
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// toRoomData 转换为可序列化的镜像数据，调用方持有 room.mu
func (r *Room) toRoomData() *storage.RoomData {
	data := &storage.RoomData{
		Code:        r.Code,
		Players:     make([]storage.PlayerData, len(r.Players)),
		Round:       r.Round,
		Order:       append([]string{}, r.Order...),
		PlayerCount: len(r.Players),
		CreatedAt:   r.CreatedAt.Unix(),
	}
	for i, p := range r.Players {
		data.Players[i] = storage.PlayerData{Name: p.Name}
		if p.Icon != nil {
			data.Players[i].Icon = *p.Icon
		}
	}
	if name := r.hostName(); name != nil {
		data.HostName = *name
	}
	return data
}
