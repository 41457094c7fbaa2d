package room

import (
	"go.uber.org/zap"

	"github.com/palemoky/word-imposter/internal/apperrors"
	"github.com/palemoky/word-imposter/internal/protocol"
	"github.com/palemoky/word-imposter/internal/server/storage"
)

// Role 发给单个玩家的私有身份
type Role struct {
	PlayerID string
	protocol.RolePayload
}

// RoundResult 开局结果
type RoundResult struct {
	Update
	Started protocol.RoundStartedPayload // 广播
	Roles   []Role                       // 逐个单播，不得广播
}

// StartRound 房主开始新一轮。
// 房间不存在、请求者不是房主、人数不足时返回错误且不改变任何状态。
func (rm *RoomManager) StartRound(code, requesterID string) (*RoundResult, error) {
	room := rm.GetRoom(code)
	if room == nil {
		return nil, apperrors.ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.closed {
		return nil, apperrors.ErrRoomNotFound
	}
	if requesterID == "" || room.HostID != requesterID {
		zap.S().Debugf("非房主 %s 尝试在房间 %s 开局", requesterID, code)
		return nil, apperrors.ErrNotHost
	}
	n := len(room.Players)
	if n < rm.opts.MinPlayers {
		return nil, apperrors.ErrNotEnoughPlayers
	}

	pair := rm.opts.Words.Pair(rm.opts.Random.IntN(rm.opts.Words.Len()))

	// 发言顺序与卧底是两次独立抽取
	perm := rm.opts.Random.Perm(n)
	imposter := rm.opts.Random.IntN(n)

	room.Round++

	order := make([]string, n)
	for i, idx := range perm {
		order[i] = room.Players[idx].Name
	}
	room.Order = order

	roles := make([]Role, n)
	for i, p := range room.Players {
		p.IsImposter = i == imposter
		if p.IsImposter {
			p.RoleWord = pair.Hint
		} else {
			p.RoleWord = pair.Word
		}
		roles[i] = Role{
			PlayerID: p.ID,
			RolePayload: protocol.RolePayload{
				IsImposter: p.IsImposter,
				Word:       p.RoleWord,
				Round:      room.Round,
			},
		}
	}

	result := &RoundResult{
		Update: room.update(),
		Started: protocol.RoundStartedPayload{
			Round:    room.Round,
			HostName: room.hostName(),
			Order:    append([]string{}, order...),
		},
		Roles: roles,
	}

	rm.opts.Mirror.SaveRoom(room.Code, room.toRoomData())
	rm.opts.Mirror.Incr(storage.CounterRoundsStarted)

	zap.S().Infof("🎲 房间 %s 第 %d 轮开始 (%d 人)", code, room.Round, n)

	return result, nil
}
