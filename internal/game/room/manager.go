package room

import (
	"time"

	"go.uber.org/zap"

	"github.com/palemoky/word-imposter/internal/server/storage"
)

// 连续碰撞超过该次数后房间号加长一位
const maxCodeCollisions = 100

// CreateRoom 创建空房间，返回房间号
func (rm *RoomManager) CreateRoom() string {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	code := rm.generateRoomCode()
	now := time.Now()

	room := &Room{
		Code:       code,
		Players:    make([]*Player, 0, rm.opts.MinPlayers),
		Order:      []string{},
		CreatedAt:  now,
		emptySince: now,
	}
	rm.rooms[code] = room

	rm.opts.Mirror.SaveRoom(code, room.toRoomData())
	rm.opts.Mirror.Incr(storage.CounterRoomsCreated)

	zap.S().Infof("🏠 房间 %s 已创建", code)

	return code
}

// GetRoom 获取房间，不存在返回 nil
func (rm *RoomManager) GetRoom(code string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[code]
}

// RoomCount 当前存活的房间数
func (rm *RoomManager) RoomCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}

// View 房间公开视图，房间不存在返回 nil
func (rm *RoomManager) View(code string) *View {
	room := rm.GetRoom(code)
	if room == nil {
		return nil
	}

	room.mu.RLock()
	defer room.mu.RUnlock()
	if room.closed {
		return nil
	}
	v := room.project()
	return &v
}

// generateRoomCode 生成未被占用的房间号，调用方持有 rm.mu
func (rm *RoomManager) generateRoomCode() string {
	length := rm.opts.CodeLength
	collisions := 0
	for {
		code := make([]byte, length)
		for i := range code {
			code[i] = roomCodeChars[rm.opts.Random.IntN(len(roomCodeChars))]
		}
		codeStr := string(code)
		if _, exists := rm.rooms[codeStr]; !exists {
			return codeStr
		}

		collisions++
		if collisions >= maxCodeCollisions {
			length++
			collisions = 0
			zap.S().Warnf("⚠️ 房间号空间拥挤，长度扩展到 %d", length)
		}
	}
}

// removeRoom 从注册表移除已销毁的房间，调用方不得持有 room.mu
func (rm *RoomManager) removeRoom(room *Room) {
	rm.mu.Lock()
	if rm.rooms[room.Code] == room {
		delete(rm.rooms, room.Code)
	}
	rm.mu.Unlock()
}

// cleanupLoop 定期清理从未有人加入或长时间为空的房间
func (rm *RoomManager) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rm.cleanup(time.Now())
		case <-rm.done:
			return
		}
	}
}

// cleanup 清理超时的空房间
func (rm *RoomManager) cleanup(now time.Time) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	for code, room := range rm.rooms {
		room.mu.Lock()
		if !room.closed && len(room.Players) == 0 && now.Sub(room.emptySince) > rm.opts.EmptyRoomTimeout {
			room.closed = true
			delete(rm.rooms, code)
			rm.opts.Mirror.DeleteRoom(code)
			zap.S().Infof("🧹 空房间 %s 超时已清理", code)
		}
		room.mu.Unlock()
	}
}
