package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	roomKeyPrefix  = "room:"
	statsKeyPrefix = "stats:"

	// 房间镜像过期时间，进程异常退出后残留的 key 自然过期
	roomExpiration = 2 * time.Hour
)

// 计数器名称
const (
	CounterRoomsCreated  = "rooms_created"
	CounterRoundsStarted = "rounds_started"
)

// RoomData 房间公开数据（用于 Redis 序列化），不含身份与词语
type RoomData struct {
	Code        string       `json:"code"`
	Players     []PlayerData `json:"players"`
	Round       int          `json:"round"`
	HostName    string       `json:"host_name,omitempty"`
	Order       []string     `json:"order"`
	PlayerCount int          `json:"player_count"`
	CreatedAt   int64        `json:"created_at"`
}

// PlayerData 玩家公开数据
type PlayerData struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储，client 为 nil 时所有操作为空操作
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Enabled 是否连接了 Redis
func (rs *RedisStore) Enabled() bool {
	return rs != nil && rs.client != nil
}

// --- 房间镜像 ---

// SaveRoom 保存房间到 Redis
func (rs *RedisStore) SaveRoom(ctx context.Context, roomCode string, data *RoomData) error {
	if !rs.Enabled() || data == nil {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化房间数据失败: %w", err)
	}

	key := roomKeyPrefix + roomCode
	return rs.client.Set(ctx, key, jsonData, roomExpiration).Err()
}

// LoadRoom 从 Redis 读取房间镜像，不存在时返回 nil
func (rs *RedisStore) LoadRoom(ctx context.Context, code string) (*RoomData, error) {
	if !rs.Enabled() {
		return nil, nil
	}

	data, err := rs.client.Get(ctx, roomKeyPrefix+code).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var roomData RoomData
	if err := json.Unmarshal(data, &roomData); err != nil {
		return nil, fmt.Errorf("反序列化房间数据失败: %w", err)
	}

	return &roomData, nil
}

// DeleteRoom 从 Redis 删除房间
func (rs *RedisStore) DeleteRoom(ctx context.Context, code string) error {
	if !rs.Enabled() {
		return nil
	}
	return rs.client.Del(ctx, roomKeyPrefix+code).Err()
}

// GetAllRoomCodes 获取所有镜像中的房间号
func (rs *RedisStore) GetAllRoomCodes(ctx context.Context) ([]string, error) {
	if !rs.Enabled() {
		return nil, nil
	}

	var codes []string
	iter := rs.client.Scan(ctx, 0, roomKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		codes = append(codes, iter.Val()[len(roomKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return codes, nil
}

// ClearRooms 删除上一个进程遗留的房间镜像，返回删除数量
func (rs *RedisStore) ClearRooms(ctx context.Context) (int, error) {
	codes, err := rs.GetAllRoomCodes(ctx)
	if err != nil {
		return 0, err
	}
	for _, code := range codes {
		if err := rs.DeleteRoom(ctx, code); err != nil {
			return 0, err
		}
	}
	return len(codes), nil
}

// --- 统计计数 ---

// IncrCounter 计数器加一
func (rs *RedisStore) IncrCounter(ctx context.Context, name string) error {
	if !rs.Enabled() {
		return nil
	}
	return rs.client.Incr(ctx, statsKeyPrefix+name).Err()
}

// GetCounters 批量读取计数器，不存在的计为 0
func (rs *RedisStore) GetCounters(ctx context.Context, names ...string) (map[string]int64, error) {
	result := make(map[string]int64, len(names))
	if !rs.Enabled() || len(names) == 0 {
		return result, nil
	}

	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = statsKeyPrefix + name
	}

	values, err := rs.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			result[names[i]] = 0
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("计数器 %s 格式错误: %w", names[i], err)
		}
		result[names[i]] = n
	}
	return result, nil
}

// Ping 检查连接
func (rs *RedisStore) Ping(ctx context.Context) error {
	if !rs.Enabled() {
		return nil
	}
	return rs.client.Ping(ctx).Err()
}

// Close 关闭连接
func (rs *RedisStore) Close() error {
	if !rs.Enabled() {
		return nil
	}
	return rs.client.Close()
}
