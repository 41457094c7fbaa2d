package storage

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const mirrorOpTimeout = 3 * time.Second

type opKind int

const (
	opSave opKind = iota
	opDelete
	opIncr
)

type mirrorOp struct {
	kind opKind
	key  string // 房间号或计数器名
	data *RoomData
}

// RoomMirror 异步把房间公开视图写入 Redis。
// 所有写入由单个 goroutine 串行执行，入队顺序即写入顺序。
type RoomMirror struct {
	store   *RedisStore
	ops     chan mirrorOp
	done    chan struct{}
	stopped chan struct{}

	closeOnce sync.Once
}

// NewRoomMirror 创建镜像写入器，store 未启用时返回 nil（调用方按空操作处理）
func NewRoomMirror(store *RedisStore, queueSize int) *RoomMirror {
	if !store.Enabled() {
		return nil
	}
	m := &RoomMirror{
		store:   store,
		ops:     make(chan mirrorOp, queueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go m.run()
	return m
}

// SaveRoom 入队保存
func (m *RoomMirror) SaveRoom(code string, data *RoomData) {
	m.enqueue(mirrorOp{kind: opSave, key: code, data: data})
}

// DeleteRoom 入队删除
func (m *RoomMirror) DeleteRoom(code string) {
	m.enqueue(mirrorOp{kind: opDelete, key: code})
}

// Incr 入队计数
func (m *RoomMirror) Incr(counter string) {
	m.enqueue(mirrorOp{kind: opIncr, key: counter})
}

func (m *RoomMirror) enqueue(op mirrorOp) {
	if m == nil {
		return
	}
	select {
	case m.ops <- op:
	case <-m.done:
	default:
		zap.S().Warnf("⚠️ Redis 镜像队列已满，丢弃操作 %d (%s)", op.kind, op.key)
	}
}

func (m *RoomMirror) run() {
	defer close(m.stopped)
	for {
		select {
		case op := <-m.ops:
			m.apply(op)
		case <-m.done:
			// 尽量写完已入队的操作
			for {
				select {
				case op := <-m.ops:
					m.apply(op)
				default:
					return
				}
			}
		}
	}
}

func (m *RoomMirror) apply(op mirrorOp) {
	ctx, cancel := context.WithTimeout(context.Background(), mirrorOpTimeout)
	defer cancel()

	var err error
	switch op.kind {
	case opSave:
		err = m.store.SaveRoom(ctx, op.key, op.data)
	case opDelete:
		err = m.store.DeleteRoom(ctx, op.key)
	case opIncr:
		err = m.store.IncrCounter(ctx, op.key)
	}
	if err != nil {
		zap.S().Warnf("Redis 镜像写入失败 (%s): %v", op.key, err)
	}
}

// Close 停止写入器并等待队列写完
func (m *RoomMirror) Close() {
	if m == nil {
		return
	}
	m.closeOnce.Do(func() { close(m.done) })
	<-m.stopped
}
