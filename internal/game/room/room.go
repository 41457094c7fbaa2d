package room

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/palemoky/word-imposter/internal/server/storage"
	"github.com/palemoky/word-imposter/internal/words"
)

const (
	roomCodeChars = "0123456789" // 房间号字符集

	defaultCodeLength       = 4
	defaultMinPlayers       = 3
	defaultNameMin          = 2
	defaultNameMax          = 16
	defaultEmptyRoomTimeout = 10 * time.Minute
)

// Player 房间中的玩家
type Player struct {
	ID         string  // 连接 ID，仅内部使用
	Name       string  // 昵称（已去除首尾空白）
	Icon       *string // 头像，原样透传
	IsImposter bool    // 本轮是否卧底
	RoleWord   string  // 本轮拿到的词，首轮开始前为空
}

// Room 游戏房间
type Room struct {
	Code      string    // 房间号
	Players   []*Player // 按加入顺序
	HostID    string    // 房主连接 ID，房间为空时为空
	Round     int       // 已开始的轮数
	Order     []string  // 最近一轮的发言顺序
	CreatedAt time.Time // 创建时间

	emptySince time.Time // 最近一次变为空房间的时间
	closed     bool      // 已销毁，等待从注册表移除

	mu sync.RWMutex
}

// Random 随机源，测试时注入固定种子
type Random interface {
	IntN(n int) int
	Perm(n int) []int
}

// Mirror 房间公开视图的外部镜像
type Mirror interface {
	SaveRoom(code string, data *storage.RoomData)
	DeleteRoom(code string)
	Incr(counter string)
}

// Options 房间管理器参数，零值使用默认值
type Options struct {
	MinPlayers       int
	CodeLength       int
	NameMin          int
	NameMax          int
	EmptyRoomTimeout time.Duration

	Words  words.Supplier
	Random Random
	Mirror Mirror
}

// RoomManager 房间注册表，房间号到房间的唯一映射
type RoomManager struct {
	opts  Options
	rooms map[string]*Room
	mu    sync.RWMutex

	done      chan struct{}
	closeOnce sync.Once
}

// NewRoomManager 创建房间管理器
func NewRoomManager(opts Options) *RoomManager {
	if opts.MinPlayers <= 0 {
		opts.MinPlayers = defaultMinPlayers
	}
	if opts.CodeLength <= 0 {
		opts.CodeLength = defaultCodeLength
	}
	if opts.NameMin <= 0 {
		opts.NameMin = defaultNameMin
	}
	if opts.NameMax <= 0 {
		opts.NameMax = defaultNameMax
	}
	if opts.EmptyRoomTimeout <= 0 {
		opts.EmptyRoomTimeout = defaultEmptyRoomTimeout
	}
	if opts.Words == nil {
		opts.Words = words.Builtin()
	}
	if opts.Random == nil {
		opts.Random = globalRandom{}
	}
	if opts.Mirror == nil {
		opts.Mirror = noopMirror{}
	}

	rm := &RoomManager{
		opts:  opts,
		rooms: make(map[string]*Room),
		done:  make(chan struct{}),
	}

	// 启动空房间清理协程
	go rm.cleanupLoop()

	return rm
}

// Close 停止后台清理
func (rm *RoomManager) Close() {
	rm.closeOnce.Do(func() { close(rm.done) })
}

// globalRandom 使用 math/rand/v2 全局源（并发安全）
type globalRandom struct{}

func (globalRandom) IntN(n int) int   { return rand.IntN(n) }
func (globalRandom) Perm(n int) []int { return rand.Perm(n) }

// LockedRandom 为非并发安全的 *rand.Rand 加锁
type LockedRandom struct {
	r  *rand.Rand
	mu sync.Mutex
}

// NewLockedRandom 包装随机源
func NewLockedRandom(r *rand.Rand) *LockedRandom {
	return &LockedRandom{r: r}
}

func (l *LockedRandom) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *LockedRandom) Perm(n int) []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Perm(n)
}

type noopMirror struct{}

func (noopMirror) SaveRoom(string, *storage.RoomData) {}
func (noopMirror) DeleteRoom(string)                  {}
func (noopMirror) Incr(string)                        {}
