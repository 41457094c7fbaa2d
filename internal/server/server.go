package server

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/palemoky/word-imposter/internal/config"
	"github.com/palemoky/word-imposter/internal/game/room"
	"github.com/palemoky/word-imposter/internal/protocol/codec"
	"github.com/palemoky/word-imposter/internal/server/handler"
	"github.com/palemoky/word-imposter/internal/server/storage"
)

// Server WebSocket 服务器
type Server struct {
	config      *config.Config
	store       *storage.RedisStore
	roomManager *room.RoomManager
	handler     *handler.Handler
	codec       codec.Codec
	upgrader    websocket.Upgrader
	router      *gin.Engine
	httpServer  *http.Server

	clients   map[string]*Client
	clientsMu sync.RWMutex

	// 安全组件
	rateLimiter   *RateLimiter
	originChecker *OriginChecker
	ipFilter      *IPFilter

	// 连接控制
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数

	// 维护模式
	maintenanceMode bool
	maintenanceMu   sync.RWMutex

	done      chan struct{}
	closeOnce sync.Once
}

// NewServer 创建服务器实例，store 未启用时统计接口只返回内存数据
func NewServer(cfg *config.Config, rm *room.RoomManager, store *storage.RedisStore) *Server {
	s := &Server{
		config:      cfg,
		store:       store,
		roomManager: rm,
		codec:       codec.ForFormat(cfg.Server.WireFormat),
		clients:     make(map[string]*Client),
		// 初始化安全组件
		rateLimiter: NewRateLimiter(
			cfg.Security.RateLimit.MaxPerSecond,
			cfg.Security.RateLimit.MaxPerMinute,
			cfg.Security.RateLimit.BanDurationTime(),
		),
		originChecker: NewOriginChecker(cfg.Security.AllowedOrigins),
		ipFilter:      NewIPFilter(cfg.Security.BlockedIPs),
		// 初始化连接控制
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
		done:           make(chan struct{}),
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.originChecker.Check,
		// 消息都很小，压缩只会增加 CPU 开销
		EnableCompression: false,
	}

	// 初始化消息处理器
	s.handler = handler.NewHandler(handler.HandlerDeps{
		Server:      s,
		RoomManager: rm,
	})

	s.router = s.newRouter()

	zap.S().Infof("🔒 安全配置: 连接限制=%d/s, 消息限制=%d/s, 最大连接数=%d, 协议=%s",
		cfg.Security.RateLimit.MaxPerSecond, cfg.Security.MessageLimit.MaxPerSecond,
		cfg.Server.MaxConnections, cfg.Server.WireFormat)

	return s
}

// newRouter 注册 HTTP 路由
func (s *Server) newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(s.corsConfig()))

	r.GET("/health", s.handleHealth)
	r.GET("/ws", s.handleWebSocket)

	api := r.Group("/api")
	{
		api.POST("/rooms", s.handleCreateRoom)
		api.GET("/rooms/:code", s.handleGetRoom)
		api.GET("/stats", s.handleStats)
	}

	return r
}

// corsConfig 与 WebSocket 来源校验使用同一份白名单
func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if s.originChecker.AllowAll() {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.config.Security.AllowedOrigins
	}
	return cfg
}

// Router 返回 HTTP 处理器（测试使用）
func (s *Server) Router() http.Handler {
	return s.router
}

// Start 启动服务器，阻塞直到 Shutdown
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// 启动监控 goroutine
	go s.monitorStats()

	zap.S().Infof("🚀 服务器启动在 ws://%s/ws (CPU核心数: %d)", addr, runtime.NumCPU())
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
