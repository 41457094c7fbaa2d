package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/palemoky/word-imposter/internal/config"
	"github.com/palemoky/word-imposter/internal/game/room"
	"github.com/palemoky/word-imposter/internal/logger"
	"github.com/palemoky/word-imposter/internal/server"
	"github.com/palemoky/word-imposter/internal/server/storage"
	"github.com/palemoky/word-imposter/internal/words"
)

// mirrorQueueSize Redis 镜像写入队列长度
const mirrorQueueSize = 1024

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, loadErr := config.Load(*configPath)
	if loadErr != nil {
		cfg = config.Default()
	}

	if err := logger.Init(cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if loadErr != nil {
		zap.S().Warnf("加载配置文件失败，使用默认配置: %v", loadErr)
	}

	if err := run(cfg); err != nil {
		zap.S().Errorf("服务器异常退出: %v", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	wordList, err := words.Load(cfg.Game.WordsFile)
	if err != nil {
		return fmt.Errorf("加载词库失败: %w", err)
	}
	zap.S().Infof("📚 词库共 %d 组", wordList.Len())

	store, err := newStore(cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	// store 未启用时 mirror 为 nil，所有写入为空操作
	mirror := storage.NewRoomMirror(store, mirrorQueueSize)
	defer mirror.Close()

	rm := room.NewRoomManager(room.Options{
		MinPlayers:       cfg.Game.MinPlayers,
		CodeLength:       cfg.Game.CodeLength,
		NameMin:          cfg.Game.NameMin,
		NameMax:          cfg.Game.NameMax,
		EmptyRoomTimeout: cfg.Game.EmptyRoomTimeoutDuration(),
		Words:            wordList,
		Mirror:           mirror,
	})
	defer rm.Close()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.NewServer(cfg, rm, store)

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		zap.S().Info("🎮 谁是卧底服务器启动中...")
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		zap.S().Infof("收到信号 %v，正在关闭服务器...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Game.ShutdownTimeoutDuration())
	defer cancel()
	return srv.Shutdown(ctx)
}

// newStore 按配置连接 Redis，未启用时返回空操作的存储
func newStore(cfg config.RedisConfig) (*storage.RedisStore, error) {
	if !cfg.Enabled {
		zap.S().Info("Redis 未启用，房间目录镜像关闭")
		return storage.NewRedisStore(nil), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	store := storage.NewRedisStore(rdb)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}

	zap.S().Infof("✅ Redis 已连接: %s", cfg.Addr)

	// 房间只存在于内存，上次进程的镜像已失效
	if n, err := store.ClearRooms(ctx); err != nil {
		zap.S().Warnf("清理旧房间镜像失败: %v", err)
	} else if n > 0 {
		zap.S().Infof("🧹 已清理 %d 个旧房间镜像", n)
	}
	return store, nil
}
