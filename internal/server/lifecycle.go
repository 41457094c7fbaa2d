package server

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/palemoky/word-imposter/internal/protocol"
	"github.com/palemoky/word-imposter/internal/protocol/codec"
)

// monitorStats 定期记录服务器状态
func (s *Server) monitorStats() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			zap.S().Infof("📊 [监控] 在线: %d | 房间: %d | Goroutines: %d | 活跃连接: %d/%d | 内存: %.2f MB",
				s.GetOnlineCount(),
				s.roomManager.RoomCount(),
				runtime.NumGoroutine(),
				len(s.semaphore),
				s.maxConnections,
				float64(m.Alloc)/1024/1024)
		case <-s.done:
			return
		}
	}
}

// EnterMaintenanceMode 进入维护模式：拒绝新连接、创建和加入房间
func (s *Server) EnterMaintenanceMode() {
	s.maintenanceMu.Lock()
	s.maintenanceMode = true
	s.maintenanceMu.Unlock()

	s.Broadcast(codec.NewErrorMessageWithText(protocol.ErrCodeServerMaintenance,
		"👷🏻‍♂️ 服务器即将维护，暂停创建和加入房间"))

	zap.S().Info("🔧 进入维护模式：停止新连接和房间创建")
}

// IsMaintenanceMode 检查是否在维护模式
func (s *Server) IsMaintenanceMode() bool {
	s.maintenanceMu.RLock()
	defer s.maintenanceMu.RUnlock()
	return s.maintenanceMode
}

// Shutdown 优雅关闭：进入维护模式、断开所有连接、停止 HTTP 服务
func (s *Server) Shutdown(ctx context.Context) error {
	s.EnterMaintenanceMode()

	s.closeOnce.Do(func() { close(s.done) })
	s.rateLimiter.Close()

	// 关闭所有客户端连接，读协程退出时各自离开房间
	s.clientsMu.RLock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.RUnlock()

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	zap.S().Info("服务器已关闭")
	return err
}
