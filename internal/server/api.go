package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/palemoky/word-imposter/internal/protocol"
	"github.com/palemoky/word-imposter/internal/server/storage"
)

// StatsResponse GET /api/stats
type StatsResponse struct {
	Online        int   `json:"online"`
	Rooms         int   `json:"rooms"`
	RoomsCreated  int64 `json:"rooms_created"`
	RoundsStarted int64 `json:"rounds_started"`
	Maintenance   bool  `json:"maintenance"`
}

// HealthResponse GET /health
type HealthResponse struct {
	Status string `json:"status"`
	Redis  string `json:"redis"`
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(c *gin.Context) {
	resp := HealthResponse{Status: "ok", Redis: "disabled"}

	if s.store.Enabled() {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			resp.Redis = "down"
		} else {
			resp.Redis = "ok"
		}
	}

	status := http.StatusOK
	if s.IsMaintenanceMode() {
		resp.Status = "maintenance"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// handleCreateRoom 通过 HTTP 创建房间，与 create_room 消息等价
func (s *Server) handleCreateRoom(c *gin.Context) {
	if s.IsMaintenanceMode() {
		c.JSON(http.StatusServiceUnavailable, protocol.ErrorPayload{
			Code:    protocol.ErrCodeServerMaintenance,
			Message: protocol.ErrorMessages[protocol.ErrCodeServerMaintenance],
		})
		return
	}

	if !s.rateLimiter.Allow(GetClientIP(c.Request)) {
		c.JSON(http.StatusTooManyRequests, protocol.ErrorPayload{
			Code:    protocol.ErrCodeRateLimit,
			Message: protocol.ErrorMessages[protocol.ErrCodeRateLimit],
		})
		return
	}

	code := s.roomManager.CreateRoom()
	c.JSON(http.StatusCreated, protocol.RoomCreatedAck{RoomCode: code})
}

// handleGetRoom 返回房间公开视图，不含任何词语
func (s *Server) handleGetRoom(c *gin.Context) {
	view := s.roomManager.View(c.Param("code"))
	if view == nil {
		c.JSON(http.StatusNotFound, protocol.ErrorPayload{
			Code:    protocol.ErrCodeRoomNotFound,
			Message: protocol.ErrorMessages[protocol.ErrCodeRoomNotFound],
		})
		return
	}
	c.JSON(http.StatusOK, view)
}

// handleStats 在线与房间统计，累计计数来自 Redis（未启用时为 0）
func (s *Server) handleStats(c *gin.Context) {
	resp := StatsResponse{
		Online:      s.GetOnlineCount(),
		Rooms:       s.roomManager.RoomCount(),
		Maintenance: s.IsMaintenanceMode(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	counters, err := s.store.GetCounters(ctx, storage.CounterRoomsCreated, storage.CounterRoundsStarted)
	if err != nil {
		zap.S().Warnf("读取统计计数失败: %v", err)
	} else {
		resp.RoomsCreated = counters[storage.CounterRoomsCreated]
		resp.RoundsStarted = counters[storage.CounterRoundsStarted]
	}

	c.JSON(http.StatusOK, resp)
}
