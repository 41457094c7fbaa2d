//go:build !production

package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/word-imposter/internal/types"
)

// MockServer 实现 types.ServerInterface 的 mock
type MockServer struct {
	mock.Mock
}

func (m *MockServer) IsMaintenanceMode() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockServer) GetOnlineCount() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockServer) GetClientByID(id string) types.ClientInterface {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(types.ClientInterface)
}

// FakeServer 按 ID 查找的简单客户端表
type FakeServer struct {
	Maintenance bool

	clients map[string]types.ClientInterface
	mu      sync.RWMutex
}

// NewFakeServer 创建并注册客户端
func NewFakeServer(clients ...types.ClientInterface) *FakeServer {
	s := &FakeServer{clients: make(map[string]types.ClientInterface)}
	for _, c := range clients {
		s.Add(c)
	}
	return s
}

// Add 注册客户端
func (s *FakeServer) Add(c types.ClientInterface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.GetID()] = c
}

// Remove 注销客户端
func (s *FakeServer) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, id)
}

func (s *FakeServer) IsMaintenanceMode() bool { return s.Maintenance }

func (s *FakeServer) GetOnlineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *FakeServer) GetClientByID(id string) types.ClientInterface {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.clients[id]; ok {
		return c
	}
	return nil
}
