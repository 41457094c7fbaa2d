//go:build !production

package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/palemoky/word-imposter/internal/server/storage"
)

// MockMirror 房间镜像 mock
type MockMirror struct {
	mock.Mock
}

func (m *MockMirror) SaveRoom(code string, data *storage.RoomData) {
	m.Called(code, data)
}

func (m *MockMirror) DeleteRoom(code string) {
	m.Called(code)
}

func (m *MockMirror) Incr(counter string) {
	m.Called(counter)
}
