package handler

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/word-imposter/internal/game/room"
	"github.com/palemoky/word-imposter/internal/protocol"
	"github.com/palemoky/word-imposter/internal/protocol/codec"
	"github.com/palemoky/word-imposter/internal/testutil"
	"github.com/palemoky/word-imposter/internal/words"
)

func setupHandler(t *testing.T) (*Handler, *room.RoomManager, *testutil.FakeServer) {
	t.Helper()

	list, err := words.NewList([]words.Pair{{Word: "apple", Hint: "fruit"}})
	require.NoError(t, err)

	rm := room.NewRoomManager(room.Options{
		Words:  list,
		Random: room.NewLockedRandom(rand.New(rand.NewPCG(7, 7))),
	})
	t.Cleanup(rm.Close)

	srv := testutil.NewFakeServer()
	h := NewHandler(HandlerDeps{Server: srv, RoomManager: rm})
	return h, rm, srv
}

func newClient(srv *testutil.FakeServer, id string) *testutil.SimpleClient {
	c := &testutil.SimpleClient{ID: id}
	srv.Add(c)
	return c
}

func request(t *testing.T, msgType protocol.MessageType, id string, payload any) *protocol.Message {
	t.Helper()
	msg, err := codec.NewMessage(msgType, payload)
	require.NoError(t, err)
	msg.ID = id
	return msg
}

func decode[T any](t *testing.T, msg *protocol.Message) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(msg.Payload, &v))
	return v
}

// lastOfType 最后一条指定类型的消息
func lastOfType(t *testing.T, c *testutil.SimpleClient, msgType protocol.MessageType) *protocol.Message {
	t.Helper()
	msgs := c.MessagesOfType(msgType)
	require.NotEmpty(t, msgs, "no %s message for %s", msgType, c.ID)
	return msgs[len(msgs)-1]
}

func createRoom(t *testing.T, h *Handler, c *testutil.SimpleClient) string {
	t.Helper()
	h.Handle(c, request(t, protocol.MsgCreateRoom, "c1", nil))
	ack := decode[protocol.RoomCreatedAck](t, lastOfType(t, c, protocol.MsgAck))
	require.NotEmpty(t, ack.RoomCode)
	c.Reset()
	return ack.RoomCode
}

func join(t *testing.T, h *Handler, c *testutil.SimpleClient, code, name string) protocol.JoinAck {
	t.Helper()
	h.Handle(c, request(t, protocol.MsgJoinRoom, "j-"+c.ID, protocol.JoinRoomPayload{RoomCode: code, Name: name}))
	ack := lastOfType(t, c, protocol.MsgAck)
	assert.Equal(t, "j-"+c.ID, ack.ID)
	return decode[protocol.JoinAck](t, ack)
}

func TestHandler_UnknownType(t *testing.T) {
	t.Parallel()

	h, _, srv := setupHandler(t)
	c := newClient(srv, "p1")

	h.Handle(c, &protocol.Message{Type: "chat"})

	errMsg := lastOfType(t, c, protocol.MsgError)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, decode[protocol.ErrorPayload](t, errMsg).Code)
}

func TestHandler_Ping(t *testing.T) {
	t.Parallel()

	h, _, srv := setupHandler(t)
	c := newClient(srv, "p1")

	h.Handle(c, request(t, protocol.MsgPing, "", protocol.PingPayload{Timestamp: 42}))

	pong := decode[protocol.PongPayload](t, lastOfType(t, c, protocol.MsgPong))
	assert.Equal(t, int64(42), pong.ClientTimestamp)
	assert.Positive(t, pong.ServerTimestamp)
}

func TestHandler_CreateRoom(t *testing.T) {
	t.Parallel()

	h, rm, srv := setupHandler(t)
	c := newClient(srv, "p1")

	h.Handle(c, request(t, protocol.MsgCreateRoom, "req-1", nil))

	ack := lastOfType(t, c, protocol.MsgAck)
	assert.Equal(t, "req-1", ack.ID)
	code := decode[protocol.RoomCreatedAck](t, ack).RoomCode
	assert.NotNil(t, rm.GetRoom(code))
	assert.Empty(t, c.GetRoom(), "creator does not join")
}

func TestHandler_CreateRoom_WithoutID(t *testing.T) {
	t.Parallel()

	h, _, srv := setupHandler(t)
	c := newClient(srv, "p1")

	h.Handle(c, request(t, protocol.MsgCreateRoom, "", nil))

	ack := lastOfType(t, c, protocol.MsgAck)
	assert.Empty(t, ack.ID)
	assert.NotEmpty(t, decode[protocol.RoomCreatedAck](t, ack).RoomCode)
}

func TestHandler_Maintenance(t *testing.T) {
	t.Parallel()

	mockServer := new(testutil.MockServer)
	mockServer.On("IsMaintenanceMode").Return(true)

	rm := room.NewRoomManager(room.Options{})
	t.Cleanup(rm.Close)
	h := NewHandler(HandlerDeps{Server: mockServer, RoomManager: rm})

	c := new(testutil.MockClient)
	c.On("SendMessage", mock.MatchedBy(func(m *protocol.Message) bool {
		return m.Type == protocol.MsgError
	})).Once()

	h.Handle(c, request(t, protocol.MsgCreateRoom, "", nil))

	c.AssertExpectations(t)
	assert.Equal(t, 0, rm.RoomCount())
}

func TestHandler_JoinRoom(t *testing.T) {
	t.Parallel()

	h, _, srv := setupHandler(t)
	ann := newClient(srv, "ann")
	bo := newClient(srv, "bo")
	code := createRoom(t, h, ann)

	ack := join(t, h, ann, code, "Ann")
	assert.True(t, ack.OK)
	assert.True(t, ack.IsHost)
	assert.Equal(t, "Ann", *ack.HostName)
	assert.Equal(t, code, ann.GetRoom())

	ack = join(t, h, bo, code, "Bo")
	assert.True(t, ack.OK)
	assert.False(t, ack.IsHost)
	assert.Equal(t, "Ann", *ack.HostName)

	// 两人都收到最新视图
	for _, c := range []*testutil.SimpleClient{ann, bo} {
		view := decode[protocol.RoomUpdatePayload](t, lastOfType(t, c, protocol.MsgRoomUpdate))
		require.Len(t, view.Players, 2)
		assert.Equal(t, "Bo", view.Players[1].Name)
	}
}

func TestHandler_JoinRoom_Failures(t *testing.T) {
	t.Parallel()

	h, _, srv := setupHandler(t)
	ann := newClient(srv, "ann")
	other := newClient(srv, "other")
	code := createRoom(t, h, ann)
	join(t, h, ann, code, "ann")

	tests := []struct {
		name string
		code string
		nick string
		want int
	}{
		{"room not found", "nope", "Bo", protocol.ErrCodeRoomNotFound},
		{"invalid name", code, " a ", protocol.ErrCodeInvalidName},
		{"name taken", code, "ANN", protocol.ErrCodeNameTaken},
		{"missing room code", "", "Bo", protocol.ErrCodeRoomNotFound},
		{"missing name", code, "", protocol.ErrCodeInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other.Reset()
			ack := join(t, h, other, tt.code, tt.nick)
			assert.False(t, ack.OK)
			assert.Equal(t, tt.want, ack.Code)
			assert.Equal(t, protocol.ErrorMessages[tt.want], ack.Error)
			assert.Empty(t, other.MessagesOfType(protocol.MsgRoomUpdate))
			assert.Empty(t, other.GetRoom())
		})
	}
}

func TestHandler_JoinRoom_MalformedPayload(t *testing.T) {
	t.Parallel()

	h, _, srv := setupHandler(t)
	c := newClient(srv, "p1")

	msg := &protocol.Message{Type: protocol.MsgJoinRoom, ID: "x", Payload: json.RawMessage(`{"room_code":"1234","name":"Ann","is_imposter":true}`)}
	h.Handle(c, msg)

	ack := decode[protocol.JoinAck](t, lastOfType(t, c, protocol.MsgAck))
	assert.False(t, ack.OK)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, ack.Code)
}

func TestHandler_JoinRoom_LeavesPreviousRoom(t *testing.T) {
	t.Parallel()

	h, rm, srv := setupHandler(t)
	ann := newClient(srv, "ann")
	bo := newClient(srv, "bo")
	first := createRoom(t, h, ann)
	second := createRoom(t, h, ann)

	join(t, h, ann, first, "Ann")
	join(t, h, bo, first, "Bo")
	bo.Reset()

	ack := join(t, h, ann, second, "Ann")
	require.True(t, ack.OK)
	assert.Equal(t, second, ann.GetRoom())

	view := decode[protocol.RoomUpdatePayload](t, lastOfType(t, bo, protocol.MsgRoomUpdate))
	require.Len(t, view.Players, 1)
	assert.Equal(t, "Bo", *view.HostName)
	assert.Len(t, rm.GetRoom(first).Players, 1)
}

func TestHandler_JoinRoom_FailureKeepsPreviousRoom(t *testing.T) {
	t.Parallel()

	h, rm, srv := setupHandler(t)
	ann := newClient(srv, "ann")
	cy := newClient(srv, "cy")
	rival := newClient(srv, "rival")
	first := createRoom(t, h, ann)
	second := createRoom(t, h, ann)

	join(t, h, ann, first, "Ann")
	join(t, h, cy, first, "Cy")
	join(t, h, rival, second, "Ann")

	tests := []struct {
		name string
		code string
		nick string
		want int
	}{
		{"name taken in target room", second, "ANN", protocol.ErrCodeNameTaken},
		{"target room missing", "nope", "Ann", protocol.ErrCodeRoomNotFound},
		{"invalid name", second, "x", protocol.ErrCodeInvalidName},
		{"same room again", first, "Ann", protocol.ErrCodeNameTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ann.Reset()
			cy.Reset()

			ack := join(t, h, ann, tt.code, tt.nick)
			assert.False(t, ack.OK)
			assert.Equal(t, tt.want, ack.Code)

			assert.Equal(t, first, ann.GetRoom())
			room := rm.GetRoom(first)
			require.NotNil(t, room)
			assert.Len(t, room.Players, 2)
			assert.Equal(t, "ann", room.HostID)
			assert.Empty(t, cy.MessagesOfType(protocol.MsgRoomUpdate))
			assert.Empty(t, ann.MessagesOfType(protocol.MsgRoomUpdate))
		})
	}

	assert.Len(t, rm.GetRoom(second).Players, 1)
}

func TestHandler_JoinAck_AlwaysCarriesHostFields(t *testing.T) {
	t.Parallel()

	h, _, srv := setupHandler(t)
	ann := newClient(srv, "ann")
	bo := newClient(srv, "bo")
	code := createRoom(t, h, ann)
	join(t, h, ann, code, "Ann")
	join(t, h, bo, code, "Bo")

	raw := string(lastOfType(t, bo, protocol.MsgAck).Payload)
	assert.Contains(t, raw, `"is_host":false`)
	assert.Contains(t, raw, `"host_name":"Ann"`)
	assert.Contains(t, raw, `"round":0`)
}

func TestHandler_LeaveRoom(t *testing.T) {
	t.Parallel()

	h, rm, srv := setupHandler(t)
	ann := newClient(srv, "ann")
	bo := newClient(srv, "bo")
	code := createRoom(t, h, ann)
	join(t, h, ann, code, "Ann")
	join(t, h, bo, code, "Bo")
	bo.Reset()

	h.Handle(ann, request(t, protocol.MsgLeaveRoom, "l1", protocol.RoomCodePayload{RoomCode: code}))

	assert.True(t, decode[protocol.ResultAck](t, lastOfType(t, ann, protocol.MsgAck)).OK)
	assert.Empty(t, ann.GetRoom())

	view := decode[protocol.RoomUpdatePayload](t, lastOfType(t, bo, protocol.MsgRoomUpdate))
	assert.Equal(t, "Bo", *view.HostName)

	// 最后一人离开：房间销毁，不再广播
	bo.Reset()
	h.Handle(bo, request(t, protocol.MsgLeaveRoom, "", protocol.RoomCodePayload{RoomCode: code}))
	assert.Empty(t, bo.SentMessages())
	assert.Nil(t, rm.GetRoom(code))
}

func TestHandler_LeaveRoom_Absent(t *testing.T) {
	t.Parallel()

	h, _, srv := setupHandler(t)
	c := newClient(srv, "p1")

	h.Handle(c, request(t, protocol.MsgLeaveRoom, "", protocol.RoomCodePayload{RoomCode: "1234"}))
	assert.Empty(t, c.SentMessages(), "silent without request id")

	h.Handle(c, request(t, protocol.MsgLeaveRoom, "l1", protocol.RoomCodePayload{RoomCode: "1234"}))
	ack := decode[protocol.ResultAck](t, lastOfType(t, c, protocol.MsgAck))
	assert.False(t, ack.OK)
	assert.Equal(t, protocol.ErrCodeRoomNotFound, ack.Code)

	// 房间存在但不在其中
	other := newClient(srv, "other")
	code := createRoom(t, h, other)
	join(t, h, other, code, "Ann")

	h.Handle(c, request(t, protocol.MsgLeaveRoom, "l2", protocol.RoomCodePayload{RoomCode: code}))
	ack = decode[protocol.ResultAck](t, lastOfType(t, c, protocol.MsgAck))
	assert.False(t, ack.OK)
	assert.Equal(t, protocol.ErrCodeNotInRoom, ack.Code)
}

func TestHandler_HandleDisconnect(t *testing.T) {
	t.Parallel()

	h, rm, srv := setupHandler(t)
	ann := newClient(srv, "ann")
	bo := newClient(srv, "bo")
	code := createRoom(t, h, ann)
	join(t, h, ann, code, "Ann")
	join(t, h, bo, code, "Bo")
	bo.Reset()

	srv.Remove("ann")
	h.HandleDisconnect(ann)

	view := decode[protocol.RoomUpdatePayload](t, lastOfType(t, bo, protocol.MsgRoomUpdate))
	require.Len(t, view.Players, 1)
	assert.Equal(t, "Bo", *view.HostName)
	assert.Equal(t, "bo", rm.GetRoom(code).HostID)

	// 未加入任何房间的连接断开不产生消息
	idle := newClient(srv, "idle")
	h.HandleDisconnect(idle)
	assert.Empty(t, idle.SentMessages())
}
