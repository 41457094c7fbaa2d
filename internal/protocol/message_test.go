package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageType_IsRequest(t *testing.T) {
	t.Parallel()

	for _, mt := range []MessageType{MsgPing, MsgCreateRoom, MsgJoinRoom, MsgLeaveRoom, MsgStartRound} {
		assert.True(t, mt.IsRequest(), mt)
	}
	for _, mt := range []MessageType{MsgConnected, MsgPong, MsgAck, MsgRoomUpdate, MsgRoundStarted, MsgRole, MsgError, "chat"} {
		assert.False(t, mt.IsRequest(), mt)
	}
}

func TestErrorMessages_Complete(t *testing.T) {
	t.Parallel()

	codes := []int{
		ErrCodeUnknown, ErrCodeInvalidMsg, ErrCodeRateLimit,
		ErrCodeRoomNotFound, ErrCodeInvalidName, ErrCodeNameTaken, ErrCodeNotInRoom,
		ErrCodeNotHost, ErrCodeNotEnoughPlayers, ErrCodeServerMaintenance,
	}
	for _, code := range codes {
		assert.NotEmpty(t, ErrorMessages[code], "code %d", code)
	}
}

func TestPayload_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&RoomCodePayload{RoomCode: "1234"}).Validate())
	assert.ErrorIs(t, (&RoomCodePayload{}).Validate(), ErrMissingField)

	var join any = &JoinRoomPayload{}
	_, ok := join.(Validator)
	assert.False(t, ok, "join checks room before name")
}
