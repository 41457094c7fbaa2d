package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/word-imposter/internal/protocol"
)

// ErrEmptyType 消息缺少 type 字段
var ErrEmptyType = errors.New("message type is empty")

// Codec 线路编解码器
type Codec interface {
	Encode(m *protocol.Message) ([]byte, error)
	Decode(data []byte) (*protocol.Message, error)
	// Binary 为 true 时使用二进制帧
	Binary() bool
}

// ForFormat 按配置名称选择编解码器，未知名称退回 JSON
func ForFormat(format string) Codec {
	if format == "protobuf" {
		return ProtobufCodec{}
	}
	return JSONCodec{}
}

// NewMessage 创建一个新消息
func NewMessage(msgType protocol.MessageType, payload any) (*protocol.Message, error) {
	msg := &protocol.Message{Type: msgType}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", msgType, err)
		}
		msg.Payload = data
	}
	return msg, nil
}

// MustNewMessage 创建消息，失败时 panic
func MustNewMessage(msgType protocol.MessageType, payload any) *protocol.Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// NewAck 创建请求应答，id 为空时返回 nil（请求不需要应答）
func NewAck(id string, payload any) *protocol.Message {
	if id == "" {
		return nil
	}
	msg := MustNewMessage(protocol.MsgAck, payload)
	msg.ID = id
	return msg
}

// ParsePayload 严格解析消息的 Payload 到指定类型，拒绝未知字段
func ParsePayload[T any](msg *protocol.Message) (*T, error) {
	var payload T
	if len(msg.Payload) == 0 {
		return nil, protocol.ErrMissingField
	}

	dec := json.NewDecoder(bytes.NewReader(msg.Payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", msg.Type, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode %s payload: trailing data", msg.Type)
	}

	if v, ok := any(&payload).(protocol.Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return &payload, nil
}

// NewErrorMessage 创建错误消息
func NewErrorMessage(code int) *protocol.Message {
	return NewErrorMessageWithText(code, protocol.ErrorMessages[code])
}

// NewErrorMessageWithText 创建带自定义文本的错误消息
func NewErrorMessageWithText(code int, text string) *protocol.Message {
	msg, _ := NewMessage(protocol.MsgError, protocol.ErrorPayload{
		Code:    code,
		Message: text,
	})
	return msg
}

// --- JSON ---

// JSONCodec 文本帧 JSON 编码
type JSONCodec struct{}

func (JSONCodec) Binary() bool { return false }

// Encode 将消息编码为 JSON
func (JSONCodec) Encode(m *protocol.Message) ([]byte, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	if err := json.NewEncoder(buf).Encode(m); err != nil {
		return nil, err
	}
	// Encoder 会追加换行
	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return append([]byte(nil), out...), nil
}

// Decode 从 JSON 解码消息，调用方使用完毕后可 PutMessage
func (JSONCodec) Decode(data []byte) (*protocol.Message, error) {
	msg := GetMessage()
	if err := json.Unmarshal(data, msg); err != nil {
		PutMessage(msg)
		return nil, err
	}
	if msg.Type == "" {
		PutMessage(msg)
		return nil, ErrEmptyType
	}
	return msg, nil
}

// --- Protobuf ---

// ProtobufCodec 二进制帧编码，信封为 google.protobuf.Struct
type ProtobufCodec struct{}

func (ProtobufCodec) Binary() bool { return true }

// Encode 将消息编码为 Protobuf 字节
func (ProtobufCodec) Encode(m *protocol.Message) ([]byte, error) {
	env := GetEnvelope()
	defer PutEnvelope(env)

	env.Fields = map[string]*structpb.Value{
		"type": structpb.NewStringValue(string(m.Type)),
	}
	if m.ID != "" {
		env.Fields["id"] = structpb.NewStringValue(m.ID)
	}
	if len(m.Payload) > 0 {
		var raw any
		if err := json.Unmarshal(m.Payload, &raw); err != nil {
			return nil, fmt.Errorf("payload is not valid json: %w", err)
		}
		v, err := structpb.NewValue(raw)
		if err != nil {
			return nil, err
		}
		env.Fields["payload"] = v
	}

	return proto.Marshal(env)
}

// Decode 从 Protobuf 字节解码消息
func (ProtobufCodec) Decode(data []byte) (*protocol.Message, error) {
	env := GetEnvelope()
	defer PutEnvelope(env)

	if err := proto.Unmarshal(data, env); err != nil {
		return nil, err
	}

	msgType := env.GetFields()["type"].GetStringValue()
	if msgType == "" {
		return nil, ErrEmptyType
	}

	msg := GetMessage()
	msg.Type = protocol.MessageType(msgType)
	msg.ID = env.GetFields()["id"].GetStringValue()

	if v, ok := env.GetFields()["payload"]; ok {
		payload, err := json.Marshal(v.AsInterface())
		if err != nil {
			PutMessage(msg)
			return nil, err
		}
		msg.Payload = payload
	}
	return msg, nil
}
