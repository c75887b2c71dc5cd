package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/gowlc/wlc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Message types carried in the "type" field.
const (
	TypeStatus         = "status"
	TypeStatusResponse = "status_response"
	TypePing           = "ping"
	TypePong           = "pong"
	TypeError          = "error"
)

// Status is what a running instance reports about itself.
type Status struct {
	PID      int          `json:"pid"`
	Backend  string       `json:"backend"`
	Script   string       `json:"script,omitempty"`
	Updates  uint64       `json:"updates"`
	Snapshot wlc.Snapshot `json:"snapshot"`
}

func newMessage(typ string, fields map[string]any) (*structpb.Struct, error) {
	m := map[string]any{"type": typ}
	for k, v := range fields {
		m[k] = v
	}
	msg, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s message: %w", typ, err)
	}
	return msg, nil
}

// NewStatusMessage creates a new status query message
func NewStatusMessage() (*structpb.Struct, error) {
	return newMessage(TypeStatus, nil)
}

// NewPingMessage creates a liveness probe
func NewPingMessage() (*structpb.Struct, error) {
	return newMessage(TypePing, nil)
}

// NewPongMessage answers a ping
func NewPongMessage() (*structpb.Struct, error) {
	return newMessage(TypePong, nil)
}

// NewStatusResponseMessage creates a new status response message
func NewStatusResponseMessage(status Status) (*structpb.Struct, error) {
	// structpb only accepts JSON-shaped values, so go through JSON once.
	data, err := json.Marshal(status)
	if err != nil {
		return nil, fmt.Errorf("failed to encode status: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to encode status: %w", err)
	}
	return newMessage(TypeStatusResponse, map[string]any{"status": fields})
}

// NewErrorMessage creates a new error message
func NewErrorMessage(errMsg string) (*structpb.Struct, error) {
	return newMessage(TypeError, map[string]any{"error": errMsg})
}

// MessageType returns the "type" field, or "" when it is missing.
func MessageType(msg *structpb.Struct) string {
	v, ok := msg.GetFields()["type"]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}

// GetStatus extracts the status from a status response
func GetStatus(msg *structpb.Struct) (*Status, error) {
	if typ := MessageType(msg); typ != TypeStatusResponse {
		return nil, fmt.Errorf("message is not a status response: %q", typ)
	}
	v, ok := msg.GetFields()["status"]
	if !ok || v.GetStructValue() == nil {
		return nil, fmt.Errorf("invalid status response payload")
	}

	data, err := v.GetStructValue().MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("invalid status response payload: %w", err)
	}
	var status Status
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("invalid status response payload: %w", err)
	}
	return &status, nil
}

// GetError extracts the message of an error response
func GetError(msg *structpb.Struct) (string, error) {
	if typ := MessageType(msg); typ != TypeError {
		return "", fmt.Errorf("message is not an error response: %q", typ)
	}
	return msg.GetFields()["error"].GetStringValue(), nil
}
