package stype

import "encoding/json"

type WebSocketMessage struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

const (
	MessageKindPing  = "ping"
	MessageKindPong  = "pong"
	MessageKindMatch = "match"
	MessageKindLike  = "like"
)
