package game

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Ghostzzz0507/uno/logger"
)

const (
	EventRoomCreated  = "roomCreated"
	EventRoomJoined   = "roomJoined"
	EventPlayerJoined = "playerJoined"
	EventError        = "error"
	EventGameStarted  = "gameStarted"
	EventGameUpdate   = "gameUpdate"
	EventUnoAlert     = "unoAlert"
	EventGameWon      = "gameWon"
	EventChatMessage  = "chatMessage"
)

type eventEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// dataSendTask is a deferred delivery: handlers only collect tasks while
// mutating state, the room loop flushes them afterwards. Tests inspect the
// collected tasks directly.
type dataSendTask struct {
	to   Player
	data []byte
}

func makeEventData(event string, payload any) []byte {
	data, err := json.Marshal(eventEnvelope{Event: event, Data: payload})
	if err != nil {
		logger.Criticalf("Failed to marshal %s event: %v", event, err)
		return nil
	}
	return data
}

type ChatMessage struct {
	Type      string `json:"type"`
	Player    string `json:"player"`
	PlayerID  string `json:"playerId,omitempty"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	ID        string `json:"id"`
}

func newChatMessage(msgType, from, fromID, message string) ChatMessage {
	return ChatMessage{
		Type:      msgType,
		Player:    from,
		PlayerID:  fromID,
		Message:   message,
		Timestamp: time.Now().Format("15:04:05"),
		ID:        uuid.NewString(),
	}
}
