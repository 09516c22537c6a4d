package game

import (
	"encoding/json"
	"errors"
	"sync"

	"golang.org/x/time/rate"

	"github.com/Ghostzzz0507/uno/logger"
)

const (
	ActionCreateRoom  = "createRoom"
	ActionJoinRoom    = "joinRoom"
	ActionPlayCard    = "playCard"
	ActionDrawCard    = "drawCard"
	ActionSendMessage = "sendMessage"
)

type clientCommand struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type createRoomPayload struct {
	PlayerName string `json:"playerName"`
}

type joinRoomPayload struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type playCardPayload struct {
	CardID      int    `json:"cardId"`
	ChosenColor string `json:"chosenColor"`
}

type sendMessagePayload struct {
	Message string `json:"message"`
}

var errSessionClosed = errors.New("session closed")

// session binds one websocket connection to one logical player identity and
// implements Player for the room. Reads and writes each get their own pump
// goroutine; the room only ever touches the outbox.
type session struct {
	id       string
	name     string
	limiter  *rate.Limiter
	socket   NetworkSession
	registry *Registry

	outbox   chan []byte
	pingChan chan struct{}
	done     chan struct{}

	closeOnce sync.Once

	roomMu sync.Mutex
	room   *Room
}

func newSession(id, name string, socket NetworkSession, registry *Registry) *session {
	return &session{
		id:       id,
		name:     name,
		limiter:  rate.NewLimiter(5, 10),
		socket:   socket,
		registry: registry,
		outbox:   make(chan []byte, 256),
		pingChan: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

func (s *session) ID() string {
	return s.id
}

func (s *session) Name() string {
	return s.name
}

func (s *session) Send(data []byte) error {
	select {
	case <-s.done:
		return errSessionClosed
	case s.outbox <- data:
		return nil
	default:
		return errors.New("outbox full")
	}
}

func (s *session) Ping() error {
	select {
	case <-s.done:
		return errSessionClosed
	case s.pingChan <- struct{}{}:
		return nil
	default:
		return nil
	}
}

func (s *session) SetRoom(r *Room) {
	s.roomMu.Lock()
	s.room = r
	s.roomMu.Unlock()
}

func (s *session) currentRoom() *Room {
	s.roomMu.Lock()
	defer s.roomMu.Unlock()
	return s.room
}

func (s *session) CancelAndRelease() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.socket.Close("")
	})
}

// ReadPump decodes inbound commands. Room bootstrap (create/join) goes through
// the registry; everything else is forwarded to the player's current room.
// A disconnect is handed to the registry as just another room-scoped command.
func (s *session) ReadPump() {
	defer s.registry.Disconnect(s)

	for {
		data, err := s.socket.Read()
		if err != nil {
			return
		}
		if !s.limiter.Allow() {
			continue
		}

		var cmd clientCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			continue
		}
		s.handleCommand(cmd)
	}
}

func (s *session) handleCommand(cmd clientCommand) {
	switch cmd.Action {
	case ActionCreateRoom:
		var payload createRoomPayload
		if err := json.Unmarshal(cmd.Data, &payload); err != nil {
			return
		}
		// The name is only settable before the session is seated anywhere;
		// afterwards the room goroutine reads it freely.
		if payload.PlayerName != "" && s.currentRoom() == nil {
			s.name = payload.PlayerName
		}
		s.registry.CreateRoom(s)

	case ActionJoinRoom:
		var payload joinRoomPayload
		if err := json.Unmarshal(cmd.Data, &payload); err != nil {
			return
		}
		if payload.PlayerName != "" && s.currentRoom() == nil {
			s.name = payload.PlayerName
		}
		if err := s.registry.JoinRoom(payload.RoomID, s); err != nil {
			data := makeEventData(EventError, map[string]any{"message": err.Error()})
			if sendErr := s.Send(data); sendErr != nil {
				logger.Debugf("[Session %s] Failed to deliver join error: %v", s.id, sendErr)
			}
		}

	default:
		if room := s.currentRoom(); room != nil {
			room.Send(commandEnvelope{cmd: cmd, from: s})
		}
	}
}

func (s *session) WritePump() {
	for {
		select {
		case <-s.done:
			return
		case data := <-s.outbox:
			if err := s.socket.Write(data); err != nil {
				return
			}
		case <-s.pingChan:
			if err := s.socket.Ping(); err != nil {
				return
			}
		}
	}
}
