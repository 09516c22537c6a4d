package game

import (
	"sync"
	"time"

	"github.com/Ghostzzz0507/uno/logger"
)

// Registry is the process-wide directory of live rooms. It owns the room map
// and the player-to-room map, so room creation, joins and disconnects stay
// atomic with respect to each other. It never reaches into room state: rooms
// are addressed only through their channels.
type Registry struct {
	locker      sync.RWMutex
	rooms       map[string]*Room
	playerRooms map[string]string

	idGen          UniqueIdGenerator
	deckFactory    func() DeckBuilder
	autoStartDelay time.Duration
}

func NewRegistry(idGen UniqueIdGenerator, deckFactory func() DeckBuilder, autoStartDelay time.Duration) *Registry {
	return &Registry{
		rooms:          make(map[string]*Room),
		playerRooms:    make(map[string]string),
		idGen:          idGen,
		deckFactory:    deckFactory,
		autoStartDelay: autoStartDelay,
	}
}

// CreateRoom allocates a fresh Waiting room seated with p and starts its game
// loop. A player already attached to a room gets a silent no-op, preserving
// the one-room-per-player invariant.
func (reg *Registry) CreateRoom(p Player) *Room {
	reg.locker.Lock()
	if _, attached := reg.playerRooms[p.ID()]; attached {
		reg.locker.Unlock()
		return nil
	}

	id := reg.idGen.Generate()
	room := NewRoom(p, reg.deckFactory(), reg.autoStartDelay)
	room.SetId(id)
	room.SetParentLobby(reg)

	reg.rooms[id] = room
	reg.playerRooms[p.ID()] = id
	reg.locker.Unlock()

	room.announceCreated()
	go room.GameLoop()

	logger.Infof("[Registry] Room %s created by %s", id, p.Name())
	return room
}

// JoinRoom forwards a seat request to the room's own goroutine and waits for
// its verdict. The player-to-room mapping is reserved under the write lock
// before the handshake, so two concurrent joins with the same player id
// cannot both pass the attached check; a refusal rolls the reservation back.
func (reg *Registry) JoinRoom(roomID string, p Player) error {
	reg.locker.Lock()
	room, exists := reg.rooms[roomID]
	if !exists {
		reg.locker.Unlock()
		return ErrRoomNotFound
	}
	if _, attached := reg.playerRooms[p.ID()]; attached {
		reg.locker.Unlock()
		return nil
	}
	reg.playerRooms[p.ID()] = roomID
	reg.locker.Unlock()

	req := NewRoomJoinRequest(p)
	room.RequestJoin(req)
	if err := <-req.errChan; err != nil {
		reg.ReleasePlayer(p.ID())
		return err
	}
	return nil
}

// Disconnect routes a transport-level disconnect to the player's room, where
// it is serialized like any other command.
func (reg *Registry) Disconnect(p Player) {
	reg.locker.RLock()
	roomID, attached := reg.playerRooms[p.ID()]
	room := reg.rooms[roomID]
	reg.locker.RUnlock()

	if !attached || room == nil {
		p.CancelAndRelease()
		return
	}
	room.RequestRemove(p)
}

// ReleasePlayer drops the player-to-room mapping. Called by a room once it
// has removed the seat.
func (reg *Registry) ReleasePlayer(playerID string) {
	reg.locker.Lock()
	delete(reg.playerRooms, playerID)
	reg.locker.Unlock()
}

// RemoveRoom destroys a room the instant its seat list goes empty.
func (reg *Registry) RemoveRoom(roomID string) {
	reg.locker.Lock()
	room := reg.rooms[roomID]
	delete(reg.rooms, roomID)
	reg.locker.Unlock()

	if room == nil {
		return
	}
	reg.idGen.Dispose(roomID)
	room.CloseAndRelease()
	logger.Infof("[Registry] Room %s destroyed", roomID)
}

func (reg *Registry) RoomCount() int {
	reg.locker.RLock()
	defer reg.locker.RUnlock()
	return len(reg.rooms)
}

func (reg *Registry) snapshotRooms() []*Room {
	reg.locker.RLock()
	defer reg.locker.RUnlock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		rooms = append(rooms, r)
	}
	return rooms
}

// RunTickers fans the shared clock out to every live room: one tick per
// second drives auto-start deadlines, one ping sweep every 30 seconds keeps
// connections alive.
func (reg *Registry) RunTickers(done <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	pingTicker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	defer pingTicker.Stop()

	for {
		select {
		case now := <-ticker.C:
			for _, r := range reg.snapshotRooms() {
				r.Tick(now)
			}
		case <-pingTicker.C:
			for _, r := range reg.snapshotRooms() {
				r.PingPlayers()
			}
		case <-done:
			return
		}
	}
}
