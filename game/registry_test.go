package game

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newLivePlayer builds a mock that tolerates the room goroutine flushing
// events to it at any time.
func newLivePlayer(id, name string) *MockPlayer {
	p := newMockPlayer(id, name)
	p.On("Send", mock.Anything).Return(nil).Maybe()
	p.On("CancelAndRelease").Return().Maybe()
	return p
}

func newTestRegistry(idGen UniqueIdGenerator) *Registry {
	// A huge delay keeps rooms from auto-starting mid-test.
	return NewRegistry(idGen, func() DeckBuilder { return &MockDeckBuilder{} }, time.Hour)
}

func TestRegistry_CreateRoom(t *testing.T) {
	t.Parallel()
	idGen := &MockUniqueIdGenerator{}
	idGen.On("Generate").Return("ABC123").Once()
	reg := newTestRegistry(idGen)

	alice := newLivePlayer("alice-id", "alice")
	room := reg.CreateRoom(alice)

	require.NotNil(t, room)
	assert.Equal(t, "ABC123", room.Id())
	assert.Equal(t, 1, reg.RoomCount())

	// A player already seated somewhere cannot open a second room.
	assert.Nil(t, reg.CreateRoom(alice))
	assert.Equal(t, 1, reg.RoomCount())
	idGen.AssertExpectations(t)
}

func TestRegistry_JoinRoom(t *testing.T) {
	t.Parallel()
	idGen := &MockUniqueIdGenerator{}
	idGen.On("Generate").Return("ABC123").Once()
	reg := newTestRegistry(idGen)

	alice := newLivePlayer("alice-id", "alice")
	require.NotNil(t, reg.CreateRoom(alice))

	assert.ErrorIs(t, reg.JoinRoom("NOPE42", newLivePlayer("x", "x")), ErrRoomNotFound)

	bob := newLivePlayer("bob-id", "bob")
	require.NoError(t, reg.JoinRoom("ABC123", bob))
	// Re-joining while attached is a silent no-op.
	require.NoError(t, reg.JoinRoom("ABC123", bob))

	for i := 2; i < maxPlayers; i++ {
		p := newLivePlayer(fmt.Sprintf("p%d-id", i), fmt.Sprintf("p%d", i))
		require.NoError(t, reg.JoinRoom("ABC123", p))
	}
	overflow := newLivePlayer("late-id", "late")
	assert.ErrorIs(t, reg.JoinRoom("ABC123", overflow), ErrRoomFull)

	// The refusal must roll back the join reservation, or the player is
	// locked out of every future create and join.
	idGen.On("Generate").Return("DEF456").Once()
	assert.NotNil(t, reg.CreateRoom(overflow))
	idGen.AssertExpectations(t)
}

// TestRegistry_ConcurrentJoinsSameIdentity races two joins carrying the same
// player id (one guest token, two connections) into two different rooms. The
// registry must seat the identity at most once.
func TestRegistry_ConcurrentJoinsSameIdentity(t *testing.T) {
	t.Parallel()
	for i := 0; i < 50; i++ {
		reg := newTestRegistry(NewIdgen())
		roomA := reg.CreateRoom(newLivePlayer("alice-id", "alice"))
		roomB := reg.CreateRoom(newLivePlayer("carol-id", "carol"))
		require.NotNil(t, roomA)
		require.NotNil(t, roomB)

		bob1 := newLivePlayer("bob-id", "bob")
		bob2 := newLivePlayer("bob-id", "bob")

		var wg sync.WaitGroup
		var err1, err2 error
		wg.Add(2)
		go func() {
			defer wg.Done()
			err1 = reg.JoinRoom(roomA.Id(), bob1)
		}()
		go func() {
			defer wg.Done()
			err2 = reg.JoinRoom(roomB.Id(), bob2)
		}()
		wg.Wait()

		// Both calls succeed: one seats, the duplicate is a silent no-op.
		require.NoError(t, err1)
		require.NoError(t, err2)
		require.Equal(t, 3, len(roomA.seats)+len(roomB.seats),
			"one identity must hold exactly one seat across rooms")
	}
}

func TestRegistry_DisconnectDestroysEmptyRoom(t *testing.T) {
	t.Parallel()
	idGen := &MockUniqueIdGenerator{}
	idGen.On("Generate").Return("BYE123").Once()
	idGen.On("Dispose", "BYE123").Return().Once()
	reg := newTestRegistry(idGen)

	alice := newLivePlayer("alice-id", "alice")
	require.NotNil(t, reg.CreateRoom(alice))
	require.Equal(t, 1, reg.RoomCount())

	reg.Disconnect(alice)

	require.Eventually(t, func() bool {
		return reg.RoomCount() == 0
	}, time.Second, 10*time.Millisecond, "the last disconnect destroys the room")
	idGen.AssertExpectations(t)
}

func TestRegistry_DisconnectUnattachedPlayer(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry(&MockUniqueIdGenerator{})

	loner := newMockPlayer("loner-id", "loner")
	loner.On("CancelAndRelease").Return().Once()

	reg.Disconnect(loner)
	loner.AssertExpectations(t)
}

func TestRegistry_JoinAfterRoomDestroyed(t *testing.T) {
	t.Parallel()
	idGen := &MockUniqueIdGenerator{}
	idGen.On("Generate").Return("GONE01").Once()
	idGen.On("Dispose", "GONE01").Return().Once()
	reg := newTestRegistry(idGen)

	alice := newLivePlayer("alice-id", "alice")
	require.NotNil(t, reg.CreateRoom(alice))
	reg.Disconnect(alice)
	require.Eventually(t, func() bool {
		return reg.RoomCount() == 0
	}, time.Second, 10*time.Millisecond)

	assert.ErrorIs(t, reg.JoinRoom("GONE01", newLivePlayer("bob-id", "bob")), ErrRoomNotFound)
}
