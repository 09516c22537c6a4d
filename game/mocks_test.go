package game

import (
	"github.com/stretchr/testify/mock"
)

// --- Player ---

type MockPlayer struct {
	mock.Mock
}

func (m *MockPlayer) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPlayer) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPlayer) Send(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockPlayer) Ping() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockPlayer) SetRoom(r *Room) {
	m.Called(r)
}

func (m *MockPlayer) CancelAndRelease() {
	m.Called()
}

// --- DeckBuilder ---

type MockDeckBuilder struct {
	mock.Mock
}

func (m *MockDeckBuilder) Generate() []Card {
	args := m.Called()
	return args.Get(0).([]Card)
}

func (m *MockDeckBuilder) Shuffle(cards []Card) []Card {
	args := m.Called(cards)
	return args.Get(0).([]Card)
}

// --- UniqueIdGenerator ---

type MockUniqueIdGenerator struct {
	mock.Mock
}

func (m *MockUniqueIdGenerator) Generate() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockUniqueIdGenerator) Dispose(id string) {
	m.Called(id)
}

// --- Lobby ---

type MockLobby struct {
	mock.Mock
}

func (m *MockLobby) RemoveRoom(roomID string) {
	m.Called(roomID)
}

func (m *MockLobby) ReleasePlayer(playerID string) {
	m.Called(playerID)
}

// --- helpers ---

func newMockPlayer(id, name string) *MockPlayer {
	p := &MockPlayer{}
	p.On("ID").Return(id).Maybe()
	p.On("Name").Return(name).Maybe()
	p.On("SetRoom", mock.Anything).Return().Maybe()
	return p
}
