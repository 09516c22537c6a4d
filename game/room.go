package game

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Ghostzzz0507/uno/logger"
)

type roomState int

const (
	StateWaiting roomState = iota
	StatePlaying
	StateFinished
)

func (s roomState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateFinished:
		return "finished"
	default:
		return "waiting"
	}
}

const (
	maxPlayers = 4
	handSize   = 7
)

// Player is a room's view of a connected player. The websocket session
// implements it; tests use a mock.
type Player interface {
	ID() string
	Name() string
	Send(data []byte) error
	Ping() error
	SetRoom(r *Room)
	CancelAndRelease()
}

type roomJoinRequest struct {
	player  Player
	errChan chan error
}

func NewRoomJoinRequest(player Player) roomJoinRequest {
	return roomJoinRequest{player: player, errChan: make(chan error, 1)}
}

type commandEnvelope struct {
	cmd  clientCommand
	from Player
}

// Lobby is what a room needs from its registry.
type Lobby interface {
	RemoveRoom(roomID string)
	ReleasePlayer(playerID string)
}

type seat struct {
	player Player
	hand   []Card
	hasUno bool
}

// Room owns one game's full state. Only the room goroutine mutates it: every
// inbound command runs to completion through a handle* method, which collects
// dataSendTasks instead of touching sockets, so state transitions stay pure.
type Room struct {
	id             string
	seats          []*seat
	drawPile       []Card
	discard        []Card
	currentSeat    int
	direction      int
	currentColor   string
	drawStack      int
	state          roomState
	lastAction     *LastAction
	startDeadline  time.Time
	autoStartDelay time.Duration
	closed         bool

	deck        DeckBuilder
	parentLobby Lobby

	inbox       chan commandEnvelope
	joinReqs    chan roomJoinRequest
	removals    chan Player
	ticks       chan time.Time
	pingPlayers chan struct{}
	done        chan struct{}

	sendTasks []dataSendTask
}

func NewRoom(creator Player, deck DeckBuilder, autoStartDelay time.Duration) *Room {
	r := &Room{
		seats:          make([]*seat, 0, maxPlayers),
		direction:      1,
		state:          StateWaiting,
		autoStartDelay: autoStartDelay,
		deck:           deck,
		inbox:          make(chan commandEnvelope, 256),
		joinReqs:       make(chan roomJoinRequest),
		removals:       make(chan Player, maxPlayers),
		ticks:          make(chan time.Time, 8),
		pingPlayers:    make(chan struct{}, 1),
		done:           make(chan struct{}),
	}
	r.seats = append(r.seats, &seat{player: creator})
	creator.SetRoom(r)
	return r
}

func (r *Room) SetId(id string) {
	r.id = id
}

func (r *Room) SetParentLobby(l Lobby) {
	r.parentLobby = l
}

func (r *Room) Id() string {
	return r.id
}

// announceCreated queues the creator's roomCreated ack and welcome message.
// Called by the registry after SetId, before the game loop starts.
func (r *Room) announceCreated() {
	creator := r.seats[0].player
	r.sendTo(creator, EventRoomCreated, map[string]any{
		"roomId": r.id,
		"room":   r.publicView(),
	})
	r.systemMessage(fmt.Sprintf("🎮 Welcome to the game, %s!", creator.Name()))
}

// GameLoop serializes every command for this room: validation, mutation and
// event collection finish before the next command starts.
func (r *Room) GameLoop() {
	r.flushSendTasks()
	for {
		select {
		case env := <-r.inbox:
			r.dispatch(env)
		case req := <-r.joinReqs:
			r.handleJoinRequest(req, time.Now())
		case p := <-r.removals:
			r.handleRemovePlayer(p)
		case now := <-r.ticks:
			r.handleTick(now)
		case <-r.pingPlayers:
			r.handlePingPlayers()
		case <-r.done:
			return
		}
		r.flushSendTasks()
	}
}

func (r *Room) Send(env commandEnvelope) {
	select {
	case r.inbox <- env:
	case <-r.done:
	}
}

func (r *Room) RequestJoin(req roomJoinRequest) {
	select {
	case r.joinReqs <- req:
	case <-r.done:
		req.errChan <- ErrRoomNotFound
	}
}

func (r *Room) RequestRemove(p Player) {
	select {
	case r.removals <- p:
	case <-r.done:
	}
}

func (r *Room) Tick(now time.Time) {
	select {
	case r.ticks <- now:
	default:
	}
}

func (r *Room) PingPlayers() {
	select {
	case r.pingPlayers <- struct{}{}:
	default:
	}
}

func (r *Room) CloseAndRelease() {
	select {
	case <-r.done:
	default:
		close(r.done)
	}
}

func (r *Room) dispatch(env commandEnvelope) {
	switch env.cmd.Action {
	case ActionPlayCard:
		var payload playCardPayload
		if err := json.Unmarshal(env.cmd.Data, &payload); err != nil {
			return
		}
		r.handlePlayCard(env.from, payload.CardID, payload.ChosenColor)
	case ActionDrawCard:
		r.handleDrawCard(env.from)
	case ActionSendMessage:
		var payload sendMessagePayload
		if err := json.Unmarshal(env.cmd.Data, &payload); err != nil {
			return
		}
		r.handleChatMessage(env.from, payload.Message)
	default:
		logger.Debugf("[Room %s] Ignoring unknown action %q", r.id, env.cmd.Action)
	}
}

func (r *Room) handleJoinRequest(req roomJoinRequest, now time.Time) {
	// A join can race the last occupant's removal: the registry has already
	// dropped the room, but the parked request may still win the next select.
	if r.closed {
		req.errChan <- ErrRoomNotFound
		return
	}
	if len(r.seats) >= maxPlayers {
		req.errChan <- ErrRoomFull
		return
	}

	joiner := req.player
	for _, s := range r.seats {
		r.sendTo(s.player, EventPlayerJoined, map[string]any{
			"player": SeatView{ID: joiner.ID(), Name: joiner.Name()},
		})
	}

	r.seats = append(r.seats, &seat{player: joiner})
	joiner.SetRoom(r)
	req.errChan <- nil

	r.sendTo(joiner, EventRoomJoined, map[string]any{
		"room":   r.publicView(),
		"player": SeatView{ID: joiner.ID(), Name: joiner.Name()},
	})
	r.systemMessage(fmt.Sprintf("🚪 %s joined the game!", joiner.Name()))

	if r.state == StateWaiting && len(r.seats) >= 2 {
		r.systemMessage(fmt.Sprintf("⚡ Game starting in %d seconds...", int(r.autoStartDelay.Seconds())))
		r.startDeadline = now.Add(r.autoStartDelay)
	}

	logger.Infof("[Room %s] %s joined, %d seats occupied", r.id, joiner.Name(), len(r.seats))
}

func (r *Room) handleTick(now time.Time) {
	if r.state != StateWaiting || r.startDeadline.IsZero() || now.Before(r.startDeadline) {
		return
	}
	if len(r.seats) < 2 {
		r.startDeadline = time.Time{}
		return
	}
	r.startGame()
}

func (r *Room) handlePingPlayers() {
	for _, s := range r.seats {
		if err := s.player.Ping(); err != nil {
			logger.Debugf("[Room %s] Ping to %s failed: %v", r.id, s.player.Name(), err)
		}
	}
}

func (r *Room) startGame() {
	r.drawPile = r.deck.Generate()
	r.discard = nil
	r.drawStack = 0
	r.direction = 1
	r.currentSeat = 0
	r.lastAction = nil
	r.startDeadline = time.Time{}

	for _, s := range r.seats {
		s.hand = make([]Card, 0, handSize)
		for i := 0; i < handSize && len(r.drawPile) > 0; i++ {
			s.hand = append(s.hand, r.drawPile[0])
			r.drawPile = r.drawPile[1:]
		}
		s.hasUno = false
	}

	// The opening card must not be a wild; skipped wilds go to the bottom of
	// the pile so the deck stays a closed set of 108 cards.
	var first Card
	for len(r.drawPile) > 0 {
		first = r.drawPile[0]
		r.drawPile = r.drawPile[1:]
		if !first.IsWild() {
			break
		}
		r.drawPile = append(r.drawPile, first)
	}

	r.discard = append(r.discard, first)
	r.currentColor = first.Color
	r.state = StatePlaying
	r.applyOpeningCard(first)

	r.systemMessage("🎮 UNO Game Started! Cards dealt to all players!")
	r.systemMessage(fmt.Sprintf("🎯 %s's turn to play!", r.seats[r.currentSeat].player.Name()))
	r.broadcast(EventGameStarted, map[string]any{
		"message": "🎮 UNO Game Started! Cards dealt!",
	})
	r.broadcastGameState()

	logger.Infof("[Room %s] Game started with %d players", r.id, len(r.seats))
}

// handlePlayCard validates and applies one play. Every rule violation is a
// silent no-op: the command simply has no effect.
func (r *Room) handlePlayCard(p Player, cardID int, chosenColor string) {
	if r.state != StatePlaying {
		return
	}
	seatIdx := r.seatIndex(p.ID())
	if seatIdx != r.currentSeat {
		return
	}
	s := r.seats[seatIdx]

	cardIdx := -1
	for i, c := range s.hand {
		if c.ID == cardID {
			cardIdx = i
			break
		}
	}
	if cardIdx == -1 {
		return
	}

	card := s.hand[cardIdx]
	topCard := r.discard[len(r.discard)-1]
	if !IsValidPlay(card, topCard, r.currentColor, r.drawStack) {
		return
	}

	s.hand = append(s.hand[:cardIdx], s.hand[cardIdx+1:]...)
	r.discard = append(r.discard, card)

	if card.IsWild() {
		if chosenColor == "" {
			chosenColor = ColorRed
		}
		r.currentColor = chosenColor
		label := "Wild"
		if card.Value == ValueDraw4 {
			label = "Wild Draw 4"
		}
		r.systemMessage(fmt.Sprintf("🌈 %s played a %s card and chose %s!", p.Name(), label, strings.ToUpper(chosenColor)))
	} else {
		r.currentColor = card.Color
		r.systemMessage(fmt.Sprintf("🃏 %s played %s %s!", p.Name(), strings.ToUpper(card.Color), strings.ToUpper(card.Value)))
	}

	s.hasUno = len(s.hand) == 1
	if s.hasUno {
		r.systemMessage(fmt.Sprintf("🚨 %s has UNO! (1 card remaining)", p.Name()))
		r.broadcast(EventUnoAlert, map[string]any{
			"player":  p.Name(),
			"message": fmt.Sprintf("🚨 %s has UNO!", p.Name()),
		})
	}

	if len(s.hand) == 0 {
		r.state = StateFinished
		r.systemMessage(fmt.Sprintf("🏆 %s wins the game! Congratulations! 🎉", p.Name()))
		r.broadcast(EventGameWon, map[string]any{
			"winner":  p.Name(),
			"message": fmt.Sprintf("🎉 %s wins the game!", p.Name()),
		})
		r.broadcastGameState()
		logger.Infof("[Room %s] %s won", r.id, p.Name())
		return
	}

	r.applyCardEffect(card, p.Name())

	r.lastAction = &LastAction{
		Type:      "cardPlayed",
		Player:    p.Name(),
		Card:      &card,
		Timestamp: time.Now().UnixMilli(),
	}
	r.broadcastGameState()
}

// handleDrawCard resolves any pending draw stack, or draws a single card.
// A draw never counts as a play; the turn always passes exactly once.
func (r *Room) handleDrawCard(p Player) {
	if r.state != StatePlaying {
		return
	}
	seatIdx := r.seatIndex(p.ID())
	if seatIdx != r.currentSeat {
		return
	}
	s := r.seats[seatIdx]

	cardsToDraw := r.drawStack
	if cardsToDraw < 1 {
		cardsToDraw = 1
	}

	drawn := 0
	for i := 0; i < cardsToDraw; i++ {
		if len(r.drawPile) == 0 {
			r.reshuffleFromDiscard()
		}
		if len(r.drawPile) == 0 {
			// Total exhaustion: nothing left to recycle.
			break
		}
		s.hand = append(s.hand, r.drawPile[0])
		r.drawPile = r.drawPile[1:]
		drawn++
	}
	s.hasUno = len(s.hand) == 1

	switch {
	case drawn == 0:
		r.systemMessage(fmt.Sprintf("📥 %s tried to draw, but the deck is empty!", p.Name()))
	case r.drawStack > 0:
		r.systemMessage(fmt.Sprintf("📥 %s drew %d penalty cards!", p.Name(), drawn))
	default:
		r.systemMessage(fmt.Sprintf("📥 %s drew a card from the deck.", p.Name()))
	}

	r.drawStack = 0
	r.advanceTurn()
	r.systemMessage(fmt.Sprintf("🎯 %s's turn!", r.seats[r.currentSeat].player.Name()))

	r.lastAction = &LastAction{
		Type:      "cardDrawn",
		Player:    p.Name(),
		Count:     drawn,
		Timestamp: time.Now().UnixMilli(),
	}
	r.broadcastGameState()
}

func (r *Room) reshuffleFromDiscard() {
	drawPile, discard := reshuffleFromDiscard(r.discard, r.deck)
	if drawPile == nil {
		return
	}
	r.drawPile = drawPile
	r.discard = discard
	r.systemMessage("🔄 Deck reshuffled from discard pile!")
}

func (r *Room) handleChatMessage(p Player, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	r.broadcast(EventChatMessage, newChatMessage("player", p.Name(), p.ID(), message))
}

func (r *Room) handleRemovePlayer(p Player) {
	seatIdx := r.seatIndex(p.ID())
	if seatIdx == -1 {
		return
	}

	r.systemMessage(fmt.Sprintf("👋 %s left the game.", p.Name()))
	r.seats = append(r.seats[:seatIdx], r.seats[seatIdx+1:]...)
	r.parentLobby.ReleasePlayer(p.ID())
	p.CancelAndRelease()

	if len(r.seats) == 0 {
		r.closed = true
		r.parentLobby.RemoveRoom(r.id)
		return
	}

	// The turn pointer is clamped rather than re-selected in turn order, so a
	// disconnect can hand the turn to seat 0 out of sequence.
	if r.currentSeat >= len(r.seats) {
		r.currentSeat = 0
	}
	r.broadcastGameState()

	logger.Infof("[Room %s] %s left, %d seats remain", r.id, p.Name(), len(r.seats))
}

func (r *Room) seatIndex(playerID string) int {
	for i, s := range r.seats {
		if s.player.ID() == playerID {
			return i
		}
	}
	return -1
}

func (r *Room) sendTo(p Player, event string, payload any) {
	data := makeEventData(event, payload)
	if data == nil {
		return
	}
	r.sendTasks = append(r.sendTasks, dataSendTask{to: p, data: data})
}

func (r *Room) broadcast(event string, payload any) {
	for _, s := range r.seats {
		r.sendTo(s.player, event, payload)
	}
}

func (r *Room) systemMessage(message string) {
	r.broadcast(EventChatMessage, newChatMessage("system", "System", "", message))
}

func (r *Room) broadcastGameState() {
	for _, s := range r.seats {
		r.sendTo(s.player, EventGameUpdate, r.privateView(s))
	}
}

func (r *Room) flushSendTasks() {
	for _, task := range r.sendTasks {
		if err := task.to.Send(task.data); err != nil {
			logger.Debugf("[Room %s] Send to %s failed: %v", r.id, task.to.Name(), err)
		}
	}
	r.sendTasks = r.sendTasks[:0]
}
