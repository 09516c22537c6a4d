package game

// SeatView is a player's entry in the public room state. Hands stay hidden;
// only the count leaks.
type SeatView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	CardCount       int    `json:"cardCount"`
	HasCalledUno    bool   `json:"hasCalledUno"`
	IsCurrentPlayer bool   `json:"isCurrentPlayer"`
}

type PublicView struct {
	RoomID            string      `json:"roomId"`
	Players           []SeatView  `json:"players"`
	CurrentPlayer     int         `json:"currentPlayer"`
	CurrentPlayerName string      `json:"currentPlayerName"`
	CurrentColor      string      `json:"currentColor"`
	TopCard           *Card       `json:"topCard"`
	Direction         int         `json:"direction"`
	GameState         string      `json:"gameState"`
	DeckSize          int         `json:"deckSize"`
	DrawStack         int         `json:"drawStack"`
	LastAction        *LastAction `json:"lastAction"`
}

// PrivateView is the PublicView plus the requesting player's own hand.
type PrivateView struct {
	PublicView
	MyCards  []Card `json:"myCards"`
	IsMyTurn bool   `json:"isMyTurn"`
}

type LastAction struct {
	Type      string `json:"type"`
	Player    string `json:"player"`
	Card      *Card  `json:"card,omitempty"`
	Count     int    `json:"count,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func (r *Room) publicView() PublicView {
	players := make([]SeatView, 0, len(r.seats))
	for i, s := range r.seats {
		players = append(players, SeatView{
			ID:              s.player.ID(),
			Name:            s.player.Name(),
			CardCount:       len(s.hand),
			HasCalledUno:    s.hasUno,
			IsCurrentPlayer: i == r.currentSeat,
		})
	}

	view := PublicView{
		RoomID:        r.id,
		Players:       players,
		CurrentPlayer: r.currentSeat,
		CurrentColor:  r.currentColor,
		Direction:     r.direction,
		GameState:     r.state.String(),
		DeckSize:      len(r.drawPile),
		DrawStack:     r.drawStack,
		LastAction:    r.lastAction,
	}
	if r.currentSeat < len(r.seats) {
		view.CurrentPlayerName = r.seats[r.currentSeat].player.Name()
	}
	if len(r.discard) > 0 {
		top := r.discard[len(r.discard)-1]
		view.TopCard = &top
	}
	return view
}

func (r *Room) privateView(s *seat) PrivateView {
	hand := make([]Card, len(s.hand))
	copy(hand, s.hand)

	isMyTurn := r.currentSeat < len(r.seats) && r.seats[r.currentSeat] == s

	return PrivateView{
		PublicView: r.publicView(),
		MyCards:    hand,
		IsMyTurn:   isMyTurn,
	}
}
