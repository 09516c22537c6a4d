package game

import (
	"math/rand/v2"
	"strconv"
)

// DeckBuilder produces shuffled decks for a room. Mocked in tests so game
// scenarios can run against a known card order.
type DeckBuilder interface {
	Generate() []Card
	Shuffle(cards []Card) []Card
}

type DeckManager struct {
	rng *rand.Rand
}

func NewDeckManager() *DeckManager {
	return &DeckManager{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func NewSeededDeckManager(seed1, seed2 uint64) *DeckManager {
	return &DeckManager{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Generate builds the canonical 108-card set and returns it shuffled.
// Per color: one 0, two each of 1-9, two each of skip/reverse/draw2;
// plus four wild and four wild-draw-4.
func (d *DeckManager) Generate() []Card {
	deck := make([]Card, 0, 108)
	id := 1

	for _, color := range colors {
		deck = append(deck, Card{ID: id, Color: color, Value: "0", Kind: KindNumber})
		id++
		for n := 1; n <= 9; n++ {
			v := strconv.Itoa(n)
			deck = append(deck, Card{ID: id, Color: color, Value: v, Kind: KindNumber})
			id++
			deck = append(deck, Card{ID: id, Color: color, Value: v, Kind: KindNumber})
			id++
		}
	}

	for _, color := range colors {
		for _, v := range []string{ValueSkip, ValueReverse, ValueDraw2} {
			deck = append(deck, Card{ID: id, Color: color, Value: v, Kind: KindAction})
			id++
			deck = append(deck, Card{ID: id, Color: color, Value: v, Kind: KindAction})
			id++
		}
	}

	for i := 0; i < 4; i++ {
		deck = append(deck, Card{ID: id, Color: ColorWild, Value: ValueWild, Kind: KindWild})
		id++
		deck = append(deck, Card{ID: id, Color: ColorWild, Value: ValueDraw4, Kind: KindWild})
		id++
	}

	return d.Shuffle(deck)
}

// Shuffle returns a uniformly shuffled copy, leaving the input untouched.
func (d *DeckManager) Shuffle(cards []Card) []Card {
	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// reshuffleFromDiscard turns the discard pile (minus its top card) into a new
// draw pile. Returns the new draw pile and the remaining discard pile.
// With one or zero discarded cards there is nothing to recycle; the total
// exhaustion case is a known limitation and the piles come back unchanged.
func reshuffleFromDiscard(discard []Card, builder DeckBuilder) (drawPile, newDiscard []Card) {
	if len(discard) <= 1 {
		return nil, discard
	}
	top := discard[len(discard)-1]
	drawPile = builder.Shuffle(discard[:len(discard)-1])
	return drawPile, []Card{top}
}
