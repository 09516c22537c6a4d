package game

import "fmt"

// advanceSeat computes the next seat for a given direction. seatCount is
// added before the modulo so the result stays non-negative when direction
// is -1.
func advanceSeat(current, direction, seatCount int) int {
	return (current + direction + seatCount) % seatCount
}

func (r *Room) advanceTurn() {
	r.currentSeat = advanceSeat(r.currentSeat, r.direction, len(r.seats))
}

// applyCardEffect dispatches the action effect of a just-played card and
// leaves currentSeat on whoever acts next.
func (r *Room) applyCardEffect(card Card, playerName string) {
	switch card.Value {
	case ValueSkip:
		r.advanceTurn()
		skipped := r.seats[r.currentSeat].player.Name()
		r.systemMessage(fmt.Sprintf("⏭️ %s was skipped by %s!", skipped, playerName))
		r.advanceTurn()

	case ValueReverse:
		r.direction *= -1
		arrow := "counter-clockwise ⟳"
		if r.direction == 1 {
			arrow = "clockwise ⟲"
		}
		r.systemMessage(fmt.Sprintf("🔄 %s played Reverse! Direction: %s", playerName, arrow))
		// A single advance works for every seat count: with two seats the
		// flipped direction still lands on the other seat.
		r.advanceTurn()

	case ValueDraw2:
		r.advanceTurn()
		r.drawStack += 2
		r.systemMessage(fmt.Sprintf("📈 +2 cards penalty for %s by %s!", r.seats[r.currentSeat].player.Name(), playerName))

	case ValueDraw4:
		r.advanceTurn()
		r.drawStack += 4
		r.systemMessage(fmt.Sprintf("📈 +4 cards penalty for %s by %s!", r.seats[r.currentSeat].player.Name(), playerName))

	default:
		r.advanceTurn()
	}

	if r.state == StatePlaying {
		r.systemMessage(fmt.Sprintf("🎯 %s's turn!", r.seats[r.currentSeat].player.Name()))
	}
}

// applyOpeningCard handles the first card turned up at game start. The effect
// lands on seat 0 before anyone has acted; wilds never reach here because
// startGame re-draws past them.
func (r *Room) applyOpeningCard(card Card) {
	switch card.Value {
	case ValueSkip:
		r.systemMessage(fmt.Sprintf("⏭️ First card is Skip! %s is skipped!", r.seats[0].player.Name()))
		r.currentSeat = 1 % len(r.seats)
	case ValueReverse:
		r.systemMessage("🔄 First card is Reverse! Direction changed to counter-clockwise!")
		r.direction = -1
		r.currentSeat = len(r.seats) - 1
	case ValueDraw2:
		r.systemMessage(fmt.Sprintf("📈 First card is Draw 2! %s must draw 2 cards!", r.seats[0].player.Name()))
		r.drawStack = 2
		r.currentSeat = 1 % len(r.seats)
	default:
		r.currentSeat = 0
	}
}
