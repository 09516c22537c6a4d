package game

// IsValidPlay decides whether playing card on top of topCard is legal.
//
// While a draw stack is pending, only another stacking card keeps the penalty
// rolling: draw2 on draw2, draw4 on draw4, or any wild-draw-4 regardless of
// the top card. Otherwise wilds always match, and anything else needs a color
// or value match.
func IsValidPlay(card, topCard Card, currentColor string, drawStack int) bool {
	if drawStack > 0 {
		return (card.Value == ValueDraw2 && topCard.Value == ValueDraw2) ||
			(card.Value == ValueDraw4 && topCard.Value == ValueDraw4) ||
			card.Value == ValueDraw4
	}
	if card.Color == ColorWild {
		return true
	}
	return card.Color == currentColor || card.Value == topCard.Value
}
