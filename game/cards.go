package game

const (
	ColorRed    = "red"
	ColorBlue   = "blue"
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorWild   = "wild"
)

const (
	ValueSkip    = "skip"
	ValueReverse = "reverse"
	ValueDraw2   = "draw2"
	ValueWild    = "wild"
	ValueDraw4   = "draw4"
)

const (
	KindNumber = "number"
	KindAction = "action"
	KindWild   = "wild"
)

// Card is immutable once created. The id is unique within a single deck.
type Card struct {
	ID    int    `json:"id"`
	Color string `json:"color"`
	Value string `json:"value"`
	Kind  string `json:"type"`
}

func (c Card) IsWild() bool {
	return c.Color == ColorWild
}

var colors = []string{ColorRed, ColorBlue, ColorGreen, ColorYellow}
