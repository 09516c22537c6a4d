package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceSeat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc                         string
		current, direction, seats, want int
	}{
		{"forward in 2-seat room", 0, 1, 2, 1},
		{"forward wraps around", 1, 1, 2, 0},
		{"backward stays non-negative", 0, -1, 2, 1},
		{"backward from seat 1", 1, -1, 2, 0},
		{"forward wraps in 4-seat room", 3, 1, 4, 0},
		{"backward wraps in 4-seat room", 0, -1, 4, 3},
		{"backward mid-table", 2, -1, 4, 1},
		{"forward in 3-seat room", 1, 1, 3, 2},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert.Equal(t, tC.want, advanceSeat(tC.current, tC.direction, tC.seats))
		})
	}
}
