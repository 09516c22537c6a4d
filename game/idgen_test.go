package game

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roomIDPattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func TestIdgen_Generate(t *testing.T) {
	t.Parallel()
	g := NewIdgen()

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := g.Generate()
		require.Regexp(t, roomIDPattern, id)
		_, dup := seen[id]
		require.False(t, dup, "id %s issued twice", id)
		seen[id] = struct{}{}
	}
}

func TestIdgen_Dispose(t *testing.T) {
	t.Parallel()
	g := NewIdgen()

	id := g.Generate()
	g.Dispose(id)
	assert.NotPanics(t, func() { g.Dispose(id) })
	assert.NotPanics(t, func() { g.Dispose("NOSUCH") })
}
