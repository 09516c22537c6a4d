package game

import (
	"math/rand/v2"
	"sync"
)

// UniqueIdGenerator hands out room ids that are unique among live rooms.
type UniqueIdGenerator interface {
	Generate() string
	Dispose(id string)
}

const roomIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const roomIDLength = 6

type Idgen struct {
	ids    map[string]struct{}
	locker sync.Mutex
}

func NewIdgen() *Idgen {
	return &Idgen{ids: make(map[string]struct{})}
}

func (g *Idgen) Generate() string {
	g.locker.Lock()
	defer g.locker.Unlock()

	for {
		buf := make([]byte, roomIDLength)
		for i := range buf {
			buf[i] = roomIDAlphabet[rand.IntN(len(roomIDAlphabet))]
		}
		id := string(buf)
		if _, taken := g.ids[id]; !taken {
			g.ids[id] = struct{}{}
			return id
		}
	}
}

func (g *Idgen) Dispose(id string) {
	g.locker.Lock()
	defer g.locker.Unlock()
	delete(g.ids, id)
}
