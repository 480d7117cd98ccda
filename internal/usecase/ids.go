package usecase

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out entity ids. Ids are never reused.
type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.New().String() }

// SequenceGenerator yields prefix-1, prefix-2, ... and is meant for tests and
// reproducible fixtures.
type SequenceGenerator struct {
	Prefix string

	mu sync.Mutex
	n  int
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.Prefix, g.n)
}
