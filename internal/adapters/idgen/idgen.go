package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// UUIDGenerator issues time-ordered UUIDv7 solution identifiers.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator { return &UUIDGenerator{} }

func (g *UUIDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// V7 only fails when the random source does.
		return uuid.NewString()
	}
	return id.String()
}

// SequenceGenerator issues "<prefix>-1", "<prefix>-2", ... and is safe for
// concurrent use. Useful where reproducible identifiers matter.
type SequenceGenerator struct {
	prefix string
	n      atomic.Int64
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

func (g *SequenceGenerator) NewID() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.n.Add(1))
}
