package domain

import (
	"math/rand/v2"
	"strconv"
)

const (
	idFloor = 100000000000000
	idSpan  = 999999999999999
)

// IDGenerator produces product ids.
type IDGenerator interface {
	NewID() string
}

// RandomIDGenerator draws numeric ids from [1e14, 1e14+999999999999999).
// Ids are not checked against existing products; with roughly 10^15
// candidates a collision is unlikely but possible.
type RandomIDGenerator struct{}

// NewRandomIDGenerator creates a RandomIDGenerator.
func NewRandomIDGenerator() IDGenerator {
	return RandomIDGenerator{}
}

// NewID returns a 15 or 16 digit decimal string.
func (RandomIDGenerator) NewID() string {
	return strconv.FormatInt(idFloor+rand.Int64N(idSpan), 10)
}

// SequenceIDGenerator hands out ids from a fixed list, for tests and imports.
type SequenceIDGenerator struct {
	ids  []string
	next int
}

// NewSequenceIDGenerator creates a generator returning ids in order, then
// falling back to random ids once the list is exhausted.
func NewSequenceIDGenerator(ids ...string) *SequenceIDGenerator {
	return &SequenceIDGenerator{ids: ids}
}

// NewID returns the next id in the sequence.
func (g *SequenceIDGenerator) NewID() string {
	if g.next < len(g.ids) {
		id := g.ids[g.next]
		g.next++
		return id
	}
	return RandomIDGenerator{}.NewID()
}
