// Package blocklist implements an indexed list which stores its elements in fixed-size ring buffers.
// Each ring buffer ("block") lives in a node of an AVL tree that counts the elements to its left, so
// positional reads, writes and inserts cost O(logn) rather than the O(n) of a slice insert.
package blocklist

import (
	"errors"
	"math"
)

const (
	// DefaultBlockCapacity is used when Options.BlockCapacity is zero.
	DefaultBlockCapacity = 25

	// MinBlockCapacity is the smallest allowed block.
	MinBlockCapacity = 1

	// DefaultMinLoadFactor is used when Options.MinLoadFactor is zero.
	DefaultMinLoadFactor = 0.3

	// MinLoadFactor and MaxLoadFactor bound the requested minimum load factor.
	MinLoadFactor = 0.01
	MaxLoadFactor = 0.5

	poolSize = 8
)

var (
	// ErrIndex is returned when an index is outside the valid range for an operation.
	ErrIndex = errors.New("blocklist: index out of range")

	// ErrEmpty is returned when reading or removing an end of an empty list.
	ErrEmpty = errors.New("blocklist: list is empty")

	// ErrModified is reported by traversals when the list changed after they started.
	ErrModified = errors.New("blocklist: list modified during traversal")

	// ErrCapacity is panicked if a block is written past its capacity.
	// This is always an internal bug.
	ErrCapacity = errors.New("blocklist: block capacity exceeded")
)

// Options configures a List.
// Out-of-range values are clamped, never rejected.
// A zero field means "use the default", not "clamp zero up": an explicit 0 gives DefaultBlockCapacity or
// DefaultMinLoadFactor rather than MinBlockCapacity or MinLoadFactor. Pass those constants to get the minimum.
type Options struct {
	// BlockCapacity is the number of elements held by each block.
	// Defaults to DefaultBlockCapacity if zero, otherwise is at least MinBlockCapacity.
	BlockCapacity int

	// MinLoadFactor is the fill ratio below which removals merge adjacent blocks.
	// Defaults to DefaultMinLoadFactor if zero or NaN, otherwise is clamped to [MinLoadFactor, MaxLoadFactor].
	MinLoadFactor float64
}

func (o Options) blockCapacity() int {
	if o.BlockCapacity == 0 {
		return DefaultBlockCapacity
	}
	return max(o.BlockCapacity, MinBlockCapacity)
}

func (o Options) minLoadFactor() float64 {
	if o.MinLoadFactor == 0 || math.IsNaN(o.MinLoadFactor) {
		return DefaultMinLoadFactor
	}
	return min(MaxLoadFactor, max(MinLoadFactor, o.MinLoadFactor))
}

// List is an indexed sequence of E.
// It is not goroutine-safe.
// The zero List is not usable; build one with New.
type List[E any] struct {
	root *node[E]
	head *node[E]
	tail *node[E]

	size   int
	blocks int
	mod    int

	capacity int
	minLoad  float64

	nodePool []*node[E]
}

// New builds a new List with the given options, which may be nil.
// Any initial values are appended in order.
func New[E any](opts *Options, initial ...E) *List[E] {
	if opts == nil {
		opts = &Options{}
	}
	l := &List[E]{
		capacity: opts.blockCapacity(),
		minLoad:  opts.minLoadFactor(),
		nodePool: make([]*node[E], 0, poolSize),
	}
	l.Append(initial...)
	return l
}
