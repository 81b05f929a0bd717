// Package idgen generates short random identifiers that are safe to use
// as CSS class name fragments.
package idgen

import (
	"encoding/binary"
	"strconv"

	"github.com/google/uuid"
)

// DefaultPrefix starts every generated id so the result never begins with
// a digit, which CSS class selectors do not allow.
const DefaultPrefix = "sb"

// Generator produces identifiers.
type Generator interface {
	NewID() string
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func() string

// NewID calls f.
func (f GeneratorFunc) NewID() string {
	return f()
}

// Random generates identifiers from random (version 4) UUIDs, encoded in
// base36 to keep them short.
type Random struct {
	Prefix string
}

// NewRandom returns a Random generator using DefaultPrefix.
func NewRandom() *Random {
	return &Random{Prefix: DefaultPrefix}
}

// NewID returns a fresh identifier.
func (r *Random) NewID() string {
	id := uuid.New()
	// 64 random bits are plenty for per-document uniqueness.
	n := binary.BigEndian.Uint64(id[8:])
	return r.Prefix + strconv.FormatUint(n, 36)
}

var defaultGenerator Generator = NewRandom()

// New returns an identifier from the default generator.
func New() string {
	return defaultGenerator.NewID()
}
