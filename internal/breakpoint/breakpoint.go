// Package breakpoint defines the ordered set of responsive breakpoints.
//
// Breakpoints are named viewport tiers ordered from the narrowest to the
// widest: xs < sm < md < lg < xl.
package breakpoint

import (
	"fmt"
	"strings"
)

// Breakpoint is a named responsive viewport tier.
type Breakpoint string

const (
	// All is the empty breakpoint. Writes with All apply to every viewport.
	All Breakpoint = ""

	// XS is the narrowest breakpoint and the default read viewport.
	XS Breakpoint = "xs"
	// SM is the small breakpoint.
	SM Breakpoint = "sm"
	// MD is the medium breakpoint.
	MD Breakpoint = "md"
	// LG is the large breakpoint.
	LG Breakpoint = "lg"
	// XL is the widest breakpoint.
	XL Breakpoint = "xl"
)

// Default is the viewport used by reads that do not name one.
const Default = XS

var ordered = [...]Breakpoint{XS, SM, MD, LG, XL}

// Ordered returns all breakpoints, narrowest first.
func Ordered() []Breakpoint {
	out := make([]Breakpoint, len(ordered))
	copy(out, ordered[:])
	return out
}

// Index returns the position of b in the canonical order, or -1.
func (b Breakpoint) Index() int {
	for i, o := range ordered {
		if o == b {
			return i
		}
	}
	return -1
}

// Valid reports whether b is one of the named breakpoints.
func (b Breakpoint) Valid() bool {
	return b.Index() >= 0
}

// String returns the breakpoint name.
func (b Breakpoint) String() string {
	if b == All {
		return "all"
	}
	return string(b)
}

// Less reports whether b is narrower than other.
func (b Breakpoint) Less(other Breakpoint) bool {
	return b.Index() < other.Index()
}

// Narrower returns the next narrower breakpoint and true, or All and false
// when b is already the narrowest or not a breakpoint.
func (b Breakpoint) Narrower() (Breakpoint, bool) {
	i := b.Index()
	if i <= 0 {
		return All, false
	}
	return ordered[i-1], true
}

// Is reports whether name is a breakpoint name.
func Is(name string) bool {
	return Breakpoint(name).Valid()
}

// Parse converts a name into a Breakpoint. The empty string and "all"
// parse to All.
func Parse(name string) (Breakpoint, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "all" {
		return All, nil
	}
	b := Breakpoint(n)
	if !b.Valid() {
		return All, fmt.Errorf("unknown breakpoint %q", name)
	}
	return b, nil
}
