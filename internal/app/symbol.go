package app

import (
	"errors"
	"fmt"
	"strings"
)

const symbolSeparator = "-"

var ErrInvalidSymbol = errors.New("invalid symbol")

// Symbol is the hierarchical identifier of a sector, system or waypoint,
// e.g. "X1-DF55-20250Z" for waypoint 20250Z in system DF55 of sector X1.
//
// Symbols are comparable and two symbols are equal when all their segments are equal.
type Symbol struct {
	Sector   string
	System   string // empty for sector symbols
	Waypoint string // empty for sector and system symbols
}

// ParseSymbol returns a new symbol from a string.
// Everything after the second separator belongs to the waypoint segment.
func ParseSymbol(s string) (Symbol, error) {
	if s == "" {
		return Symbol{}, fmt.Errorf("parse symbol: empty: %w", ErrInvalidSymbol)
	}
	var x Symbol
	p := strings.SplitN(s, symbolSeparator, 3)
	x.Sector = p[0]
	if len(p) > 1 {
		x.System = p[1]
	}
	if len(p) > 2 {
		x.Waypoint = p[2]
	}
	if x.Sector == "" || (len(p) > 1 && x.System == "") || (len(p) > 2 && x.Waypoint == "") {
		return Symbol{}, fmt.Errorf("parse symbol: %q: %w", s, ErrInvalidSymbol)
	}
	return x, nil
}

// MustParseSymbol is like [ParseSymbol] but panics on errors.
func MustParseSymbol(s string) Symbol {
	x, err := ParseSymbol(s)
	if err != nil {
		panic(err)
	}
	return x
}

func (x Symbol) String() string {
	if x.IsZero() {
		return ""
	}
	var b strings.Builder
	b.WriteString(x.Sector)
	if x.System != "" {
		b.WriteString(symbolSeparator)
		b.WriteString(x.System)
		if x.Waypoint != "" {
			b.WriteString(symbolSeparator)
			b.WriteString(x.Waypoint)
		}
	}
	return b.String()
}

// IsZero reports whether x is the zero value.
func (x Symbol) IsZero() bool {
	return x == Symbol{}
}

// SectorSymbol returns the symbol of the sector x belongs to.
func (x Symbol) SectorSymbol() Symbol {
	return Symbol{Sector: x.Sector}
}

// SystemSymbol returns the symbol of the system x belongs to.
// Returns the zero value for sector symbols.
func (x Symbol) SystemSymbol() Symbol {
	if x.System == "" {
		return Symbol{}
	}
	return Symbol{Sector: x.Sector, System: x.System}
}

func (x Symbol) MarshalText() ([]byte, error) {
	if x.IsZero() {
		return nil, fmt.Errorf("marshal symbol: zero value: %w", ErrInvalidSymbol)
	}
	return []byte(x.String()), nil
}

func (x *Symbol) UnmarshalText(text []byte) error {
	y, err := ParseSymbol(string(text))
	if err != nil {
		return err
	}
	*x = y
	return nil
}
