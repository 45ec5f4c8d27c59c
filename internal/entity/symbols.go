package entity

import (
	"fmt"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
)

// Symbol is the mark a player puts on the board.
type Symbol string

const (
	EmptyCell Symbol = ""
	// TieMark resolves an outer cell whose inner board filled up without a winner.
	TieMark Symbol = "-"
)

const (
	SymbolX        Symbol = "X"
	SymbolO        Symbol = "O"
	SymbolTriangle Symbol = "Δ"
	SymbolSquare   Symbol = "□"
)

var canonicalSymbols = [...]Symbol{SymbolX, SymbolO, SymbolTriangle, SymbolSquare}

const (
	MinPlayers = 2
	MaxPlayers = len(canonicalSymbols)
)

// Symbols is the ordered symbol assignment of a game, one entry per player slot.
type Symbols []Symbol

// NewSymbols returns the first length symbols in canonical order.
func NewSymbols(length int) (Symbols, error) {
	if length < MinPlayers || length > MaxPlayers {
		return nil, fmt.Errorf("%w: %d", apperror.ErrUnsupportedPlayers, length)
	}

	symbols := make(Symbols, length)
	copy(symbols, canonicalSymbols[:length])

	return symbols, nil
}

// IsValidSymbol reports whether s is one of the canonical player symbols.
func IsValidSymbol(s Symbol) bool {
	for _, symbol := range canonicalSymbols {
		if symbol == s {
			return true
		}
	}

	return false
}

func (that Symbols) Index(s Symbol) int {
	for i, symbol := range that {
		if symbol == s {
			return i
		}
	}

	return -1
}

func (that Symbols) Contains(s Symbol) bool {
	return that.Index(s) >= 0
}

// WithSymbol returns a canonical assignment of the same length that is guaranteed to contain s.
// The creator of a game may pick any symbol, so the last canonical symbol is swapped for it when needed.
func (that Symbols) WithSymbol(s Symbol) Symbols {
	if that.Contains(s) || len(that) == 0 {
		return that
	}

	symbols := make(Symbols, len(that))
	copy(symbols, that)
	symbols[len(symbols)-1] = s

	return symbols
}

// Grow extends the assignment to length, keeping existing symbols at their positions
// and filling the tail with unused canonical symbols.
func (that Symbols) Grow(length int) (Symbols, error) {
	if length < len(that) || length > MaxPlayers {
		return nil, fmt.Errorf("%w: %d", apperror.ErrUnsupportedPlayers, length)
	}

	symbols := make(Symbols, len(that), length)
	copy(symbols, that)

	for _, symbol := range canonicalSymbols {
		if len(symbols) == length {
			break
		}

		if !symbols.Contains(symbol) {
			symbols = append(symbols, symbol)
		}
	}

	return symbols, nil
}
