package entity

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
)

// Players is the registry of slots of one game, ordered by symbol.
type Players []*PlayerSlot

// NewPlayers opens one slot per symbol.
func NewPlayers(symbols Symbols) Players {
	players := make(Players, len(symbols))
	for i, symbol := range symbols {
		players[i] = &PlayerSlot{Symbol: symbol, Index: i, Intent: IntentPlaying}
	}

	return players
}

// Resize re-aligns the registry with a grown symbol assignment; bound slots keep their index.
func (that Players) Resize(symbols Symbols) Players {
	players := NewPlayers(symbols)
	for _, slot := range that {
		if slot.IsOpen() {
			continue
		}

		if i := symbols.Index(slot.Symbol); i >= 0 {
			players[i].PlayerID = slot.PlayerID
			players[i].Intent = slot.Intent
		}
	}

	return players
}

// BindSlot claims the open slot of symbol for playerID.
func (that Players) BindSlot(symbol Symbol, playerID string) (*PlayerSlot, error) {
	slot, ok := lo.Find(that, func(s *PlayerSlot) bool { return s.Symbol == symbol })
	if !ok {
		return nil, fmt.Errorf("%w: %s is not part of the game", apperror.ErrUnsupportedPlayers, symbol)
	}

	if existing := that.FindSlotFor(playerID); existing != nil {
		if existing == slot {
			return slot, nil
		}

		return nil, fmt.Errorf("%w: %s", apperror.ErrPlayerAlreadyBound, existing.Symbol)
	}

	if !slot.IsOpen() {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSlotTaken, symbol)
	}

	slot.PlayerID = playerID
	slot.Intent = IntentPlaying

	return slot, nil
}

func (that Players) FindSlotFor(playerID string) *PlayerSlot {
	if playerID == "" {
		return nil
	}

	slot, _ := lo.Find(that, func(s *PlayerSlot) bool { return s.PlayerID == playerID })

	return slot
}

// FirstOpen returns the first open slot in symbol order.
func (that Players) FirstOpen() *PlayerSlot {
	slot, _ := lo.Find(that, func(s *PlayerSlot) bool { return s.IsOpen() })

	return slot
}

func (that Players) Bound() Players {
	return lo.Filter(that, func(s *PlayerSlot, _ int) bool { return !s.IsOpen() })
}

func (that Players) WithIntent(intent Intent) Players {
	return lo.Filter(that.Bound(), func(s *PlayerSlot, _ int) bool { return s.Intent == intent })
}

func (that Players) HasIntent(intent Intent) bool {
	return len(that.WithIntent(intent)) > 0
}

// AllActiveHave reports whether every bound, non-finished slot holds intent.
func (that Players) AllActiveHave(intent Intent) bool {
	active := lo.Filter(that.Bound(), func(s *PlayerSlot, _ int) bool { return s.Intent != IntentFinished })

	return len(active) > 0 && lo.EveryBy(active, func(s *PlayerSlot) bool { return s.Intent == intent })
}

func (that Players) SetIntent(playerID string, intent Intent) bool {
	slot := that.FindSlotFor(playerID)
	if slot == nil {
		return false
	}

	slot.Intent = intent

	return true
}

// SetIntentExcept updates every bound slot except the one held by playerID;
// an empty playerID updates them all.
func (that Players) SetIntentExcept(playerID string, intent Intent) {
	for _, slot := range that.Bound() {
		if slot.PlayerID != playerID {
			slot.Intent = intent
		}
	}
}

func (that Players) IDs() []string {
	return lo.Map(that.Bound(), func(s *PlayerSlot, _ int) string { return s.PlayerID })
}
