package entity

import (
	"fmt"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
)

// MoveResult describes what an accepted action did.
type MoveResult struct {
	// Joined is set when the actor was bound to an open slot by this action.
	Joined bool
	// Deferred is set when the actor joined but the turn belongs to another slot.
	Deferred bool
	// Selected is set for an outer-only move that picked the next inner board.
	Selected bool
	Placed   bool
}

// CurrentSymbol is the symbol whose turn it is.
func (that *Game) CurrentSymbol() Symbol {
	return that.Symbols[that.Queue]
}

// CurrentSlot is the slot whose turn it is.
func (that *Game) CurrentSlot() *PlayerSlot {
	if that.Queue < len(that.Players) {
		return that.Players[that.Queue]
	}

	return nil
}

// Advance passes the turn to the next symbol.
func (that *Game) Advance() {
	that.Queue = (that.Queue + 1) % len(that.Symbols)
}

func (that *Game) votePending() bool {
	return that.Players.HasIntent(IntentTieProposed) || that.Players.HasIntent(IntentForfeited)
}

// CheckAction validates an action against the turn pointer and the board without mutating anything.
// It returns the actor's slot, or the open slot the actor would join.
func (that *Game) CheckAction(playerID string, choice Choice) (*PlayerSlot, error) {
	if err := that.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if that.votePending() {
		return nil, apperror.ErrVoteInProgress
	}

	if active := that.Board.ActiveConstraint(); active != nil && *active != choice.Outer {
		return nil, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, apperror.ErrWrongBoard)
	}

	if !that.Board.IsFree(choice) {
		return nil, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, apperror.ErrCellOccupied)
	}

	if slot := that.Players.FindSlotFor(playerID); slot != nil {
		if slot.Index != that.Queue {
			return nil, apperror.ErrOutOfTurn
		}

		return slot, nil
	}

	open := that.Players.FirstOpen()
	if open == nil {
		return nil, apperror.ErrUnboundSymbol
	}

	return open, nil
}

// Play applies a move by playerID. An unbound actor joins the first open slot; the move
// itself only happens when that slot holds the turn.
func (that *Game) Play(playerID string, choice Choice) (MoveResult, error) {
	var result MoveResult

	slot, err := that.CheckAction(playerID, choice)
	if err != nil {
		return result, err
	}

	if slot.IsOpen() {
		if _, err = that.Players.BindSlot(slot.Symbol, playerID); err != nil {
			return result, err
		}
		result.Joined = true

		if slot.Index != that.Queue {
			result.Deferred = true
			return result, nil
		}
	}

	sign := that.CurrentSymbol()

	if that.Board.Kind() == BoardComposite && choice.IsOuterOnly() {
		if err = that.Board.Select(choice.Outer); err != nil {
			return MoveResult{}, err
		}
		result.Selected = true

		return result, nil
	}

	if err = that.Board.Place(choice, sign); err != nil {
		return MoveResult{}, err
	}

	that.Moves++
	that.TurnSeq++
	that.LastMove = &choice
	result.Placed = true

	switch {
	case that.Board.CheckWin(sign):
		that.Status = StatusWon
		that.finish()
	case !that.Board.HasFreeCells():
		that.Status = StatusTied
		that.finish()
	default:
		that.Advance()
	}

	return result, nil
}
