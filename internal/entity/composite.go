package entity

import (
	"fmt"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
)

const compositeSide = 3

// CompositeBoard is a 3×3 arrangement of inner boards. Outer records the resolved
// sign of every decided inner board (TieMark for a full board without a winner).
type CompositeBoard struct {
	Outer  *Grid     `json:"outer"`
	Inner  [][]*Grid `json:"inner"`
	Active *Coord    `json:"active,omitempty"`
}

func NewCompositeBoard(runLength int) *CompositeBoard {
	inner := make([][]*Grid, compositeSide)
	for row := range inner {
		inner[row] = make([]*Grid, compositeSide)
		for col := range inner[row] {
			inner[row][col] = NewGrid(compositeSide, runLength)
		}
	}

	return &CompositeBoard{
		Outer: NewGrid(compositeSide, runLength),
		Inner: inner,
	}
}

func (that *CompositeBoard) Kind() BoardKind {
	return BoardComposite
}

func (that *CompositeBoard) Size() int {
	return CompositeSize
}

func (that *CompositeBoard) RunLength() int {
	return that.Outer.RunLength
}

// ResolvedInnerSign returns the sign an inner board was decided with, or EmptyCell if it is still open.
func (that *CompositeBoard) ResolvedInnerSign(outer Coord) Symbol {
	return that.Outer.At(outer)
}

func (that *CompositeBoard) isOpen(outer Coord) bool {
	return that.Outer.IsFree(outer)
}

func (that *CompositeBoard) Place(choice Choice, sign Symbol) error {
	if choice.IsOuterOnly() {
		return fmt.Errorf("%w: inner cell is required", apperror.ErrIllegalMove)
	}

	if !that.Outer.InBounds(choice.Outer) || !that.Outer.InBounds(choice.Inner) {
		return fmt.Errorf("%w: choice out of board", apperror.ErrIllegalMove)
	}

	if that.Active != nil && *that.Active != choice.Outer {
		return fmt.Errorf("%w: %w: expected %s", apperror.ErrIllegalMove, apperror.ErrWrongBoard, that.Active)
	}

	if !that.isOpen(choice.Outer) {
		return fmt.Errorf("%w: %w: inner board %s is resolved", apperror.ErrIllegalMove, apperror.ErrWrongBoard, choice.Outer)
	}

	inner := that.Inner[choice.Outer.Row][choice.Outer.Col]
	if !inner.IsFree(choice.Inner) {
		return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, apperror.ErrCellOccupied)
	}

	inner.Set(choice.Inner, sign)

	switch {
	case inner.CheckWin(sign):
		that.Outer.Set(choice.Outer, sign)
	case !inner.HasFreeCells():
		that.Outer.Set(choice.Outer, TieMark)
	}

	// the inner cell of this move mandates the board of the next one
	next := choice.Inner
	if that.isOpen(next) {
		that.Active = &next
	} else {
		that.Active = nil
	}

	return nil
}

// Select is the outer-only move available when no inner board is mandated.
func (that *CompositeBoard) Select(outer Coord) error {
	if !that.Outer.InBounds(outer) {
		return fmt.Errorf("%w: board %s out of range", apperror.ErrIllegalMove, outer)
	}

	if that.Active != nil {
		if *that.Active == outer {
			return nil
		}

		return fmt.Errorf("%w: %w: expected %s", apperror.ErrIllegalMove, apperror.ErrWrongBoard, that.Active)
	}

	if !that.isOpen(outer) {
		return fmt.Errorf("%w: %w: inner board %s is resolved", apperror.ErrIllegalMove, apperror.ErrWrongBoard, outer)
	}

	that.Active = &outer

	return nil
}

func (that *CompositeBoard) IsFree(choice Choice) bool {
	if !that.Outer.InBounds(choice.Outer) || !that.isOpen(choice.Outer) {
		return false
	}

	if choice.IsOuterOnly() {
		return true
	}

	return that.Inner[choice.Outer.Row][choice.Outer.Col].IsFree(choice.Inner)
}

func (that *CompositeBoard) CheckWin(sign Symbol) bool {
	return that.Outer.CheckWin(sign)
}

// HasFreeCells is false once every inner board is resolved; an open inner board always has a free cell.
func (that *CompositeBoard) HasFreeCells() bool {
	return that.Outer.HasFreeCells()
}

func (that *CompositeBoard) ActiveConstraint() *Coord {
	if that.Active == nil {
		return nil
	}

	active := *that.Active

	return &active
}

func (that *CompositeBoard) View() [][]Symbol {
	view := make([][]Symbol, CompositeSize)
	for row := range view {
		view[row] = make([]Symbol, CompositeSize)
	}

	for outerRow, grids := range that.Inner {
		for outerCol, grid := range grids {
			for innerRow, cells := range grid.Cells {
				for innerCol, cell := range cells {
					view[outerRow*compositeSide+innerRow][outerCol*compositeSide+innerCol] = cell
				}
			}
		}
	}

	return view
}

// Options offers the cells of the mandated inner board, or the open inner boards when the choice is free.
func (that *CompositeBoard) Options() [][]Option {
	options := make([][]Option, compositeSide)
	for row := range options {
		options[row] = make([]Option, compositeSide)
		for col := range options[row] {
			outer := Coord{Row: row, Col: col}

			if that.Active == nil {
				options[row][col] = Option{
					Choice: OuterChoice(row, col),
					Label:  that.Outer.At(outer),
					Free:   that.isOpen(outer),
				}
				continue
			}

			inner := that.Inner[that.Active.Row][that.Active.Col]
			options[row][col] = Option{
				Choice: InnerChoice(that.Active.Row, that.Active.Col, row, col),
				Label:  inner.At(outer),
				Free:   inner.IsFree(outer),
			}
		}
	}

	return options
}
