package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
)

func TestCompositeBoard_MandatedInnerBoard(t *testing.T) {
	t.Run("Inner coordinate of a move mandates the next board", func(t *testing.T) {
		// Given: an empty board of boards
		board := NewCompositeBoard(3)

		// When: X plays cell (2,0) of the centre board
		require.NoError(t, board.Place(InnerChoice(1, 1, 2, 0), SymbolX))

		// Then: the next move must target board (2,0)
		assert.Equal(t, &Coord{Row: 2, Col: 0}, board.ActiveConstraint())

		err := board.Place(InnerChoice(0, 0, 0, 0), SymbolO)
		require.ErrorIs(t, err, apperror.ErrWrongBoard)

		require.NoError(t, board.Place(InnerChoice(2, 0, 1, 1), SymbolO))
	})

	t.Run("Resolved mandated board frees the choice", func(t *testing.T) {
		// Given: board (0,0) is won by X
		board := NewCompositeBoard(3)
		board.Inner[0][0] = gridOf(3, "XX.", "OO.", "...")
		board.Active = &Coord{Row: 0, Col: 0}
		require.NoError(t, board.Place(InnerChoice(0, 0, 0, 2), SymbolX))
		assert.Equal(t, SymbolX, board.ResolvedInnerSign(Coord{Row: 0, Col: 0}))

		// When: a move points back into the resolved board
		board.Active = &Coord{Row: 1, Col: 1}
		require.NoError(t, board.Place(InnerChoice(1, 1, 0, 0), SymbolO))

		// Then: any open board may be chosen
		assert.Nil(t, board.ActiveConstraint())
		assert.False(t, board.IsFree(OuterChoice(0, 0)))
		assert.True(t, board.IsFree(OuterChoice(2, 2)))
	})

	t.Run("Outer-only selection picks an open board", func(t *testing.T) {
		board := NewCompositeBoard(3)
		board.Outer.Set(Coord{Row: 1, Col: 1}, SymbolO)

		require.ErrorIs(t, board.Select(Coord{Row: 1, Col: 1}), apperror.ErrWrongBoard)
		require.NoError(t, board.Select(Coord{Row: 2, Col: 1}))
		assert.Equal(t, &Coord{Row: 2, Col: 1}, board.ActiveConstraint())

		// a second selection of another board is refused
		require.ErrorIs(t, board.Select(Coord{Row: 0, Col: 0}), apperror.ErrWrongBoard)
	})

	t.Run("Writes never land in a resolved board", func(t *testing.T) {
		board := NewCompositeBoard(3)
		board.Outer.Set(Coord{Row: 0, Col: 1}, TieMark)

		err := board.Place(InnerChoice(0, 1, 0, 0), SymbolX)

		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, EmptyCell, board.Inner[0][1].At(Coord{}))
	})

	t.Run("Place without inner coordinate is illegal", func(t *testing.T) {
		board := NewCompositeBoard(3)

		require.ErrorIs(t, board.Place(OuterChoice(0, 0), SymbolX), apperror.ErrIllegalMove)
	})
}

func TestCompositeBoard_RollUp(t *testing.T) {
	t.Run("Full inner board without winner resolves to a tie mark", func(t *testing.T) {
		board := NewCompositeBoard(3)
		board.Inner[2][2] = gridOf(3, "XOX", "XOO", "OX.")

		require.NoError(t, board.Place(InnerChoice(2, 2, 2, 2), SymbolO))

		assert.Equal(t, TieMark, board.ResolvedInnerSign(Coord{Row: 2, Col: 2}))
		assert.False(t, board.CheckWin(SymbolO))
	})

	t.Run("Three won inner boards in a row win the outer board", func(t *testing.T) {
		// Given: X already holds two outer cells of the top row
		board := NewCompositeBoard(3)
		board.Outer.Set(Coord{Row: 0, Col: 0}, SymbolX)
		board.Outer.Set(Coord{Row: 0, Col: 1}, SymbolX)
		board.Inner[0][2] = gridOf(3, "X..", "X..", "...")

		// When: X completes the first column of board (0,2)
		require.NoError(t, board.Place(InnerChoice(0, 2, 2, 0), SymbolX))

		// Then: the outer board is won
		assert.True(t, board.CheckWin(SymbolX))
		assert.True(t, board.HasFreeCells())
	})

	t.Run("All inner boards resolved leaves no free cells", func(t *testing.T) {
		board := NewCompositeBoard(3)
		board.Outer = gridOf(3, "XOX", "XOO", "OX.")
		board.Outer.Set(Coord{Row: 2, Col: 2}, TieMark)

		assert.False(t, board.HasFreeCells())
	})

	t.Run("View flattens inner boards", func(t *testing.T) {
		board := NewCompositeBoard(3)
		require.NoError(t, board.Place(InnerChoice(2, 1, 0, 2), SymbolX))

		view := board.View()

		require.Len(t, view, CompositeSize)
		assert.Equal(t, SymbolX, view[6][5])
	})

	t.Run("Options switch between outer boards and the mandated board", func(t *testing.T) {
		board := NewCompositeBoard(3)

		options := board.Options()
		assert.True(t, options[1][1].Choice.IsOuterOnly())

		require.NoError(t, board.Place(InnerChoice(1, 1, 0, 0), SymbolX))
		options = board.Options()

		assert.Equal(t, InnerChoice(0, 0, 2, 2), options[2][2].Choice)
	})
}
