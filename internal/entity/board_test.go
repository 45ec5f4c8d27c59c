package entity

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
)

func gridOf(run int, rows ...string) *Grid {
	grid := NewGrid(len(rows), run)
	for r, row := range rows {
		for c, ch := range []rune(row) {
			switch ch {
			case 'X':
				grid.Cells[r][c] = SymbolX
			case 'O':
				grid.Cells[r][c] = SymbolO
			case 'D':
				grid.Cells[r][c] = SymbolTriangle
			}
		}
	}

	return grid
}

func TestGrid_CheckWin(t *testing.T) {
	t.Run("Detects a full row", func(t *testing.T) {
		// Given: X holds the top row
		grid := gridOf(3, "XXX", "OO.", "...")

		// Then: only X wins
		assert.True(t, grid.CheckWin(SymbolX))
		assert.False(t, grid.CheckWin(SymbolO))
	})

	t.Run("Detects a column and both diagonals", func(t *testing.T) {
		assert.True(t, gridOf(3, "O..", "O..", "O..").CheckWin(SymbolO))
		assert.True(t, gridOf(3, "X..", ".X.", "..X").CheckWin(SymbolX))
		assert.True(t, gridOf(3, "..X", ".X.", "X..").CheckWin(SymbolX))
	})

	t.Run("Uses the run length on bigger boards", func(t *testing.T) {
		// Given: a 5x5 grid that needs four in a row
		grid := gridOf(4, ".....", ".XXX.", ".....", ".....", ".....")

		// Then: three in a row is not enough
		assert.False(t, grid.CheckWin(SymbolX))

		// When: the run is extended to four
		grid.Set(Coord{Row: 1, Col: 4}, SymbolX)

		// Then: X wins
		assert.True(t, grid.CheckWin(SymbolX))
	})

	t.Run("Finds short diagonals away from the main one", func(t *testing.T) {
		grid := gridOf(3, "....", "D...", ".D..", "..D.")

		assert.True(t, grid.CheckWin(SymbolTriangle))
	})

	t.Run("At most one symbol wins at any point of a game", func(t *testing.T) {
		for size := 4; size <= 8; size++ {
			for _, players := range PlayerCounts(size) {
				run, err := RunLength(size, players)
				require.NoError(t, err)
				symbols, err := NewSymbols(players)
				require.NoError(t, err)

				t.Run(fmt.Sprintf("%dx%d/%d players", size, size, players), func(t *testing.T) {
					for seed := int64(1); seed <= 25; seed++ {
						// Given: cells filled in a seeded random order, turn by turn
						grid := NewGrid(size, run)
						order := rand.New(rand.NewSource(seed)).Perm(size * size)

						for move, cell := range order {
							grid.Set(Coord{Row: cell / size, Col: cell % size}, symbols[move%players])

							// Then: the evaluation after each move names one winner at most
							winners := lo.Filter(symbols, func(s Symbol, _ int) bool { return grid.CheckWin(s) })
							require.LessOrEqual(t, len(winners), 1, "seed %d move %d", seed, move)

							if len(winners) == 1 {
								assert.Equal(t, symbols[move%players], winners[0])
								break
							}
						}
					}
				})
			}
		}
	})

	t.Run("Empty and tie marks never win", func(t *testing.T) {
		grid := NewGrid(3, 3)

		assert.False(t, grid.CheckWin(EmptyCell))
		assert.False(t, grid.CheckWin(TieMark))
	})
}

func TestSimpleBoard(t *testing.T) {
	t.Run("Place rejects an occupied cell", func(t *testing.T) {
		// Given: a board with X in the corner
		board := NewSimpleBoard(3, 3)
		require.NoError(t, board.Place(CellChoice(0, 0), SymbolX))

		// When: O tries the same cell
		err := board.Place(CellChoice(0, 0), SymbolO)

		// Then: the move is illegal and the cell keeps X
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, SymbolX, board.Grid.At(Coord{}))
	})

	t.Run("Place rejects a cell outside the board", func(t *testing.T) {
		board := NewSimpleBoard(3, 3)

		err := board.Place(CellChoice(3, 0), SymbolX)

		require.ErrorIs(t, err, apperror.ErrIllegalMove)
	})

	t.Run("Full board without a winner has no free cells", func(t *testing.T) {
		// Given: a drawn 3x3 board
		board := &SimpleBoard{Grid: gridOf(3, "XOX", "XOO", "OXX")}

		// Then: no free cells and no winner
		assert.False(t, board.HasFreeCells())
		assert.False(t, board.CheckWin(SymbolX))
		assert.False(t, board.CheckWin(SymbolO))
	})

	t.Run("Select is not available", func(t *testing.T) {
		board := NewSimpleBoard(3, 3)

		require.ErrorIs(t, board.Select(Coord{}), apperror.ErrIllegalMove)
		assert.Nil(t, board.ActiveConstraint())
	})

	t.Run("Options mirror the cells", func(t *testing.T) {
		board := NewSimpleBoard(3, 3)
		require.NoError(t, board.Place(CellChoice(1, 2), SymbolO))

		options := board.Options()

		require.Len(t, options, 3)
		assert.Equal(t, Option{Choice: CellChoice(1, 2), Label: SymbolO, Free: false}, options[1][2])
		assert.True(t, options[0][0].Free)
	})
}

func TestNewBoard(t *testing.T) {
	t.Run("Builds a simple board with the table run length", func(t *testing.T) {
		board, err := NewBoard(5, 3)

		require.NoError(t, err)
		assert.Equal(t, BoardSimple, board.Kind())
		assert.Equal(t, 5, board.Size())
		assert.Equal(t, 4, board.RunLength())
	})

	t.Run("Builds a composite board for size nine", func(t *testing.T) {
		board, err := NewBoard(CompositeSize, 2)

		require.NoError(t, err)
		assert.Equal(t, BoardComposite, board.Kind())
		assert.Equal(t, CompositeSize, board.Size())
	})

	t.Run("Rejects unsupported combinations", func(t *testing.T) {
		_, err := NewBoard(3, 4)
		require.ErrorIs(t, err, apperror.ErrUnsupportedPlayers)

		_, err = NewBoard(11, 2)
		require.ErrorIs(t, err, apperror.ErrUnsupportedSize)
	})
}

func TestBoard_JSON(t *testing.T) {
	t.Run("Game keeps its board kind through persistence", func(t *testing.T) {
		// Given: a started composite game with one move
		game, err := NewGame("g1", "p1", SymbolX, testNow)
		require.NoError(t, err)
		require.NoError(t, game.Start(CompositeSize))
		_, err = game.Play("p1", InnerChoice(1, 1, 0, 2))
		require.NoError(t, err)

		// When: it is encoded and decoded
		data, err := json.Marshal(game)
		require.NoError(t, err)

		var decoded Game
		require.NoError(t, json.Unmarshal(data, &decoded))

		// Then: the board and its constraint survive
		require.NotNil(t, decoded.Board)
		assert.Equal(t, BoardComposite, decoded.Board.Kind())
		assert.Equal(t, &Coord{Row: 0, Col: 2}, decoded.Board.ActiveConstraint())
		assert.Equal(t, game.Board.View(), decoded.Board.View())
		assert.Equal(t, game.Players, decoded.Players)
	})

	t.Run("Game in setup has no board", func(t *testing.T) {
		game, err := NewGame("g2", "p1", SymbolO, testNow)
		require.NoError(t, err)

		data, err := json.Marshal(game)
		require.NoError(t, err)

		var decoded Game
		require.NoError(t, json.Unmarshal(data, &decoded))

		assert.Nil(t, decoded.Board)
		assert.Equal(t, StatusSetup, decoded.Status)
	})
}
