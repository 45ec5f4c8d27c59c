package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
)

type BoardKind string

const (
	BoardSimple    BoardKind = "simple"
	BoardComposite BoardKind = "composite"
)

// Option is one selectable position offered to the next mover.
type Option struct {
	Choice Choice `json:"choice"`
	Label  Symbol `json:"label"`
	Free   bool   `json:"free"`
}

// Board is the playing field of a game: a plain grid or a board of boards.
type Board interface {
	Kind() BoardKind
	// Size is the raw size the game was started with (N, or CompositeSize).
	Size() int
	RunLength() int

	// Place writes sign at choice. It only checks that the position can take a mark;
	// whose turn it is belongs to the game.
	Place(choice Choice, sign Symbol) error
	// Select picks the inner board to play next without placing a mark.
	Select(outer Coord) error
	IsFree(choice Choice) bool

	CheckWin(sign Symbol) bool
	HasFreeCells() bool
	// ActiveConstraint is the outer coordinate the next move must target, if any.
	ActiveConstraint() *Coord

	// View returns every cell at full resolution, row by row.
	View() [][]Symbol
	// Options returns the positions the next mover chooses from.
	Options() [][]Option
}

// NewBoard allocates an empty board for size and players count.
func NewBoard(size, players int) (Board, error) {
	run, err := RunLength(size, players)
	if err != nil {
		return nil, err
	}

	if size == CompositeSize {
		return NewCompositeBoard(run), nil
	}

	return NewSimpleBoard(size, run), nil
}

// SimpleBoard is a single N×N grid.
type SimpleBoard struct {
	Grid *Grid `json:"grid"`
}

func NewSimpleBoard(size, runLength int) *SimpleBoard {
	return &SimpleBoard{Grid: NewGrid(size, runLength)}
}

func (that *SimpleBoard) Kind() BoardKind {
	return BoardSimple
}

func (that *SimpleBoard) Size() int {
	return that.Grid.Size()
}

func (that *SimpleBoard) RunLength() int {
	return that.Grid.RunLength
}

func (that *SimpleBoard) Place(choice Choice, sign Symbol) error {
	if !that.Grid.InBounds(choice.Outer) {
		return fmt.Errorf("%w: cell %s out of board", apperror.ErrIllegalMove, choice.Outer)
	}

	if !that.Grid.IsFree(choice.Outer) {
		return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, apperror.ErrCellOccupied)
	}

	that.Grid.Set(choice.Outer, sign)

	return nil
}

func (that *SimpleBoard) Select(_ Coord) error {
	return fmt.Errorf("%w: simple board has no inner boards", apperror.ErrIllegalMove)
}

func (that *SimpleBoard) IsFree(choice Choice) bool {
	return that.Grid.IsFree(choice.Outer)
}

func (that *SimpleBoard) CheckWin(sign Symbol) bool {
	return that.Grid.CheckWin(sign)
}

func (that *SimpleBoard) HasFreeCells() bool {
	return that.Grid.HasFreeCells()
}

func (that *SimpleBoard) ActiveConstraint() *Coord {
	return nil
}

func (that *SimpleBoard) View() [][]Symbol {
	view := make([][]Symbol, len(that.Grid.Cells))
	for i, row := range that.Grid.Cells {
		view[i] = append([]Symbol(nil), row...)
	}

	return view
}

func (that *SimpleBoard) Options() [][]Option {
	options := make([][]Option, len(that.Grid.Cells))
	for row, cells := range that.Grid.Cells {
		options[row] = make([]Option, len(cells))
		for col, cell := range cells {
			options[row][col] = Option{
				Choice: CellChoice(row, col),
				Label:  cell,
				Free:   cell == EmptyCell,
			}
		}
	}

	return options
}

// boardEnvelope is the persisted tagged form of a Board.
type boardEnvelope struct {
	Kind      BoardKind       `json:"kind"`
	Simple    *SimpleBoard    `json:"simple,omitempty"`
	Composite *CompositeBoard `json:"composite,omitempty"`
}

func marshalBoard(board Board) (json.RawMessage, error) {
	if board == nil {
		return nil, nil
	}

	envelope := boardEnvelope{Kind: board.Kind()}
	switch b := board.(type) {
	case *SimpleBoard:
		envelope.Simple = b
	case *CompositeBoard:
		envelope.Composite = b
	default:
		return nil, fmt.Errorf("unknown board type %T", board)
	}

	return json.Marshal(envelope)
}

func unmarshalBoard(raw json.RawMessage) (Board, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var envelope boardEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}

	switch {
	case envelope.Kind == BoardSimple && envelope.Simple != nil:
		return envelope.Simple, nil
	case envelope.Kind == BoardComposite && envelope.Composite != nil:
		return envelope.Composite, nil
	default:
		return nil, fmt.Errorf("unknown board kind %q", envelope.Kind)
	}
}
