package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
)

// Coord addresses one cell of a square grid.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoCoord is the sentinel for an absent inner coordinate.
var NoCoord = Coord{Row: -1, Col: -1}

func (that Coord) String() string {
	return fmt.Sprintf("%d:%d", that.Row, that.Col)
}

// Choice selects a move. On a simple board only Outer is used and holds the cell.
// On a composite board Outer picks the inner board and Inner the cell inside it;
// an Inner of NoCoord only selects the inner board to play next.
type Choice struct {
	Outer Coord `json:"outer"`
	Inner Coord `json:"inner"`
}

func CellChoice(row, col int) Choice {
	return Choice{Outer: Coord{Row: row, Col: col}, Inner: NoCoord}
}

func InnerChoice(outerRow, outerCol, innerRow, innerCol int) Choice {
	return Choice{Outer: Coord{Row: outerRow, Col: outerCol}, Inner: Coord{Row: innerRow, Col: innerCol}}
}

func OuterChoice(row, col int) Choice {
	return CellChoice(row, col)
}

// IsOuterOnly reports whether the choice carries no inner coordinate.
func (that Choice) IsOuterOnly() bool {
	return that.Inner == NoCoord
}

// CommandKind is the kind of an inbound gateway command.
type CommandKind string

const (
	CommandMove    CommandKind = "cell"
	CommandBoard   CommandKind = "board"
	CommandSize    CommandKind = "size"
	CommandPlayers CommandKind = "players"
	CommandEnd     CommandKind = "end"
)

// EndAction is a vote or request concerning the end of a game.
type EndAction string

const (
	EndTie     EndAction = "tie"
	EndGiveUp  EndAction = "give_up"
	EndConfirm EndAction = "confirm"
	EndCancel  EndAction = "cancel"
)

// Command is a parsed inbound action.
type Command struct {
	Kind   CommandKind
	Choice Choice
	Value  int
	End    EndAction
}

func MoveCommand(choice Choice) string {
	if choice.IsOuterOnly() {
		return fmt.Sprintf("%s:%d:%d", CommandMove, choice.Outer.Row, choice.Outer.Col)
	}

	return fmt.Sprintf("%s:%d:%d:%d:%d", CommandMove, choice.Outer.Row, choice.Outer.Col, choice.Inner.Row, choice.Inner.Col)
}

func BoardCommand(outer Coord) string {
	return fmt.Sprintf("%s:%d:%d", CommandBoard, outer.Row, outer.Col)
}

func SizeCommand(size int) string {
	return fmt.Sprintf("%s:%d", CommandSize, size)
}

func PlayersCommand(count int) string {
	return fmt.Sprintf("%s:%d", CommandPlayers, count)
}

func EndCommand(action EndAction) string {
	return fmt.Sprintf("%s:%s", CommandEnd, action)
}

// ParseCommand decodes the wire form produced by the *Command helpers.
func ParseCommand(raw string) (Command, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 {
		return Command{}, fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, raw)
	}

	kind := CommandKind(parts[0])

	switch kind {
	case CommandEnd:
		action := EndAction(parts[1])
		switch action {
		case EndTie, EndGiveUp, EndConfirm, EndCancel:
			return Command{Kind: kind, End: action}, nil
		default:
			return Command{}, fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, raw)
		}
	case CommandSize, CommandPlayers:
		if len(parts) != 2 {
			return Command{}, fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, raw)
		}

		value, err := strconv.Atoi(parts[1])
		if err != nil || value < 0 {
			return Command{}, fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, raw)
		}

		return Command{Kind: kind, Value: value}, nil
	case CommandMove, CommandBoard:
		numbers, err := atoiAll(parts[1:])
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, raw)
		}

		switch {
		case len(numbers) == 2:
			return Command{Kind: kind, Choice: CellChoice(numbers[0], numbers[1])}, nil
		case len(numbers) == 4 && kind == CommandMove:
			return Command{Kind: kind, Choice: InnerChoice(numbers[0], numbers[1], numbers[2], numbers[3])}, nil
		}
	}

	return Command{}, fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, raw)
}

func atoiAll(values []string) ([]int, error) {
	numbers := make([]int, len(values))
	for i, value := range values {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("negative coordinate %d", n)
		}
		numbers[i] = n
	}

	return numbers, nil
}
