package apperror

import "errors"

// Declined actions. They never mutate persisted state and are reported back to the acting player.
var (
	ErrIllegalMove        = errors.New("illegal move")
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrWrongBoard         = errors.New("move must target the active inner board")
	ErrOutOfTurn          = errors.New("it's not your turn")
	ErrUnboundSymbol      = errors.New("player holds no slot and no slot is open")
	ErrAlreadyResolved    = errors.New("game is already resolved")
	ErrVoteInProgress     = errors.New("end of game vote is in progress")
	ErrNothingToConfirm   = errors.New("nothing to confirm")
	ErrNothingToCancel    = errors.New("nothing to cancel")
	ErrSlotTaken          = errors.New("symbol is already bound")
	ErrPlayerAlreadyBound = errors.New("player already holds a slot")
	ErrGameIsNotStarted   = errors.New("game is not started")
	ErrGameAlreadyStarted = errors.New("game is already started")
	ErrUnsupportedSize    = errors.New("unsupported board size")
	ErrUnsupportedPlayers = errors.New("unsupported players count")
	ErrUnknownCommand     = errors.New("unknown command")
)

// Storage errors.
var (
	ErrGameNotFound      = errors.New("game not found")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrGameAlreadyExists = errors.New("game already exists")
	ErrConcurrentUpdate  = errors.New("game was concurrently updated")
)

var declined = []error{
	ErrIllegalMove,
	ErrCellOccupied,
	ErrWrongBoard,
	ErrOutOfTurn,
	ErrUnboundSymbol,
	ErrAlreadyResolved,
	ErrVoteInProgress,
	ErrNothingToConfirm,
	ErrNothingToCancel,
	ErrSlotTaken,
	ErrPlayerAlreadyBound,
	ErrGameIsNotStarted,
	ErrGameAlreadyStarted,
	ErrUnsupportedSize,
	ErrUnsupportedPlayers,
	ErrUnknownCommand,
}

// IsDeclined reports whether err is a declined player action rather than an infrastructure failure.
func IsDeclined(err error) bool {
	for _, target := range declined {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
