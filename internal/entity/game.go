package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
)

// Status is the phase of a game.
type Status string

const (
	StatusSetup            Status = "setup"
	StatusPlaying          Status = "playing"
	StatusWon              Status = "won"
	StatusTied             Status = "tied"
	StatusForfeitConfirmed Status = "forfeit_confirmed"
	StatusTimedOut         Status = "timed_out"
)

// Game is the persisted row of one game instance.
type Game struct {
	ID      string  `json:"id"`
	Symbols Symbols `json:"symbols"`
	Queue   int     `json:"queue"`
	Board   Board   `json:"-"`
	Players Players `json:"players"`
	Status  Status  `json:"status"`

	// Moves counts accepted placements.
	Moves int `json:"moves"`
	// TurnSeq tags the turn inactivity timer; bumped whenever the timer is re-armed.
	TurnSeq int `json:"turn_seq"`
	// VoteRound tags tie and forfeit vote timers.
	VoteRound int     `json:"vote_round"`
	LastMove  *Choice `json:"last_move,omitempty"`
	// SetupSize is the board size picked during setup, before the players count is settled.
	SetupSize int `json:"setup_size,omitempty"`
	// Revision is bumped by the store on every committed update.
	Revision int `json:"revision"`

	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// NewGame creates a game in setup with the creator bound to symbol.
func NewGame(id, creatorID string, symbol Symbol, now time.Time) (*Game, error) {
	if !IsValidSymbol(symbol) {
		return nil, fmt.Errorf("%w: unknown symbol %q", apperror.ErrUnknownCommand, symbol)
	}

	symbols, err := NewSymbols(MinPlayers)
	if err != nil {
		return nil, err
	}
	symbols = symbols.WithSymbol(symbol)

	game := &Game{
		ID:        id,
		Symbols:   symbols,
		Players:   NewPlayers(symbols),
		Status:    StatusSetup,
		CreatedAt: now,
	}

	if _, err = game.Players.BindSlot(symbol, creatorID); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *Game) IsSetup() bool {
	return that.Status == StatusSetup
}

func (that *Game) IsPlaying() bool {
	return that.Status == StatusPlaying
}

// IsConcluded reports whether the game reached a terminal outcome.
func (that *Game) IsConcluded() bool {
	switch that.Status {
	case StatusWon, StatusTied, StatusForfeitConfirmed, StatusTimedOut:
		return true
	default:
		return false
	}
}

func (that *Game) IsDeleted() bool {
	return that.DeletedAt != nil
}

// ConfirmOngoingState returns nil only for a game that accepts moves.
func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsDeleted(), that.IsConcluded():
		return apperror.ErrAlreadyResolved
	case that.IsSetup():
		return apperror.ErrGameIsNotStarted
	case that.IsPlaying():
		return nil
	default:
		return fmt.Errorf("%w: unknown status %s", apperror.ErrAlreadyResolved, that.Status)
	}
}

// ConfirmSetupState returns nil only for a game that is still being configured.
func (that *Game) ConfirmSetupState() error {
	switch {
	case that.IsDeleted(), that.IsConcluded():
		return apperror.ErrAlreadyResolved
	case !that.IsSetup():
		return apperror.ErrGameAlreadyStarted
	default:
		return nil
	}
}

// Join binds playerID to the first open slot unless it already holds one.
func (that *Game) Join(playerID string) (*PlayerSlot, error) {
	if slot := that.Players.FindSlotFor(playerID); slot != nil {
		return slot, nil
	}

	open := that.Players.FirstOpen()
	if open == nil {
		return nil, apperror.ErrUnboundSymbol
	}

	return that.Players.BindSlot(open.Symbol, playerID)
}

// Resize grows the symbol assignment to players before the game starts.
func (that *Game) Resize(players int) error {
	if err := that.ConfirmSetupState(); err != nil {
		return err
	}

	symbols, err := that.Symbols.Grow(players)
	if err != nil {
		return err
	}

	that.Symbols = symbols
	that.Players = that.Players.Resize(symbols)

	return nil
}

// Start allocates the board and opens play.
func (that *Game) Start(size int) error {
	if err := that.ConfirmSetupState(); err != nil {
		return err
	}

	board, err := NewBoard(size, len(that.Symbols))
	if err != nil {
		return err
	}

	that.Board = board
	that.Queue = 0
	that.Status = StatusPlaying
	that.TurnSeq++

	return nil
}

// ChooseSize records the board size and reports whether the game can start right away:
// either the size allows a single players count or the current count is already its maximum.
func (that *Game) ChooseSize(size int) (bool, error) {
	if err := that.ConfirmSetupState(); err != nil {
		return false, err
	}

	if _, err := RunLength(size, len(that.Symbols)); err != nil {
		return false, err
	}

	that.SetupSize = size
	counts := PlayerCounts(size)

	return len(counts) == 1 || counts[len(counts)-1] <= len(that.Symbols), nil
}

// ChoosePlayers settles the players count for the chosen size and starts the game.
func (that *Game) ChoosePlayers(count int) error {
	if err := that.ConfirmSetupState(); err != nil {
		return err
	}

	if that.SetupSize == 0 {
		return fmt.Errorf("%w: board size is not chosen", apperror.ErrUnsupportedSize)
	}

	if count < len(that.Symbols) {
		return fmt.Errorf("%w: %d is below %d", apperror.ErrUnsupportedPlayers, count, len(that.Symbols))
	}

	if _, err := RunLength(that.SetupSize, count); err != nil {
		return err
	}

	if count > len(that.Symbols) {
		if err := that.Resize(count); err != nil {
			return err
		}
	}

	return that.Start(that.SetupSize)
}

// SoftDelete stamps the game as deleted; the row itself is kept.
func (that *Game) SoftDelete(now time.Time) {
	if that.DeletedAt == nil {
		that.DeletedAt = &now
	}
}

// RunLength is the number of marks in a row needed to win this game.
func (that *Game) RunLength() int {
	if that.Board == nil {
		return 0
	}

	return that.Board.RunLength()
}

// Size is the raw board size, 0 before the game starts.
func (that *Game) Size() int {
	if that.Board == nil {
		return 0
	}

	return that.Board.Size()
}

type gameAlias Game

type gameJSON struct {
	*gameAlias
	Board json.RawMessage `json:"board,omitempty"`
}

func (that *Game) MarshalJSON() ([]byte, error) {
	board, err := marshalBoard(that.Board)
	if err != nil {
		return nil, err
	}

	return json.Marshal(gameJSON{gameAlias: (*gameAlias)(that), Board: board})
}

func (that *Game) UnmarshalJSON(data []byte) error {
	aux := gameJSON{gameAlias: (*gameAlias)(that)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	board, err := unmarshalBoard(aux.Board)
	if err != nil {
		return err
	}
	that.Board = board

	return nil
}
