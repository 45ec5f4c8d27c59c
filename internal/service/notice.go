package service

import (
	"errors"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
	"github.com/rocketscienceinc/xo-engine/internal/entity"
	"github.com/rocketscienceinc/xo-engine/internal/phrase"
)

// declineKeys is ordered: specific causes come before the ErrIllegalMove they wrap.
var declineKeys = []struct {
	err error
	key phrase.Key
}{
	{apperror.ErrWrongBoard, phrase.WrongBoard},
	{apperror.ErrCellOccupied, phrase.CellOccupied},
	{apperror.ErrOutOfTurn, phrase.NotYourTurn},
	{apperror.ErrVoteInProgress, phrase.VoteInProgress},
	{apperror.ErrAlreadyResolved, phrase.GameOver},
	{apperror.ErrGameNotFound, phrase.GameOver},
	{apperror.ErrUnboundSymbol, phrase.NotInGame},
	{apperror.ErrSlotTaken, phrase.NotInGame},
	{apperror.ErrPlayerAlreadyBound, phrase.NotInGame},
	{apperror.ErrNothingToConfirm, phrase.NothingToVote},
	{apperror.ErrNothingToCancel, phrase.NothingToVote},
	{apperror.ErrGameIsNotStarted, phrase.NotStarted},
	{apperror.ErrGameAlreadyStarted, phrase.AlreadyStarted},
	{apperror.ErrUnsupportedSize, phrase.Unsupported},
	{apperror.ErrUnsupportedPlayers, phrase.Unsupported},
	{apperror.ErrIllegalMove, phrase.Unsupported},
	{apperror.ErrUnknownCommand, phrase.UnknownCommand},
}

func (that *GameSession) decline(actor *entity.Player, err error) Notice {
	for _, decline := range declineKeys {
		if errors.Is(err, decline.err) {
			return Notice{Text: that.catalog.Phrase(phrase.Parse(actor.Lang()), decline.key)}
		}
	}

	return Notice{Text: that.catalog.Phrase(phrase.Parse(actor.Lang()), phrase.UnknownCommand)}
}
