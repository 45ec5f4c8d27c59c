package entity

import "github.com/rocketscienceinc/xo-engine/internal/apperror"

// finish marks every bound slot as done with the game.
func (that *Game) finish() {
	that.Players.SetIntentExcept("", IntentFinished)
}

func (that *Game) actor(playerID string) (*PlayerSlot, error) {
	if err := that.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	slot := that.Players.FindSlotFor(playerID)
	if slot == nil {
		return nil, apperror.ErrUnboundSymbol
	}

	return slot, nil
}

// ProposeTie records a tie vote of playerID and reports whether every active slot now agrees.
func (that *Game) ProposeTie(playerID string) (bool, error) {
	if _, err := that.actor(playerID); err != nil {
		return false, err
	}

	if that.Players.HasIntent(IntentForfeited) {
		return false, apperror.ErrVoteInProgress
	}

	if !that.Players.HasIntent(IntentTieProposed) {
		that.VoteRound++
	}
	that.Players.SetIntent(playerID, IntentTieProposed)

	return that.resolveTieIfAgreed(), nil
}

// Forfeit marks playerID as giving up. The game ends only once the forfeit is confirmed.
func (that *Game) Forfeit(playerID string) error {
	if _, err := that.actor(playerID); err != nil {
		return err
	}

	if that.votePending() {
		return apperror.ErrVoteInProgress
	}

	// the turn pointer stays where it is until the forfeit is confirmed
	that.Players.SetIntent(playerID, IntentForfeited)
	that.VoteRound++

	return nil
}

// Confirm answers the pending vote and reports whether it concluded the game.
func (that *Game) Confirm(playerID string) (bool, error) {
	slot, err := that.actor(playerID)
	if err != nil {
		return false, err
	}

	switch {
	case that.Players.HasIntent(IntentTieProposed):
		if slot.Intent == IntentPlaying {
			that.Players.SetIntent(playerID, IntentTieProposed)
		}

		return that.resolveTieIfAgreed(), nil
	case that.Players.HasIntent(IntentForfeited):
		that.ConfirmForfeit()

		return true, nil
	default:
		return false, apperror.ErrNothingToConfirm
	}
}

// Cancel withdraws from the pending vote. During a tie vote it resumes play for everyone;
// a forfeiting player takes the forfeit back.
func (that *Game) Cancel(playerID string) error {
	slot, err := that.actor(playerID)
	if err != nil {
		return err
	}

	switch {
	case slot.Intent == IntentForfeited:
		that.Players.SetIntent(playerID, IntentPlaying)
		that.TurnSeq++
	case slot.Intent != IntentFinished && that.Players.HasIntent(IntentTieProposed):
		that.CancelTieVote()
	default:
		return apperror.ErrNothingToCancel
	}

	return nil
}

// CancelTieVote puts every tie vote back to playing and re-arms the turn timer tag.
func (that *Game) CancelTieVote() {
	for _, slot := range that.Players.WithIntent(IntentTieProposed) {
		slot.Intent = IntentPlaying
	}
	that.TurnSeq++
}

// ConfirmForfeit concludes the game against the forfeiting slot; its index becomes the losing queue.
func (that *Game) ConfirmForfeit() {
	forfeited := that.Players.WithIntent(IntentForfeited)
	if len(forfeited) == 0 {
		return
	}

	that.Queue = forfeited[0].Index
	that.Status = StatusForfeitConfirmed
	that.finish()
}

// TimeOut concludes a stalled game as a loss of whoever holds the turn.
func (that *Game) TimeOut() {
	that.Status = StatusTimedOut
	that.finish()
}

// Negotiated reports whether a tie was agreed on while the board still had room.
func (that *Game) Negotiated() bool {
	return that.Status == StatusTied && that.Board != nil && that.Board.HasFreeCells()
}

func (that *Game) resolveTieIfAgreed() bool {
	if !that.Players.AllActiveHave(IntentTieProposed) {
		return false
	}

	that.Status = StatusTied
	that.finish()

	return true
}
