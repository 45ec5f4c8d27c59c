package entity

import "time"

// TimerKind names the phase a background timer belongs to.
type TimerKind string

const (
	TimerTurn        TimerKind = "turn"
	TimerTieVote     TimerKind = "tie_vote"
	TimerForfeitVote TimerKind = "forfeit_vote"
	TimerGrace       TimerKind = "grace"
)

// Timer is a fire-and-forget expiry for one phase of one game.
// Seq is the phase tag the game carried when the timer was armed.
type Timer struct {
	GameID string        `json:"game_id"`
	Kind   TimerKind     `json:"kind"`
	Seq    int           `json:"seq"`
	Delay  time.Duration `json:"delay"`
}

func (that *Game) TurnTimer(delay time.Duration) Timer {
	return Timer{GameID: that.ID, Kind: TimerTurn, Seq: that.TurnSeq, Delay: delay}
}

func (that *Game) VoteTimer(kind TimerKind, delay time.Duration) Timer {
	return Timer{GameID: that.ID, Kind: kind, Seq: that.VoteRound, Delay: delay}
}

func (that *Game) GraceTimer(delay time.Duration) Timer {
	return Timer{GameID: that.ID, Kind: TimerGrace, Delay: delay}
}

// Superseded reports whether the persisted game state no longer matches the phase the timer was armed for.
func (that *Game) Superseded(timer Timer) bool {
	if that.IsDeleted() {
		return true
	}

	switch timer.Kind {
	case TimerTurn:
		return that.IsConcluded() || that.votePending() || timer.Seq != that.TurnSeq ||
			!that.Players.HasIntent(IntentPlaying)
	case TimerTieVote:
		return that.IsConcluded() || timer.Seq != that.VoteRound || !that.Players.HasIntent(IntentTieProposed)
	case TimerForfeitVote:
		return that.IsConcluded() || timer.Seq != that.VoteRound || !that.Players.HasIntent(IntentForfeited)
	case TimerGrace:
		return !that.IsConcluded()
	default:
		return true
	}
}
