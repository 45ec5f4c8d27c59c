package entity

// DefaultLanguage is used for players that did not report a language.
const DefaultLanguage = "en"

// Player is a participant identity as delivered by the messaging gateway.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language,omitempty"`
}

func (that *Player) Lang() string {
	if that.Language == "" {
		return DefaultLanguage
	}

	return that.Language
}

// Intent is a slot's stance toward ending the game.
type Intent string

const (
	IntentPlaying     Intent = "playing"
	IntentTieProposed Intent = "tie_proposed"
	IntentForfeited   Intent = "forfeited"
	IntentFinished    Intent = "finished"
)

// PlayerSlot is one symbol's seat in a game.
type PlayerSlot struct {
	Symbol   Symbol `json:"symbol"`
	PlayerID string `json:"player_id,omitempty"`
	Index    int    `json:"index"`
	Intent   Intent `json:"intent"`
}

// IsOpen reports whether the slot is claimable by a joining player.
func (that *PlayerSlot) IsOpen() bool {
	return that.PlayerID == ""
}
