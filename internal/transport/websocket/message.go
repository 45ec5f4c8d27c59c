package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/xo-engine/internal/entity"
)

const (
	actionNew    = "game:new"
	actionWatch  = "game:watch"
	actionEvent  = "game:event"
	actionRender = "game:render"
	actionNotice = "game:notice"
	actionError  = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type PlayerPayload struct {
	ID       string `json:"id" validate:"required,max=64"`
	Name     string `json:"name" validate:"max=64"`
	Language string `json:"language,omitempty" validate:"omitempty,bcp47_language_tag"`
}

func (that PlayerPayload) toEntity() entity.Player {
	name := that.Name
	if name == "" {
		name = that.ID
	}

	return entity.Player{ID: that.ID, Name: name, Language: that.Language}
}

type NewGamePayload struct {
	Player PlayerPayload `json:"player" validate:"required"`
	Symbol string        `json:"symbol" validate:"required,oneof=X O Δ □"`
}

type WatchPayload struct {
	GameID string `json:"game_id" validate:"required,uuid"`
}

type EventPayload struct {
	GameID  string        `json:"game_id" validate:"required,uuid"`
	Player  PlayerPayload `json:"player" validate:"required"`
	Command string        `json:"command" validate:"required,max=32"`
}

type NewGameResponse struct {
	GameID string `json:"game_id"`
}

type NoticePayload struct {
	GameID   string `json:"game_id,omitempty"`
	Text     string `json:"text"`
	Declined bool   `json:"declined,omitempty"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

func newMessage(action string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	return Message{Action: action, Payload: data}, nil
}
