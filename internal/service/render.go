package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/xo-engine/internal/entity"
	"github.com/rocketscienceinc/xo-engine/internal/phrase"
)

const (
	emptyMark  = "·"
	turnMarker = "←"
)

// Button is one interactive control; Command is sent back verbatim when pressed.
type Button struct {
	Label   string `json:"label"`
	Command string `json:"command"`
}

// RenderRequest is an idempotent full re-render of one game message.
// Revision is the game row revision the render was built from; Final marks
// the last render of a game whose row is already soft-deleted.
type RenderRequest struct {
	GameID   string     `json:"game_id"`
	Revision int        `json:"revision"`
	Text     string     `json:"text"`
	Buttons  [][]Button `json:"buttons,omitempty"`
	Final    bool       `json:"final,omitempty"`
}

// view is what every render needs besides the game itself.
type view struct {
	game   *entity.Game
	seated map[string]*entity.Player
	pref   phrase.Preference
}

func (that *GameSession) view(ctx context.Context, game *entity.Game, actor *entity.Player) (*view, error) {
	return that.viewFor(ctx, game, actor, game.Players)
}

// viewFor builds a view whose language is merged over audience only.
func (that *GameSession) viewFor(
	ctx context.Context, game *entity.Game, actor *entity.Player, audience entity.Players,
) (*view, error) {
	seated, err := that.players.Seated(ctx, game.Players)
	if err != nil {
		return nil, err
	}

	listeners := make(map[string]*entity.Player, len(audience))
	for _, slot := range audience {
		if player, ok := seated[slot.PlayerID]; ok {
			listeners[slot.PlayerID] = player
		}
	}

	return &view{game: game, seated: seated, pref: preferenceOf(listeners, actor)}, nil
}

func (that *GameSession) phrase(v *view, key phrase.Key, args ...any) string {
	return that.catalog.Phrase(v.pref, key, args...)
}

func (that *GameSession) render(ctx context.Context, game *entity.Game, text string, buttons [][]Button) error {
	err := that.gateway.Render(ctx, RenderRequest{
		GameID:   game.ID,
		Revision: game.Revision,
		Text:     text,
		Buttons:  buttons,
		Final:    game.DeletedAt != nil,
	})
	if err != nil {
		return fmt.Errorf("failed to render game: %w", err)
	}

	return nil
}

func (that *GameSession) renderBoard(ctx context.Context, game *entity.Game, actor *entity.Player) error {
	v, err := that.view(ctx, game, actor)
	if err != nil {
		return err
	}

	var text strings.Builder
	text.WriteString(that.phrase(v, phrase.ToWin, game.RunLength()))
	text.WriteString("\n\n")

	if game.Board.Kind() == entity.BoardComposite {
		text.WriteString(boardText(game.Board, game.LastMove))
		text.WriteString("\n")
	}

	text.WriteString(that.playersText(v, that.turnMarks(v)))

	buttons := optionButtons(game.Board)
	buttons = append(buttons, []Button{
		{Label: that.phrase(v, phrase.Tie), Command: entity.EndCommand(entity.EndTie)},
		{Label: that.phrase(v, phrase.GiveUp), Command: entity.EndCommand(entity.EndGiveUp)},
	})

	return that.render(ctx, game, text.String(), buttons)
}

func (that *GameSession) renderSizePrompt(ctx context.Context, game *entity.Game, actor *entity.Player) error {
	v, err := that.view(ctx, game, actor)
	if err != nil {
		return err
	}

	text := that.phrase(v, phrase.CurrentPlayers) + "\n" + that.playersText(v, nil) + "\n" + that.phrase(v, phrase.ChooseSize)

	sizes := lo.Map(entity.SizesForPlayers(len(game.Symbols)), func(size int, _ int) Button {
		return Button{Label: sizeLabel(size), Command: entity.SizeCommand(size)}
	})

	buttons := append(lo.Chunk(sizes, 4), []Button{{Label: that.phrase(v, phrase.Random), Command: entity.SizeCommand(0)}})

	return that.render(ctx, game, text, buttons)
}

func (that *GameSession) renderPlayersPrompt(ctx context.Context, game *entity.Game, actor *entity.Player) error {
	v, err := that.view(ctx, game, actor)
	if err != nil {
		return err
	}

	text := that.phrase(v, phrase.CurrentSize, sizeLabel(game.SetupSize)) + "\n" +
		that.phrase(v, phrase.CurrentPlayers) + "\n" + that.playersText(v, nil) + "\n" +
		that.phrase(v, phrase.ChoosePlayers)

	counts := lo.Filter(entity.PlayerCounts(game.SetupSize), func(count int, _ int) bool {
		return count >= len(game.Symbols)
	})

	row := lo.Map(counts, func(count int, _ int) Button {
		return Button{Label: fmt.Sprint(count), Command: entity.PlayersCommand(count)}
	})
	row = append(row, Button{Label: that.phrase(v, phrase.Random), Command: entity.PlayersCommand(0)})

	return that.render(ctx, game, text, [][]Button{row})
}

// renderTieVote speaks the language of the players still asked to agree.
func (that *GameSession) renderTieVote(ctx context.Context, game *entity.Game, actor *entity.Player) error {
	asked := lo.Filter(game.Players.Bound(), func(slot *entity.PlayerSlot, _ int) bool {
		return slot.Intent == entity.IntentPlaying
	})

	v, err := that.viewFor(ctx, game, actor, asked)
	if err != nil {
		return err
	}

	proposers := lo.Map(game.Players.WithIntent(entity.IntentTieProposed), func(slot *entity.PlayerSlot, _ int) string {
		return that.nameOf(v, slot)
	})

	text := boardText(game.Board, game.LastMove) + "\n" + that.playersText(v, that.turnMarks(v)) + "\n" +
		that.phrase(v, phrase.TieProposed, strings.Join(proposers, ", "))

	return that.render(ctx, game, text, that.voteButtons(v))
}

func (that *GameSession) renderForfeitVote(ctx context.Context, game *entity.Game, actor *entity.Player) error {
	v, err := that.view(ctx, game, actor)
	if err != nil {
		return err
	}

	forfeiter := that.nameOf(v, game.Players.WithIntent(entity.IntentForfeited)[0])

	text := boardText(game.Board, game.LastMove) + "\n" + that.playersText(v, that.turnMarks(v)) + "\n" +
		that.phrase(v, phrase.ForfeitProposed, forfeiter)

	return that.render(ctx, game, text, that.voteButtons(v))
}

// renderFinal shows the terminal board and the outcome; highlight marks the last move.
func (that *GameSession) renderFinal(ctx context.Context, game *entity.Game, actor *entity.Player, highlight bool) error {
	v, err := that.view(ctx, game, actor)
	if err != nil {
		return err
	}

	var last *entity.Choice
	if highlight {
		last = game.LastMove
	}

	var text strings.Builder
	if game.Board != nil {
		text.WriteString(boardText(game.Board, last))
		text.WriteString("\n")
	}

	text.WriteString(that.playersText(v, that.outcomeMarks(v)))

	switch {
	case game.Negotiated():
		text.WriteString("\n" + that.phrase(v, phrase.Canceled))
	case game.Status == entity.StatusTimedOut:
		text.WriteString("\n" + that.phrase(v, phrase.TimedOut))
	case game.Status == entity.StatusForfeitConfirmed:
		text.WriteString("\n" + that.phrase(v, phrase.ForfeitedBy, that.nameOf(v, game.Players[game.Queue])))
	}

	return that.render(ctx, game, text.String(), nil)
}

func (that *GameSession) renderAbandoned(ctx context.Context, game *entity.Game) error {
	v, err := that.view(ctx, game, nil)
	if err != nil {
		return err
	}

	return that.render(ctx, game, that.phrase(v, phrase.Canceled), nil)
}

func (that *GameSession) voteButtons(v *view) [][]Button {
	return [][]Button{{
		{Label: that.phrase(v, phrase.Confirm), Command: entity.EndCommand(entity.EndConfirm)},
		{Label: that.phrase(v, phrase.Cancel), Command: entity.EndCommand(entity.EndCancel)},
	}}
}

func (that *GameSession) nameOf(v *view, slot *entity.PlayerSlot) string {
	if player, ok := v.seated[slot.PlayerID]; ok && player.Name != "" {
		return player.Name
	}

	return slot.PlayerID
}

// playersText writes one line per slot, followed by the mark of its index if any.
func (that *GameSession) playersText(v *view, marks map[int]string) string {
	var text strings.Builder

	for _, slot := range v.game.Players {
		name := emptyMark
		if !slot.IsOpen() {
			name = that.nameOf(v, slot)
		}

		fmt.Fprintf(&text, "%s %s", slot.Symbol, name)
		if mark, ok := marks[slot.Index]; ok {
			text.WriteString(" " + mark)
		}
		text.WriteString("\n")
	}

	return text.String()
}

func (that *GameSession) turnMarks(v *view) map[int]string {
	return map[int]string{v.game.Queue: turnMarker + " " + that.phrase(v, phrase.Turn)}
}

// outcomeMarks labels winners and losers of a concluded game.
func (that *GameSession) outcomeMarks(v *view) map[int]string {
	game := v.game
	marks := make(map[int]string)

	switch game.Status {
	case entity.StatusWon:
		marks[game.Queue] = that.phrase(v, phrase.Won)
	case entity.StatusForfeitConfirmed, entity.StatusTimedOut:
		for _, slot := range game.Players.Bound() {
			marks[slot.Index] = that.phrase(v, phrase.Won)
		}
		marks[game.Queue] = that.phrase(v, phrase.Lost)
	}

	return marks
}

func sizeLabel(size int) string {
	return fmt.Sprintf("%d×%d", size, size)
}

func optionButtons(board entity.Board) [][]Button {
	return lo.Map(board.Options(), func(row []entity.Option, _ int) []Button {
		return lo.Map(row, func(option entity.Option, _ int) Button {
			label := string(option.Label)
			if option.Label == entity.EmptyCell {
				label = emptyMark
			}

			command := entity.MoveCommand(option.Choice)
			if option.Choice.IsOuterOnly() && board.Kind() == entity.BoardComposite {
				command = entity.BoardCommand(option.Choice.Outer)
			}

			return Button{Label: label, Command: command}
		})
	})
}

// boardText draws the full board; a composite board gets separators between inner boards.
func boardText(board entity.Board, last *entity.Choice) string {
	cells := board.View()
	composite := board.Kind() == entity.BoardComposite

	highlight := entity.NoCoord
	if last != nil {
		switch {
		case !composite:
			highlight = last.Outer
		case !last.IsOuterOnly():
			highlight = entity.Coord{Row: last.Outer.Row*3 + last.Inner.Row, Col: last.Outer.Col*3 + last.Inner.Col}
		}
	}

	var text strings.Builder
	for r, row := range cells {
		if composite && r > 0 && r%3 == 0 {
			text.WriteString(strings.Repeat("-", len(row)*3+2) + "\n")
		}

		for c, cell := range row {
			if composite && c > 0 && c%3 == 0 {
				text.WriteString("|")
			}

			mark := string(cell)
			if cell == entity.EmptyCell {
				mark = emptyMark
			}

			if (entity.Coord{Row: r, Col: c}) == highlight {
				text.WriteString("[" + mark + "]")
			} else {
				text.WriteString(" " + mark + " ")
			}
		}
		text.WriteString("\n")
	}

	return text.String()
}
