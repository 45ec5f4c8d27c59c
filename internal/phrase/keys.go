package phrase

// Key names one localized message.
type Key string

const (
	ToWin          Key = "to_win"
	CurrentSize    Key = "current_size"
	CurrentPlayers Key = "current_players"
	ChooseSize     Key = "choose_size"
	ChoosePlayers  Key = "choose_players"
	Random         Key = "random"
	Turn           Key = "turn"

	Tie     Key = "tie"
	GiveUp  Key = "give_up"
	Confirm Key = "confirm"
	Cancel  Key = "cancel"

	TieProposed     Key = "tie_proposed"
	ForfeitProposed Key = "forfeit_proposed"
	Won             Key = "won"
	Lost            Key = "lost"
	Canceled        Key = "canceled"
	TimedOut        Key = "timed_out"
	ForfeitedBy     Key = "forfeited_by"

	Joined         Key = "joined"
	WaitTurn       Key = "wait_turn"
	NotYourTurn    Key = "not_your_turn"
	CellOccupied   Key = "cell_occupied"
	WrongBoard     Key = "wrong_board"
	GameOver       Key = "game_over"
	VoteInProgress Key = "vote_in_progress"
	NotInGame      Key = "not_in_game"
	NothingToVote  Key = "nothing_to_vote"
	NotStarted     Key = "not_started"
	AlreadyStarted Key = "already_started"
	Unsupported    Key = "unsupported"
	UnknownCommand Key = "unknown_command"
)

var dictionaries = map[string]map[Key]string{
	"en": {
		ToWin:          "%d in a row to win",
		CurrentSize:    "Board size: %s",
		CurrentPlayers: "Players:",
		ChooseSize:     "Choose the board size",
		ChoosePlayers:  "Choose the number of players",
		Random:         "Random",
		Turn:           "turn",

		Tie:     "Tie",
		GiveUp:  "Give up",
		Confirm: "Confirm",
		Cancel:  "Cancel",

		TieProposed:     "%s offer a tie. Do you agree?",
		ForfeitProposed: "%s gives up. Confirm?",
		Won:             "won",
		Lost:            "lost",
		Canceled:        "Game canceled",
		TimedOut:        "Time is up",
		ForfeitedBy:     "%s gave up",

		Joined:         "You play %s",
		WaitTurn:       "You play %s, wait for your turn",
		NotYourTurn:    "It's not your turn",
		CellOccupied:   "This cell is taken",
		WrongBoard:     "Play in the highlighted board",
		GameOver:       "The game is over",
		VoteInProgress: "Wait for the vote to finish",
		NotInGame:      "You are not in this game",
		NothingToVote:  "There is nothing to vote on",
		NotStarted:     "The game has not started yet",
		AlreadyStarted: "The game has already started",
		Unsupported:    "This option is not available",
		UnknownCommand: "Unknown action",
	},
	"ru": {
		ToWin:          "%d в ряд для победы",
		CurrentSize:    "Размер поля: %s",
		CurrentPlayers: "Игроки:",
		ChooseSize:     "Выберите размер поля",
		ChoosePlayers:  "Выберите количество игроков",
		Random:         "Случайно",
		Turn:           "ход",

		Tie:     "Ничья",
		GiveUp:  "Сдаться",
		Confirm: "Подтвердить",
		Cancel:  "Отмена",

		TieProposed:     "%s предлагают ничью. Согласны?",
		ForfeitProposed: "%s сдаётся. Подтвердить?",
		Won:             "победа",
		Lost:            "поражение",
		Canceled:        "Игра отменена",
		TimedOut:        "Время вышло",
		ForfeitedBy:     "%s сдался",

		Joined:         "Вы играете за %s",
		WaitTurn:       "Вы играете за %s, дождитесь своего хода",
		NotYourTurn:    "Сейчас не ваш ход",
		CellOccupied:   "Клетка занята",
		WrongBoard:     "Ходите в выделенное поле",
		GameOver:       "Игра окончена",
		VoteInProgress: "Дождитесь окончания голосования",
		NotInGame:      "Вы не участвуете в этой игре",
		NothingToVote:  "Голосования нет",
		NotStarted:     "Игра ещё не началась",
		AlreadyStarted: "Игра уже началась",
		Unsupported:    "Этот вариант недоступен",
		UnknownCommand: "Неизвестное действие",
	},
}
