package jedna

// ActionRequestView is the deterministic, read-only view of engine state
// handed to the acting agent when the engine wants a move (§4.4). It is
// built purely from engine state: calling BuildActionRequestView any number
// of times between mutations yields byte-identical output (property 7).
type ActionRequestView struct {
	YourID           PlayerID           `json:"your_id"`
	Hand             []string           `json:"hand"`
	TopCard          string             `json:"top_card"`
	GameState        string             `json:"game_state"`
	StackedCards     int                `json:"stacked_cards"`
	AlreadyPicked    bool               `json:"already_picked"`
	PickedCard       *string            `json:"picked_card"`
	OtherPlayers     []OtherPlayerView  `json:"other_players"`
	AvailableActions []string           `json:"available_actions"`
	PlayableCards    []string           `json:"playable_cards"`
}

// OtherPlayerView is one entry of ActionRequestView.OtherPlayers.
type OtherPlayerView struct {
	ID        PlayerID `json:"id"`
	CardCount int      `json:"card_count"`
}

// BuildActionRequestView builds the view of e as seen by its acting player.
// It performs no mutation and depends only on e's current state.
func BuildActionRequestView(e *Engine) ActionRequestView {
	actingID := e.ActingPlayerID()
	handCards, _ := e.Hand(actingID)

	handNotation := make([]string, len(handCards))
	for i, c := range handCards {
		handNotation[i] = c.Format()
	}

	topCard, _ := e.TopCard()

	view := ActionRequestView{
		YourID:        actingID,
		Hand:          handNotation,
		TopCard:       topCard.Format(),
		GameState:     e.GameState().String(),
		StackedCards:  e.StackedCards(),
		AlreadyPicked: e.AlreadyPicked(),
	}

	if picked, ok := e.PickedCard(); ok {
		notation := picked.Format()
		view.PickedCard = &notation
	}

	order := e.PlayerIDsInTurnOrder()
	view.OtherPlayers = make([]OtherPlayerView, 0, len(order)-1)
	for _, id := range order[1:] {
		count, _ := e.HandSize(id)
		view.OtherPlayers = append(view.OtherPlayers, OtherPlayerView{ID: id, CardCount: count})
	}

	view.AvailableActions, view.PlayableCards = availableActionsAndPlayableCards(e, handCards)

	return view
}

// availableActionsAndPlayableCards implements the §4.4 decision table:
// available actions and the playable-card subset of the hand are both
// derived from the same matchesCurrentRequirement predicate the engine
// itself uses to validate Play, so a card listed in playable_cards never
// fails Play's matching check. Outside the picked-card case, "play" is
// listed even when no hand card is playable (playable_cards is then empty).
func availableActionsAndPlayableCards(e *Engine, hand Deck) ([]string, []string) {
	if e.AlreadyPicked() {
		picked, _ := e.PickedCard()
		if e.IsPlayable(picked) {
			return []string{"play", "pass"}, []string{picked.Format()}
		}
		return []string{"pass"}, []string{}
	}

	if e.StackedCards() > 0 {
		return []string{"play", "pass"}, playableNotations(e, hand)
	}

	return []string{"play", "draw"}, playableNotations(e, hand)
}

func playableNotations(e *Engine, hand Deck) []string {
	playable := make([]string, 0, len(hand))
	for _, c := range hand {
		if e.IsPlayable(c) {
			playable = append(playable, c.Format())
		}
	}
	return playable
}

// NotificationEnvelope, ErrorEnvelope, and GameEndEnvelope are the
// informational traffic kinds of §6.
type NotificationEnvelope struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewNotificationEnvelope(message string) NotificationEnvelope {
	return NotificationEnvelope{Type: "notification", Message: message}
}

type ErrorEnvelope struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewErrorEnvelope(message string) ErrorEnvelope {
	return ErrorEnvelope{Type: "error", Message: message}
}

type GameEndEnvelope struct {
	Type   string           `json:"type"`
	Winner PlayerID         `json:"winner"`
	Scores map[PlayerID]int `json:"scores"`
}

func NewGameEndEnvelope(winner PlayerID, scores map[PlayerID]int) GameEndEnvelope {
	return GameEndEnvelope{Type: "game_end", Winner: winner, Scores: scores}
}

// RequestActionEnvelope wraps an ActionRequestView for the wire (§6).
type RequestActionEnvelope struct {
	Type  string            `json:"type"`
	State ActionRequestView `json:"state"`
}

func NewRequestActionEnvelope(view ActionRequestView) RequestActionEnvelope {
	return RequestActionEnvelope{Type: "request_action", State: view}
}
