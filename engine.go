package jedna

import (
	"fmt"
	"log"
)

// GameState is the engine's top-level mode: whether a war is in progress
// and, if so, which kind (§3).
type GameState int

const (
	Off GameState = iota
	Normal
	WarDrawTwo
	WarWildDrawFour
)

func (s GameState) String() string {
	switch s {
	case Off:
		return "off"
	case Normal:
		return "normal"
	case WarDrawTwo:
		return "war_+2"
	case WarWildDrawFour:
		return "war_wd4"
	default:
		return "invalid_game_state"
	}
}

// Direction is the turn order: Clockwise visits players in addition order,
// Counterclockwise the reverse.
type Direction int

const (
	Clockwise        Direction = 1
	Counterclockwise Direction = -1
)

// ScoreFloor is the minimum score awarded to a game's winner (§4.7).
const ScoreFloor = 30

// startingHandSize is the number of cards dealt to each player in StartGame.
const startingHandSize = 7

// Engine owns the deck, discard pile, every hand, and the turn cursor. All
// operations are synchronous; the engine is not re-entrant (§5) — a caller
// must never invoke a mutating method from inside a callback driven by one
// of its own results.
type Engine struct {
	logger *log.Logger

	players []player // players[0] is always the acting player (§3).
	deck    Deck
	discard Deck

	direction    Direction
	gameState    GameState
	stackedCards int

	alreadyPicked bool
	pickedCard    Card

	started bool
	ended   bool
	winner  PlayerID
	score   int
}

// NewEngine constructs an engine with no players, in state Off. logger must
// not be nil; pass log.New(io.Discard, "", 0) for a silent engine.
func NewEngine(logger *log.Logger) *Engine {
	return &Engine{
		logger:    logger,
		direction: Clockwise,
		gameState: Off,
	}
}

// AddPlayer registers a new player while the game has not yet started.
func (e *Engine) AddPlayer(id PlayerID) error {
	if e.started {
		return errPlayersFrozen
	}
	for _, p := range e.players {
		if p.id == id {
			return fmt.Errorf("%w: %s", errDuplicatePlayerID, id)
		}
	}
	e.players = append(e.players, player{id: id})
	return nil
}

func (e *Engine) findPlayerIndex(id PlayerID) (int, bool) {
	for i, p := range e.players {
		if p.id == id {
			return i, true
		}
	}
	return 0, false
}

// ActingPlayerID returns the identity of the player the engine is waiting
// on, i.e. players[0].
func (e *Engine) ActingPlayerID() PlayerID {
	if len(e.players) == 0 {
		return ""
	}
	return e.players[0].id
}

// PlayerIDsInTurnOrder returns every player's identity starting with the
// acting player and following the current direction.
func (e *Engine) PlayerIDsInTurnOrder() []PlayerID {
	n := len(e.players)
	ids := make([]PlayerID, n)
	for i := 0; i < n; i++ {
		ids[i] = e.players[((int(e.direction)*i)%n+n)%n].id
	}
	return ids
}

func (e *Engine) PlayerCount() int {
	return len(e.players)
}

// Hand returns a copy of the given player's hand, in hand order.
func (e *Engine) Hand(id PlayerID) (Deck, error) {
	i, ok := e.findPlayerIndex(id)
	if !ok {
		return nil, fmt.Errorf("jedna: unknown player %s", id)
	}
	return e.players[i].hand.Cards(), nil
}

// HandSize returns the number of cards the given player holds.
func (e *Engine) HandSize(id PlayerID) (int, error) {
	i, ok := e.findPlayerIndex(id)
	if !ok {
		return 0, fmt.Errorf("jedna: unknown player %s", id)
	}
	return e.players[i].hand.Len(), nil
}

// TopCard returns the current top-of-discard card, if any cards have been
// played yet.
func (e *Engine) TopCard() (Card, bool) {
	return e.discard.Top()
}

func (e *Engine) GameState() GameState   { return e.gameState }
func (e *Engine) Direction() Direction   { return e.direction }
func (e *Engine) StackedCards() int      { return e.stackedCards }
func (e *Engine) AlreadyPicked() bool    { return e.alreadyPicked }
func (e *Engine) Started() bool          { return e.started }
func (e *Engine) Ended() bool            { return e.ended }

// PickedCard returns the card drawn this turn, if already_picked is true.
func (e *Engine) PickedCard() (Card, bool) {
	if !e.alreadyPicked {
		return Card{}, false
	}
	return e.pickedCard, true
}

// Winner returns the winning player's identity and awarded score, once the
// game has ended.
func (e *Engine) Winner() (PlayerID, int, bool) {
	if !e.ended {
		return "", 0, false
	}
	return e.winner, e.score, true
}

// StartGame shuffles the deck, deals seven cards to each player, and flips
// the initial top card, applying its effect per §4.3 / §9. Requires at
// least two players.
func (e *Engine) StartGame() error {
	if e.started {
		return ErrGameAlreadyOver
	}
	if len(e.players) < 2 {
		return errNotEnoughPlayers
	}

	e.deck = NewStandardDeck()
	e.deck.Shuffle()

	for i := range e.players {
		dealt := make(Deck, 0, startingHandSize)
		for c := 0; c < startingHandSize; c++ {
			var card Card
			var ok bool
			e.deck, card, ok = e.deck.PopTop()
			if !ok {
				break
			}
			dealt = append(dealt, card)
		}
		e.players[i].hand = Hand{cards: dealt}
	}

	setAside := make(Deck, 0, 4)
	var initialTop Card
	for {
		var card Card
		var ok bool
		e.deck, card, ok = e.deck.PopTop()
		if !ok {
			// Deck exhausted while looking for a non-WildDrawFour flip:
			// an exceptional but non-fatal case. Fall back to whatever
			// was set aside rather than loop forever.
			if len(setAside) > 0 {
				initialTop, setAside = setAside[len(setAside)-1], setAside[:len(setAside)-1]
			}
			break
		}
		if card.Figure == FigureWildDrawFour {
			setAside = append(setAside, card)
			continue
		}
		initialTop = card
		break
	}
	if len(setAside) > 0 {
		e.deck = append(setAside, e.deck...)
	}

	e.discard = Deck{initialTop}
	e.started = true
	e.gameState = Normal

	switch {
	case initialTop.Figure == FigureReverse:
		e.direction = -e.direction
	case initialTop.Figure == FigureSkip:
		e.rotate(int(e.direction))
	case initialTop.Figure == FigureDrawTwo:
		e.gameState = WarDrawTwo
		e.stackedCards = 2
	case initialTop.Figure == FigureWild:
		e.discard[0] = initialTop.WithChosenColor(ColorRed)
	}

	e.logger.Printf("game started with %d players, initial top card %s", len(e.players), initialTop.Format())
	return nil
}

func (e *Engine) rotate(steps int) {
	n := len(e.players)
	if n == 0 {
		return
	}
	shift := ((steps % n) + n) % n
	if shift == 0 {
		return
	}
	rotated := make([]player, n)
	for i := 0; i < n; i++ {
		rotated[i] = e.players[(i+shift)%n]
	}
	e.players = rotated
}

func (e *Engine) advanceBy(k int) {
	e.rotate(int(e.direction) * k)
}

// requireLive rejects any operation before start or after the game ends.
func (e *Engine) requireLive() error {
	if !e.started {
		return ErrGameNotStarted
	}
	if e.ended {
		return ErrGameAlreadyOver
	}
	return nil
}

// matchesCurrentRequirement is the single source of truth for whether card
// may be played right now, given gameState and the top card — used both by
// Play's legality check and by view.go's playable_cards and
// available_actions, so every card listed in playable_cards passes Play's
// matching check.
func (e *Engine) matchesCurrentRequirement(card Card) bool {
	top, hasTop := e.discard.Top()
	if !hasTop {
		return false
	}

	switch e.gameState {
	case Normal:
		return Matches(top, card)
	case WarDrawTwo:
		if card.Figure == FigureDrawTwo || card.Figure == FigureWildDrawFour {
			return true
		}
		return card.Figure == FigureReverse && card.Color == top.EffectiveColor()
	case WarWildDrawFour:
		return card.Figure == FigureWildDrawFour
	default:
		return false
	}
}

// IsPlayable reports whether card matches the current top card and game
// state, ignoring hand membership, already_picked, and wild-color
// requirements — exactly the §4.1/§4.3 matching rule.
func (e *Engine) IsPlayable(card Card) bool {
	return e.matchesCurrentRequirement(card)
}

// PlayOutcome describes what happened as a result of a successful Play.
type PlayOutcome struct {
	Notifications []string
	GameOver      bool
	Winner        PlayerID
	Score         int
}

// Play attempts to play one card (or two identical copies, if double is
// true) from actor's hand on top of the discard pile (§4.3).
func (e *Engine) Play(actor PlayerID, card Card, chosenColor *Color, double bool) (PlayOutcome, error) {
	var outcome PlayOutcome

	if err := e.requireLive(); err != nil {
		return outcome, err
	}

	if e.ActingPlayerID() != actor {
		return outcome, &NotYourTurnError{Acting: e.ActingPlayerID(), Claimed: actor}
	}

	actingIdx := 0
	hand := &e.players[actingIdx].hand
	if !hand.Contains(card) {
		return outcome, ErrCardNotInHand
	}

	top, _ := e.discard.Top()

	if e.alreadyPicked {
		if double {
			return outcome, &BadDoublePlayError{Reason: "cannot double-play the picked card"}
		}
		if card != e.pickedCard {
			return outcome, &IllegalPlayError{Card: card, ExpectedColor: e.pickedCard.Color, ExpectedFigure: e.pickedCard.Figure}
		}
		if !e.matchesCurrentRequirement(card) {
			return outcome, &IllegalPlayError{Card: card, ExpectedColor: top.EffectiveColor(), ExpectedFigure: top.Figure}
		}
	} else if !e.matchesCurrentRequirement(card) {
		return outcome, &IllegalPlayError{Card: card, ExpectedColor: top.EffectiveColor(), ExpectedFigure: top.Figure}
	}

	if card.IsWild() {
		if chosenColor == nil || *chosenColor == ColorWild {
			return outcome, ErrMissingWildColor
		}
	} else if chosenColor != nil {
		return outcome, fmt.Errorf("%w: chosen_color forbidden for a non-wild card", ErrIllegalInState)
	}

	copies := 1
	if double {
		if card.Figure == FigureWildDrawFour {
			return outcome, &BadDoublePlayError{Reason: "WildDrawFour cannot be double-played"}
		}
		if hand.CountEqual(card) < 2 {
			return outcome, &BadDoublePlayError{Reason: "hand does not hold two copies of this card"}
		}
		copies = 2
	}

	playedCard := card
	if card.IsWild() {
		playedCard = card.WithChosenColor(*chosenColor)
	}

	for i := 0; i < copies; i++ {
		if !hand.remove(card) {
			panic("jedna: invariant violated, card vanished from hand mid-play")
		}
		e.discard = e.discard.Push(playedCard)
	}

	remainingCards := hand.Len()
	if remainingCards == 0 {
		return e.declareWinner(actor)
	}

	for i := 0; i < copies; i++ {
		e.applyFigureEffect(actor, playedCard, &outcome)
	}

	if remainingCards == 1 {
		outcome.Notifications = append(outcome.Notifications, fmt.Sprintf("%s has one card left", actor))
	}

	e.alreadyPicked = false
	e.pickedCard = Card{}

	return outcome, nil
}

func (e *Engine) declareWinner(winner PlayerID) (PlayOutcome, error) {
	total := 0
	for _, p := range e.players {
		if p.id == winner {
			continue
		}
		total += p.hand.TotalValue()
	}
	score := total
	if score < ScoreFloor {
		score = ScoreFloor
	}

	e.ended = true
	e.gameState = Off
	e.winner = winner
	e.score = score

	e.logger.Printf("player %s won, score %d", winner, score)

	return PlayOutcome{
		Notifications: []string{fmt.Sprintf("%s wins with a score of %d", winner, score)},
		GameOver:      true,
		Winner:        winner,
		Score:         score,
	}, nil
}

// applyFigureEffect applies the figure-specific consequences of a single
// played card (§4.3 step 3). actor is the player who played it.
func (e *Engine) applyFigureEffect(actor PlayerID, card Card, outcome *PlayOutcome) {
	switch card.Figure {
	case FigureSkip:
		skipped := e.peekPlayerAt(1)
		e.advanceBy(2)
		outcome.Notifications = append(outcome.Notifications, fmt.Sprintf("%s was skipped", skipped))

	case FigureReverse:
		// Flips direction in or out of a war; in WarDrawTwo this is what
		// keeps the war alive while redirecting the accumulated penalty
		// to the new next player (§4.3, §9 "Reverse-in-war").
		e.direction = -e.direction
		outcome.Notifications = append(outcome.Notifications, "direction reversed")
		e.advanceBy(1)

	case FigureDrawTwo:
		if e.gameState == Normal {
			e.gameState = WarDrawTwo
		}
		e.stackedCards += 2
		e.advanceBy(1)

	case FigureWild:
		e.advanceBy(1)

	case FigureWildDrawFour:
		e.gameState = WarWildDrawFour
		e.stackedCards += 4
		e.advanceBy(1)

	default:
		e.advanceBy(1)
	}
}

// peekPlayerAt returns the identity of the player k seats ahead of the
// acting player, in the current direction, without mutating state.
func (e *Engine) peekPlayerAt(k int) PlayerID {
	n := len(e.players)
	if n == 0 {
		return ""
	}
	shift := ((int(e.direction)*k)%n + n) % n
	return e.players[shift].id
}

// DrawOne draws a single card for the acting player, only legal in Normal
// with already_picked=false.
func (e *Engine) DrawOne(actor PlayerID) (Card, error) {
	if err := e.requireLive(); err != nil {
		return Card{}, err
	}
	if e.ActingPlayerID() != actor {
		return Card{}, &NotYourTurnError{Acting: e.ActingPlayerID(), Claimed: actor}
	}
	if e.gameState != Normal || e.alreadyPicked {
		return Card{}, ErrIllegalInState
	}

	drawn := e.drawCards(1, 0)
	if len(drawn) == 0 {
		return Card{}, fmt.Errorf("%w: no cards left to draw", ErrIllegalInState)
	}

	e.alreadyPicked = true
	e.pickedCard = drawn[0]
	return drawn[0], nil
}

// PassOutcome describes the consequence of a successful Pass.
type PassOutcome struct {
	Notifications []string
	CardsDrawn    int
}

// Pass concludes the acting player's turn, per the state-dependent rules
// of §4.3.
func (e *Engine) Pass(actor PlayerID) (PassOutcome, error) {
	var outcome PassOutcome

	if err := e.requireLive(); err != nil {
		return outcome, err
	}
	if e.ActingPlayerID() != actor {
		return outcome, &NotYourTurnError{Acting: e.ActingPlayerID(), Claimed: actor}
	}

	if e.gameState == WarDrawTwo || e.gameState == WarWildDrawFour {
		n := e.stackedCards
		drawn := e.drawCards(n, 0)
		outcome.CardsDrawn = len(drawn)
		outcome.Notifications = append(outcome.Notifications, fmt.Sprintf("%s draws %d cards and the war ends", actor, len(drawn)))

		e.stackedCards = 0
		e.gameState = Normal
		e.alreadyPicked = false
		e.pickedCard = Card{}
		e.advanceBy(1)
		return outcome, nil
	}

	if !e.alreadyPicked {
		return outcome, ErrMustDrawFirst
	}

	outcome.Notifications = append(outcome.Notifications, fmt.Sprintf("%s passes", actor))
	e.alreadyPicked = false
	e.pickedCard = Card{}
	e.advanceBy(1)
	return outcome, nil
}

// drawCards draws up to n cards for the player at seat index playerIdx
// (within e.players), reshuffling from the discard pile if the draw deck
// runs short (§4.2), and stopping early — without error — if the combined
// supply is exhausted.
func (e *Engine) drawCards(n int, playerIdx int) []Card {
	drawn := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		if e.deck.IsEmpty() {
			e.deck, e.discard = ReshuffleFromDiscard(e.deck, e.discard)
			if e.deck.IsEmpty() {
				e.logger.Printf("draw requested but deck and discard are both exhausted, stopping early")
				break
			}
		}
		var card Card
		var ok bool
		e.deck, card, ok = e.deck.PopTop()
		if !ok {
			break
		}
		e.players[playerIdx].hand.add(card)
		drawn = append(drawn, card)
	}
	return drawn
}
