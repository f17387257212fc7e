package jedna

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine's failure modes (§4.3, §7). Callers that
// don't need the structured detail can compare with errors.Is.
var (
	ErrNotYourTurn      = errors.New("jedna: not your turn")
	ErrCardNotInHand    = errors.New("jedna: card not in hand")
	ErrIllegalInState   = errors.New("jedna: illegal play in current game state")
	ErrMissingWildColor = errors.New("jedna: wild card requires a chosen color")
	ErrMustDrawFirst    = errors.New("jedna: must draw before passing")
	ErrGameNotStarted   = errors.New("jedna: game has not started")
	ErrGameAlreadyOver  = errors.New("jedna: game is already over")
	ErrBadDoublePlay    = errors.New("jedna: invalid double play")

	errEmptyPlayerID       = errors.New("jedna: player id must not be empty")
	errDuplicatePlayerID   = errors.New("jedna: player already added")
	errNotEnoughPlayers    = errors.New("jedna: at least two players are required to start")
	errPlayersFrozen       = errors.New("jedna: players can only be added before the game starts")
)

// IllegalPlayError is the detailed reason a Play call was rejected because
// the card did not match the top card or the current war figure, in the
// teacher's style of a structured error alongside the sentinel
// (uknow.IllegalPlayError).
type IllegalPlayError struct {
	Card           Card
	ExpectedColor  Color
	ExpectedFigure Figure
}

func (e *IllegalPlayError) Error() string {
	return fmt.Sprintf("illegal play of card %s, expected color: %s, or figure: %s",
		e.Card.String(), e.ExpectedColor.String(), e.ExpectedFigure.String())
}

func (e *IllegalPlayError) Unwrap() error {
	return ErrIllegalInState
}

// NotYourTurnError names which player the engine actually expected.
type NotYourTurnError struct {
	Acting  PlayerID
	Claimed PlayerID
}

func (e *NotYourTurnError) Error() string {
	return fmt.Sprintf("it is %s's turn, not %s's", e.Acting, e.Claimed)
}

func (e *NotYourTurnError) Unwrap() error {
	return ErrNotYourTurn
}

// BadDoublePlayError explains why a double play was rejected.
type BadDoublePlayError struct {
	Reason string
}

func (e *BadDoublePlayError) Error() string {
	return fmt.Sprintf("invalid double play: %s", e.Reason)
}

func (e *BadDoublePlayError) Unwrap() error {
	return ErrBadDoublePlay
}
