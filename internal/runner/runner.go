// Package runner drives a complete match: it owns the engine and one
// agentproc.AgentProcess per seat, and translates between engine state and
// the wire protocol every turn (§4.6).
package runner

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/jedna-game/jedna"
	"github.com/jedna-game/jedna/internal/agentproc"
	"github.com/jedna-game/jedna/internal/protocol"
)

// Seat binds a player ID to the agent process acting for it.
type Seat struct {
	ID      jedna.PlayerID
	Process *agentproc.AgentProcess
}

// Runner plays one match to completion, from agent spawn through final
// score notification and teardown.
type Runner struct {
	logger *log.Logger

	engine      *jedna.Engine
	seats       []Seat
	turnTimeout time.Duration
	gameTimeout time.Duration

	// protocolFaults counts consecutive protocol failures per player; two
	// in a row forfeits that player (§4.6, §7).
	protocolFaults map[jedna.PlayerID]int
	forfeited      map[jedna.PlayerID]bool
}

// New builds a Runner for the given seats. Each seat's process must
// already have been constructed (but not yet started).
func New(logger *log.Logger, engine *jedna.Engine, seats []Seat, turnTimeout, gameTimeout time.Duration) *Runner {
	return &Runner{
		logger:         logger,
		engine:         engine,
		seats:          seats,
		turnTimeout:    turnTimeout,
		gameTimeout:    gameTimeout,
		protocolFaults: make(map[jedna.PlayerID]int),
		forfeited:      make(map[jedna.PlayerID]bool),
	}
}

// seatFor returns the seat for a player ID.
func (r *Runner) seatFor(id jedna.PlayerID) (Seat, bool) {
	for _, s := range r.seats {
		if s.ID == id {
			return s, true
		}
	}
	return Seat{}, false
}

// spawnAll starts every agent process concurrently, using an errgroup the
// way the teacher's admin package fans out concurrent setup work.
func (r *Runner) spawnAll(ctx context.Context) error {
	g, _ := errgroup.WithContext(ctx)
	for _, seat := range r.seats {
		seat := seat
		g.Go(func() error {
			if err := seat.Process.Start(); err != nil {
				return errors.Wrapf(err, "runner: spawn agent for %s", seat.ID)
			}
			return nil
		})
	}
	return g.Wait()
}

// stopAll sends game_end to every agent and waits for their processes to
// exit, concurrently.
func (r *Runner) stopAll(winner jedna.PlayerID, scores map[jedna.PlayerID]int) {
	var g errgroup.Group
	for _, seat := range r.seats {
		seat := seat
		g.Go(func() error {
			return seat.Process.Stop(winner, scores)
		})
	}
	if err := g.Wait(); err != nil {
		r.logger.Printf("runner: error during agent teardown: %v", err)
	}
}

// Run plays the match to completion and returns the final scores keyed by
// player ID, or an error if the match could not be started.
func (r *Runner) Run(ctx context.Context) (map[jedna.PlayerID]int, error) {
	if err := r.spawnAll(ctx); err != nil {
		return nil, err
	}

	for _, seat := range r.seats {
		if err := r.engine.AddPlayer(seat.ID); err != nil {
			return nil, errors.Wrapf(err, "runner: add player %s", seat.ID)
		}
	}

	if err := r.engine.StartGame(); err != nil {
		return nil, errors.Wrap(err, "runner: start game")
	}

	if r.gameTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.gameTimeout)
		defer cancel()
	}

	var (
		winner jedna.PlayerID
		scores map[jedna.PlayerID]int
	)

	timedOut := false
	for !r.engine.Ended() {
		select {
		case <-ctx.Done():
			timedOut = true
		default:
		}
		if timedOut {
			break
		}

		if w, score, ok := r.engine.Winner(); ok {
			winner = w
			scores = map[jedna.PlayerID]int{w: score}
			break
		}

		if err := r.playOneTurn(ctx); err != nil {
			return nil, err
		}
	}

	if scores == nil {
		if w, score, ok := r.engine.Winner(); ok {
			winner = w
			scores = map[jedna.PlayerID]int{w: score}
		} else {
			// Per-game timeout expired with no winner: declare a draw and
			// report each player's current hand value as their score.
			r.logger.Printf("game timeout exceeded, declaring a draw")
			scores = make(map[jedna.PlayerID]int, len(r.seats))
			for _, seat := range r.seats {
				hand, err := r.engine.Hand(seat.ID)
				if err != nil {
					continue
				}
				scores[seat.ID] = hand.TotalValue()
			}
		}
	}

	r.notifyAll(jedna.NewGameEndEnvelope(winner, scores))
	r.stopAll(winner, scores)

	return scores, nil
}

// notifyAll broadcasts an envelope to every seat, best-effort.
func (r *Runner) notifyAll(envelope interface{}) {
	for _, seat := range r.seats {
		seat.Process.Notify(envelope)
	}
}

// playOneTurn requests one action from the acting player and applies it to
// the engine, falling back to the safe default on any protocol failure
// (§4.6). Two consecutive protocol faults from the same player forfeit
// them: every subsequent turn of theirs is played with the safe default
// and no longer asks their agent; the engine's own state machine still
// advances normally.
func (r *Runner) playOneTurn(ctx context.Context) error {
	actingID := r.engine.ActingPlayerID()
	seat, ok := r.seatFor(actingID)
	if !ok {
		return errors.Errorf("runner: no seat registered for acting player %s", actingID)
	}

	view := jedna.BuildActionRequestView(r.engine)

	if r.forfeited[actingID] {
		return r.applySafeDefault(actingID, view)
	}

	resp, err := seat.Process.RequestAction(ctx, view, r.turnTimeout)
	if err != nil {
		return r.handleProtocolFault(actingID, seat, view, err)
	}

	if err := protocol.ValidateResponse(resp, r.cardIsWild); err != nil {
		return r.handleProtocolFault(actingID, seat, view, err)
	}

	if err := r.applyResponse(actingID, resp); err != nil {
		return r.handleProtocolFault(actingID, seat, view, err)
	}

	r.protocolFaults[actingID] = 0
	return nil
}

// cardIsWild reports whether notation parses to a wild card, for
// protocol.ValidateResponse.
func (r *Runner) cardIsWild(notation string) (bool, error) {
	card, err := jedna.ParseCard(notation)
	if err != nil {
		return false, err
	}
	return card.IsWild(), nil
}

// applyResponse translates one validated AgentResponse into the matching
// engine call.
func (r *Runner) applyResponse(actingID jedna.PlayerID, resp protocol.AgentResponse) error {
	switch resp.Action {
	case protocol.ActionPlay:
		card, err := jedna.ParseCard(resp.Card)
		if err != nil {
			return err
		}
		var chosenColor *jedna.Color
		if resp.WildColor != "" {
			color, err := jedna.ParseColor(resp.WildColor)
			if err != nil {
				return err
			}
			chosenColor = &color
		}
		outcome, err := r.engine.Play(actingID, card, chosenColor, resp.DoublePlay)
		if err != nil {
			return err
		}
		r.reportOutcomeNotifications(outcome.Notifications)
		return nil
	case protocol.ActionDraw:
		_, err := r.engine.DrawOne(actingID)
		return err
	case protocol.ActionPass:
		outcome, err := r.engine.Pass(actingID)
		if err != nil {
			return err
		}
		r.reportOutcomeNotifications(outcome.Notifications)
		return nil
	default:
		return errors.Errorf("runner: unreachable action %q", resp.Action)
	}
}

// reportOutcomeNotifications broadcasts each engine notification string to
// every seat.
func (r *Runner) reportOutcomeNotifications(notifications []string) {
	for _, n := range notifications {
		r.notifyAll(jedna.NewNotificationEnvelope(n))
	}
}

// handleProtocolFault applies the §4.6 safe default (pass if a card has
// already been picked this turn or a war is in progress, otherwise draw one
// then pass), notifies
// the offending agent of the error, and counts consecutive faults toward a
// forfeit.
func (r *Runner) handleProtocolFault(actingID jedna.PlayerID, seat Seat, view jedna.ActionRequestView, cause error) error {
	r.protocolFaults[actingID]++
	seat.Process.Notify(jedna.NewErrorEnvelope(cause.Error()))
	r.logger.Printf("protocol fault for %s: %v", actingID, cause)

	if r.protocolFaults[actingID] >= 2 && !r.forfeited[actingID] {
		r.forfeited[actingID] = true
		r.logger.Printf("%s forfeits after two consecutive protocol faults", actingID)
	}

	return r.applySafeDefault(actingID, view)
}

// applySafeDefault runs the §4.6 fallback: pass if a card has already been
// picked this turn or a war is in progress (DrawOne is illegal in either
// case — a war is settled by passing, which draws the stacked penalty);
// otherwise draw one card then pass.
func (r *Runner) applySafeDefault(actingID jedna.PlayerID, view jedna.ActionRequestView) error {
	if view.AlreadyPicked || view.StackedCards > 0 {
		_, err := r.engine.Pass(actingID)
		return err
	}

	if _, err := r.engine.DrawOne(actingID); err != nil {
		return errors.Wrap(err, "runner: safe-default draw failed")
	}
	_, err := r.engine.Pass(actingID)
	return err
}
