package casino

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
)

// Lifecycle events
const (
	eventStart  = "start"
	eventSettle = "settle"
	eventFail   = "fail"
)

// newLifecycle tracks a round through idle → in_progress → settled, with contact_support
// reachable from any open state. Entering a state updates round.Status.
func newLifecycle(round *domain.Round) *fsm.FSM {
	idle := string(domain.RoundIdle)
	inProgress := string(domain.RoundInProgress)

	return fsm.NewFSM(
		idle,
		fsm.Events{
			{Name: eventStart, Src: []string{idle}, Dst: inProgress},
			{Name: eventSettle, Src: []string{inProgress}, Dst: string(domain.RoundSettled)},
			{Name: eventFail, Src: []string{idle, inProgress}, Dst: string(domain.RoundContactSupport)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				round.Status = domain.RoundStatus(e.Dst)
			},
		},
	)
}

// transition fires a lifecycle event, reporting an invalid move as ErrRoundNotActive
func transition(ctx context.Context, lc *fsm.FSM, name string) error {
	if !lc.Can(name) {
		return fmt.Errorf("%w: cannot %s from %s", domain.ErrRoundNotActive, name, lc.Current())
	}
	return lc.Event(ctx, name)
}
