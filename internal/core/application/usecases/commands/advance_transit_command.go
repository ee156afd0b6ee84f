package commands

import (
	"errors"

	"station/internal/pkg/guard"
)

var ErrAdvanceTransitCommandIsNotConstructed = errors.New(
	"AdvanceTransitCommand must be created via NewAdvanceTransitCommand constructor",
)

// AdvanceTransitCommand represents one tick of the transit simulation.
// Typically issued by the scheduler, it has no parameters.
type AdvanceTransitCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

func NewAdvanceTransitCommand() AdvanceTransitCommand {
	return AdvanceTransitCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c AdvanceTransitCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceTransitCommandIsNotConstructed)
}
