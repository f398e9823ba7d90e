package commands

import (
	"errors"
	"time"

	"mediflow/internal/pkg/guard"
)

var (
	ErrCancelStaleConsultationsCommandIsNotConstructed = errors.New(
		"CancelStaleConsultationsCommand must be created via NewCancelStaleConsultationsCommand constructor",
	)
	ErrTimeoutIsInvalid = errors.New("timeout must be greater than 0")
)

// CancelStaleConsultationsCommand represents a sweep over claimed and
// in-consultation orders that have been sitting longer than the timeout.
type CancelStaleConsultationsCommand struct { //nolint:recvcheck //using for validation
	timeout time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleConsultationsCommand creates a command to sweep stale consultations.
func NewCancelStaleConsultationsCommand(timeout time.Duration) (CancelStaleConsultationsCommand, error) {
	command := CancelStaleConsultationsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setTimeout(timeout); err != nil {
		return CancelStaleConsultationsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleConsultationsCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleConsultationsCommandIsNotConstructed)
}

// Timeout returns how long an order may stay claimed or in consultation
// before the sweep cancels it.
func (c CancelStaleConsultationsCommand) Timeout() time.Duration {
	return c.timeout
}

func (c *CancelStaleConsultationsCommand) setTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return ErrTimeoutIsInvalid
	}

	c.timeout = timeout
	return nil
}
