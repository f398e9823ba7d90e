package settlement

import (
	"context"
	"fmt"
	"sync/atomic"

	"mediflow/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Simulator approves every settlement below its limit and declines the rest.
// Used when no settlement provider is configured.
type Simulator struct {
	limit   decimal.Decimal
	counter atomic.Int64
}

// NewSimulator creates a simulator that declines amounts above limit.
// A zero limit approves everything.
func NewSimulator(limit decimal.Decimal) *Simulator {
	return &Simulator{limit: limit}
}

// Settle approves or declines the charge and returns a synthetic reference.
func (s *Simulator) Settle(
	_ context.Context,
	orderID kernel.UUID,
	amount decimal.Decimal,
	method string,
) (string, error) {
	if amount.IsNegative() {
		return "", fmt.Errorf("settlement declined: negative amount %s", amount)
	}
	if !s.limit.IsZero() && amount.GreaterThan(s.limit) {
		return "", fmt.Errorf("settlement declined: amount %s exceeds limit %s", amount, s.limit)
	}

	seq := s.counter.Add(1)
	return fmt.Sprintf("SIM-%s-%s-%06d", method, orderID.String()[:8], seq), nil
}
