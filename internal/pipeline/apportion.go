// Package pipeline holds the stage-transition logic of the order
// pipeline: carry-forward reconciliation between stages, quantity
// apportionment for partially fulfilled orders, and the display-serial
// and filter helpers shared by the stage services.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Apportionment errors. Both abort a submission before any store write.
var (
	ErrQtyNotPositive      = errors.New("quantity must be greater than 0")
	ErrQtyExceedsRemaining = errors.New("quantity exceeds remaining quantity")
)

// Apply validates a submitted quantity against the remaining quantity of a
// pending order and returns the new remaining value. The caller removes the
// record from pending when the result is zero.
//
// Invariant preserved: 0 <= newRemaining < remaining, and
// sum(applied quantities) + newRemaining == original.
func Apply(remaining, q decimal.Decimal) (decimal.Decimal, error) {
	if q.LessThanOrEqual(decimal.Zero) {
		return remaining, ErrQtyNotPositive
	}
	if q.GreaterThan(remaining) {
		return remaining, fmt.Errorf("%w (%s)", ErrQtyExceedsRemaining, remaining.String())
	}
	return remaining.Sub(q), nil
}

// Exhausted reports whether a remaining quantity means the record should
// leave the pending ledger.
func Exhausted(remaining decimal.Decimal) bool {
	return remaining.LessThanOrEqual(decimal.Zero)
}
