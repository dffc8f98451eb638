// Package split implements the settlement arithmetic for Splitpot:
// penny-exact weighted apportionment, balance aggregation over a ledger's
// transaction history and greedy debt settlement.
//
// The package is pure. It never talks to storage, rows are handed in
// through the Source interface, and it never formats user-facing messages,
// it only returns typed errors for the API layer to classify.
package split

import (
	"errors"
	"fmt"
)

// ErrInvariant is the class of errors that signal corrupted upstream data
// or a broken arithmetic guarantee. They are never caused by user input
// and map to an internal server error at the API boundary.
var ErrInvariant = errors.New("internal consistency error")

var (
	// ErrAllWeightsZero is returned when a nonzero total would have to be
	// apportioned over weights summing to zero. Input validation rejects
	// this case before any arithmetic runs, so hitting it is a defect.
	ErrAllWeightsZero = fmt.Errorf("%w: a nonzero total cannot be apportioned over all-zero weights", ErrInvariant)

	// ErrRemainderStuck is returned when the rounding remainder cannot be
	// placed because every candidate share is zero outside the
	// all-floors-zero escape path.
	ErrRemainderStuck = fmt.Errorf("%w: the rounding remainder cannot be distributed", ErrInvariant)

	// ErrUnbalanced is returned when balances that must cancel out do not
	// sum to zero.
	ErrUnbalanced = fmt.Errorf("%w: balances do not sum to zero", ErrInvariant)

	// ErrInactiveImbalance is returned when an inactive member carries a
	// nonzero balance. Members can only be deactivated once they are
	// settled, so this means the stored rows are inconsistent.
	ErrInactiveImbalance = fmt.Errorf("%w: an inactive member carries a nonzero balance", ErrInvariant)
)
