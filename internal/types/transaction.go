// Package types implements special types for Splitpot.
package types

import (
	"fmt"
	"strings"
)

// TransactionType classifies the effect a transaction has on member balances.
//
// Income transactions count against the pool, so their paid and owed amounts
// are negated during balance aggregation. Expenses and transfers count as-is.
type TransactionType string

const (
	TypeExpense  TransactionType = "expense"
	TypeIncome   TransactionType = "income"
	TypeTransfer TransactionType = "transfer"
)

// TransactionTypes returns all valid transaction types.
func TransactionTypes() []TransactionType {
	return []TransactionType{TypeExpense, TypeIncome, TypeTransfer}
}

// Valid reports whether the value is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeExpense || t == TypeIncome || t == TypeTransfer
}

// UnmarshalParam implements query parameter binding with validation.
// An empty value is allowed so that the filter can be unset.
func (t *TransactionType) UnmarshalParam(p string) error {
	value := TransactionType(strings.ToLower(p))
	if p != "" && !value.Valid() {
		return fmt.Errorf("invalid transaction type %q, valid types are %q, %q and %q", p, TypeExpense, TypeIncome, TypeTransfer)
	}

	*t = value
	return nil
}

// Recurrence is the frequency with which a template transaction repeats.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// Valid reports whether the value is a known recurrence.
// The empty string is valid and equivalent to RecurrenceNone.
func (r Recurrence) Valid() bool {
	switch r {
	case "", RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}

	return false
}

// Repeats reports whether the recurrence makes a template repeat at all.
func (r Recurrence) Repeats() bool {
	return r.Valid() && r != "" && r != RecurrenceNone
}
