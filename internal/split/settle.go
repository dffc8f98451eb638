package split

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Transfer is one settlement payment from payer to payee.
type Transfer struct {
	Payer  string `json:"payer"`
	Payee  string `json:"payee"`
	Amount int64  `json:"amount"` // integer cents, always positive
}

// Settle computes a short list of transfers that zeroes out all balances
// by repeatedly matching the largest creditor with the largest debtor.
//
// For n members with a nonzero balance the result has at most n-1
// transfers. It is not guaranteed to be globally minimal, subgroups whose
// balances cancel internally are not detected.
func Settle(balances []Balance) ([]Transfer, error) {
	remaining := make([]Balance, 0, len(balances))

	var sum int64
	for _, balance := range balances {
		sum += balance.Balance

		if balance.Balance != 0 {
			remaining = append(remaining, balance)
		}
	}

	// Paid always equals owed in aggregate, so the balances of a
	// consistent ledger cancel out.
	if sum != 0 {
		return nil, fmt.Errorf("%w: off by %d cents", ErrUnbalanced, sum)
	}

	// Creditors first, debtors last. Names break ties so that equal
	// balances settle deterministically.
	slices.SortFunc(remaining, func(a, b Balance) int {
		if a.Balance != b.Balance {
			if a.Balance > b.Balance {
				return -1
			}

			return 1
		}

		return strings.Compare(a.Member, b.Member)
	})

	transfers := make([]Transfer, 0)

	for len(remaining) >= 2 {
		payee := &remaining[0]
		payer := &remaining[len(remaining)-1]

		amount := min(payee.Balance, -payer.Balance)
		transfers = append(transfers, Transfer{
			Payer:  payer.Member,
			Payee:  payee.Member,
			Amount: amount,
		})

		payee.Balance -= amount
		payer.Balance += amount

		// The amount matches at least one of the two, so every round
		// removes at least one member.
		if payer.Balance == 0 {
			remaining = remaining[:len(remaining)-1]
		}

		if payee.Balance == 0 {
			remaining = remaining[1:]
		}
	}

	if len(remaining) == 1 {
		return nil, fmt.Errorf("%w: %q left at %d cents", ErrUnbalanced, remaining[0].Member, remaining[0].Balance)
	}

	return transfers, nil
}

// Settlement aggregates the ledger's balances and settles them.
func Settlement(src Source) ([]Transfer, error) {
	balances, err := Balances(src)
	if err != nil {
		return nil, err
	}

	return Settle(balances)
}
