package split

import (
	"fmt"

	"github.com/splitpot/backend/internal/types"
)

// Member is a ledger member as the balance aggregation consumes it.
type Member struct {
	Name   string
	Active bool
}

// Balance is one member's net position across a ledger's history. All
// amounts are integer cents in the ledger's base currency.
type Balance struct {
	Member  string `json:"member"`
	Paid    int64  `json:"paid"`
	Owed    int64  `json:"owed"`
	Balance int64  `json:"balance"`
}

// Source supplies the rows that balance aggregation consumes.
// Implementations must exclude soft-deleted and template transactions and
// must read a transactionally consistent snapshot, a half-written
// transaction would transiently break the paid-equals-owed invariant.
type Source interface {
	// Transactions returns the ledger's transactions with their
	// contributions, ordered by date descending, creation time descending.
	Transactions() ([]Transaction, error)

	// Members returns every member of the ledger with their activity flag.
	Members() ([]Member, error)
}

// Balances aggregates every member's paid and owed cents over the ledger's
// history. Exchange rates are applied, income transactions count negated.
// Members without a contribution in a transaction contribute zero for it.
//
// Inactive members must net to exactly zero. They are verified and then
// excluded from the result, a nonzero balance on an inactive member is
// reported as ErrInactiveImbalance, never silently dropped.
func Balances(src Source) ([]Balance, error) {
	transactions, err := src.Transactions()
	if err != nil {
		return nil, err
	}

	members, err := src.Members()
	if err != nil {
		return nil, err
	}

	paidTotals := make(map[string]int64, len(members))
	owedTotals := make(map[string]int64, len(members))

	for _, t := range transactions {
		paid, owed, err := t.amounts(true)
		if err != nil {
			return nil, err
		}

		// Income reverses the direction of money: what a member received
		// is owed back into the pool.
		sign := int64(1)
		if t.Type == types.TypeIncome {
			sign = -1
		}

		for i, contribution := range t.Contributions {
			paidTotals[contribution.Member] += sign * paid[i]
			owedTotals[contribution.Member] += sign * owed[i]
		}
	}

	balances := make([]Balance, 0, len(members))
	for _, member := range members {
		balance := Balance{
			Member: member.Name,
			Paid:   paidTotals[member.Name],
			Owed:   owedTotals[member.Name],
		}
		balance.Balance = balance.Paid - balance.Owed

		if !member.Active {
			if balance.Balance != 0 {
				return nil, fmt.Errorf("%w: %q is at %d cents", ErrInactiveImbalance, member.Name, balance.Balance)
			}

			continue
		}

		balances = append(balances, balance)
	}

	return balances, nil
}
