package split

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/splitpot/backend/internal/types"
)

// Contribution is one member's paid amount and owed weight within a
// transaction.
type Contribution struct {
	Member string
	Amount int64 // paid, in integer cents of the transaction currency
	Weight float64
}

// Transaction is the arithmetic core's view of one monetary event. The
// caller assembles it from storage, the core never reads storage itself.
type Transaction struct {
	ID            string
	Name          string
	Category      string
	Currency      string
	Date          time.Time
	Type          types.TransactionType
	ExchangeRate  decimal.Decimal // rate into the ledger currency, an unset rate counts as 1
	Contributions []Contribution
}

// Options control how an assembled transaction is rendered.
type Options struct {
	Convert bool              // apply the stored exchange rate to paid amounts
	Money   types.MoneyFormat // the zero value renders decimal currency units
	Shape   types.Shape       // the zero value renders the object shape
}

// Breakdown is the computed money side of one transaction: the total plus
// the per-member data in the requested shape.
type Breakdown struct {
	Total   decimal.Decimal `json:"total"`
	Members MemberData      `json:"members"`
}

// MemberData is the member breakdown of an assembled transaction in one of
// the three shapes: ListData, ObjectData or MapData.
type MemberData interface {
	memberData()
}

// ListData is the list shape: index-aligned parallel arrays.
type ListData struct {
	Members []string          `json:"members"`
	Weights []float64         `json:"weights"`
	Paid    []decimal.Decimal `json:"paid"`
	Owed    []decimal.Decimal `json:"owed"`
}

func (ListData) memberData() {}

// ObjectData is the object shape: one record per member.
type ObjectData []MemberEntry

func (ObjectData) memberData() {}

// MemberEntry is one member's record in the object shape.
type MemberEntry struct {
	Member string          `json:"member"`
	Weight float64         `json:"weight"`
	Paid   decimal.Decimal `json:"paid"`
	Owed   decimal.Decimal `json:"owed"`
}

// MapData is the map shape, keyed by member name.
type MapData map[string]MapEntry

func (MapData) memberData() {}

// MapEntry is one member's amounts in the map shape.
type MapEntry struct {
	Weight float64         `json:"weight"`
	Paid   decimal.Decimal `json:"paid"`
	Owed   decimal.Decimal `json:"owed"`
}

// amounts computes the paid and owed cents for every contribution. With
// convert set, paid amounts are multiplied by the exchange rate and
// rounded half to even. Owed amounts are apportioned from the paid total
// and sum to it exactly.
func (t Transaction) amounts(convert bool) (paid, owed []int64, err error) {
	paid = make([]int64, len(t.Contributions))
	weights := make([]float64, len(t.Contributions))

	rate := decimal.NewFromInt(1)
	if convert && !t.ExchangeRate.IsZero() {
		rate = t.ExchangeRate
	}

	var total int64
	for i, contribution := range t.Contributions {
		paid[i] = decimal.NewFromInt(contribution.Amount).Mul(rate).RoundBank(0).IntPart()
		total += paid[i]
		weights[i] = contribution.Weight
	}

	owed, err = Apportion(total, weights, Seed(t.ID))
	if err != nil {
		return nil, nil, err
	}

	return paid, owed, nil
}

// Assemble renders the transaction's member breakdown. The sum of the paid
// amounts and the sum of the owed amounts both equal the total, always.
func Assemble(t Transaction, opts Options) (Breakdown, error) {
	paid, owed, err := t.amounts(opts.Convert)
	if err != nil {
		return Breakdown{}, err
	}

	var total int64
	for _, cents := range paid {
		total += cents
	}

	// All arithmetic happens in integer cents, the decimal format only
	// moves the point for presentation.
	money := func(cents int64) decimal.Decimal {
		if opts.Money == types.MoneyCents {
			return decimal.NewFromInt(cents)
		}

		return decimal.NewFromInt(cents).Shift(-2)
	}

	breakdown := Breakdown{Total: money(total)}

	switch opts.Shape {
	case types.ShapeList:
		data := ListData{
			Members: make([]string, len(t.Contributions)),
			Weights: make([]float64, len(t.Contributions)),
			Paid:    make([]decimal.Decimal, len(t.Contributions)),
			Owed:    make([]decimal.Decimal, len(t.Contributions)),
		}

		for i, contribution := range t.Contributions {
			data.Members[i] = contribution.Member
			data.Weights[i] = contribution.Weight
			data.Paid[i] = money(paid[i])
			data.Owed[i] = money(owed[i])
		}

		breakdown.Members = data

	case types.ShapeMap:
		data := make(MapData, len(t.Contributions))

		for i, contribution := range t.Contributions {
			data[contribution.Member] = MapEntry{
				Weight: contribution.Weight,
				Paid:   money(paid[i]),
				Owed:   money(owed[i]),
			}
		}

		breakdown.Members = data

	default:
		data := make(ObjectData, 0, len(t.Contributions))

		for i, contribution := range t.Contributions {
			data = append(data, MemberEntry{
				Member: contribution.Member,
				Weight: contribution.Weight,
				Paid:   money(paid[i]),
				Owed:   money(owed[i]),
			})
		}

		breakdown.Members = data
	}

	return breakdown, nil
}
