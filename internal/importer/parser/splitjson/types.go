package splitjson

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/splitpot/backend/internal/types"
)

// Dump is the top level object of a Splitpot JSON dump.
type Dump struct {
	Ledger       Ledger        `json:"ledger"`
	Members      []Member      `json:"members"`
	Transactions []Transaction `json:"transactions"`
}

type Ledger struct {
	Name     string `json:"name"`
	Note     string `json:"note"`
	Currency string `json:"currency"`
}

type Member struct {
	Name     string `json:"name"`
	Note     string `json:"note"`
	Archived bool   `json:"archived"`
}

type Transaction struct {
	Name          string                `json:"name"`
	Category      string                `json:"category"`
	Currency      string                `json:"currency"`
	ExchangeRate  decimal.Decimal       `json:"exchangeRate"`
	Type          types.TransactionType `json:"type"`
	Date          time.Time             `json:"date"`
	Contributions []Contribution        `json:"contributions"`
}

// Contribution is one member's part of a transaction. The amount is in
// decimal currency units with at most two decimal places.
type Contribution struct {
	Member string          `json:"member"`
	Amount decimal.Decimal `json:"amount"`
	Weight float64         `json:"weight"`
}
