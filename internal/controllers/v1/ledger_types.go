package v1

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/splitpot/backend/internal/models"
	"github.com/splitpot/backend/internal/split"
)

// LedgerEditable represents all user configurable parameters
type LedgerEditable struct {
	Name     string `json:"name" example:"Flat 12" default:""`                      // Name of the ledger
	Note     string `json:"note" example:"Shared costs for the flat" default:""`    // Notes about the ledger
	Currency string `json:"currency" example:"EUR" default:"EUR"`                   // Currency all balances are calculated in
	Archived bool   `json:"archived" example:"true" default:"false"`                // Is the ledger archived?
}

func (editable LedgerEditable) model() models.Ledger {
	return models.Ledger{
		Name:     editable.Name,
		Note:     editable.Note,
		Currency: editable.Currency,
		Archived: editable.Archived,
	}
}

type LedgerLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/ledgers/3b1ea324-d438-4419-882a-2fc91d71772f"`               // The ledger itself
	Members      string `json:"members" example:"https://example.com/api/v1/members?ledger=3b1ea324-d438-4419-882a-2fc91d71772f"`     // Members of this ledger
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?ledger=3b1ea324-d438-4419-882a-2fc91d71772f"` // Transactions of this ledger
	Balances     string `json:"balances" example:"https://example.com/api/v1/ledgers/3b1ea324-d438-4419-882a-2fc91d71772f/balances"`  // Per-member balances of this ledger
	Settlement   string `json:"settlement" example:"https://example.com/api/v1/ledgers/3b1ea324-d438-4419-882a-2fc91d71772f/settlement"` // Transfers that settle this ledger
}

type Ledger struct {
	models.DefaultModel
	LedgerEditable
	Links LedgerLinks `json:"links"`
}

func newLedger(c *gin.Context, model models.Ledger) Ledger {
	url := c.GetString(string(models.DBContextURL))

	return Ledger{
		DefaultModel: model.DefaultModel,
		LedgerEditable: LedgerEditable{
			Name:     model.Name,
			Note:     model.Note,
			Currency: model.Currency,
			Archived: model.Archived,
		},
		Links: LedgerLinks{
			Self:         fmt.Sprintf("%s/v1/ledgers/%s", url, model.ID),
			Members:      fmt.Sprintf("%s/v1/members?ledger=%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?ledger=%s", url, model.ID),
			Balances:     fmt.Sprintf("%s/v1/ledgers/%s/balances", url, model.ID),
			Settlement:   fmt.Sprintf("%s/v1/ledgers/%s/settlement", url, model.ID),
		},
	}
}

type LedgerListResponse struct {
	Data       []Ledger    `json:"data"`                                                          // List of Ledgers
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type LedgerCreateResponse struct {
	Data  []LedgerResponse `json:"data"`                                                          // List of the created Ledgers or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (l *LedgerCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	l.Data = append(l.Data, LedgerResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type LedgerResponse struct {
	Data  *Ledger `json:"data"`                                                          // Data for the Ledger
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type LedgerQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Note     string `form:"note" filterField:"false"`   // By note
	Currency string `form:"currency"`                   // By currency
	Archived bool   `form:"archived"`                   // Is the Ledger archived?
	Search   string `form:"search" filterField:"false"` // By string in name or note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Ledger returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Ledgers to return. Defaults to 50.
}

func (f LedgerQueryFilter) model() (models.Ledger, error) {
	return models.Ledger{
		Currency: strings.ToUpper(f.Currency),
		Archived: f.Archived,
	}, nil
}

// MemberBalance is one member's net position in the ledger. The integer
// fields are cents in the ledger currency, the decimal field is the
// balance with the point placed for display.
type MemberBalance struct {
	Member         string          `json:"member" example:"Ann"`
	Paid           int64           `json:"paid" example:"12050"`
	Owed           int64           `json:"owed" example:"8033"`
	Balance        int64           `json:"balance" example:"4017"`
	BalanceDecimal decimal.Decimal `json:"balanceDecimal" example:"40.17"`
}

func newMemberBalance(balance split.Balance) MemberBalance {
	return MemberBalance{
		Member:         balance.Member,
		Paid:           balance.Paid,
		Owed:           balance.Owed,
		Balance:        balance.Balance,
		BalanceDecimal: decimal.NewFromInt(balance.Balance).Shift(-2),
	}
}

type BalanceListResponse struct {
	Data  []MemberBalance `json:"data"`                                                          // Balances of all active members
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// Transfer is one settlement payment. The amount is in cents of the
// ledger currency, the decimal field places the point for display.
type Transfer struct {
	Payer         string          `json:"payer" example:"Ben"`
	Payee         string          `json:"payee" example:"Ann"`
	Amount        int64           `json:"amount" example:"4017"`
	AmountDecimal decimal.Decimal `json:"amountDecimal" example:"40.17"`
}

func newTransfer(transfer split.Transfer) Transfer {
	return Transfer{
		Payer:         transfer.Payer,
		Payee:         transfer.Payee,
		Amount:        transfer.Amount,
		AmountDecimal: decimal.NewFromInt(transfer.Amount).Shift(-2),
	}
}

type SettlementListResponse struct {
	Data  []Transfer `json:"data"`                                                          // Transfers that zero out all balances
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
