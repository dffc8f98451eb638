package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/splitpot/backend/internal/models"
	"github.com/splitpot/backend/internal/split"
	"github.com/splitpot/backend/internal/types"
	sp_uuid "github.com/splitpot/backend/internal/uuid"
)

// TransactionEditable represents all user configurable parameters.
//
// Members, Amounts and Weights are index aligned arrays: the member at
// index i paid the amount at index i and their share of the total carries
// the weight at index i.
type TransactionEditable struct {
	LedgerID   uuid.UUID             `json:"ledgerId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`   // ID of the ledger the transaction belongs to
	Name       string                `json:"name" example:"Supermarket" default:""`                     // Name of the transaction
	Category   string                `json:"category" example:"Groceries" default:""`                   // Category of the transaction
	Currency   string                `json:"currency" example:"EUR" default:""`                         // Currency the amounts are in. Defaults to the ledger currency
	Type       types.TransactionType `json:"type" example:"expense" default:"expense"`                  // expense, income or transfer
	Date       time.Time             `json:"date" example:"2024-04-02T00:00:00Z"`                       // Date of the transaction. Defaults to the current time
	Template   bool                  `json:"template" example:"false" default:"false"`                  // Templates are blueprints for recurring transactions and do not count towards balances
	Recurrence types.Recurrence      `json:"recurrence" example:"monthly" default:"none"`               // How often the recurring worker creates transactions from this template
	Members    []string              `json:"members" example:"Ann,Ben"`                                 // Names of the members taking part
	Amounts    []decimal.Decimal     `json:"amounts"`                                                   // Paid amounts in decimal currency units with at most two decimal places
	Weights    []float64             `json:"weights"`                                                   // Weights the shares of the total carry
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		LedgerID:   editable.LedgerID,
		Name:       editable.Name,
		Category:   editable.Category,
		Currency:   editable.Currency,
		Type:       editable.Type,
		Date:       editable.Date,
		Template:   editable.Template,
		Recurrence: editable.Recurrence,
	}
}

// contributions converts the index aligned arrays into contribution
// inputs, turning decimal amounts into integer cents.
func (editable TransactionEditable) contributions() ([]models.ContributionInput, error) {
	if len(editable.Members) != len(editable.Amounts) || len(editable.Members) != len(editable.Weights) {
		return nil, errArraysLengthMismatch
	}

	inputs := make([]models.ContributionInput, 0, len(editable.Members))
	for i, member := range editable.Members {
		cents := editable.Amounts[i].Shift(2)
		if !cents.IsInteger() {
			return nil, errAmountPrecision
		}

		inputs = append(inputs, models.ContributionInput{
			Member: member,
			Amount: cents.IntPart(),
			Weight: editable.Weights[i],
		})
	}

	return inputs, nil
}

// RenderOptions are the query parameters that control how the member
// breakdown of a transaction is rendered.
type RenderOptions struct {
	Shape   types.Shape       `form:"shape"`   // list, object or map. Defaults to object
	Money   types.MoneyFormat `form:"money"`   // cents or decimal. Defaults to decimal
	Convert bool              `form:"convert"` // Convert paid amounts into the ledger currency. Defaults to false
}

func (o RenderOptions) split() split.Options {
	return split.Options{
		Convert: o.Convert,
		Money:   o.Money,
		Shape:   o.Shape,
	}
}

type TransactionLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
	Ledger string `json:"ledger" example:"https://example.com/api/v1/ledgers/52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`    // The ledger the transaction belongs to
}

// Transaction is the API representation of a transaction. Total and
// Members are computed from the contributions, their sums always agree.
type Transaction struct {
	models.DefaultModel
	LedgerID     uuid.UUID             `json:"ledgerId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the ledger the transaction belongs to
	Name         string                `json:"name" example:"Supermarket"`                              // Name of the transaction
	Category     string                `json:"category" example:"Groceries"`                            // Category of the transaction
	Currency     string                `json:"currency" example:"EUR"`                                  // Currency the amounts are in
	ExchangeRate decimal.Decimal       `json:"exchangeRate" example:"1.0934"`                           // Rate into the ledger currency at creation time
	Type         types.TransactionType `json:"type" example:"expense"`                                  // expense, income or transfer
	Date         time.Time             `json:"date" example:"2024-04-02T00:00:00Z"`                     // Date of the transaction
	Template     bool                  `json:"template" example:"false"`                                // Is this a blueprint for recurring transactions?
	Recurrence   types.Recurrence      `json:"recurrence" example:"monthly"`                            // How often the recurring worker creates transactions from this template
	Total        decimal.Decimal       `json:"total" example:"14.50"`                                   // Sum of all paid amounts
	Members      any                   `json:"members" swaggertype:"object"`                            // Member breakdown in the requested shape
	Links        TransactionLinks      `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction, options split.Options) (Transaction, error) {
	url := c.GetString(string(models.DBContextURL))

	breakdown, err := split.Assemble(model.Split(), options)
	if err != nil {
		return Transaction{}, err
	}

	return Transaction{
		DefaultModel: model.DefaultModel,
		LedgerID:     model.LedgerID,
		Name:         model.Name,
		Category:     model.Category,
		Currency:     model.Currency,
		ExchangeRate: model.ExchangeRate,
		Type:         model.Type,
		Date:         model.Date,
		Template:     model.Template,
		Recurrence:   model.Recurrence,
		Total:        breakdown.Total,
		Members:      breakdown.Members,
		Links: TransactionLinks{
			Self:   fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
			Ledger: fmt.Sprintf("%s/v1/ledgers/%s", url, model.LedgerID),
		},
	}, nil
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of Transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Data  []TransactionResponse `json:"data"`                                                          // List of the created Transactions or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the Transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	LedgerID  sp_uuid.UUID          `form:"ledger"`                        // By ID of the Ledger
	MemberID  sp_uuid.UUID          `form:"member" filterField:"false"`    // By ID of a Member taking part
	Name      string                `form:"name" filterField:"false"`      // By name
	Category  string                `form:"category" filterField:"false"`  // By category
	Currency  string                `form:"currency"`                      // By currency
	Type      types.TransactionType `form:"type"`                          // By type
	Template  bool                  `form:"template"`                      // Is the transaction a template?
	FromDate  time.Time             `form:"fromDate" filterField:"false"`  // From this date. Time is ignored.
	UntilDate time.Time             `form:"untilDate" filterField:"false"` // Until this date. Time is ignored.
	Search    string                `form:"search" filterField:"false"`    // By string in name or category
	Offset    uint                  `form:"offset" filterField:"false"`    // The offset of the first Transaction returned. Defaults to 0.
	Limit     int                   `form:"limit" filterField:"false"`     // Maximum number of Transactions to return. Defaults to 50.
	Shape     types.Shape           `form:"shape" filterField:"false"`     // Shape of the member breakdown. Defaults to object
	Money     types.MoneyFormat     `form:"money" filterField:"false"`     // Render amounts in cents or decimal units. Defaults to decimal
	Convert   bool                  `form:"convert" filterField:"false"`   // Convert paid amounts into the ledger currency. Defaults to false
}

func (f TransactionQueryFilter) model() (models.Transaction, error) {
	return models.Transaction{
		LedgerID: f.LedgerID.UUID,
		Currency: f.Currency,
		Type:     f.Type,
		Template: f.Template,
	}, nil
}

func (f TransactionQueryFilter) options() split.Options {
	return split.Options{
		Convert: f.Convert,
		Money:   f.Money,
		Shape:   f.Shape,
	}
}
