package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/splitpot/backend/internal/split"
	"github.com/splitpot/backend/internal/types"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// Transaction represents money spent, received or moved within a ledger.
//
// Who paid how much and how the total is divided lives in the
// contributions. Transactions with the Template flag set are blueprints
// for the recurring worker and never count towards balances.
type Transaction struct {
	DefaultModel
	Ledger        Ledger `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	LedgerID      uuid.UUID
	Name          string
	Category      string
	Currency      string
	ExchangeRate  decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Rate into the ledger currency at the time of creation
	Type          types.TransactionType
	Date          time.Time // Time of day is currently only used for sorting
	Template      bool
	Recurrence    types.Recurrence
	LastRunAt     *time.Time // Only used for templates. Time the recurring worker last materialized this template.
	Contributions []Contribution
}

var (
	ErrNameAndCategoryEmpty    = errors.New("the transaction needs a name or a category")
	ErrTransactionTypeInvalid  = errors.New("the transaction type must be one of expense, income or transfer")
	ErrRecurrenceInvalid       = errors.New("the recurrence must be one of none, daily, weekly, monthly or yearly")
	ErrRecurrenceNeedsTemplate = errors.New("a recurrence can only be set on template transactions")
	ErrExchangeRateNegative    = errors.New("the exchange rate must be positive")
	ErrMemberUnknown           = errors.New("the ledger has no member with this name")
	ErrMemberDuplicated        = errors.New("a member can only appear once per transaction")
	ErrMemberArchived          = errors.New("the member is archived and cannot take part in new transactions")
	ErrWeightsAllZero          = errors.New("at least one weight must be set to divide the transaction")
)

func (t Transaction) Self() string {
	return "Transaction"
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	if t.LastRunAt != nil {
		utc := t.LastRunAt.In(time.UTC)
		t.LastRunAt = &utc
	}

	return
}

// BeforeSave
//   - sets the timezone for the Date to UTC
//   - defaults the type to expense and the exchange rate to 1
//   - verifies type, recurrence and currency
//   - trims whitespace from string fields
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Name = strings.TrimSpace(t.Name)
	t.Category = strings.TrimSpace(t.Category)
	t.Currency = strings.ToUpper(strings.TrimSpace(t.Currency))

	if t.Name == "" && t.Category == "" {
		return ErrNameAndCategoryEmpty
	}

	if t.Type == "" {
		t.Type = types.TypeExpense
	}

	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	if !t.Recurrence.Valid() {
		return ErrRecurrenceInvalid
	}

	if t.Recurrence.Repeats() && !t.Template {
		return ErrRecurrenceNeedsTemplate
	}

	if t.Currency != "" {
		if _, err := currency.ParseISO(t.Currency); err != nil {
			return ErrCurrencyInvalid
		}
	}

	if t.ExchangeRate.IsZero() {
		t.ExchangeRate = decimal.NewFromInt(1)
	}

	if t.ExchangeRate.IsNegative() {
		return ErrExchangeRateNegative
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Transaction)
	return t.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the transaction before
// committing an update to the database.
//
// BeforeSave only sees the transaction as it is stored, so partial
// updates are verified here against the fields that actually change.
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Transaction)
	if tx.Statement.Changed("LedgerID") {
		err := t.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	if tx.Statement.Changed("Type") && !toSave.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	if tx.Statement.Changed("Name") || tx.Statement.Changed("Category") {
		name, category := t.Name, t.Category
		if tx.Statement.Changed("Name") {
			name = strings.TrimSpace(toSave.Name)
		}
		if tx.Statement.Changed("Category") {
			category = strings.TrimSpace(toSave.Category)
		}

		if name == "" && category == "" {
			return ErrNameAndCategoryEmpty
		}
	}

	if tx.Statement.Changed("Recurrence") || tx.Statement.Changed("Template") {
		recurrence, template := t.Recurrence, t.Template
		if tx.Statement.Changed("Recurrence") {
			recurrence = toSave.Recurrence
		}
		if tx.Statement.Changed("Template") {
			template = toSave.Template
		}

		if !recurrence.Valid() {
			return ErrRecurrenceInvalid
		}

		if recurrence.Repeats() && !template {
			return ErrRecurrenceNeedsTemplate
		}
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (t *Transaction) checkIntegrity(tx *gorm.DB, toSave Transaction) error {
	return tx.First(&Ledger{}, toSave.LedgerID).Error
}

// Split converts the transaction into the representation the settlement
// arithmetic works on. Contributions and their members must be loaded.
func (t Transaction) Split() split.Transaction {
	contributions := make([]split.Contribution, 0, len(t.Contributions))
	for _, c := range t.Contributions {
		contributions = append(contributions, split.Contribution{
			Member: c.Member.Name,
			Amount: c.Amount,
			Weight: c.Weight,
		})
	}

	return split.Transaction{
		ID:            t.ID.String(),
		Name:          t.Name,
		Category:      t.Category,
		Currency:      t.Currency,
		Date:          t.Date,
		Type:          t.Type,
		ExchangeRate:  t.ExchangeRate,
		Contributions: contributions,
	}
}

// ContributionInput is one member's part of a transaction as it arrives
// from the API or the importer, before member names are resolved.
type ContributionInput struct {
	Member string
	Amount int64
	Weight float64
}

// ReplaceContributions resolves the member names and replaces all
// contributions of the transaction in one go. Reconciling partial updates
// against existing rows is not worth the complexity.
//
// Rows where both amount and weight are zero carry no information and are
// dropped. At least one weight must remain when money was paid, otherwise
// the paid total could never be divided up.
func (t *Transaction) ReplaceContributions(tx *gorm.DB, inputs []ContributionInput) error {
	seen := make(map[string]bool, len(inputs))
	var paidTotal int64
	var weightTotal float64

	contributions := make([]Contribution, 0, len(inputs))
	members := make([]Member, 0, len(inputs))
	for _, input := range inputs {
		name := strings.TrimSpace(input.Member)

		if seen[name] {
			return fmt.Errorf("%w: %s", ErrMemberDuplicated, name)
		}
		seen[name] = true

		if input.Weight < 0 {
			return ErrWeightNegative
		}

		paidTotal += input.Amount
		weightTotal += input.Weight

		var member Member
		err := tx.Where("ledger_id = ? AND name = ?", t.LedgerID, name).First(&member).Error
		if errors.Is(err, ErrResourceNotFound) {
			return fmt.Errorf("%w: %s", ErrMemberUnknown, name)
		}
		if err != nil {
			return err
		}

		// A row with neither an amount nor a weight carries no information
		if input.Amount == 0 && input.Weight == 0 {
			continue
		}

		if member.Archived {
			return fmt.Errorf("%w: %s", ErrMemberArchived, name)
		}

		contributions = append(contributions, Contribution{
			TransactionID: t.ID,
			MemberID:      member.ID,
			Amount:        input.Amount,
			Weight:        input.Weight,
		})
		members = append(members, member)
	}

	if paidTotal != 0 && weightTotal == 0 {
		return ErrWeightsAllZero
	}

	// Hard delete. A soft deleted contribution would still occupy the
	// unique index and block the member from ever being added again.
	err := tx.Unscoped().Where("transaction_id = ?", t.ID).Delete(&Contribution{}).Error
	if err != nil {
		return err
	}

	if len(contributions) > 0 {
		err = tx.Create(&contributions).Error
		if err != nil {
			return err
		}
	}

	for i := range contributions {
		contributions[i].Member = members[i]
	}
	t.Contributions = contributions

	return nil
}
