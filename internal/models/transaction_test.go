package models_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/splitpot/backend/internal/models"
	"github.com/splitpot/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestTransactionSaveDefaults() {
	transaction := models.Transaction{Name: "Groceries"}

	err := transaction.BeforeSave(models.DB)
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), types.TypeExpense, transaction.Type)
	assert.True(suite.T(), transaction.ExchangeRate.Equal(decimal.NewFromInt(1)), "Exchange rate is %s, should be 1", transaction.ExchangeRate)
	assert.False(suite.T(), transaction.Date.IsZero())
	assert.Equal(suite.T(), time.UTC, transaction.Date.Location(), "Timezone for model is not UTC")
}

func (suite *TestSuiteStandard) TestTransactionSaveTimeUTC() {
	tz, _ := time.LoadLocation("Europe/Berlin")

	transaction := models.Transaction{
		Name: "Groceries",
		Date: time.Date(2000, 1, 2, 3, 4, 5, 6, tz),
	}

	err := transaction.BeforeSave(models.DB)
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), time.UTC, transaction.Date.Location(), "Timezone for model is not UTC")
}

func (suite *TestSuiteStandard) TestTransactionSaveValidation() {
	tests := []struct {
		name        string
		transaction models.Transaction
		err         error
	}{
		{"no name and no category", models.Transaction{}, models.ErrNameAndCategoryEmpty},
		{"category is enough", models.Transaction{Category: "Food"}, nil},
		{"unknown type", models.Transaction{Name: "Groceries", Type: "donation"}, models.ErrTransactionTypeInvalid},
		{"unknown recurrence", models.Transaction{Name: "Rent", Template: true, Recurrence: "hourly"}, models.ErrRecurrenceInvalid},
		{"recurrence without template", models.Transaction{Name: "Rent", Recurrence: types.RecurrenceMonthly}, models.ErrRecurrenceNeedsTemplate},
		{"recurrence with template", models.Transaction{Name: "Rent", Template: true, Recurrence: types.RecurrenceMonthly}, nil},
		{"invalid currency", models.Transaction{Name: "Groceries", Currency: "EURO"}, models.ErrCurrencyInvalid},
		{"negative exchange rate", models.Transaction{Name: "Groceries", ExchangeRate: decimal.NewFromInt(-1)}, models.ErrExchangeRateNegative},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := tt.transaction.BeforeSave(models.DB)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionLedgerMustExist() {
	transaction := models.Transaction{Name: "Orphan"}

	err := models.DB.Create(&transaction).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestTransactionSplit() {
	date := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	transaction := models.Transaction{
		Name:         "Fuel",
		Category:     "Travel",
		Currency:     "USD",
		Type:         types.TypeExpense,
		Date:         date,
		ExchangeRate: decimal.NewFromFloat(0.92),
		Contributions: []models.Contribution{
			{Member: models.Member{Name: "Ann"}, Amount: 4500, Weight: 1},
			{Member: models.Member{Name: "Ben"}, Weight: 2},
		},
	}

	s := transaction.Split()

	assert.Equal(suite.T(), "Fuel", s.Name)
	assert.Equal(suite.T(), "Travel", s.Category)
	assert.Equal(suite.T(), "USD", s.Currency)
	assert.Equal(suite.T(), types.TypeExpense, s.Type)
	assert.Equal(suite.T(), date, s.Date)
	assert.True(suite.T(), s.ExchangeRate.Equal(decimal.NewFromFloat(0.92)))

	require.Len(suite.T(), s.Contributions, 2)
	assert.Equal(suite.T(), "Ann", s.Contributions[0].Member)
	assert.Equal(suite.T(), int64(4500), s.Contributions[0].Amount)
	assert.Equal(suite.T(), float64(1), s.Contributions[0].Weight)
	assert.Equal(suite.T(), "Ben", s.Contributions[1].Member)
	assert.Equal(suite.T(), int64(0), s.Contributions[1].Amount)
	assert.Equal(suite.T(), float64(2), s.Contributions[1].Weight)
}

func (suite *TestSuiteStandard) TestTransactionReplaceContributions() {
	ledger := suite.createTestLedger(models.Ledger{})
	suite.createTestMember(models.Member{LedgerID: ledger.ID, Name: "Ann"})
	suite.createTestMember(models.Member{LedgerID: ledger.ID, Name: "Ben"})
	suite.createTestMember(models.Member{LedgerID: ledger.ID, Name: "Cleo"})

	transaction := suite.createTestTransaction(models.Transaction{LedgerID: ledger.ID, Name: "Groceries"})

	err := transaction.ReplaceContributions(models.DB, []models.ContributionInput{
		{Member: "Ann", Amount: 1000, Weight: 1},
		{Member: "Ben", Weight: 1},
		{Member: "Cleo"},
	})
	require.Nil(suite.T(), err)

	// Cleo neither paid nor owes anything, the row is dropped
	require.Len(suite.T(), transaction.Contributions, 2)
	assert.Equal(suite.T(), "Ann", transaction.Contributions[0].Member.Name)
	assert.Equal(suite.T(), "Ben", transaction.Contributions[1].Member.Name)

	// Replacing swaps the whole set
	err = transaction.ReplaceContributions(models.DB, []models.ContributionInput{
		{Member: "Cleo", Amount: 300, Weight: 2},
	})
	require.Nil(suite.T(), err)

	var count int64
	models.DB.Model(&models.Contribution{}).Where("transaction_id = ?", transaction.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)

	var contribution models.Contribution
	require.Nil(suite.T(), models.DB.Preload("Member").Where("transaction_id = ?", transaction.ID).First(&contribution).Error)
	assert.Equal(suite.T(), "Cleo", contribution.Member.Name)
	assert.Equal(suite.T(), int64(300), contribution.Amount)
}

func (suite *TestSuiteStandard) TestTransactionReplaceContributionsValidation() {
	ledger := suite.createTestLedger(models.Ledger{})
	suite.createTestMember(models.Member{LedgerID: ledger.ID, Name: "Ann"})
	suite.createTestMember(models.Member{LedgerID: ledger.ID, Name: "Ben"})
	suite.createTestMember(models.Member{LedgerID: ledger.ID, Name: "Dana", Archived: true})

	transaction := suite.createTestTransaction(models.Transaction{LedgerID: ledger.ID, Name: "Groceries"})

	tests := []struct {
		name   string
		inputs []models.ContributionInput
		err    error
	}{
		{
			"unknown member",
			[]models.ContributionInput{{Member: "Nobody", Amount: 100, Weight: 1}},
			models.ErrMemberUnknown,
		},
		{
			"unknown member without amounts",
			[]models.ContributionInput{{Member: "Ann", Amount: 100, Weight: 1}, {Member: "Bne"}},
			models.ErrMemberUnknown,
		},
		{
			"duplicated member",
			[]models.ContributionInput{{Member: "Ann", Amount: 100, Weight: 1}, {Member: " Ann ", Weight: 1}},
			models.ErrMemberDuplicated,
		},
		{
			"negative weight",
			[]models.ContributionInput{{Member: "Ann", Amount: 100, Weight: -1}},
			models.ErrWeightNegative,
		},
		{
			"archived member",
			[]models.ContributionInput{{Member: "Ann", Amount: 100, Weight: 1}, {Member: "Dana", Weight: 1}},
			models.ErrMemberArchived,
		},
		{
			"archived member without amounts is dropped",
			[]models.ContributionInput{{Member: "Ann", Amount: 100, Weight: 1}, {Member: "Dana"}},
			nil,
		},
		{
			"all weights zero",
			[]models.ContributionInput{{Member: "Ann", Amount: 100}, {Member: "Ben", Amount: 50}},
			models.ErrWeightsAllZero,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := transaction.ReplaceContributions(models.DB, tt.inputs)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
