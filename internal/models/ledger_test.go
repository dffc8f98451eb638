package models_test

import (
	"github.com/splitpot/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestLedgerTrimWhitespace() {
	ledger := suite.createTestLedger(models.Ledger{
		Name:     "  Flat share  \t",
		Note:     " Rent, groceries and beer ",
		Currency: " eur ",
	})

	assert.Equal(suite.T(), "Flat share", ledger.Name)
	assert.Equal(suite.T(), "Rent, groceries and beer", ledger.Note)
	assert.Equal(suite.T(), "EUR", ledger.Currency)
}

func (suite *TestSuiteStandard) TestLedgerCurrencyDefault() {
	ledger := suite.createTestLedger(models.Ledger{})
	assert.Equal(suite.T(), "EUR", ledger.Currency)
}

func (suite *TestSuiteStandard) TestLedgerCurrencyInvalid() {
	ledger := models.Ledger{Name: "Broken", Currency: "EURO"}

	err := models.DB.Create(&ledger).Error
	assert.ErrorIs(suite.T(), err, models.ErrCurrencyInvalid)
}

func (suite *TestSuiteStandard) TestLedgerNameUnique() {
	suite.createTestLedger(models.Ledger{Name: "Road trip"})

	ledger := models.Ledger{Name: "Road trip"}
	err := models.DB.Create(&ledger).Error
	assert.ErrorIs(suite.T(), err, models.ErrLedgerNameNotUnique)
}

func (suite *TestSuiteStandard) TestLedgerSplitSource() {
	ledger := suite.createTestLedger(models.Ledger{})
	ann := suite.createTestMember(models.Member{LedgerID: ledger.ID, Name: "Ann"})
	ben := suite.createTestMember(models.Member{LedgerID: ledger.ID, Name: "Ben", Archived: true})

	transaction := suite.createTestTransaction(models.Transaction{LedgerID: ledger.ID, Name: "Groceries"})
	suite.createTestContribution(models.Contribution{TransactionID: transaction.ID, MemberID: ann.ID, Amount: 1000, Weight: 1})
	suite.createTestContribution(models.Contribution{TransactionID: transaction.ID, MemberID: ben.ID, Weight: 1})

	// Templates describe future transactions, they never count
	suite.createTestTransaction(models.Transaction{LedgerID: ledger.ID, Name: "Rent", Template: true})

	source := ledger.SplitSource(models.DB)

	transactions, err := source.Transactions()
	require.Nil(suite.T(), err)
	require.Len(suite.T(), transactions, 1)
	assert.Equal(suite.T(), "Groceries", transactions[0].Name)
	assert.Equal(suite.T(), transaction.ID.String(), transactions[0].ID)

	require.Len(suite.T(), transactions[0].Contributions, 2)
	names := []string{transactions[0].Contributions[0].Member, transactions[0].Contributions[1].Member}
	assert.ElementsMatch(suite.T(), []string{"Ann", "Ben"}, names)

	members, err := source.Members()
	require.Nil(suite.T(), err)
	require.Len(suite.T(), members, 2)
	assert.Equal(suite.T(), "Ann", members[0].Name)
	assert.True(suite.T(), members[0].Active)
	assert.Equal(suite.T(), "Ben", members[1].Name)
	assert.False(suite.T(), members[1].Active)
}
