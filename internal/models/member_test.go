package models_test

import (
	"github.com/google/uuid"
	"github.com/splitpot/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestMemberTrimWhitespace() {
	ledger := suite.createTestLedger(models.Ledger{})

	member := suite.createTestMember(models.Member{
		LedgerID: ledger.ID,
		Name:     "  Ann \t",
		Note:     " Moved in last summer ",
	})

	assert.Equal(suite.T(), "Ann", member.Name)
	assert.Equal(suite.T(), "Moved in last summer", member.Note)
}

func (suite *TestSuiteStandard) TestMemberNameUniquePerLedger() {
	ledger := suite.createTestLedger(models.Ledger{})
	other := suite.createTestLedger(models.Ledger{})

	suite.createTestMember(models.Member{LedgerID: ledger.ID, Name: "Ann"})

	// The same name in another ledger is fine
	suite.createTestMember(models.Member{LedgerID: other.ID, Name: "Ann"})

	member := models.Member{LedgerID: ledger.ID, Name: "Ann"}
	err := models.DB.Create(&member).Error
	assert.ErrorIs(suite.T(), err, models.ErrMemberNameNotUnique)
}

func (suite *TestSuiteStandard) TestMemberLedgerMustExist() {
	member := models.Member{LedgerID: uuid.New(), Name: "Ann"}

	err := models.DB.Create(&member).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestMemberArchiveNeedsSettledBalance() {
	ledger := suite.createTestLedger(models.Ledger{})
	ann := suite.createTestMember(models.Member{LedgerID: ledger.ID, Name: "Ann"})
	ben := suite.createTestMember(models.Member{LedgerID: ledger.ID, Name: "Ben"})

	groceries := suite.createTestTransaction(models.Transaction{LedgerID: ledger.ID, Name: "Groceries"})
	suite.createTestContribution(models.Contribution{TransactionID: groceries.ID, MemberID: ann.ID, Amount: 1000, Weight: 1})
	suite.createTestContribution(models.Contribution{TransactionID: groceries.ID, MemberID: ben.ID, Weight: 1})

	// Ben owes Ann 5.00 and cannot leave yet
	err := models.DB.Model(&ben).Updates(models.Member{Archived: true}).Error
	assert.ErrorIs(suite.T(), err, models.ErrMemberHasBalance)

	// Ben pays Ann back
	settle := suite.createTestTransaction(models.Transaction{LedgerID: ledger.ID, Name: "Settle up", Type: "transfer"})
	suite.createTestContribution(models.Contribution{TransactionID: settle.ID, MemberID: ben.ID, Amount: 500})
	suite.createTestContribution(models.Contribution{TransactionID: settle.ID, MemberID: ann.ID, Amount: -500})

	err = models.DB.Model(&ben).Updates(models.Member{Archived: true}).Error
	require.Nil(suite.T(), err)
	assert.True(suite.T(), ben.Archived)
}

func (suite *TestSuiteStandard) TestMemberDeleteWithContributions() {
	ledger := suite.createTestLedger(models.Ledger{})
	ann := suite.createTestMember(models.Member{LedgerID: ledger.ID, Name: "Ann"})
	idle := suite.createTestMember(models.Member{LedgerID: ledger.ID, Name: "Idle"})

	transaction := suite.createTestTransaction(models.Transaction{LedgerID: ledger.ID, Name: "Groceries"})
	suite.createTestContribution(models.Contribution{TransactionID: transaction.ID, MemberID: ann.ID, Amount: 1000, Weight: 1})

	err := models.DB.Delete(&ann).Error
	assert.ErrorIs(suite.T(), err, models.ErrMemberHasContributions)

	// A member who never contributed can be deleted
	err = models.DB.Delete(&idle).Error
	assert.Nil(suite.T(), err)
}
