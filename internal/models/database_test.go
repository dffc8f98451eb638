package models_test

import (
	"github.com/splitpot/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestResourceNotFoundMessage() {
	err := models.DB.First(&models.Ledger{}, "name = ?", "Does not exist").Error
	assert.EqualError(suite.T(), err, "there is no ledger matching your query")

	err = models.DB.First(&models.CategoryRule{}, "match = ?", "Does not exist").Error
	assert.EqualError(suite.T(), err, "there is no category rule matching your query")
}

func (suite *TestSuiteStandard) TestDatabaseClosedErrorsAreGeneral() {
	suite.CloseDB()

	ledger := models.Ledger{Name: "After close"}
	err := models.DB.Create(&ledger).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
