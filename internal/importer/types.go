package importer

import (
	"github.com/splitpot/backend/internal/models"
)

// ParsedResources is the struct containing all resources that are to be created.
// Contributions still reference members by name, the creator resolves the
// names once the members exist.
type ParsedResources struct {
	Ledger       models.Ledger
	Members      []models.Member
	Transactions []Transaction
}

// Transaction represents a transaction to be imported.
type Transaction struct {
	Model         models.Transaction
	Contributions []models.ContributionInput
}
