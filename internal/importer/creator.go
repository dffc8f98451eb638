package importer

import (
	"github.com/splitpot/backend/internal/models"
	"gorm.io/gorm"
)

// FallbackName is used for imported transactions that carry neither a
// name nor a category.
const FallbackName = "Imported transaction"

// Create persists all parsed resources. It creates either everything or,
// when any resource fails, nothing.
func Create(db *gorm.DB, resources ParsedResources) (models.Ledger, error) {
	// Start a transaction so we can roll back all created resources if an error occurs
	tx := db.Begin()

	// Create the ledger
	ledger := resources.Ledger
	err := tx.Create(&ledger).Error
	if err != nil {
		tx.Rollback()
		return models.Ledger{}, err
	}

	// Create members. They start out active so that historical
	// transactions can reference them, archived flags are applied once
	// all transactions exist.
	var archive []int
	for idx, member := range resources.Members {
		member.LedgerID = ledger.ID

		if member.Archived {
			member.Archived = false
			archive = append(archive, idx)
		}

		err := tx.Create(&member).Error
		if err != nil {
			tx.Rollback()
			return models.Ledger{}, err
		}

		// Update the member in the resources struct so that it also contains the ID
		resources.Members[idx] = member
	}

	// Category rules are global, the configured ones apply to imported
	// transactions as well
	rules, err := models.CategoryRules(tx)
	if err != nil {
		tx.Rollback()
		return models.Ledger{}, err
	}

	// Create transactions with their contributions
	for _, r := range resources.Transactions {
		transaction := r.Model
		transaction.LedgerID = ledger.ID

		if transaction.Name == "" && transaction.Category == "" {
			transaction.Name = FallbackName
		}

		if transaction.Category == "" && transaction.Name != "" {
			if category, ok := models.MatchCategory(rules, transaction.Name); ok {
				transaction.Category = category
			}
		}

		err := tx.Create(&transaction).Error
		if err != nil {
			tx.Rollback()
			return models.Ledger{}, err
		}

		err = transaction.ReplaceContributions(tx, r.Contributions)
		if err != nil {
			tx.Rollback()
			return models.Ledger{}, err
		}
	}

	// Archive leaving members. The model hook verifies that they left
	// settled, so a dump with an unsettled archived member fails here
	for _, idx := range archive {
		member := resources.Members[idx]

		err := tx.Model(&member).Select("Archived").Updates(models.Member{Archived: true}).Error
		if err != nil {
			tx.Rollback()
			return models.Ledger{}, err
		}

		member.Archived = true
		resources.Members[idx] = member
	}

	err = tx.Commit().Error
	if err != nil {
		return models.Ledger{}, err
	}

	return ledger, nil
}
