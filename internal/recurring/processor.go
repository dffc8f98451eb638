package recurring

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/splitpot/backend/internal/events"
	"github.com/splitpot/backend/internal/models"
	"gorm.io/gorm"
)

// Process materializes every template transaction that is due at now
// and stamps its last run time. A failing template is logged and
// skipped so that it does not hold up the other templates. Returns the
// number of transactions created.
func Process(db *gorm.DB, now time.Time) (int, error) {
	var templates []models.Transaction
	err := db.Preload("Contributions").Where(&models.Transaction{Template: true}).Find(&templates).Error
	if err != nil {
		return 0, err
	}

	count := 0
	for _, template := range templates {
		checker, ok := CheckerFor(template.Recurrence)
		if !ok {
			continue
		}

		var lastRun time.Time
		if template.LastRunAt != nil {
			lastRun = *template.LastRunAt
		}

		if !checker.IsDue(lastRun, now, template.Date) {
			continue
		}

		transaction, err := materialize(db, template, now)
		if err != nil {
			log.Error().Err(err).Str("template", template.ID.String()).Msg("Recurring")
			continue
		}

		events.Record(models.Event{
			Action:     models.EventCreated,
			Resource:   transaction.Self(),
			ResourceID: transaction.ID,
			Note:       "created by the recurring worker",
		})

		count++
	}

	return count, nil
}

// materialize creates the concrete transaction for a due template,
// copies the contributions and stamps the template. All of it happens
// in one database transaction so that a failure leaves nothing behind.
func materialize(db *gorm.DB, template models.Transaction, now time.Time) (models.Transaction, error) {
	tx := db.Begin()

	transaction := models.Transaction{
		LedgerID:     template.LedgerID,
		Name:         template.Name,
		Category:     template.Category,
		Currency:     template.Currency,
		ExchangeRate: template.ExchangeRate,
		Type:         template.Type,
		Date:         now,
	}

	err := tx.Create(&transaction).Error
	if err != nil {
		tx.Rollback()
		return models.Transaction{}, err
	}

	contributions := make([]models.Contribution, 0, len(template.Contributions))
	for _, contribution := range template.Contributions {
		contributions = append(contributions, models.Contribution{
			TransactionID: transaction.ID,
			MemberID:      contribution.MemberID,
			Amount:        contribution.Amount,
			Weight:        contribution.Weight,
		})
	}

	if len(contributions) > 0 {
		err = tx.Create(&contributions).Error
		if err != nil {
			tx.Rollback()
			return models.Transaction{}, err
		}
	}

	err = tx.Model(&template).Updates(models.Transaction{LastRunAt: &now}).Error
	if err != nil {
		tx.Rollback()
		return models.Transaction{}, err
	}

	tx.Commit()
	return transaction, nil
}
