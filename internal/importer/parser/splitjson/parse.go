// Package splitjson parses Splitpot JSON dumps into the resources the
// importer creates.
package splitjson

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/splitpot/backend/internal/importer"
	"github.com/splitpot/backend/internal/models"
)

// Parse reads a Splitpot JSON dump.
func Parse(f io.Reader) (importer.ParsedResources, error) {
	content, err := io.ReadAll(f)
	if err != nil {
		return importer.ParsedResources{}, fmt.Errorf("could not read data from file: %w", err)
	}

	var dump Dump
	err = json.Unmarshal(content, &dump)
	if err != nil {
		return importer.ParsedResources{}, fmt.Errorf("not a valid Splitpot dump: %w", err)
	}

	var resources importer.ParsedResources

	resources.Ledger = models.Ledger{
		Name:     dump.Ledger.Name,
		Note:     dump.Ledger.Note,
		Currency: dump.Ledger.Currency,
	}

	for _, member := range dump.Members {
		resources.Members = append(resources.Members, models.Member{
			Name:     member.Name,
			Note:     member.Note,
			Archived: member.Archived,
		})
	}

	for _, transaction := range dump.Transactions {
		parsed, err := parseTransaction(transaction)
		if err != nil {
			return importer.ParsedResources{}, err
		}

		resources.Transactions = append(resources.Transactions, parsed)
	}

	return resources, nil
}

// parseTransaction converts one dump entry, turning decimal amounts into
// integer cents. The exchange rate is taken over as dumped, rates are
// historical data and never fetched again on import.
func parseTransaction(transaction Transaction) (importer.Transaction, error) {
	contributions := make([]models.ContributionInput, 0, len(transaction.Contributions))
	for _, contribution := range transaction.Contributions {
		cents := contribution.Amount.Shift(2)
		if !cents.IsInteger() {
			return importer.Transaction{}, fmt.Errorf("the amount %s for member %q has more than two decimal places", contribution.Amount, contribution.Member)
		}

		contributions = append(contributions, models.ContributionInput{
			Member: contribution.Member,
			Amount: cents.IntPart(),
			Weight: contribution.Weight,
		})
	}

	return importer.Transaction{
		Model: models.Transaction{
			Name:         transaction.Name,
			Category:     transaction.Category,
			Currency:     transaction.Currency,
			ExchangeRate: transaction.ExchangeRate,
			Type:         transaction.Type,
			Date:         transaction.Date,
		},
		Contributions: contributions,
	}, nil
}
