package models

import (
	"errors"
	"strings"

	"github.com/splitpot/backend/internal/split"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// Ledger represents a group of people sharing expenses.
//
// A ledger is the highest level of organization in Splitpot, all other
// resources reference it directly or transitively.
type Ledger struct {
	DefaultModel
	Name     string `gorm:"uniqueIndex"`
	Note     string
	Currency string
	Archived bool
}

var (
	ErrLedgerNameNotUnique = errors.New("the ledger name must be unique")
	ErrCurrencyInvalid     = errors.New("the currency must be a valid ISO 4217 code")
)

func (l Ledger) Self() string {
	return "Ledger"
}

// BeforeSave sets default values and verifies the currency code.
//
// It trims whitespace from all strings.
func (l *Ledger) BeforeSave(_ *gorm.DB) error {
	l.Name = strings.TrimSpace(l.Name)
	l.Note = strings.TrimSpace(l.Note)
	l.Currency = strings.ToUpper(strings.TrimSpace(l.Currency))

	if l.Currency == "" {
		l.Currency = "EUR"
	}

	if _, err := currency.ParseISO(l.Currency); err != nil {
		return ErrCurrencyInvalid
	}

	return nil
}

// SplitSource returns the ledger's transactions and members in the
// representation the settlement arithmetic works on.
func (l Ledger) SplitSource(db *gorm.DB) split.Source {
	return ledgerSource{db: db, ledger: l}
}

type ledgerSource struct {
	db     *gorm.DB
	ledger Ledger
}

// Transactions returns all concrete transactions of the ledger, newest first.
// Templates only describe future transactions and are skipped.
func (s ledgerSource) Transactions() ([]split.Transaction, error) {
	var transactions []Transaction

	err := s.db.
		Preload("Contributions.Member").
		Where(&Transaction{LedgerID: s.ledger.ID}).
		Where("template = ?", false).
		Order("date(date) DESC, datetime(created_at) DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	all := make([]split.Transaction, 0, len(transactions))
	for _, t := range transactions {
		all = append(all, t.Split())
	}

	return all, nil
}

// Members returns all members of the ledger, ordered by name.
func (s ledgerSource) Members() ([]split.Member, error) {
	var members []Member

	err := s.db.
		Where(&Member{LedgerID: s.ledger.ID}).
		Order("name ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}

	all := make([]split.Member, 0, len(members))
	for _, member := range members {
		all = append(all, split.Member{
			Name:   member.Name,
			Active: !member.Archived,
		})
	}

	return all, nil
}
