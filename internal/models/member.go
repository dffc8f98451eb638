package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/splitpot/backend/internal/split"
	"gorm.io/gorm"
)

// Member represents a person taking part in a ledger.
//
// Members who leave the group are archived, not deleted, so that the
// transactions they took part in keep adding up. An archived member must
// have settled up before, the balance calculation treats a non-zero
// balance for an archived member as data corruption.
type Member struct {
	DefaultModel
	Ledger   Ledger    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	LedgerID uuid.UUID `gorm:"uniqueIndex:member_name_ledger_id"`
	Name     string    `gorm:"uniqueIndex:member_name_ledger_id"`
	Note     string
	Archived bool
}

var (
	ErrMemberNameNotUnique    = errors.New("the member name must be unique for the ledger")
	ErrMemberHasBalance       = errors.New("the member still has an open balance, settle the ledger first")
	ErrMemberHasContributions = errors.New("the member takes part in transactions and cannot be deleted, archive them instead")
)

func (m Member) Self() string {
	return "Member"
}

// BeforeSave trims whitespace from all strings
func (m *Member) BeforeSave(_ *gorm.DB) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Note = strings.TrimSpace(m.Note)

	return nil
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	_ = m.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Member)
	return m.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the member before
// committing an update to the database.
func (m *Member) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Member)
	if tx.Statement.Changed("LedgerID") {
		err := m.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	// Member is being archived, verify that they do not owe
	// or lend anything anymore
	if tx.Statement.Changed("Archived") && toSave.Archived {
		var ledger Ledger
		err := tx.First(&ledger, m.LedgerID).Error
		if err != nil {
			return err
		}

		balances, err := split.Balances(ledger.SplitSource(tx))
		if err != nil {
			return err
		}

		for _, balance := range balances {
			if balance.Member == m.Name && balance.Balance != 0 {
				return ErrMemberHasBalance
			}
		}
	}

	return nil
}

// BeforeDelete refuses to delete members that are referenced by
// contributions. Deleting them would change all balances of the ledger,
// archiving is the way to phase a member out.
func (m *Member) BeforeDelete(tx *gorm.DB) error {
	var count int64
	err := tx.Model(&Contribution{}).Where(&Contribution{MemberID: m.ID}).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrMemberHasContributions
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (m *Member) checkIntegrity(tx *gorm.DB, toSave Member) error {
	return tx.First(&Ledger{}, toSave.LedgerID).Error
}
