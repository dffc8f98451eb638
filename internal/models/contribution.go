package models

import (
	"errors"

	"github.com/google/uuid"
)

// Contribution is one member's part of a transaction: the amount they
// paid out of their own pocket and the weight their share of the total
// carries. Amounts are integer cents, negative amounts are refunds.
type Contribution struct {
	DefaultModel
	Transaction   Transaction `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	TransactionID uuid.UUID   `gorm:"uniqueIndex:contribution_transaction_id_member_id"`
	Member        Member      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	MemberID      uuid.UUID   `gorm:"uniqueIndex:contribution_transaction_id_member_id"`
	Amount        int64       `gorm:"check:contribution_not_empty,amount <> 0 OR weight <> 0"`
	Weight        float64     `gorm:"check:weight_not_negative,weight >= 0"`
}

var (
	ErrContributionNotUnique = errors.New("the member already has a contribution for this transaction")
	ErrContributionEmpty     = errors.New("a contribution needs an amount or a weight")
	ErrWeightNegative        = errors.New("the weight must not be negative")
)

func (c Contribution) Self() string {
	return "Contribution"
}
