package models

import (
	"errors"
	"strings"

	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// CategoryRule assigns a category to transactions that arrive without
// one, e.g. through the import endpoint. The match pattern is a glob,
// * matches any number of characters.
type CategoryRule struct {
	DefaultModel
	Priority uint
	Match    string `gorm:"uniqueIndex"`
	Category string
}

var (
	ErrRuleMatchNotUnique = errors.New("the match pattern must be unique")
	ErrRuleMatchEmpty     = errors.New("the match pattern must not be empty")
)

func (r CategoryRule) Self() string {
	return "Category Rule"
}

// BeforeSave trims whitespace from all strings
func (r *CategoryRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)
	r.Category = strings.TrimSpace(r.Category)

	if r.Match == "" {
		return ErrRuleMatchEmpty
	}

	return nil
}

// BeforeUpdate verifies the fields that actually change, BeforeSave only
// sees the rule as it is stored.
func (r *CategoryRule) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(CategoryRule)
	if tx.Statement.Changed("Match") && strings.TrimSpace(toSave.Match) == "" {
		return ErrRuleMatchEmpty
	}

	return nil
}

// CategoryRules returns all rules sorted by priority.
func CategoryRules(db *gorm.DB) ([]CategoryRule, error) {
	var rules []CategoryRule

	err := db.Order("priority ASC, match ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}

	return rules, nil
}

// MatchCategory applies the rules to a transaction name.
//
// Rules must be sorted by priority, the first match wins. The boolean
// reports whether any rule matched.
func MatchCategory(rules []CategoryRule, name string) (string, bool) {
	for _, rule := range rules {
		if glob.Glob(rule.Match, name) {
			return rule.Category, true
		}
	}

	return "", false
}
