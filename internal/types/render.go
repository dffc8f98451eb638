package types

import (
	"fmt"
	"strings"
)

// Shape selects the structure in which the member breakdown of a
// transaction is rendered.
type Shape string

const (
	// ShapeList renders parallel arrays of members, weights, paid and owed amounts.
	ShapeList Shape = "list"
	// ShapeObject renders one record per member.
	ShapeObject Shape = "object"
	// ShapeMap renders a mapping from member name to their amounts.
	ShapeMap Shape = "map"
)

// Valid reports whether the value is a known shape.
func (s Shape) Valid() bool {
	return s == ShapeList || s == ShapeObject || s == ShapeMap
}

// UnmarshalParam implements query parameter binding with validation.
// An empty value is allowed, callers default it to ShapeObject.
func (s *Shape) UnmarshalParam(p string) error {
	value := Shape(strings.ToLower(p))
	if p != "" && !value.Valid() {
		return fmt.Errorf("invalid shape %q, valid shapes are %q, %q and %q", p, ShapeList, ShapeObject, ShapeMap)
	}

	*s = value
	return nil
}

// MoneyFormat selects how monetary values are rendered.
//
// All computation happens in integer cents. MoneyDecimal only divides
// by 100 for presentation.
type MoneyFormat string

const (
	MoneyCents   MoneyFormat = "cents"
	MoneyDecimal MoneyFormat = "decimal"
)

// Valid reports whether the value is a known money format.
func (m MoneyFormat) Valid() bool {
	return m == MoneyCents || m == MoneyDecimal
}

// UnmarshalParam implements query parameter binding with validation.
// An empty value is allowed, callers default it to MoneyDecimal.
func (m *MoneyFormat) UnmarshalParam(p string) error {
	value := MoneyFormat(strings.ToLower(p))
	if p != "" && !value.Valid() {
		return fmt.Errorf("invalid money format %q, valid formats are %q and %q", p, MoneyCents, MoneyDecimal)
	}

	*m = value
	return nil
}
