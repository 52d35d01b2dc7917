/*
Package ledger implements the sales ledger core: accounts, customers,
products, sales, the registry that holds them, and the report engine
that derives rankings and summaries from recorded sales.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: a 2-decimal-place monetary amount backed by decimal.Decimal
  - Category: the closed set of product categories

DESIGN PRINCIPLES:
 1. Precision: Money uses decimal.Decimal, never float64, so totals and
    balances are exact. Rounding to 2 decimals happens only at
    serialization boundaries.
 2. Explicit failure: operations that can be rejected (debit, finalize,
    lookups) return errors or booleans; nothing is silently clamped.
 3. Single-writer registry: the Registry guards its catalogs with one
    lock; everything below it is plain synchronous code.

SEE ALSO:
  - account.go:  balance cell with the non-negativity invariant
  - sale.go:     the Open -> Finalized lifecycle
  - report.go:   read-side aggregation
*/
package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - 2-decimal monetary amount
// =============================================================================

// Money is a monetary amount. Arithmetic is exact; display and
// serialization round to 2 decimal places.
type Money struct {
	value decimal.Decimal
}

func NewMoney(value float64) Money {
	return Money{value: decimal.NewFromFloat(value)}
}

// ParseMoney parses a decimal string. A ',' decimal separator is
// normalized to '.' for compatibility with legacy records.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
	if err != nil {
		return Money{}, err
	}
	return Money{value: d}, nil
}

func ZeroMoney() Money { return Money{value: decimal.Zero} }

func (m Money) Add(o Money) Money        { return Money{value: m.value.Add(o.value)} }
func (m Money) Sub(o Money) Money        { return Money{value: m.value.Sub(o.value)} }
func (m Money) MulInt(n int) Money       { return Money{value: m.value.Mul(decimal.NewFromInt(int64(n)))} }
func (m Money) DivInt(n int) Money       { return Money{value: m.value.Div(decimal.NewFromInt(int64(n)))} }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) GreaterThan(o Money) bool { return m.value.GreaterThan(o.value) }

// String renders with exactly 2 decimals and a '.' separator,
// matching the persisted record format.
func (m Money) String() string { return m.value.StringFixed(2) }

// =============================================================================
// CATEGORY - closed set of product types
// =============================================================================

// Category classifies a product. Serialized by canonical name; parsing
// an unrecognized label fails.
type Category string

const (
	CategoryFood        Category = "FOOD"
	CategoryElectronics Category = "ELECTRONICS"
	CategoryClothing    Category = "CLOTHING"
	CategoryHygiene     Category = "HYGIENE"
	CategoryOther       Category = "OTHER"
)

var categories = map[Category]bool{
	CategoryFood:        true,
	CategoryElectronics: true,
	CategoryClothing:    true,
	CategoryHygiene:     true,
	CategoryOther:       true,
}

// ParseCategory parses a canonical category name by exact match.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !categories[c] {
		return "", &InvalidCategoryError{Label: s}
	}
	return c, nil
}

func (c Category) String() string { return string(c) }
