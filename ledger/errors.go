/*
errors.go - Centralized error types for the ledger core

PURPOSE:
  All error kinds in one place. Callers distinguish recoverable
  conditions with errors.Is/errors.As; only insufficient funds during
  finalize carries structured context worth reacting to.

ERROR CATEGORIES:
 1. Validation errors  - malformed documents, invalid amounts/quantities
 2. Lookup errors      - unknown customer/product/sale keys
 3. Lifecycle errors   - operations on a finalized sale

USAGE:

	if errors.Is(err, ledger.ErrInsufficientFunds) {
	    // sale stayed open; deposit and retry finalize
	}

SEE ALSO:
  - account.go: produces InsufficientFundsError
  - sale.go:    produces ErrSaleFinalized
  - registry.go: produces the not-found sentinels
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidAmount is returned for non-positive debit amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidQuantity is returned for non-positive line item quantities.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInsufficientFunds is returned when a debit exceeds the balance.
	// The debit is rejected and the balance is left unchanged.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidDocument is returned when a national document number
	// fails the construction-time format check.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrSaleFinalized is returned when adding items to, or finalizing,
	// a sale that has already been finalized.
	ErrSaleFinalized = errors.New("sale already finalized")

	// ErrCustomerNotFound is returned for unknown customer identifiers.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrProductNotFound is returned for unknown product codes.
	ErrProductNotFound = errors.New("product not found")

	// ErrSaleNotFound is returned for unknown sale codes.
	ErrSaleNotFound = errors.New("sale not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientFundsError details a rejected debit.
type InsufficientFundsError struct {
	AccountNumber int
	Available     Money
	Requested     Money
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds on account %d: available %s, requested %s",
		e.AccountNumber, e.Available, e.Requested)
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

// Shortfall is how much the requested debit exceeds the balance.
func (e *InsufficientFundsError) Shortfall() Money { return e.Requested.Sub(e.Available) }

// InvalidDocumentError details a document validation failure.
type InvalidDocumentError struct {
	Document string
	Want     int // required number of digits
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("invalid document %q: must contain exactly %d numeric digits", e.Document, e.Want)
}

func (e *InvalidDocumentError) Unwrap() error { return ErrInvalidDocument }

// InvalidCategoryError details an unrecognized category label.
type InvalidCategoryError struct {
	Label string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("unknown product category %q", e.Label)
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether err is one of the registry lookup failures.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrSaleNotFound)
}

// IsClientError reports whether err is caused by invalid caller input
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidDocument) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrSaleFinalized)
}
