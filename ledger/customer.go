/*
customer.go - Customer variants (individual and organization)

PURPOSE:
  Two customer shapes sharing one capability: a stable national document
  number used as the primary key across the registry and the reports.

VARIANTS:
  Individual:   11-digit personal document number
  Organization: 14-digit entity document number plus a legal name

VALIDATION:
  The document format (digits, exact length) is checked once at
  construction and never re-checked. The identifier is immutable.

DISPATCH:
  Registry lookups and report grouping use Identifier() alone. The only
  variant-aware behavior is Kind(), a display label for reports, and the
  record codec's PF/PJ prefix (see record.go).
*/
package ledger

const (
	individualDocumentLen   = 11
	organizationDocumentLen = 14
)

// Customer is either an *Individual or an *Organization.
type Customer interface {
	// Identifier returns the customer's document number, the logical
	// primary key. Immutable after construction.
	Identifier() string

	// Kind returns a human-readable variant label for display:
	// "individual" or "organization".
	Kind() string

	Name() string
	Email() string
	SetEmail(email string)
	Account() *Account
	SetAccount(account *Account)
}

// customerBase carries the attributes shared by both variants.
type customerBase struct {
	name    string
	email   string
	account *Account
}

func (c *customerBase) Name() string                { return c.name }
func (c *customerBase) Email() string               { return c.email }
func (c *customerBase) SetEmail(email string)       { c.email = email }
func (c *customerBase) Account() *Account           { return c.account }
func (c *customerBase) SetAccount(account *Account) { c.account = account }

func validDocument(doc string, length int) bool {
	if len(doc) != length {
		return false
	}
	for _, r := range doc {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// =============================================================================
// INDIVIDUAL
// =============================================================================

// Individual is a personal customer identified by an 11-digit document.
type Individual struct {
	customerBase
	document string
}

// NewIndividual validates the document format and builds the customer.
// Fails with *InvalidDocumentError unless document is exactly 11
// numeric digits.
func NewIndividual(name, email string, account *Account, document string) (*Individual, error) {
	if !validDocument(document, individualDocumentLen) {
		return nil, &InvalidDocumentError{Document: document, Want: individualDocumentLen}
	}
	return &Individual{
		customerBase: customerBase{name: name, email: email, account: account},
		document:     document,
	}, nil
}

func (c *Individual) Identifier() string { return c.document }
func (c *Individual) Kind() string       { return "individual" }

// =============================================================================
// ORGANIZATION
// =============================================================================

// Organization is a corporate customer identified by a 14-digit
// document, with a separate legal name.
type Organization struct {
	customerBase
	document  string
	legalName string
}

// NewOrganization validates the document format (exactly 14 numeric
// digits) and builds the customer.
func NewOrganization(name, email string, account *Account, document, legalName string) (*Organization, error) {
	if !validDocument(document, organizationDocumentLen) {
		return nil, &InvalidDocumentError{Document: document, Want: organizationDocumentLen}
	}
	return &Organization{
		customerBase: customerBase{name: name, email: email, account: account},
		document:     document,
		legalName:    legalName,
	}, nil
}

func (c *Organization) Identifier() string { return c.document }
func (c *Organization) Kind() string       { return "organization" }
func (c *Organization) LegalName() string  { return c.legalName }

// cloneCustomer deep-copies either variant, including the account, so
// a registry snapshot never aliases a live balance cell.
func cloneCustomer(c Customer) Customer {
	switch v := c.(type) {
	case *Organization:
		cp := *v
		acc := *v.account
		cp.account = &acc
		return &cp
	case *Individual:
		cp := *v
		acc := *v.account
		cp.account = &acc
		return &cp
	default:
		return c
	}
}
