/*
record.go - Line-oriented record codec

PURPOSE:
  Serializes customers and products to the semicolon-delimited,
  one-record-per-line format the persistence layer exchanges, and
  parses it back. Field order and prefixes are fixed for compatibility
  with existing data files.

FORMATS:

	PF;<id:11 digits>;<name>;<email>;<accountNumber>;<balance>
	PJ;<id:14 digits>;<name>;<email>;<legalName>;<accountNumber>;<balance>
	<code>;<name>;<price>;<CATEGORY>

  Monetary fields are written with 2 decimals and a '.' separator.
  Reading tolerates a ',' separator (legacy files) by normalizing
  before parsing. Categories round-trip by canonical name; unknown
  labels fail the parse.

ERROR POLICY:
  Parse functions return an error per malformed line; skip-and-continue
  is the file store's job, not the codec's.
*/
package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	recordSep        = ";"
	individualPrefix = "PF"
	organizationPrefix = "PJ"
)

// =============================================================================
// CUSTOMER RECORDS
// =============================================================================

// MarshalCustomer renders a customer as one record line.
func MarshalCustomer(c Customer) string {
	switch v := c.(type) {
	case *Organization:
		return strings.Join([]string{
			organizationPrefix,
			v.Identifier(),
			v.Name(),
			v.Email(),
			v.LegalName(),
			strconv.Itoa(v.Account().Number()),
			v.Account().Balance().String(),
		}, recordSep)
	default:
		return strings.Join([]string{
			individualPrefix,
			c.Identifier(),
			c.Name(),
			c.Email(),
			strconv.Itoa(c.Account().Number()),
			c.Account().Balance().String(),
		}, recordSep)
	}
}

// ParseCustomer parses one record line, dispatching on the PF/PJ
// prefix. Document validation applies as at normal construction.
func ParseCustomer(line string) (Customer, error) {
	fields := strings.Split(strings.TrimSpace(line), recordSep)
	switch fields[0] {
	case individualPrefix:
		if len(fields) != 6 {
			return nil, fmt.Errorf("individual record: want 6 fields, got %d", len(fields))
		}
		account, err := parseAccountFields(fields[4], fields[5])
		if err != nil {
			return nil, err
		}
		return NewIndividual(fields[2], fields[3], account, fields[1])
	case organizationPrefix:
		if len(fields) != 7 {
			return nil, fmt.Errorf("organization record: want 7 fields, got %d", len(fields))
		}
		account, err := parseAccountFields(fields[5], fields[6])
		if err != nil {
			return nil, err
		}
		return NewOrganization(fields[2], fields[3], account, fields[1], fields[4])
	default:
		return nil, fmt.Errorf("customer record: unknown prefix %q", fields[0])
	}
}

func parseAccountFields(numberField, balanceField string) (*Account, error) {
	number, err := strconv.Atoi(numberField)
	if err != nil {
		return nil, fmt.Errorf("account number: %w", err)
	}
	balance, err := ParseMoney(balanceField)
	if err != nil {
		return nil, fmt.Errorf("account balance: %w", err)
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("account balance: negative value %s", balance)
	}
	account := NewAccount(number)
	account.Deposit(balance)
	return account, nil
}

// =============================================================================
// PRODUCT RECORDS
// =============================================================================

// MarshalProduct renders a product as one record line.
func MarshalProduct(p *Product) string {
	return strings.Join([]string{
		strconv.Itoa(p.Code()),
		p.Name(),
		p.Price().String(),
		p.Category().String(),
	}, recordSep)
}

// ParseProduct parses one product record line.
func ParseProduct(line string) (*Product, error) {
	fields := strings.Split(strings.TrimSpace(line), recordSep)
	if len(fields) != 4 {
		return nil, fmt.Errorf("product record: want 4 fields, got %d", len(fields))
	}
	code, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("product code: %w", err)
	}
	price, err := ParseMoney(fields[2])
	if err != nil {
		return nil, fmt.Errorf("product price: %w", err)
	}
	category, err := ParseCategory(fields[3])
	if err != nil {
		return nil, err
	}
	return NewProduct(code, fields[1], price, category), nil
}
