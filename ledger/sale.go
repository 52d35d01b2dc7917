/*
sale.go - Sale lifecycle and line items

PURPOSE:
  A sale accumulates line items while Open, then Finalize computes the
  total and debits the owning customer's account exactly once.

STATE MACHINE:

	Open --Finalize (debit ok)--> Finalized (terminal)

  A failed debit (insufficient funds) leaves the sale Open so the
  caller can deposit and retry. AddItem and Finalize on a Finalized
  sale fail with ErrSaleFinalized rather than being silently ignored.

LINE ITEMS:
  Each item captures the product's code, name and unit price at the
  time the item is added. Subtotal = captured price x quantity.
  Total() is recomputed on every call; items can keep arriving between
  calls while the sale is Open.
*/
package ledger

import "time"

// SaleStatus is the lifecycle state of a sale.
type SaleStatus string

const (
	SaleOpen      SaleStatus = "open"
	SaleFinalized SaleStatus = "finalized"
)

// LineItem is a (product, quantity, price-at-add-time) triple.
type LineItem struct {
	ProductCode int
	ProductName string
	UnitPrice   Money
	Quantity    int
}

// Subtotal is the captured unit price times the quantity.
func (it LineItem) Subtotal() Money {
	return it.UnitPrice.MulInt(it.Quantity)
}

// Sale is an ordered list of line items against one customer.
type Sale struct {
	code      int
	createdAt time.Time
	customer  Customer
	items     []LineItem
	status    SaleStatus
}

// NewSale opens a sale for the given customer. The code is assigned by
// the registry.
func NewSale(code int, customer Customer) *Sale {
	return &Sale{
		code:      code,
		createdAt: time.Now(),
		customer:  customer,
		status:    SaleOpen,
	}
}

// RestoreSale rebuilds a sale from persisted state, including its
// original code, timestamp and status. Used by snapshot stores only.
func RestoreSale(code int, createdAt time.Time, customer Customer, items []LineItem, status SaleStatus) *Sale {
	return &Sale{
		code:      code,
		createdAt: createdAt,
		customer:  customer,
		items:     items,
		status:    status,
	}
}

// cloneWith copies the sale for a registry snapshot, re-pointing it at
// the snapshot's copy of the customer.
func (s *Sale) cloneWith(customer Customer) *Sale {
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return &Sale{
		code:      s.code,
		createdAt: s.createdAt,
		customer:  customer,
		items:     items,
		status:    s.status,
	}
}

func (s *Sale) Code() int            { return s.code }
func (s *Sale) CreatedAt() time.Time { return s.createdAt }
func (s *Sale) Customer() Customer   { return s.customer }
func (s *Sale) Status() SaleStatus   { return s.status }

// Items returns a copy of the line items in insertion order.
func (s *Sale) Items() []LineItem {
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// AddItem appends a line item capturing the product's current price.
// Fails with ErrSaleFinalized once the sale is finalized and with
// ErrInvalidQuantity for non-positive quantities.
func (s *Sale) AddItem(product *Product, quantity int) error {
	if s.status == SaleFinalized {
		return ErrSaleFinalized
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	s.items = append(s.items, LineItem{
		ProductCode: product.Code(),
		ProductName: product.Name(),
		UnitPrice:   product.Price(),
		Quantity:    quantity,
	})
	return nil
}

// Total sums the line item subtotals. Pure; callable in either state.
func (s *Sale) Total() Money {
	total := ZeroMoney()
	for _, it := range s.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Finalize computes the total and debits the customer's account.
// On insufficient funds the sale stays Open and the error propagates;
// on success the sale becomes Finalized and is immutable. A second
// Finalize fails with ErrSaleFinalized and never double-debits.
func (s *Sale) Finalize() error {
	if s.status == SaleFinalized {
		return ErrSaleFinalized
	}
	if err := s.customer.Account().Debit(s.Total()); err != nil {
		return err
	}
	s.status = SaleFinalized
	return nil
}
