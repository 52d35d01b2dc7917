/*
product.go - Priced, categorized catalog entry

PURPOSE:
  A product is a value holder: immutable code and category, mutable
  price (markup/markdown). Sales reference products by code and capture
  the price at the moment an item is added, so later price changes do
  not rewrite historical totals.
*/
package ledger

// Product is a catalog entry keyed by its numeric code.
type Product struct {
	code     int
	name     string
	price    Money
	category Category
}

// NewProduct builds a product. Price validity is the caller's
// responsibility; code and category are immutable once created.
func NewProduct(code int, name string, price Money, category Category) *Product {
	return &Product{code: code, name: name, price: price, category: category}
}

func (p *Product) Code() int          { return p.code }
func (p *Product) Name() string       { return p.name }
func (p *Product) Price() Money       { return p.price }
func (p *Product) Category() Category { return p.category }

// SetPrice updates the unit price for future sales only.
func (p *Product) SetPrice(price Money) { p.price = price }
