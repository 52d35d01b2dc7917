/*
report.go - Read-side aggregation over the registry's sales

PURPOSE:
  Pure derivations from a registry snapshot: rankings, per-customer
  history, and the overall summary. Nothing here mutates anything.

SORTING:
  Every ranking sorts on its single primary key with sort.SliceStable,
  so ties retain their encounter order (grouping order = first
  appearance in the sale list, listing order = catalog insertion
  order). There is no secondary sort key; this keeps runs reproducible
  without inventing an ordering the data does not have.

REPORTS:
  ProductsSold       quantity + revenue per product, by revenue desc
  CustomerPurchases  one customer's sales in original order
  TopCustomers       spend ranking with average ticket
  CustomerActivity   balance + sale count for every customer
  Summary            totals and mean revenue per sale
  UnsoldProducts     catalog entries appearing in no line item
*/
package ledger

import (
	"sort"
	"time"
)

// Report aggregates over a fixed snapshot. Take a fresh snapshot for
// fresh numbers.
type Report struct {
	snap Snapshot
}

func NewReport(snap Snapshot) *Report {
	return &Report{snap: snap}
}

// =============================================================================
// RESULT TYPES
// =============================================================================

// ProductSales accumulates sold quantity and revenue for one product.
type ProductSales struct {
	Code         int
	Name         string
	UnitPrice    Money
	Category     Category
	QuantitySold int
	Revenue      Money
}

// PurchaseRecord is one sale projected for a customer's history.
type PurchaseRecord struct {
	SaleCode  int
	Date      time.Time
	Total     Money
	ItemCount int
}

// CustomerRank is one row of the top-customers-by-spend report.
type CustomerRank struct {
	Identifier    string
	Name          string
	Kind          string
	TotalSpent    Money
	PurchaseCount int
	AverageTicket Money
}

// CustomerActivity pairs a customer's balance with their sale count.
type CustomerActivity struct {
	Identifier string
	Name       string
	Kind       string
	Balance    Money
	SaleCount  int
}

// Summary holds the ledger-wide totals.
type Summary struct {
	TotalRevenue   Money
	SaleCount      int
	CustomerCount  int
	ProductCount   int
	AveragePerSale Money
}

// =============================================================================
// REPORTS
// =============================================================================

// ProductsSold groups all line items across all sales by product
// (code + name), accumulating quantity and revenue, sorted by revenue
// descending.
func (r *Report) ProductsSold() []ProductSales {
	type groupKey struct {
		code int
		name string
	}
	index := make(map[groupKey]int)
	var rows []ProductSales

	for _, sale := range r.snap.Sales {
		for _, it := range sale.Items() {
			k := groupKey{code: it.ProductCode, name: it.ProductName}
			i, ok := index[k]
			if !ok {
				i = len(rows)
				index[k] = i
				rows = append(rows, ProductSales{
					Code:      it.ProductCode,
					Name:      it.ProductName,
					UnitPrice: it.UnitPrice,
					Revenue:   ZeroMoney(),
				})
				if p := r.findProduct(it.ProductCode); p != nil {
					rows[i].Category = p.Category()
					rows[i].UnitPrice = p.Price()
				}
			}
			rows[i].QuantitySold += it.Quantity
			rows[i].Revenue = rows[i].Revenue.Add(it.Subtotal())
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Revenue.GreaterThan(rows[j].Revenue)
	})
	return rows
}

// CustomerPurchases projects all sales of one customer into history
// records, in original sale order.
func (r *Report) CustomerPurchases(identifier string) []PurchaseRecord {
	var records []PurchaseRecord
	for _, sale := range r.snap.Sales {
		if sale.Customer().Identifier() != identifier {
			continue
		}
		records = append(records, PurchaseRecord{
			SaleCode:  sale.Code(),
			Date:      sale.CreatedAt(),
			Total:     sale.Total(),
			ItemCount: len(sale.Items()),
		})
	}
	return records
}

// TopCustomers groups sales by customer, accumulating total spend and
// purchase count, sorted by total spend descending. Average ticket is
// spend/count, zero when the count is zero.
func (r *Report) TopCustomers() []CustomerRank {
	index := make(map[string]int)
	var rows []CustomerRank

	for _, sale := range r.snap.Sales {
		c := sale.Customer()
		id := c.Identifier()
		i, ok := index[id]
		if !ok {
			i = len(rows)
			index[id] = i
			rows = append(rows, CustomerRank{
				Identifier: id,
				Name:       c.Name(),
				Kind:       c.Kind(),
				TotalSpent: ZeroMoney(),
			})
		}
		rows[i].TotalSpent = rows[i].TotalSpent.Add(sale.Total())
		rows[i].PurchaseCount++
	}

	for i := range rows {
		if rows[i].PurchaseCount > 0 {
			rows[i].AverageTicket = rows[i].TotalSpent.DivInt(rows[i].PurchaseCount)
		} else {
			rows[i].AverageTicket = ZeroMoney()
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalSpent.GreaterThan(rows[j].TotalSpent)
	})
	return rows
}

// CustomerActivity lists every registered customer, with sales or
// without, pairing the current balance with the sale count, sorted by
// sale count descending.
func (r *Report) CustomerActivity() []CustomerActivity {
	counts := make(map[string]int)
	for _, sale := range r.snap.Sales {
		counts[sale.Customer().Identifier()]++
	}

	rows := make([]CustomerActivity, 0, len(r.snap.Customers))
	for _, c := range r.snap.Customers {
		rows = append(rows, CustomerActivity{
			Identifier: c.Identifier(),
			Name:       c.Name(),
			Kind:       c.Kind(),
			Balance:    c.Account().Balance(),
			SaleCount:  counts[c.Identifier()],
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SaleCount > rows[j].SaleCount
	})
	return rows
}

// Summary computes the ledger-wide totals. Mean revenue per sale is
// zero when there are no sales.
func (r *Report) Summary() Summary {
	total := ZeroMoney()
	for _, sale := range r.snap.Sales {
		total = total.Add(sale.Total())
	}

	s := Summary{
		TotalRevenue:   total,
		SaleCount:      len(r.snap.Sales),
		CustomerCount:  len(r.snap.Customers),
		ProductCount:   len(r.snap.Products),
		AveragePerSale: ZeroMoney(),
	}
	if s.SaleCount > 0 {
		s.AveragePerSale = total.DivInt(s.SaleCount)
	}
	return s
}

// UnsoldProducts returns the registered products whose code appears in
// no line item, in catalog order.
func (r *Report) UnsoldProducts() []*Product {
	sold := make(map[int]bool)
	for _, sale := range r.snap.Sales {
		for _, it := range sale.Items() {
			sold[it.ProductCode] = true
		}
	}

	var unsold []*Product
	for _, p := range r.snap.Products {
		if !sold[p.Code()] {
			unsold = append(unsold, p)
		}
	}
	return unsold
}

func (r *Report) findProduct(code int) *Product {
	for _, p := range r.snap.Products {
		if p.Code() == code {
			return p
		}
	}
	return nil
}
