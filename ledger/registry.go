/*
registry.go - The ledger aggregate root

PURPOSE:
  In-memory catalogs of customers and products plus the ordered list of
  every sale opened in this process, with id-based lookup and
  sequential sale numbering.

CONCURRENCY:
  One RWMutex guards all mutations and the sale-code counter. The core
  model is single-threaded, but embedders get a safe serialization
  point for free: two concurrent FinalizeSale calls on sales sharing a
  customer cannot interleave debit checks. Reads that feed the report
  engine go through Snapshot(), which deep-copies sales, customers and
  products under the lock, so report aggregation never touches state a
  writer is mutating.

KEY RULES:
  - Duplicate customer/product keys: insert is a no-op reporting false.
  - Sale codes: monotonically increasing from 1, never reused within a
    process lifetime.
  - Sales are never deleted; they are the report engine's input.
*/
package ledger

import "sync"

// Registry owns the customer catalog, the product catalog and the sale
// list. Pass it by handle to front ends and to the report engine.
type Registry struct {
	mu           sync.RWMutex
	customers    Catalog[string, Customer]
	products     Catalog[int, *Product]
	sales        []*Sale
	nextSaleCode int
	nextAccount  int
}

// NewRegistry builds a registry over the given catalogs.
func NewRegistry(customers Catalog[string, Customer], products Catalog[int, *Product]) *Registry {
	return &Registry{
		customers:    customers,
		products:     products,
		nextSaleCode: 1,
		nextAccount:  1,
	}
}

// NewAccount allocates the next sequential account number and returns
// a fresh zero-balance account. Numbers are never reused, even when
// the subsequent customer registration fails.
func (r *Registry) NewAccount() *Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := NewAccount(r.nextAccount)
	r.nextAccount++
	return account
}

// =============================================================================
// REGISTRATION
// =============================================================================

// RegisterCustomer inserts the customer keyed by its identifier.
// Returns false on a duplicate identifier; never overwrites.
func (r *Registry) RegisterCustomer(c Customer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.customers.Add(c.Identifier(), c)
}

// RegisterProduct inserts the product keyed by its code.
// Returns false on a duplicate code; never overwrites.
func (r *Registry) RegisterProduct(p *Product) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products.Add(p.Code(), p)
}

// =============================================================================
// LOOKUPS
// =============================================================================

func (r *Registry) FindCustomer(identifier string) (Customer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.customers.Get(identifier)
}

func (r *Registry) FindProduct(code int) (*Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.products.Get(code)
}

// FindSaleByCode scans the sale list. Sales are few per process
// lifetime; a keyed index has not been worth it.
func (r *Registry) FindSaleByCode(code int) (*Sale, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findSaleLocked(code)
}

func (r *Registry) findSaleLocked(code int) (*Sale, bool) {
	for _, s := range r.sales {
		if s.Code() == code {
			return s, true
		}
	}
	return nil, false
}

func (r *Registry) ListCustomers() []Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.customers.List()
}

func (r *Registry) ListProducts() []*Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.products.List()
}

// Sales returns all sales in creation order.
func (r *Registry) Sales() []*Sale {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sales := make([]*Sale, len(r.sales))
	copy(sales, r.sales)
	return sales
}

// =============================================================================
// SALE LIFECYCLE
// =============================================================================

// OpenSale creates a new open sale for the customer, assigning the
// next sequential code. Fails with ErrCustomerNotFound if the
// identifier is unknown.
func (r *Registry) OpenSale(customerID string) (*Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer, ok := r.customers.Get(customerID)
	if !ok {
		return nil, ErrCustomerNotFound
	}

	sale := NewSale(r.nextSaleCode, customer)
	r.nextSaleCode++
	r.sales = append(r.sales, sale)
	return sale, nil
}

// AddItemToSale validates the sale, the product and the quantity, then
// delegates to Sale.AddItem. Each failure is distinct: ErrSaleNotFound,
// ErrProductNotFound, ErrInvalidQuantity.
func (r *Registry) AddItemToSale(saleCode, productCode, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sale, ok := r.findSaleLocked(saleCode)
	if !ok {
		return ErrSaleNotFound
	}
	product, ok := r.products.Get(productCode)
	if !ok {
		return ErrProductNotFound
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return sale.AddItem(product, quantity)
}

// FinalizeSale finalizes the sale, debiting the customer's account.
// Propagates *InsufficientFundsError unchanged; the sale stays Open in
// that case.
func (r *Registry) FinalizeSale(saleCode int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sale, ok := r.findSaleLocked(saleCode)
	if !ok {
		return ErrSaleNotFound
	}
	return sale.Finalize()
}

// Deposit adds funds to a customer's account through the registry's
// serialization point.
func (r *Registry) Deposit(customerID string, amount Money) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer, ok := r.customers.Get(customerID)
	if !ok {
		return ErrCustomerNotFound
	}
	if !customer.Account().Deposit(amount) {
		return ErrInvalidAmount
	}
	return nil
}

// =============================================================================
// SNAPSHOT / RESTORE
// =============================================================================

// Snapshot deep-copies the registry state under the read lock:
// customers (accounts included), products, and sales all come back as
// detached copies, so a reader never observes a sale mid-finalization
// or a balance mid-debit. Each copied sale references the snapshot's
// copy of its customer, keyed by identifier.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	live := r.customers.List()
	customers := make([]Customer, len(live))
	byID := make(map[string]Customer, len(live))
	for i, c := range live {
		cp := cloneCustomer(c)
		customers[i] = cp
		byID[cp.Identifier()] = cp
	}

	catalog := r.products.List()
	products := make([]*Product, len(catalog))
	for i, p := range catalog {
		cp := *p
		products[i] = &cp
	}

	sales := make([]*Sale, len(r.sales))
	for i, s := range r.sales {
		customer, ok := byID[s.customer.Identifier()]
		if !ok {
			// Sales only ever reference registered customers; this
			// covers snapshots assembled outside the registry.
			customer = cloneCustomer(s.customer)
		}
		sales[i] = s.cloneWith(customer)
	}

	return Snapshot{Sales: sales, Customers: customers, Products: products}
}

// Restore loads persisted state into an empty registry: customers and
// products are registered (duplicates skipped), sales installed in
// order, and the sale counter resumes past the highest restored code.
func (r *Registry) Restore(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range snap.Customers {
		r.customers.Add(c.Identifier(), c)
		if n := c.Account().Number(); n >= r.nextAccount {
			r.nextAccount = n + 1
		}
	}
	for _, p := range snap.Products {
		r.products.Add(p.Code(), p)
	}
	for _, s := range snap.Sales {
		r.sales = append(r.sales, s)
		if s.Code() >= r.nextSaleCode {
			r.nextSaleCode = s.Code() + 1
		}
	}
}
