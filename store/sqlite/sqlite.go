/*
Package sqlite provides a SQLite-backed ledger.SnapshotStore.

PURPOSE:
  Persists the full registry state (customers, products, sales with
  their line items) so a server restart resumes where it left off,
  including the sale-code sequence.

KEY TABLES:
  customers:   one row per customer, PF/PJ discriminated by kind
  products:    catalog entries
  sales:       sale header (code, customer, created_at, status)
  sale_items:  line items with the price captured at add time

MONEY:
  Monetary columns are TEXT holding 2-decimal strings, parsed back
  through ledger.ParseMoney. Never REAL: floats would corrupt balances.

WAL MODE:
  Opened with WAL for better concurrency; a sync.Mutex additionally
  serializes snapshot writes, which replace the whole state.

USAGE:

	st, err := sqlite.New("./data/ledger.db")
	if err != nil {
	    log.Fatal(err)
	}
	defer st.Close()
	snap, err := st.LoadSnapshot(ctx)

SEE ALSO:
  - ledger/store.go: SnapshotStore interface
  - ledger/store/file.go: line-oriented alternative
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/sales-ledger/ledger"
)

// Store implements ledger.SnapshotStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS customers (
		identifier TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		legal_name TEXT,
		account_number INTEGER NOT NULL,
		balance TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS products (
		code INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		price TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sales (
		code INTEGER PRIMARY KEY,
		customer_identifier TEXT NOT NULL REFERENCES customers(identifier),
		created_at TEXT NOT NULL,
		status TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sale_items (
		sale_code INTEGER NOT NULL REFERENCES sales(code),
		position INTEGER NOT NULL,
		product_code INTEGER NOT NULL,
		product_name TEXT NOT NULL,
		unit_price TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		PRIMARY KEY (sale_code, position)
	);

	CREATE INDEX IF NOT EXISTS idx_sales_customer
		ON sales(customer_identifier);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SAVE
// =============================================================================

// SaveSnapshot replaces the persisted state with snap, atomically.
func (s *Store) SaveSnapshot(ctx context.Context, snap ledger.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	// Snapshot semantics: wipe and rewrite. Items first for FK order.
	for _, table := range []string{"sale_items", "sales", "customers", "products"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, c := range snap.Customers {
		var legalName sql.NullString
		if org, ok := c.(*ledger.Organization); ok {
			legalName = sql.NullString{String: org.LegalName(), Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO customers (identifier, kind, name, email, legal_name, account_number, balance)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.Identifier(), c.Kind(), c.Name(), c.Email(), legalName,
			c.Account().Number(), c.Account().Balance().String())
		if err != nil {
			return fmt.Errorf("insert customer %s: %w", c.Identifier(), err)
		}
	}

	for _, p := range snap.Products {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO products (code, name, price, category)
			VALUES (?, ?, ?, ?)`,
			p.Code(), p.Name(), p.Price().String(), p.Category().String())
		if err != nil {
			return fmt.Errorf("insert product %d: %w", p.Code(), err)
		}
	}

	for _, sale := range snap.Sales {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sales (code, customer_identifier, created_at, status)
			VALUES (?, ?, ?, ?)`,
			sale.Code(), sale.Customer().Identifier(),
			sale.CreatedAt().UTC().Format(time.RFC3339Nano), string(sale.Status()))
		if err != nil {
			return fmt.Errorf("insert sale %d: %w", sale.Code(), err)
		}
		for i, it := range sale.Items() {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO sale_items (sale_code, position, product_code, product_name, unit_price, quantity)
				VALUES (?, ?, ?, ?, ?, ?)`,
				sale.Code(), i, it.ProductCode, it.ProductName, it.UnitPrice.String(), it.Quantity)
			if err != nil {
				return fmt.Errorf("insert sale %d item %d: %w", sale.Code(), i, err)
			}
		}
	}

	return tx.Commit()
}

// =============================================================================
// LOAD
// =============================================================================

// LoadSnapshot reads the full persisted state back. Customers are
// validated through their normal constructors.
func (s *Store) LoadSnapshot(ctx context.Context) (ledger.Snapshot, error) {
	var snap ledger.Snapshot

	customers, byID, err := s.loadCustomers(ctx)
	if err != nil {
		return snap, err
	}
	snap.Customers = customers

	snap.Products, err = s.loadProducts(ctx)
	if err != nil {
		return snap, err
	}

	snap.Sales, err = s.loadSales(ctx, byID)
	if err != nil {
		return snap, err
	}
	return snap, nil
}

func (s *Store) loadCustomers(ctx context.Context) ([]ledger.Customer, map[string]ledger.Customer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT identifier, kind, name, email, legal_name, account_number, balance
		FROM customers ORDER BY rowid`)
	if err != nil {
		return nil, nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var customers []ledger.Customer
	byID := make(map[string]ledger.Customer)
	for rows.Next() {
		var identifier, kind, name, email, balanceStr string
		var legalName sql.NullString
		var accountNumber int
		if err := rows.Scan(&identifier, &kind, &name, &email, &legalName, &accountNumber, &balanceStr); err != nil {
			return nil, nil, fmt.Errorf("scan customer: %w", err)
		}

		balance, err := ledger.ParseMoney(balanceStr)
		if err != nil {
			return nil, nil, fmt.Errorf("customer %s balance: %w", identifier, err)
		}
		account := ledger.NewAccount(accountNumber)
		account.Deposit(balance)

		var c ledger.Customer
		if kind == "organization" {
			c, err = ledger.NewOrganization(name, email, account, identifier, legalName.String)
		} else {
			c, err = ledger.NewIndividual(name, email, account, identifier)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("customer %s: %w", identifier, err)
		}
		customers = append(customers, c)
		byID[identifier] = c
	}
	return customers, byID, rows.Err()
}

func (s *Store) loadProducts(ctx context.Context) ([]*ledger.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, name, price, category FROM products ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*ledger.Product
	for rows.Next() {
		var code int
		var name, priceStr, categoryStr string
		if err := rows.Scan(&code, &name, &priceStr, &categoryStr); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		price, err := ledger.ParseMoney(priceStr)
		if err != nil {
			return nil, fmt.Errorf("product %d price: %w", code, err)
		}
		category, err := ledger.ParseCategory(categoryStr)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", code, err)
		}
		products = append(products, ledger.NewProduct(code, name, price, category))
	}
	return products, rows.Err()
}

func (s *Store) loadSales(ctx context.Context, customers map[string]ledger.Customer) ([]*ledger.Sale, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, customer_identifier, created_at, status
		FROM sales ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	type saleHeader struct {
		code       int
		customerID string
		createdAt  time.Time
		status     ledger.SaleStatus
	}
	var headers []saleHeader
	for rows.Next() {
		var h saleHeader
		var createdAt, status string
		if err := rows.Scan(&h.code, &h.customerID, &createdAt, &status); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		h.createdAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("sale %d created_at: %w", h.code, err)
		}
		h.status = ledger.SaleStatus(status)
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sales := make([]*ledger.Sale, 0, len(headers))
	for _, h := range headers {
		customer, ok := customers[h.customerID]
		if !ok {
			return nil, fmt.Errorf("sale %d references unknown customer %s", h.code, h.customerID)
		}
		items, err := s.loadSaleItems(ctx, h.code)
		if err != nil {
			return nil, err
		}
		sales = append(sales, ledger.RestoreSale(h.code, h.createdAt, customer, items, h.status))
	}
	return sales, nil
}

func (s *Store) loadSaleItems(ctx context.Context, saleCode int) ([]ledger.LineItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_code, product_name, unit_price, quantity
		FROM sale_items WHERE sale_code = ? ORDER BY position`, saleCode)
	if err != nil {
		return nil, fmt.Errorf("query sale %d items: %w", saleCode, err)
	}
	defer rows.Close()

	var items []ledger.LineItem
	for rows.Next() {
		var it ledger.LineItem
		var priceStr string
		if err := rows.Scan(&it.ProductCode, &it.ProductName, &priceStr, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan sale %d item: %w", saleCode, err)
		}
		it.UnitPrice, err = ledger.ParseMoney(priceStr)
		if err != nil {
			return nil, fmt.Errorf("sale %d item price: %w", saleCode, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
