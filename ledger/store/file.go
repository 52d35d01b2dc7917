/*
file.go - Line-oriented file persistence for customers and products

PURPOSE:
  Loads and saves the registry's catalogs as one record per line, in
  the codec format from ledger/record.go. This is the legacy-compatible
  persistence boundary: the core only produces and consumes lines.

LOAD POLICY:
  - A missing file loads as an empty set (first run), not an error.
  - A malformed line is logged and skipped; the rest of the file still
    loads. A bad record must never abort the whole load.
  - Blank lines are ignored.

SAVE POLICY:
  Whole-file rewrite on every save. The data sets are small catalogs,
  not an append log.
*/
package store

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/warp/sales-ledger/ledger"
)

// Files persists customers and products to two text files.
type Files struct {
	CustomersPath string
	ProductsPath  string
}

func NewFiles(customersPath, productsPath string) *Files {
	return &Files{CustomersPath: customersPath, ProductsPath: productsPath}
}

// LoadCustomers parses the customers file, skipping malformed lines.
func (f *Files) LoadCustomers() ([]ledger.Customer, error) {
	var customers []ledger.Customer
	err := readLines(f.CustomersPath, func(line string) {
		c, err := ledger.ParseCustomer(line)
		if err != nil {
			log.Printf("skipping customer record %q: %v", line, err)
			return
		}
		customers = append(customers, c)
	})
	return customers, err
}

// LoadProducts parses the products file, skipping malformed lines.
func (f *Files) LoadProducts() ([]*ledger.Product, error) {
	var products []*ledger.Product
	err := readLines(f.ProductsPath, func(line string) {
		p, err := ledger.ParseProduct(line)
		if err != nil {
			log.Printf("skipping product record %q: %v", line, err)
			return
		}
		products = append(products, p)
	})
	return products, err
}

// SaveCustomers rewrites the customers file from the given set.
func (f *Files) SaveCustomers(customers []ledger.Customer) error {
	lines := make([]string, len(customers))
	for i, c := range customers {
		lines[i] = ledger.MarshalCustomer(c)
	}
	return writeLines(f.CustomersPath, lines)
}

// SaveProducts rewrites the products file from the given set.
func (f *Files) SaveProducts(products []*ledger.Product) error {
	lines := make([]string, len(products))
	for i, p := range products {
		lines[i] = ledger.MarshalProduct(p)
	}
	return writeLines(f.ProductsPath, lines)
}

// =============================================================================
// SNAPSHOT STORE ADAPTER
// =============================================================================

// LoadSnapshot reads both catalogs. Sales are not persisted in file
// mode; the snapshot comes back with an empty sale list and sale
// numbering restarts at 1.
func (f *Files) LoadSnapshot(_ context.Context) (ledger.Snapshot, error) {
	var snap ledger.Snapshot
	var err error
	if snap.Customers, err = f.LoadCustomers(); err != nil {
		return snap, err
	}
	if snap.Products, err = f.LoadProducts(); err != nil {
		return snap, err
	}
	return snap, nil
}

// SaveSnapshot rewrites both catalog files.
func (f *Files) SaveSnapshot(_ context.Context, snap ledger.Snapshot) error {
	if err := f.SaveCustomers(snap.Customers); err != nil {
		return err
	}
	return f.SaveProducts(snap.Products)
}

func readLines(path string, fn func(line string)) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run: nothing persisted yet.
			return nil
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		fn(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

func writeLines(path string, lines []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return w.Flush()
}
