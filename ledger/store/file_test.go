package store_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/sales-ledger/ledger"
	"github.com/warp/sales-ledger/ledger/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestFiles(t *testing.T) *store.Files {
	t.Helper()
	dir := t.TempDir()
	return store.NewFiles(
		filepath.Join(dir, "clientes.txt"),
		filepath.Join(dir, "produtos.txt"),
	)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newFileCustomer(t *testing.T, document string, balance float64) ledger.Customer {
	t.Helper()
	acc := ledger.NewAccount(1)
	acc.Deposit(ledger.NewMoney(balance))
	c, err := ledger.NewIndividual("Customer "+document, document+"@example.com", acc, document)
	require.NoError(t, err)
	return c
}

// =============================================================================
// LOAD
// =============================================================================

func TestFiles_LoadMissingFilesAsEmpty(t *testing.T) {
	f := newTestFiles(t)

	customers, err := f.LoadCustomers()
	require.NoError(t, err)
	assert.Empty(t, customers)

	products, err := f.LoadProducts()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestFiles_LoadSkipsMalformedLines(t *testing.T) {
	f := newTestFiles(t)
	writeFile(t, f.CustomersPath, strings.Join([]string{
		"PF;12345678901;Ana;ana@example.com;1;100.00",
		"garbage line",
		"PJ;12345678000199;Padaria;c@p.com;Padaria LTDA;2;500.00",
		"",
		"PF;999;short document;x@x.com;3;10.00",
	}, "\n"))

	customers, err := f.LoadCustomers()
	require.NoError(t, err)
	require.Len(t, customers, 2, "malformed records are skipped, not fatal")
	assert.Equal(t, "12345678901", customers[0].Identifier())
	assert.Equal(t, "12345678000199", customers[1].Identifier())
}

func TestFiles_LoadProducts(t *testing.T) {
	f := newTestFiles(t)
	writeFile(t, f.ProductsPath, strings.Join([]string{
		"1;Rice;25.50;FOOD",
		"2;Soap;3,20;HYGIENE",
		"3;Thing;oops;OTHER",
	}, "\n"))

	products, err := f.LoadProducts()
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "25.50", products[0].Price().String())
	assert.Equal(t, "3.20", products[1].Price().String(), "comma separator tolerated")
}

// =============================================================================
// SAVE / RELOAD
// =============================================================================

func TestFiles_SaveThenReload(t *testing.T) {
	f := newTestFiles(t)

	customers := []ledger.Customer{
		newFileCustomer(t, "12345678901", 1500.50),
		newFileCustomer(t, "22222222222", 0),
	}
	products := []*ledger.Product{
		ledger.NewProduct(1, "Rice", ledger.NewMoney(25.50), ledger.CategoryFood),
		ledger.NewProduct(2, "Headphones", ledger.NewMoney(120), ledger.CategoryElectronics),
	}

	require.NoError(t, f.SaveCustomers(customers))
	require.NoError(t, f.SaveProducts(products))

	gotCustomers, err := f.LoadCustomers()
	require.NoError(t, err)
	require.Len(t, gotCustomers, 2)
	assert.Equal(t, "1500.50", gotCustomers[0].Account().Balance().String())

	gotProducts, err := f.LoadProducts()
	require.NoError(t, err)
	require.Len(t, gotProducts, 2)
	assert.Equal(t, ledger.CategoryElectronics, gotProducts[1].Category())
}

func TestFiles_SaveRewritesWholeFile(t *testing.T) {
	f := newTestFiles(t)

	require.NoError(t, f.SaveProducts([]*ledger.Product{
		ledger.NewProduct(1, "Rice", ledger.NewMoney(25.50), ledger.CategoryFood),
		ledger.NewProduct(2, "Soap", ledger.NewMoney(3.20), ledger.CategoryHygiene),
	}))
	require.NoError(t, f.SaveProducts([]*ledger.Product{
		ledger.NewProduct(3, "Shirt", ledger.NewMoney(45), ledger.CategoryClothing),
	}))

	products, err := f.LoadProducts()
	require.NoError(t, err)
	require.Len(t, products, 1, "each save replaces the previous contents")
	assert.Equal(t, 3, products[0].Code())
}

// =============================================================================
// SNAPSHOT ADAPTER
// =============================================================================

func TestFiles_SnapshotRoundTripWithoutSales(t *testing.T) {
	f := newTestFiles(t)
	ctx := context.Background()

	customer := newFileCustomer(t, "12345678901", 200)
	sale := ledger.NewSale(1, customer)
	snap := ledger.Snapshot{
		Sales:     []*ledger.Sale{sale},
		Customers: []ledger.Customer{customer},
		Products: []*ledger.Product{
			ledger.NewProduct(1, "Rice", ledger.NewMoney(25.50), ledger.CategoryFood),
		},
	}

	require.NoError(t, f.SaveSnapshot(ctx, snap))

	got, err := f.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Customers, 1)
	assert.Len(t, got.Products, 1)
	assert.Empty(t, got.Sales, "file mode does not persist sales")
}
