package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/sales-ledger/ledger"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// reportFixture builds a registry with three customers and enough
// sales to exercise grouping, ranking and ties:
//
//	Ana  (123...01): sale 1 = 2x rice (51.00) + 5x soap (16.00) = 67.00
//	Bia  (222...22): sale 2 = 1x headphones        = 120.00
//	Ana:             sale 3 = 2x rice              = 51.00
//	Caio (333...33): registered, never buys
//	T-Shirt (code 4): registered, never sold
func reportFixture(t *testing.T) *ledger.Registry {
	t.Helper()
	reg := newTestRegistry()

	for _, doc := range []string{"12345678901", "22222222222", "33333333333"} {
		registerIndividual(t, reg, doc, 1000)
	}

	products := []struct {
		code     int
		name     string
		price    float64
		category ledger.Category
	}{
		{1, "Rice", 25.50, ledger.CategoryFood},
		{2, "Soap", 3.20, ledger.CategoryHygiene},
		{3, "Headphones", 120, ledger.CategoryElectronics},
		{4, "T-Shirt", 45, ledger.CategoryClothing},
	}
	for _, p := range products {
		require.True(t, reg.RegisterProduct(
			ledger.NewProduct(p.code, p.name, ledger.NewMoney(p.price), p.category)))
	}

	type saleSeed struct {
		customer string
		items    [][2]int // (product code, quantity) in order
	}
	for _, s := range []saleSeed{
		{"12345678901", [][2]int{{1, 2}, {2, 5}}},
		{"22222222222", [][2]int{{3, 1}}},
		{"12345678901", [][2]int{{1, 2}}},
	} {
		sale, err := reg.OpenSale(s.customer)
		require.NoError(t, err)
		for _, it := range s.items {
			require.NoError(t, reg.AddItemToSale(sale.Code(), it[0], it[1]))
		}
		require.NoError(t, reg.FinalizeSale(sale.Code()))
	}

	return reg
}

// =============================================================================
// PRODUCTS SOLD
// =============================================================================

func TestReport_ProductsSold_RevenueRanking(t *testing.T) {
	reg := reportFixture(t)
	rows := ledger.NewReport(reg.Snapshot()).ProductsSold()

	// Rice 4x = 102.00, Headphones 1x = 120.00, Soap 5x = 16.00
	require.Len(t, rows, 3)

	assert.Equal(t, 3, rows[0].Code)
	assert.Equal(t, "120.00", rows[0].Revenue.String())
	assert.Equal(t, 1, rows[0].QuantitySold)

	assert.Equal(t, 1, rows[1].Code)
	assert.Equal(t, "102.00", rows[1].Revenue.String())
	assert.Equal(t, 4, rows[1].QuantitySold)
	assert.Equal(t, ledger.CategoryFood, rows[1].Category)

	assert.Equal(t, 2, rows[2].Code)
	assert.Equal(t, "16.00", rows[2].Revenue.String())
}

func TestReport_ProductsSold_Empty(t *testing.T) {
	reg := newTestRegistry()
	assert.Empty(t, ledger.NewReport(reg.Snapshot()).ProductsSold())
}

// =============================================================================
// CUSTOMER PURCHASES
// =============================================================================

func TestReport_CustomerPurchases_OriginalOrder(t *testing.T) {
	reg := reportFixture(t)
	records := ledger.NewReport(reg.Snapshot()).CustomerPurchases("12345678901")

	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].SaleCode)
	assert.Equal(t, "67.00", records[0].Total.String())
	assert.Equal(t, 2, records[0].ItemCount)
	assert.Equal(t, 3, records[1].SaleCode)
	assert.Equal(t, "51.00", records[1].Total.String())
}

func TestReport_CustomerPurchases_NoSales(t *testing.T) {
	reg := reportFixture(t)
	assert.Empty(t, ledger.NewReport(reg.Snapshot()).CustomerPurchases("33333333333"))
}

// =============================================================================
// TOP CUSTOMERS
// =============================================================================

func TestReport_TopCustomers_SpendRanking(t *testing.T) {
	reg := reportFixture(t)
	rows := ledger.NewReport(reg.Snapshot()).TopCustomers()

	// Bia 120.00 > Ana 118.00; Caio has no sales and does not appear.
	require.Len(t, rows, 2)

	assert.Equal(t, "22222222222", rows[0].Identifier)
	assert.Equal(t, "120.00", rows[0].TotalSpent.String())
	assert.Equal(t, 1, rows[0].PurchaseCount)
	assert.Equal(t, "120.00", rows[0].AverageTicket.String())

	assert.Equal(t, "12345678901", rows[1].Identifier)
	assert.Equal(t, "118.00", rows[1].TotalSpent.String())
	assert.Equal(t, 2, rows[1].PurchaseCount)
	assert.Equal(t, "59.00", rows[1].AverageTicket.String())
}

func TestReport_TopCustomers_TiesKeepEncounterOrder(t *testing.T) {
	// GIVEN: S1 (100) for A, S2 (300) for B, S3 (100) for C
	reg := newTestRegistry()
	for _, doc := range []string{"11111111111", "22222222222", "33333333333"} {
		registerIndividual(t, reg, doc, 500)
	}
	registerProduct(t, reg, 1, 100)
	registerProduct(t, reg, 2, 300)

	for _, s := range []struct {
		customer string
		product  int
	}{
		{"11111111111", 1},
		{"22222222222", 2},
		{"33333333333", 1},
	} {
		sale, err := reg.OpenSale(s.customer)
		require.NoError(t, err)
		require.NoError(t, reg.AddItemToSale(sale.Code(), s.product, 1))
		require.NoError(t, reg.FinalizeSale(sale.Code()))
	}

	// WHEN: ranking by spend
	rows := ledger.NewReport(reg.Snapshot()).TopCustomers()

	// THEN: 300 first, then the two 100-spenders in stable input order
	require.Len(t, rows, 3)
	assert.Equal(t, "22222222222", rows[0].Identifier)
	assert.Equal(t, "11111111111", rows[1].Identifier)
	assert.Equal(t, "33333333333", rows[2].Identifier)
}

// =============================================================================
// CUSTOMER ACTIVITY
// =============================================================================

func TestReport_CustomerActivity_IncludesInactiveCustomers(t *testing.T) {
	reg := reportFixture(t)
	rows := ledger.NewReport(reg.Snapshot()).CustomerActivity()

	require.Len(t, rows, 3, "every registered customer appears")

	// Ana has 2 sales, Bia 1, Caio 0.
	assert.Equal(t, "12345678901", rows[0].Identifier)
	assert.Equal(t, 2, rows[0].SaleCount)
	assert.Equal(t, "882.00", rows[0].Balance.String())

	assert.Equal(t, "22222222222", rows[1].Identifier)
	assert.Equal(t, 1, rows[1].SaleCount)

	assert.Equal(t, "33333333333", rows[2].Identifier)
	assert.Equal(t, 0, rows[2].SaleCount)
	assert.Equal(t, "1000.00", rows[2].Balance.String())
}

// =============================================================================
// SUMMARY
// =============================================================================

func TestReport_Summary(t *testing.T) {
	reg := reportFixture(t)
	s := ledger.NewReport(reg.Snapshot()).Summary()

	assert.Equal(t, "238.00", s.TotalRevenue.String())
	assert.Equal(t, 3, s.SaleCount)
	assert.Equal(t, 3, s.CustomerCount)
	assert.Equal(t, 4, s.ProductCount)
	// 238 / 3, rendered at 2 decimals
	assert.Equal(t, "79.33", s.AveragePerSale.String())
}

func TestReport_Summary_EmptyLedger(t *testing.T) {
	reg := newTestRegistry()
	s := ledger.NewReport(reg.Snapshot()).Summary()

	assert.Equal(t, "0.00", s.TotalRevenue.String())
	assert.Zero(t, s.SaleCount)
	assert.Equal(t, "0.00", s.AveragePerSale.String(), "no division by zero")
}

// =============================================================================
// UNSOLD PRODUCTS
// =============================================================================

func TestReport_UnsoldProducts(t *testing.T) {
	reg := reportFixture(t)
	unsold := ledger.NewReport(reg.Snapshot()).UnsoldProducts()

	require.Len(t, unsold, 1)
	assert.Equal(t, 4, unsold[0].Code())
	assert.Equal(t, "T-Shirt", unsold[0].Name())
}
