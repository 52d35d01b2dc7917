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

func newTestCustomer(t *testing.T, opening float64) ledger.Customer {
	t.Helper()
	acc := ledger.NewAccount(1)
	if opening > 0 {
		require.True(t, acc.Deposit(ledger.NewMoney(opening)))
	}
	c, err := ledger.NewIndividual("Ana Souza", "ana@example.com", acc, "12345678901")
	require.NoError(t, err)
	return c
}

// =============================================================================
// ITEM ACCUMULATION
// =============================================================================

func TestSale_AddItem_CapturesPriceAtAddTime(t *testing.T) {
	// GIVEN: a product priced 50
	customer := newTestCustomer(t, 0)
	product := ledger.NewProduct(1, "Rice", ledger.NewMoney(50), ledger.CategoryFood)
	sale := ledger.NewSale(1, customer)

	// WHEN: an item is added and the price changes afterwards
	require.NoError(t, sale.AddItem(product, 3))
	product.SetPrice(ledger.NewMoney(80))

	// THEN: the historical subtotal keeps the captured price
	assert.Equal(t, "150.00", sale.Total().String())

	items := sale.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "50.00", items[0].UnitPrice.String())
	assert.Equal(t, 3, items[0].Quantity)
}

func TestSale_Total_RecomputedAcrossAdditions(t *testing.T) {
	customer := newTestCustomer(t, 0)
	rice := ledger.NewProduct(1, "Rice", ledger.NewMoney(25.50), ledger.CategoryFood)
	soap := ledger.NewProduct(2, "Soap", ledger.NewMoney(3.20), ledger.CategoryHygiene)
	sale := ledger.NewSale(1, customer)

	assert.Equal(t, "0.00", sale.Total().String())

	require.NoError(t, sale.AddItem(rice, 2))
	assert.Equal(t, "51.00", sale.Total().String())

	require.NoError(t, sale.AddItem(soap, 5))
	assert.Equal(t, "67.00", sale.Total().String())
}

func TestSale_AddItem_NonPositiveQuantity_Rejected(t *testing.T) {
	customer := newTestCustomer(t, 0)
	product := ledger.NewProduct(1, "Rice", ledger.NewMoney(10), ledger.CategoryFood)
	sale := ledger.NewSale(1, customer)

	assert.ErrorIs(t, sale.AddItem(product, 0), ledger.ErrInvalidQuantity)
	assert.ErrorIs(t, sale.AddItem(product, -2), ledger.ErrInvalidQuantity)
	assert.Empty(t, sale.Items())
}

// =============================================================================
// FINALIZE - STATE MACHINE
// =============================================================================

func TestSale_Finalize_DebitsAccount(t *testing.T) {
	// Scenario from the ledger's contract: 500 balance, 3 x 50 = 150.
	customer := newTestCustomer(t, 500)
	product := ledger.NewProduct(1, "Widget", ledger.NewMoney(50), ledger.CategoryOther)
	sale := ledger.NewSale(1, customer)
	require.NoError(t, sale.AddItem(product, 3))

	require.NoError(t, sale.Finalize())

	assert.Equal(t, ledger.SaleFinalized, sale.Status())
	assert.Equal(t, "350.00", customer.Account().Balance().String())
}

func TestSale_Finalize_InsufficientFunds_StaysOpen(t *testing.T) {
	// GIVEN: balance 100, sale total 150
	customer := newTestCustomer(t, 100)
	product := ledger.NewProduct(1, "Widget", ledger.NewMoney(150), ledger.CategoryOther)
	sale := ledger.NewSale(1, customer)
	require.NoError(t, sale.AddItem(product, 1))

	// WHEN: finalizing
	err := sale.Finalize()

	// THEN: the failure propagates, nothing was debited, the sale is
	// still open
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	assert.Equal(t, ledger.SaleOpen, sale.Status())
	assert.Equal(t, "100.00", customer.Account().Balance().String())

	// AND: after a 100 deposit the retry succeeds exactly once
	require.True(t, customer.Account().Deposit(ledger.NewMoney(100)))
	require.NoError(t, sale.Finalize())
	assert.Equal(t, ledger.SaleFinalized, sale.Status())
	assert.Equal(t, "50.00", customer.Account().Balance().String())
}

func TestSale_Finalize_Twice_NoDoubleDebit(t *testing.T) {
	customer := newTestCustomer(t, 500)
	product := ledger.NewProduct(1, "Widget", ledger.NewMoney(100), ledger.CategoryOther)
	sale := ledger.NewSale(1, customer)
	require.NoError(t, sale.AddItem(product, 1))

	require.NoError(t, sale.Finalize())
	err := sale.Finalize()

	assert.ErrorIs(t, err, ledger.ErrSaleFinalized)
	assert.Equal(t, "400.00", customer.Account().Balance().String(), "debited exactly once")
}

func TestSale_AddItem_AfterFinalize_Rejected(t *testing.T) {
	customer := newTestCustomer(t, 500)
	product := ledger.NewProduct(1, "Widget", ledger.NewMoney(100), ledger.CategoryOther)
	sale := ledger.NewSale(1, customer)
	require.NoError(t, sale.AddItem(product, 1))
	require.NoError(t, sale.Finalize())

	err := sale.AddItem(product, 1)

	assert.ErrorIs(t, err, ledger.ErrSaleFinalized)
	assert.Len(t, sale.Items(), 1)
}

func TestSale_Finalize_EmptySale_Rejected(t *testing.T) {
	// A sale with no items has a zero total; a zero debit is invalid,
	// so the sale stays open.
	customer := newTestCustomer(t, 500)
	sale := ledger.NewSale(1, customer)

	err := sale.Finalize()

	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
	assert.Equal(t, ledger.SaleOpen, sale.Status())
	assert.Equal(t, "500.00", customer.Account().Balance().String())
}
