package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/sales-ledger/ledger"
)

// =============================================================================
// CUSTOMER RECORDS
// =============================================================================

func TestRecord_IndividualRoundTrip(t *testing.T) {
	acc := ledger.NewAccount(3)
	acc.Deposit(ledger.NewMoney(1500.50))
	original, err := ledger.NewIndividual("Ana Souza", "ana@example.com", acc, "12345678901")
	require.NoError(t, err)

	line := ledger.MarshalCustomer(original)
	assert.Equal(t, "PF;12345678901;Ana Souza;ana@example.com;3;1500.50", line)

	parsed, err := ledger.ParseCustomer(line)
	require.NoError(t, err)
	assert.Equal(t, "12345678901", parsed.Identifier())
	assert.Equal(t, "Ana Souza", parsed.Name())
	assert.Equal(t, "ana@example.com", parsed.Email())
	assert.Equal(t, 3, parsed.Account().Number())
	assert.Equal(t, "1500.50", parsed.Account().Balance().String())
	assert.Equal(t, "individual", parsed.Kind())
}

func TestRecord_OrganizationRoundTrip(t *testing.T) {
	acc := ledger.NewAccount(9)
	acc.Deposit(ledger.NewMoney(25000))
	original, err := ledger.NewOrganization(
		"Padaria Central", "contato@padaria.com", acc, "12345678000199", "Padaria Central LTDA")
	require.NoError(t, err)

	line := ledger.MarshalCustomer(original)
	assert.Equal(t,
		"PJ;12345678000199;Padaria Central;contato@padaria.com;Padaria Central LTDA;9;25000.00",
		line)

	parsed, err := ledger.ParseCustomer(line)
	require.NoError(t, err)
	org, ok := parsed.(*ledger.Organization)
	require.True(t, ok)
	assert.Equal(t, "Padaria Central LTDA", org.LegalName())
	assert.Equal(t, "25000.00", org.Account().Balance().String())
	assert.Equal(t, "organization", org.Kind())
}

func TestRecord_ParseCustomer_CommaSeparatorInBalance(t *testing.T) {
	// Legacy files may carry ',' as the decimal separator.
	parsed, err := ledger.ParseCustomer("PF;12345678901;Ana;ana@example.com;1;100,50")
	require.NoError(t, err)
	assert.Equal(t, "100.50", parsed.Account().Balance().String())
}

func TestRecord_ParseCustomer_Malformed(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"unknown prefix", "XX;12345678901;Ana;ana@example.com;1;100.00"},
		{"individual missing field", "PF;12345678901;Ana;ana@example.com;1"},
		{"organization missing field", "PJ;12345678000199;Padaria;c@p.com;1;100.00"},
		{"bad account number", "PF;12345678901;Ana;ana@example.com;one;100.00"},
		{"bad balance", "PF;12345678901;Ana;ana@example.com;1;lots"},
		{"negative balance", "PF;12345678901;Ana;ana@example.com;1;-5.00"},
		{"bad document length", "PF;123;Ana;ana@example.com;1;100.00"},
		{"empty line", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.ParseCustomer(tc.line)
			assert.Error(t, err)
		})
	}
}

// =============================================================================
// PRODUCT RECORDS
// =============================================================================

func TestRecord_ProductRoundTrip(t *testing.T) {
	original := ledger.NewProduct(7, "Rice 5kg", ledger.NewMoney(25.50), ledger.CategoryFood)

	line := ledger.MarshalProduct(original)
	assert.Equal(t, "7;Rice 5kg;25.50;FOOD", line)

	parsed, err := ledger.ParseProduct(line)
	require.NoError(t, err)
	assert.Equal(t, 7, parsed.Code())
	assert.Equal(t, "Rice 5kg", parsed.Name())
	assert.Equal(t, "25.50", parsed.Price().String())
	assert.Equal(t, ledger.CategoryFood, parsed.Category())
}

func TestRecord_ParseProduct_CommaSeparatorInPrice(t *testing.T) {
	parsed, err := ledger.ParseProduct("2;Soap;3,20;HYGIENE")
	require.NoError(t, err)
	assert.Equal(t, "3.20", parsed.Price().String())
}

func TestRecord_ParseProduct_Malformed(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"missing field", "7;Rice;25.50"},
		{"extra field", "7;Rice;25.50;FOOD;extra"},
		{"bad code", "seven;Rice;25.50;FOOD"},
		{"bad price", "7;Rice;cheap;FOOD"},
		{"unknown category", "7;Rice;25.50;GROCERY"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.ParseProduct(tc.line)
			assert.Error(t, err)
		})
	}
}
