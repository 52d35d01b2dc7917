/*
scenarios.go - Demo dataset loaders for testing and demonstrations

PURPOSE:

	Pre-built datasets that populate the registry with realistic data
	for demos and manual testing. Each scenario registers customers and
	products, then drives the normal sale lifecycle so every number in
	the reports is reproducible.

AVAILABLE SCENARIOS:

	corner-store:       two customers, small catalog, finalized sales
	mixed-clients:      individual + organization with rankings to compare
	insufficient-funds: an open sale that cannot be finalized yet

HOW SCENARIOS WORK:
 1. Replace the registry with a fresh in-memory one
 2. Register customers and deposit opening balances
 3. Register products
 4. Open sales, add items, finalize where the balance allows

NOTE:

	Loading a scenario discards current in-memory state and overwrites
	the persisted snapshot (if a store is configured). Development and
	demo environments only.

SEE ALSO:
  - handlers.go: shares the Handler context
  - ledger/registry.go: the operations scenarios drive
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/warp/sales-ledger/ledger"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "corner-store",
		Name:        "Corner Store",
		Description: "Two individuals, a small catalog, three finalized sales",
	},
	{
		ID:          "mixed-clients",
		Name:        "Mixed Clients",
		Description: "Individual and organization customers with distinct spend ranks",
	},
	{
		ID:          "insufficient-funds",
		Name:        "Insufficient Funds",
		Description: "An open sale whose total exceeds the customer's balance",
	},
}

// ListScenarios returns the available demo datasets.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario reports which dataset was loaded last, if any.
// GET /api/scenarios/current
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"scenario_id": h.scenarioID()})
}

// LoadScenario resets the registry and seeds the selected dataset.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	// Seed a fresh registry off to the side, then swap it in whole, so
	// concurrent requests see either the old state or the new one.
	reg := newMemoryRegistry()

	var err error
	switch req.ScenarioID {
	case "corner-store":
		err = loadCornerStore(reg)
	case "mixed-clients":
		err = loadMixedClients(reg)
	case "insufficient-funds":
		err = loadInsufficientFunds(reg)
	default:
		writeError(w, http.StatusNotFound, "Unknown scenario", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.swapRegistry(reg, req.ScenarioID)
	h.persist(r, reg)
	writeJSON(w, http.StatusOK, map[string]string{"scenario_id": req.ScenarioID, "status": "loaded"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

type seedCustomer struct {
	kind       string
	identifier string
	name       string
	email      string
	legalName  string
	opening    float64
}

type seedProduct struct {
	code     int
	name     string
	price    float64
	category ledger.Category
}

type seedSale struct {
	customerID string
	items      map[int]int // product code -> quantity
	finalize   bool
}

func seed(reg *ledger.Registry, customers []seedCustomer, products []seedProduct, sales []seedSale) error {
	for _, sc := range customers {
		account := reg.NewAccount()
		var c ledger.Customer
		var err error
		if sc.kind == "organization" {
			c, err = ledger.NewOrganization(sc.name, sc.email, account, sc.identifier, sc.legalName)
		} else {
			c, err = ledger.NewIndividual(sc.name, sc.email, account, sc.identifier)
		}
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", sc.identifier, err)
		}
		if !reg.RegisterCustomer(c) {
			return fmt.Errorf("seed customer %s: duplicate", sc.identifier)
		}
		if sc.opening > 0 {
			if err := reg.Deposit(sc.identifier, ledger.NewMoney(sc.opening)); err != nil {
				return fmt.Errorf("seed deposit for %s: %w", sc.identifier, err)
			}
		}
	}

	for _, sp := range products {
		p := ledger.NewProduct(sp.code, sp.name, ledger.NewMoney(sp.price), sp.category)
		if !reg.RegisterProduct(p) {
			return fmt.Errorf("seed product %d: duplicate", sp.code)
		}
	}

	for _, ss := range sales {
		sale, err := reg.OpenSale(ss.customerID)
		if err != nil {
			return fmt.Errorf("seed sale for %s: %w", ss.customerID, err)
		}
		for code, qty := range ss.items {
			if err := reg.AddItemToSale(sale.Code(), code, qty); err != nil {
				return fmt.Errorf("seed sale %d item %d: %w", sale.Code(), code, err)
			}
		}
		if ss.finalize {
			if err := reg.FinalizeSale(sale.Code()); err != nil {
				return fmt.Errorf("seed finalize sale %d: %w", sale.Code(), err)
			}
		}
	}
	return nil
}

func loadCornerStore(reg *ledger.Registry) error {
	return seed(reg,
		[]seedCustomer{
			{identifier: "12345678901", name: "Ana Souza", email: "ana@example.com", opening: 500},
			{identifier: "98765432100", name: "Bruno Lima", email: "bruno@example.com", opening: 300},
		},
		[]seedProduct{
			{code: 1, name: "Rice 5kg", price: 25.50, category: ledger.CategoryFood},
			{code: 2, name: "Soap", price: 3.20, category: ledger.CategoryHygiene},
			{code: 3, name: "Headphones", price: 120, category: ledger.CategoryElectronics},
			{code: 4, name: "T-Shirt", price: 45, category: ledger.CategoryClothing},
		},
		[]seedSale{
			{customerID: "12345678901", items: map[int]int{1: 2, 2: 5}, finalize: true},
			{customerID: "98765432100", items: map[int]int{3: 1}, finalize: true},
			{customerID: "12345678901", items: map[int]int{4: 2}, finalize: true},
		},
	)
}

func loadMixedClients(reg *ledger.Registry) error {
	return seed(reg,
		[]seedCustomer{
			{identifier: "12345678901", name: "Ana Souza", email: "ana@example.com", opening: 1000},
			{kind: "organization", identifier: "12345678000199", name: "Mercado Central",
				email: "compras@mercado.example.com", legalName: "Mercado Central Comercio Ltda", opening: 5000},
			{identifier: "98765432100", name: "Bruno Lima", email: "bruno@example.com", opening: 50},
		},
		[]seedProduct{
			{code: 10, name: "Notebook", price: 2400, category: ledger.CategoryElectronics},
			{code: 11, name: "Coffee 1kg", price: 38.90, category: ledger.CategoryFood},
			{code: 12, name: "Shampoo", price: 14.75, category: ledger.CategoryHygiene},
		},
		[]seedSale{
			{customerID: "12345678000199", items: map[int]int{10: 1, 11: 10}, finalize: true},
			{customerID: "12345678901", items: map[int]int{11: 2, 12: 3}, finalize: true},
			// Bruno's cart stays open; he shows up in activity with zero finalized debits.
			{customerID: "98765432100", items: map[int]int{12: 1}},
		},
	)
}

func loadInsufficientFunds(reg *ledger.Registry) error {
	return seed(reg,
		[]seedCustomer{
			{identifier: "12345678901", name: "Ana Souza", email: "ana@example.com", opening: 100},
		},
		[]seedProduct{
			{code: 1, name: "Smartwatch", price: 150, category: ledger.CategoryElectronics},
		},
		[]seedSale{
			// Total 150 against a balance of 100: finalize fails until a deposit.
			{customerID: "12345678901", items: map[int]int{1: 1}},
		},
	)
}
