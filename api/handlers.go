/*
handlers.go - HTTP API handlers for the sales ledger

PURPOSE:
  Exposes the ledger core over REST. Handles HTTP request/response and
  JSON; all business rules live in the ledger package.

ENDPOINTS:
  Customers:
    GET    /api/customers                  List customers
    POST   /api/customers                  Register customer (PF/PJ)
    GET    /api/customers/{id}             Get customer
    POST   /api/customers/{id}/deposits    Deposit into the account

  Products:
    GET    /api/products                   List products
    POST   /api/products                   Register product
    GET    /api/products/{code}            Get product

  Sales:
    POST   /api/sales                      Open sale
    GET    /api/sales/{code}               Sale detail
    POST   /api/sales/{code}/items         Add line item
    POST   /api/sales/{code}/finalize      Finalize (debit account)

  Reports:
    GET    /api/reports/products-sold
    GET    /api/reports/customers/{id}/purchases
    GET    /api/reports/top-customers
    GET    /api/reports/customer-activity
    GET    /api/reports/summary
    GET    /api/reports/unsold-products

ERROR HANDLING:
  - 400: validation errors (document format, category, quantity, amount)
  - 404: unknown customer/product/sale key
  - 409: duplicate key, operations on a finalized sale
  - 422: insufficient funds on finalize (sale stays open)
  - 500: internal errors

PERSISTENCE:
  When a snapshot store is configured, every successful mutation is
  followed by a best-effort snapshot save; a failing save is logged,
  never surfaced to the client.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo dataset loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/sales-ledger/ledger"
	"github.com/warp/sales-ledger/ledger/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	mu        sync.RWMutex
	registry  *ledger.Registry
	Snapshots ledger.SnapshotStore // optional; nil disables persistence

	// Scenario loaded last, if any. Guarded by mu like the registry.
	currentScenario string
}

// NewHandler creates a handler over the given registry. snapshots may
// be nil for a purely in-memory server.
func NewHandler(registry *ledger.Registry, snapshots ledger.SnapshotStore) *Handler {
	return &Handler{registry: registry, Snapshots: snapshots}
}

// Registry returns the active registry. Scenario loads swap it
// wholesale, so each handler grabs it once per request.
func (h *Handler) Registry() *ledger.Registry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.registry
}

func (h *Handler) swapRegistry(reg *ledger.Registry, scenarioID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.registry = reg
	h.currentScenario = scenarioID
}

func (h *Handler) scenarioID() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.currentScenario
}

func newMemoryRegistry() *ledger.Registry {
	return ledger.NewRegistry(
		store.NewMemory[string, ledger.Customer](),
		store.NewMemory[int, *ledger.Product](),
	)
}

// persist saves the given registry's state if a store is configured.
func (h *Handler) persist(r *http.Request, reg *ledger.Registry) {
	if h.Snapshots == nil {
		return
	}
	if err := h.Snapshots.SaveSnapshot(r.Context(), reg.Snapshot()); err != nil {
		log.Printf("snapshot save failed: %v", err)
	}
}

// =============================================================================
// CUSTOMER HANDLERS
// =============================================================================

// ListCustomers returns all registered customers.
// GET /api/customers
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers := h.Registry().ListCustomers()
	dtos := make([]CustomerDTO, len(customers))
	for i, c := range customers {
		dtos[i] = toCustomerDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RegisterCustomer creates a customer of either variant.
// POST /api/customers
func (h *Handler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req RegisterCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	reg := h.Registry()
	account := reg.NewAccount()

	var customer ledger.Customer
	var err error
	switch req.Kind {
	case "individual", "":
		customer, err = ledger.NewIndividual(req.Name, req.Email, account, req.Identifier)
	case "organization":
		customer, err = ledger.NewOrganization(req.Name, req.Email, account, req.Identifier, req.LegalName)
	default:
		writeError(w, http.StatusBadRequest, "Kind must be 'individual' or 'organization'", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid document", err)
		return
	}

	if !reg.RegisterCustomer(customer) {
		writeError(w, http.StatusConflict, "Customer already registered", nil)
		return
	}

	h.persist(r, reg)
	writeJSON(w, http.StatusCreated, toCustomerDTO(customer))
}

// GetCustomer returns one customer by identifier.
// GET /api/customers/{id}
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, ok := h.Registry().FindCustomer(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Customer not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerDTO(customer))
}

// Deposit adds funds to a customer's account.
// POST /api/customers/{id}/deposits
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	reg := h.Registry()
	err := reg.Deposit(id, ledger.NewMoney(req.Amount))
	switch {
	case errors.Is(err, ledger.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound, "Customer not found", err)
		return
	case errors.Is(err, ledger.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "Deposit amount must be positive", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Deposit failed", err)
		return
	}

	h.persist(r, reg)
	customer, _ := reg.FindCustomer(id)
	writeJSON(w, http.StatusOK, toCustomerDTO(customer))
}

// =============================================================================
// PRODUCT HANDLERS
// =============================================================================

// ListProducts returns the product catalog.
// GET /api/products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.Registry().ListProducts()
	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = toProductDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RegisterProduct creates a catalog entry.
// POST /api/products
func (h *Handler) RegisterProduct(w http.ResponseWriter, r *http.Request) {
	var req RegisterProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	category, err := ledger.ParseCategory(req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown category", err)
		return
	}

	reg := h.Registry()
	product := ledger.NewProduct(req.Code, req.Name, ledger.NewMoney(req.Price), category)
	if !reg.RegisterProduct(product) {
		writeError(w, http.StatusConflict, "Product code already registered", nil)
		return
	}

	h.persist(r, reg)
	writeJSON(w, http.StatusCreated, toProductDTO(product))
}

// GetProduct returns one product by code.
// GET /api/products/{code}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Product code must be an integer", err)
		return
	}
	product, ok := h.Registry().FindProduct(code)
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(product))
}

// =============================================================================
// SALE HANDLERS
// =============================================================================

// OpenSale opens a sale for a customer.
// POST /api/sales
func (h *Handler) OpenSale(w http.ResponseWriter, r *http.Request) {
	var req OpenSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	reg := h.Registry()
	sale, err := reg.OpenSale(req.CustomerID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Customer not found", err)
		return
	}

	h.persist(r, reg)
	writeJSON(w, http.StatusCreated, toSaleDTO(sale))
}

// GetSale returns a sale with its items and total.
// GET /api/sales/{code}
func (h *Handler) GetSale(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Sale code must be an integer", err)
		return
	}
	sale, ok := h.Registry().FindSaleByCode(code)
	if !ok {
		writeError(w, http.StatusNotFound, "Sale not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toSaleDTO(sale))
}

// AddItem appends a line item to an open sale.
// POST /api/sales/{code}/items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Sale code must be an integer", err)
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	reg := h.Registry()
	err = reg.AddItemToSale(code, req.ProductCode, req.Quantity)
	switch {
	case errors.Is(err, ledger.ErrSaleNotFound):
		writeError(w, http.StatusNotFound, "Sale not found", err)
		return
	case errors.Is(err, ledger.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "Product not found", err)
		return
	case errors.Is(err, ledger.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, "Quantity must be positive", err)
		return
	case errors.Is(err, ledger.ErrSaleFinalized):
		writeError(w, http.StatusConflict, "Sale already finalized", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to add item", err)
		return
	}

	h.persist(r, reg)
	sale, _ := reg.FindSaleByCode(code)
	writeJSON(w, http.StatusOK, toSaleDTO(sale))
}

// FinalizeSale computes the total and debits the customer's account.
// On insufficient funds the sale stays open and the shortfall is
// reported with 422.
// POST /api/sales/{code}/finalize
func (h *Handler) FinalizeSale(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Sale code must be an integer", err)
		return
	}

	reg := h.Registry()
	err = reg.FinalizeSale(code)
	var insufficientErr *ledger.InsufficientFundsError
	switch {
	case errors.Is(err, ledger.ErrSaleNotFound):
		writeError(w, http.StatusNotFound, "Sale not found", err)
		return
	case errors.Is(err, ledger.ErrSaleFinalized):
		writeError(w, http.StatusConflict, "Sale already finalized", err)
		return
	case errors.As(err, &insufficientErr):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: "Insufficient funds",
			Details: map[string]string{
				"available": insufficientErr.Available.String(),
				"requested": insufficientErr.Requested.String(),
				"shortfall": insufficientErr.Shortfall().String(),
			},
		})
		return
	case errors.Is(err, ledger.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "Sale has no debitable total", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to finalize sale", err)
		return
	}

	h.persist(r, reg)
	sale, _ := reg.FindSaleByCode(code)
	writeJSON(w, http.StatusOK, toSaleDTO(sale))
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

func (h *Handler) report() *ledger.Report {
	return ledger.NewReport(h.Registry().Snapshot())
}

// ProductsSold returns the products-sold ranking by revenue.
// GET /api/reports/products-sold
func (h *Handler) ProductsSold(w http.ResponseWriter, r *http.Request) {
	rows := h.report().ProductsSold()
	dtos := make([]ProductSalesDTO, len(rows))
	for i, row := range rows {
		dtos[i] = ProductSalesDTO{
			Code:         row.Code,
			Name:         row.Name,
			Category:     row.Category.String(),
			QuantitySold: row.QuantitySold,
			Revenue:      row.Revenue.String(),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CustomerPurchases returns one customer's purchase history.
// GET /api/reports/customers/{id}/purchases
func (h *Handler) CustomerPurchases(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.Registry().FindCustomer(id); !ok {
		writeError(w, http.StatusNotFound, "Customer not found", nil)
		return
	}

	records := h.report().CustomerPurchases(id)
	dtos := make([]PurchaseRecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = PurchaseRecordDTO{
			SaleCode:  rec.SaleCode,
			Date:      rec.Date.Format(time.RFC3339),
			Total:     rec.Total.String(),
			ItemCount: rec.ItemCount,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// TopCustomers returns the spend ranking.
// GET /api/reports/top-customers
func (h *Handler) TopCustomers(w http.ResponseWriter, r *http.Request) {
	rows := h.report().TopCustomers()
	dtos := make([]CustomerRankDTO, len(rows))
	for i, row := range rows {
		dtos[i] = CustomerRankDTO{
			Identifier:    row.Identifier,
			Name:          row.Name,
			Kind:          row.Kind,
			TotalSpent:    row.TotalSpent.String(),
			PurchaseCount: row.PurchaseCount,
			AverageTicket: row.AverageTicket.String(),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CustomerActivity returns balance + sale count for every customer.
// GET /api/reports/customer-activity
func (h *Handler) CustomerActivity(w http.ResponseWriter, r *http.Request) {
	rows := h.report().CustomerActivity()
	dtos := make([]CustomerActivityDTO, len(rows))
	for i, row := range rows {
		dtos[i] = CustomerActivityDTO{
			Identifier: row.Identifier,
			Name:       row.Name,
			Kind:       row.Kind,
			Balance:    row.Balance.String(),
			SaleCount:  row.SaleCount,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Summary returns the ledger-wide totals.
// GET /api/reports/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	s := h.report().Summary()
	writeJSON(w, http.StatusOK, SummaryDTO{
		TotalRevenue:   s.TotalRevenue.String(),
		SaleCount:      s.SaleCount,
		CustomerCount:  s.CustomerCount,
		ProductCount:   s.ProductCount,
		AveragePerSale: s.AveragePerSale.String(),
	})
}

// UnsoldProducts returns products that appear in no sale.
// GET /api/reports/unsold-products
func (h *Handler) UnsoldProducts(w http.ResponseWriter, r *http.Request) {
	products := h.report().UnsoldProducts()
	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = toProductDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
