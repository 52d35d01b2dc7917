/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for the HTTP surface. They decouple the domain model
  (Money, Customer variants, Sale state) from the wire format:
  monetary values cross the wire as 2-decimal strings, customers are
  flattened with a "kind" discriminator.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - ledger/report.go: report result types these mirror
*/
package api

import (
	"time"

	"github.com/warp/sales-ledger/ledger"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// CustomerDTO represents either customer variant in API responses.
type CustomerDTO struct {
	Identifier    string `json:"identifier"`
	Kind          string `json:"kind"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	LegalName     string `json:"legal_name,omitempty"`
	AccountNumber int    `json:"account_number"`
	Balance       string `json:"balance"`
}

// RegisterCustomerRequest creates a customer. Kind selects the
// variant: "individual" (11-digit identifier) or "organization"
// (14-digit identifier + legal name).
type RegisterCustomerRequest struct {
	Kind       string `json:"kind"`
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	LegalName  string `json:"legal_name,omitempty"`
}

// DepositRequest adds funds to a customer's account.
type DepositRequest struct {
	Amount float64 `json:"amount"`
}

// ProductDTO represents a catalog entry.
type ProductDTO struct {
	Code     int    `json:"code"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
}

// RegisterProductRequest creates a product.
type RegisterProductRequest struct {
	Code     int     `json:"code"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// OpenSaleRequest opens a sale for a customer.
type OpenSaleRequest struct {
	CustomerID string `json:"customer_id"`
}

// AddItemRequest appends a line item to an open sale.
type AddItemRequest struct {
	ProductCode int `json:"product_code"`
	Quantity    int `json:"quantity"`
}

// LineItemDTO is one line of a sale.
type LineItemDTO struct {
	ProductCode int    `json:"product_code"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

// SaleDTO represents a sale with its items and running total.
type SaleDTO struct {
	Code       int           `json:"code"`
	CustomerID string        `json:"customer_id"`
	CreatedAt  string        `json:"created_at"`
	Status     string        `json:"status"`
	Items      []LineItemDTO `json:"items"`
	Total      string        `json:"total"`
}

// =============================================================================
// REPORT TYPES
// =============================================================================

// ProductSalesDTO is one row of the products-sold ranking.
type ProductSalesDTO struct {
	Code         int    `json:"code"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	QuantitySold int    `json:"quantity_sold"`
	Revenue      string `json:"revenue"`
}

// PurchaseRecordDTO is one entry of a customer's purchase history.
type PurchaseRecordDTO struct {
	SaleCode  int    `json:"sale_code"`
	Date      string `json:"date"`
	Total     string `json:"total"`
	ItemCount int    `json:"item_count"`
}

// CustomerRankDTO is one row of the top-customers-by-spend ranking.
type CustomerRankDTO struct {
	Identifier    string `json:"identifier"`
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	TotalSpent    string `json:"total_spent"`
	PurchaseCount int    `json:"purchase_count"`
	AverageTicket string `json:"average_ticket"`
}

// CustomerActivityDTO pairs balance with sale count for one customer.
type CustomerActivityDTO struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Balance    string `json:"balance"`
	SaleCount  int    `json:"sale_count"`
}

// SummaryDTO holds the ledger-wide totals.
type SummaryDTO struct {
	TotalRevenue   string `json:"total_revenue"`
	SaleCount      int    `json:"sale_count"`
	CustomerCount  int    `json:"customer_count"`
	ProductCount   int    `json:"product_count"`
	AveragePerSale string `json:"average_per_sale"`
}

// ScenarioDTO describes a demo dataset.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a demo dataset to seed.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toCustomerDTO(c ledger.Customer) CustomerDTO {
	dto := CustomerDTO{
		Identifier:    c.Identifier(),
		Kind:          c.Kind(),
		Name:          c.Name(),
		Email:         c.Email(),
		AccountNumber: c.Account().Number(),
		Balance:       c.Account().Balance().String(),
	}
	if org, ok := c.(*ledger.Organization); ok {
		dto.LegalName = org.LegalName()
	}
	return dto
}

func toProductDTO(p *ledger.Product) ProductDTO {
	return ProductDTO{
		Code:     p.Code(),
		Name:     p.Name(),
		Price:    p.Price().String(),
		Category: p.Category().String(),
	}
}

func toSaleDTO(s *ledger.Sale) SaleDTO {
	items := s.Items()
	dtos := make([]LineItemDTO, len(items))
	for i, it := range items {
		dtos[i] = LineItemDTO{
			ProductCode: it.ProductCode,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice.String(),
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal().String(),
		}
	}
	return SaleDTO{
		Code:       s.Code(),
		CustomerID: s.Customer().Identifier(),
		CreatedAt:  s.CreatedAt().Format(time.RFC3339),
		Status:     string(s.Status()),
		Items:      dtos,
		Total:      s.Total().String(),
	}
}
