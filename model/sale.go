package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SaleStatus string

const (
	SalePending   SaleStatus = "pending"
	SaleCompleted SaleStatus = "completed"
	SaleCancelled SaleStatus = "cancelled"
)

func ParseSaleStatus(s string) (SaleStatus, error) {
	switch SaleStatus(s) {
	case SalePending, SaleCompleted, SaleCancelled:
		return SaleStatus(s), nil
	default:
		return "", fmt.Errorf("unknown sale status %q", s)
	}
}

func (s SaleStatus) String() string { return string(s) }

type Sale struct {
	ID        uuid.UUID       `json:"id"`
	Date      time.Time       `json:"date"`
	ClientID  *uuid.UUID      `json:"client_id,omitempty"`
	Total     decimal.Decimal `json:"total"`
	Status    SaleStatus      `json:"status"`
	Items     []SaleItem      `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}

type SaleItem struct {
	ID        uuid.UUID       `json:"id"`
	SaleID    uuid.UUID       `json:"sale_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// NewSaleItem computes the subtotal from quantity and unit price.
func NewSaleItem(productID uuid.UUID, qty int, unitPrice decimal.Decimal) SaleItem {
	return SaleItem{
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: unitPrice,
		Subtotal:  unitPrice.Mul(decimal.NewFromInt(int64(qty))),
	}
}

// ItemsTotal sums the subtotals of items.
func ItemsTotal(items []SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total
}
