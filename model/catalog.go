package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentType is the kind of identity document a client presents.
type DocumentType string

const (
	DocumentDNI DocumentType = "DNI"
	DocumentRUC DocumentType = "RUC"
)

// ParseDocumentType maps an empty value to DNI.
func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(s) {
	case "":
		return DocumentDNI, nil
	case DocumentDNI, DocumentRUC:
		return DocumentType(s), nil
	default:
		return "", &ValidationError{Field: "document_type", Message: "must be DNI or RUC"}
	}
}

func (d DocumentType) String() string { return string(d) }

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// CategoryPatch holds the fields to change; nil means unchanged.
type CategoryPatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
}

type Product struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Brand      string          `json:"brand"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// InCategory reports whether p references category id.
func (p Product) InCategory(id uuid.UUID) bool {
	return p.CategoryID != nil && *p.CategoryID == id
}

type ProductInput struct {
	Name       string          `json:"name" validate:"required"`
	Brand      string          `json:"brand"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock" validate:"gte=0"`
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
}

// ProductPatch never carries stock: stock moves through sales and adjustments only.
type ProductPatch struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Brand         *string          `json:"brand,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	CategoryID    *uuid.UUID       `json:"category_id,omitempty"`
	ClearCategory bool             `json:"clear_category,omitempty"`
}

type Client struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Document     string       `json:"document"`
	DocumentType DocumentType `json:"document_type"`
	Phone        string       `json:"phone,omitempty"`
	Email        string       `json:"email,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ClientInput follows the client registration form rules.
type ClientInput struct {
	Name         string       `json:"name" validate:"required"`
	Document     string       `json:"document" validate:"required,min=8"`
	DocumentType DocumentType `json:"document_type" validate:"oneof=DNI RUC"`
	Phone        string       `json:"phone,omitempty"`
	Email        string       `json:"email,omitempty" validate:"omitempty,email"`
}
