package store

import (
	"context"

	"libreria-pos/model"

	"github.com/google/uuid"
)

// Tables: categories, products, clients, sales, sale_items.
// Every write returns the row as the store persisted it.

type Store interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	InsertCategory(ctx context.Context, in model.CategoryInput) (model.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, patch model.CategoryPatch) (model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListProducts(ctx context.Context) ([]model.Product, error)
	InsertProduct(ctx context.Context, in model.ProductInput) (model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch model.ProductPatch) (model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	UpdateStock(ctx context.Context, productID uuid.UUID, newStock int) (model.Product, error)

	ListClients(ctx context.Context) ([]model.Client, error)
	InsertClient(ctx context.Context, in model.ClientInput) (model.Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error

	// ListSales returns sales with their items, oldest first.
	ListSales(ctx context.Context) ([]model.Sale, error)
	// InsertSale writes the sale header only; Items is ignored.
	InsertSale(ctx context.Context, sale model.Sale) (model.Sale, error)
	InsertSaleItems(ctx context.Context, saleID uuid.UUID, items []model.SaleItem) ([]model.SaleItem, error)
	DeleteSale(ctx context.Context, id uuid.UUID) error

	Close() error
}

var (
	_ Store = (*PostgresStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
