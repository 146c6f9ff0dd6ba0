package service

import (
	"context"

	"libreria-pos/model"

	"github.com/google/uuid"
)

type ServiceInterface interface {
	ListProducts() []model.Product
	CreateProduct(ctx context.Context, in model.ProductInput) (model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch model.ProductPatch) (model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	UpdateStock(ctx context.Context, id uuid.UUID, newStock int) (model.Product, error)

	ListCategories() []CategoryDTO
	CreateCategory(ctx context.Context, in model.CategoryInput) (model.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, patch model.CategoryPatch) (model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListClients() []model.Client
	CreateClient(ctx context.Context, in model.ClientInput) (model.Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error

	GetCart() CartDTO
	AddToCart(productID uuid.UUID, qty int) error
	UpdateCartQuantity(productID uuid.UUID, qty int) error
	RemoveFromCart(productID uuid.UUID)
	ClearCart()
	ChooseClient(choice ClientChoice) error
	Checkout(ctx context.Context) (*Receipt, error)

	ListSales() []model.Sale
	Report() Report
	Dashboard() Dashboard
}

var _ ServiceInterface = (*Service)(nil)
