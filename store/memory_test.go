package store

import (
	"context"
	"errors"
	"testing"

	"libreria-pos/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestMemoryStore_ReferentialRules(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	cat, err := m.InsertCategory(ctx, model.CategoryInput{Name: "Cuadernos"})
	if err != nil {
		t.Fatalf("InsertCategory: %v", err)
	}
	p, err := m.InsertProduct(ctx, model.ProductInput{Name: "Cuaderno A4", Price: decimal.RequireFromString("8.50"), Stock: 3, CategoryID: &cat.ID})
	if err != nil {
		t.Fatalf("InsertProduct: %v", err)
	}

	missing := uuid.New()
	if _, err := m.InsertProduct(ctx, model.ProductInput{Name: "x", CategoryID: &missing}); !errors.Is(err, model.ErrConstraint) {
		t.Fatalf("expected ErrConstraint for unknown category, got %v", err)
	}
	if err := m.DeleteCategory(ctx, cat.ID); !errors.Is(err, model.ErrConstraint) {
		t.Fatalf("expected ErrConstraint for referenced category, got %v", err)
	}

	sale, err := m.InsertSale(ctx, model.Sale{Total: decimal.RequireFromString("8.50"), Status: model.SaleCompleted})
	if err != nil {
		t.Fatalf("InsertSale: %v", err)
	}
	if _, err := m.InsertSaleItems(ctx, uuid.New(), []model.SaleItem{model.NewSaleItem(p.ID, 1, p.Price)}); !errors.Is(err, model.ErrConstraint) {
		t.Fatalf("expected ErrConstraint for unknown sale, got %v", err)
	}
	if _, err := m.InsertSaleItems(ctx, sale.ID, []model.SaleItem{model.NewSaleItem(p.ID, 1, p.Price)}); err != nil {
		t.Fatalf("InsertSaleItems: %v", err)
	}
	if err := m.DeleteProduct(ctx, p.ID); !errors.Is(err, model.ErrConstraint) {
		t.Fatalf("expected ErrConstraint for sold product, got %v", err)
	}

	sales, _ := m.ListSales(ctx)
	if len(sales) != 1 || len(sales[0].Items) != 1 {
		t.Fatalf("unexpected sales: %+v", sales)
	}
	if err := m.DeleteSale(ctx, sale.ID); err != nil {
		t.Fatalf("DeleteSale: %v", err)
	}
	if err := m.DeleteSale(ctx, sale.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_UpdateStockAndPatch(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	p, _ := m.InsertProduct(ctx, model.ProductInput{Name: "Borrador", Price: decimal.RequireFromString("1.50"), Stock: 30})

	if _, err := m.UpdateStock(ctx, p.ID, -1); !errors.Is(err, model.ErrNegativeStock) {
		t.Fatalf("expected ErrNegativeStock, got %v", err)
	}
	if _, err := m.UpdateStock(ctx, uuid.New(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, err := m.UpdateStock(ctx, p.ID, 12)
	if err != nil || got.Stock != 12 {
		t.Fatalf("UpdateStock: %+v %v", got, err)
	}

	brand := "Faber-Castell"
	price := decimal.RequireFromString("1.80")
	got, err = m.UpdateProduct(ctx, p.ID, model.ProductPatch{Brand: &brand, Price: &price})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if got.Brand != brand || !got.Price.Equal(price) || got.Name != "Borrador" || got.Stock != 12 {
		t.Fatalf("unexpected patched product: %+v", got)
	}
}
