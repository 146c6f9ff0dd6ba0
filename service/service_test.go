package service

import (
	"context"
	"errors"
	"testing"

	"libreria-pos/model"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
)

func TestCreateProductValidationAndForwarding(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// name empty -> error
	_, err := f.svc.CreateProduct(ctx, model.ProductInput{Name: "", Price: decimal.NewFromInt(1)})
	var ve *model.ValidationError
	if !errors.As(err, &ve) || ve.Field != "name" {
		t.Fatalf("expected name validation error, got %v", err)
	}

	// negative price -> error
	if _, err := f.svc.CreateProduct(ctx, model.ProductInput{Name: "n", Price: decimal.NewFromInt(-1)}); !errors.Is(err, model.ErrNegativePrice) {
		t.Fatalf("expected negative price error, got %v", err)
	}

	// negative stock -> error
	if _, err := f.svc.CreateProduct(ctx, model.ProductInput{Name: "n", Stock: -1}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error for negative stock, got %v", err)
	}

	// unknown category -> error
	missing := uuid.New()
	if _, err := f.svc.CreateProduct(ctx, model.ProductInput{Name: "n", CategoryID: &missing}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error for unknown category, got %v", err)
	}

	// OK path -> stored and visible locally
	p, err := f.svc.CreateProduct(ctx, model.ProductInput{Name: "Lapicero Azul", Price: decimal.RequireFromString("2.00"), Stock: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.svc.ListProducts(); len(got) != 1 || got[0].ID != p.ID {
		t.Fatalf("expected created product listed, got %+v", got)
	}
}

func TestUpdateProductValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Borrador", "1.50", 30)

	empty := ""
	if _, err := f.svc.UpdateProduct(ctx, p.ID, model.ProductPatch{Name: &empty}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}
	neg := decimal.NewFromInt(-3)
	if _, err := f.svc.UpdateProduct(ctx, p.ID, model.ProductPatch{Price: &neg}); !errors.Is(err, model.ErrNegativePrice) {
		t.Fatalf("expected negative price error, got %v", err)
	}

	cat, err := f.svc.CreateCategory(ctx, model.CategoryInput{Name: "Útiles"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	got, err := f.svc.UpdateProduct(ctx, p.ID, model.ProductPatch{CategoryID: &cat.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CategoryID == nil || *got.CategoryID != cat.ID || got.Stock != 30 {
		t.Fatalf("unexpected product after patch: %+v", got)
	}
}

func TestUpdateStockRejectsNegative(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Borrador", "1.50", 30)
	if _, err := f.svc.UpdateStock(context.Background(), p.ID, -1); !errors.Is(err, model.ErrNegativeStock) {
		t.Fatalf("expected negative stock error, got %v", err)
	}
	got, err := f.svc.UpdateStock(context.Background(), p.ID, 0)
	if err != nil || got.Stock != 0 {
		t.Fatalf("expected stock 0, got %+v, %v", got, err)
	}
}

func TestCategoriesCountProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.CreateCategory(ctx, model.CategoryInput{}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error for empty category name, got %v", err)
	}
	cat, err := f.svc.CreateCategory(ctx, model.CategoryInput{Name: "Papel"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := f.svc.CreateProduct(ctx, model.ProductInput{Name: "Hojas Bond A4", Price: decimal.NewFromInt(12), Stock: 20, CategoryID: &cat.ID}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	got := f.svc.ListCategories()
	if len(got) != 1 || got[0].Products != 1 {
		t.Fatalf("expected one category with one product, got %+v", got)
	}
	if err := f.svc.DeleteCategory(ctx, cat.ID); !errors.Is(err, model.ErrCategoryInUse) {
		t.Fatalf("expected category in use, got %v", err)
	}
}

func TestNamesAreTrimmed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	blank := "   "
	if _, err := f.svc.CreateCategory(ctx, model.CategoryInput{Name: blank}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error for blank category name, got %v", err)
	}
	if _, err := f.svc.CreateProduct(ctx, model.ProductInput{Name: "\t ", Price: decimal.NewFromInt(1)}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error for blank product name, got %v", err)
	}
	if _, err := f.svc.CreateClient(ctx, model.ClientInput{Name: blank, Document: "45678912"}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error for blank client name, got %v", err)
	}
	if _, err := f.svc.CreateClient(ctx, model.ClientInput{Name: "Ana", Document: "  1234567  "}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error for padded short document, got %v", err)
	}

	cat, err := f.svc.CreateCategory(ctx, model.CategoryInput{Name: "  Papel "})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if cat.Name != "Papel" {
		t.Fatalf("expected trimmed name, got %q", cat.Name)
	}
	if _, err := f.svc.UpdateCategory(ctx, cat.ID, model.CategoryPatch{Name: &blank}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error for blank category patch, got %v", err)
	}

	p := f.product(t, " Borrador ", "1.50", 30)
	if p.Name != "Borrador" {
		t.Fatalf("expected trimmed product name, got %q", p.Name)
	}
	if _, err := f.svc.UpdateProduct(ctx, p.ID, model.ProductPatch{Name: &blank}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error for blank product patch, got %v", err)
	}
	if got, _ := f.state.Product(p.ID); got.Name != "Borrador" {
		t.Fatalf("expected product unchanged, got %q", got.Name)
	}
}

func TestCreateClientValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		in    model.ClientInput
		field string
	}{
		{"missing name", model.ClientInput{Document: "45678912"}, "name"},
		{"short document", model.ClientInput{Name: "Ana", Document: "1234"}, "document"},
		{"bad email", model.ClientInput{Name: "Ana", Document: "45678912", Email: "ana-at-mail"}, "email"},
		{"bad document type", model.ClientInput{Name: "Ana", Document: "45678912", DocumentType: "PAS"}, "document_type"},
	}
	for _, tc := range cases {
		_, err := f.svc.CreateClient(ctx, tc.in)
		var ve *model.ValidationError
		if !errors.As(err, &ve) || ve.Field != tc.field {
			t.Fatalf("%s: expected validation error on %s, got %v", tc.name, tc.field, err)
		}
	}

	c, err := f.svc.CreateClient(ctx, model.ClientInput{Name: "Ana", Document: "45678912", Email: "ana@mail.pe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.DocumentType != model.DocumentDNI {
		t.Fatalf("expected default DNI, got %q", c.DocumentType)
	}
}

func TestAddToCartCountsStockRejections(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cuaderno A4", "8.50", 3)

	if err := f.svc.AddToCart(p.ID, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.svc.AddToCart(p.ID, 2); !errors.Is(err, model.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if err := f.svc.UpdateCartQuantity(p.ID, 4); !errors.Is(err, model.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if got := testutil.ToFloat64(f.metrics.stockRejections); got != 2 {
		t.Fatalf("expected 2 rejections, got %v", got)
	}
	cart := f.svc.GetCart()
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 2 || !cart.Total.Equal(decimal.RequireFromString("17.00")) {
		t.Fatalf("expected cart unchanged at 2 / 17.00, got %+v", cart)
	}

	// unknown product is ignored
	if err := f.svc.AddToCart(uuid.New(), 1); err != nil {
		t.Fatalf("unexpected error for unknown product: %v", err)
	}
	f.svc.RemoveFromCart(p.ID)
	if got := f.svc.GetCart(); len(got.Lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", got)
	}
}

func TestReportUsesClock(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cuaderno A4", "8.50", 3)
	c := f.client(t, "Ana Torres")
	if err := f.svc.AddToCart(p.ID, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := f.svc.ChooseClient(ClientChoice{ClientID: &c.ID}); err != nil {
		t.Fatalf("choose: %v", err)
	}
	if _, err := f.svc.Checkout(context.Background()); err != nil {
		t.Fatalf("checkout: %v", err)
	}

	d := f.svc.Dashboard()
	if d.SalesToday != 1 || !d.RevenueToday.Equal(decimal.RequireFromString("17.00")) {
		t.Fatalf("unexpected dashboard: %+v", d)
	}
	r := f.svc.Report()
	if r.Summary.LowStockProducts != 1 || r.LowStock[0].Stock != 1 {
		t.Fatalf("unexpected low stock: %+v", r.LowStock)
	}
}
