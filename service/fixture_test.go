package service

import (
	"context"
	"testing"
	"time"

	"libreria-pos/model"
	"libreria-pos/state"
	"libreria-pos/store"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// fakeStore wraps the memory store, counts writes and lets a test replace
// individual sale/stock writes.
type fakeStore struct {
	*store.MemoryStore
	writes int

	InsertClientFn    func(ctx context.Context, in model.ClientInput) (model.Client, error)
	InsertSaleFn      func(ctx context.Context, sale model.Sale) (model.Sale, error)
	InsertSaleItemsFn func(ctx context.Context, saleID uuid.UUID, items []model.SaleItem) ([]model.SaleItem, error)
	UpdateStockFn     func(ctx context.Context, id uuid.UUID, stock int) (model.Product, error)
}

func (f *fakeStore) InsertClient(ctx context.Context, in model.ClientInput) (model.Client, error) {
	f.writes++
	if f.InsertClientFn != nil {
		return f.InsertClientFn(ctx, in)
	}
	return f.MemoryStore.InsertClient(ctx, in)
}

func (f *fakeStore) DeleteClient(ctx context.Context, id uuid.UUID) error {
	f.writes++
	return f.MemoryStore.DeleteClient(ctx, id)
}

func (f *fakeStore) InsertSale(ctx context.Context, sale model.Sale) (model.Sale, error) {
	f.writes++
	if f.InsertSaleFn != nil {
		return f.InsertSaleFn(ctx, sale)
	}
	return f.MemoryStore.InsertSale(ctx, sale)
}

func (f *fakeStore) InsertSaleItems(ctx context.Context, saleID uuid.UUID, items []model.SaleItem) ([]model.SaleItem, error) {
	f.writes++
	if f.InsertSaleItemsFn != nil {
		return f.InsertSaleItemsFn(ctx, saleID, items)
	}
	return f.MemoryStore.InsertSaleItems(ctx, saleID, items)
}

func (f *fakeStore) DeleteSale(ctx context.Context, id uuid.UUID) error {
	f.writes++
	return f.MemoryStore.DeleteSale(ctx, id)
}

func (f *fakeStore) UpdateStock(ctx context.Context, id uuid.UUID, stock int) (model.Product, error) {
	f.writes++
	if f.UpdateStockFn != nil {
		return f.UpdateStockFn(ctx, id, stock)
	}
	return f.MemoryStore.UpdateStock(ctx, id, stock)
}

var fixedNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

type fixture struct {
	store   *fakeStore
	state   *state.State
	svc     *Service
	metrics *Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs := &fakeStore{MemoryStore: store.NewMemoryStore()}
	st := state.New(fs, nil)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	m := NewMetrics(prometheus.NewRegistry())
	svc := NewService(st, fs, m, nil, WithClock(func() time.Time { return fixedNow }))
	return &fixture{store: fs, state: st, svc: svc, metrics: m}
}

func (f *fixture) product(t *testing.T, name, price string, stock int) model.Product {
	t.Helper()
	p, err := f.svc.CreateProduct(context.Background(), model.ProductInput{
		Name: name, Brand: "Stanford", Price: decimal.RequireFromString(price), Stock: stock,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func (f *fixture) client(t *testing.T, name string) model.Client {
	t.Helper()
	c, err := f.svc.CreateClient(context.Background(), model.ClientInput{Name: name, Document: "45678912", DocumentType: model.DocumentDNI})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	f.store.writes = 0
	return c
}
