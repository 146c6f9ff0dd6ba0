// Package state keeps the fetched catalog and sales in memory and funnels
// every mutation through the store, replacing local rows with the rows the
// store confirms.
package state

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"libreria-pos/model"
	"libreria-pos/store"

	"github.com/google/uuid"
)

type State struct {
	store store.Store
	log   *slog.Logger

	mu         sync.RWMutex
	products   []model.Product
	categories []model.Category
	clients    []model.Client
	sales      []model.Sale
}

func New(s store.Store, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	return &State{store: s, log: logger}
}

// Load replaces every collection with the store's current rows.
func (st *State) Load(ctx context.Context) error {
	categories, err := st.store.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	products, err := st.store.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	clients, err := st.store.ListClients(ctx)
	if err != nil {
		return fmt.Errorf("load clients: %w", err)
	}
	sales, err := st.store.ListSales(ctx)
	if err != nil {
		return fmt.Errorf("load sales: %w", err)
	}

	st.mu.Lock()
	st.categories, st.products, st.clients, st.sales = categories, products, clients, sales
	st.mu.Unlock()

	st.log.Info("state loaded",
		"categories", len(categories), "products", len(products),
		"clients", len(clients), "sales", len(sales))
	return nil
}

func (st *State) Products() []model.Product {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return slices.Clone(st.products)
}

func (st *State) Product(id uuid.UUID) (model.Product, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return find(st.products, id, func(p model.Product) uuid.UUID { return p.ID })
}

func (st *State) Categories() []model.Category {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return slices.Clone(st.categories)
}

func (st *State) Category(id uuid.UUID) (model.Category, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return find(st.categories, id, func(c model.Category) uuid.UUID { return c.ID })
}

func (st *State) Clients() []model.Client {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return slices.Clone(st.clients)
}

func (st *State) Client(id uuid.UUID) (model.Client, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return find(st.clients, id, func(c model.Client) uuid.UUID { return c.ID })
}

// Sales returns the sales in commit order. Item slices are shared with the
// container and must not be modified.
func (st *State) Sales() []model.Sale {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return slices.Clone(st.sales)
}

func find[T any](items []T, id uuid.UUID, key func(T) uuid.UUID) (T, bool) {
	i := slices.IndexFunc(items, func(it T) bool { return key(it) == id })
	if i < 0 {
		var zero T
		return zero, false
	}
	return items[i], true
}

// replace swaps the element with the same id, or appends it.
func replace[T any](items []T, v T, key func(T) uuid.UUID) []T {
	id := key(v)
	if i := slices.IndexFunc(items, func(it T) bool { return key(it) == id }); i >= 0 {
		items[i] = v
		return items
	}
	return append(items, v)
}

func remove[T any](items []T, id uuid.UUID, key func(T) uuid.UUID) []T {
	return slices.DeleteFunc(items, func(it T) bool { return key(it) == id })
}

func productID(p model.Product) uuid.UUID   { return p.ID }
func categoryID(c model.Category) uuid.UUID { return c.ID }
func clientID(c model.Client) uuid.UUID     { return c.ID }
