package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"libreria-pos/model"

	"github.com/google/uuid"
)

// MemoryStore is a process-local Store with the same referential rules as the
// Postgres schema. It backs development runs and tests.
type MemoryStore struct {
	mu sync.Mutex

	categories map[uuid.UUID]model.Category
	products   map[uuid.UUID]model.Product
	clients    map[uuid.UUID]model.Client
	sales      map[uuid.UUID]model.Sale

	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories: map[uuid.UUID]model.Category{},
		products:   map[uuid.UUID]model.Product{},
		clients:    map[uuid.UUID]model.Client{},
		sales:      map[uuid.UUID]model.Sale{},
		now:        time.Now,
	}
}

func (m *MemoryStore) Close() error { return nil }

func constraint(format string, args ...any) error {
	return fmt.Errorf("%w: %s", model.ErrConstraint, fmt.Sprintf(format, args...))
}

func byName[T any](name func(T) string) func(a, b T) int {
	return func(a, b T) int { return strings.Compare(name(a), name(b)) }
}

func values[K comparable, V any](m map[K]V) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

// --- categories ---

func (m *MemoryStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := values(m.categories)
	slices.SortStableFunc(out, byName(func(c model.Category) string { return c.Name }))
	return out, nil
}

func (m *MemoryStore) InsertCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	c := model.Category{ID: uuid.New(), Name: in.Name, Description: in.Description, CreatedAt: now, UpdatedAt: now}
	m.categories[c.ID] = c
	return c, nil
}

func (m *MemoryStore) UpdateCategory(ctx context.Context, id uuid.UUID, patch model.CategoryPatch) (model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return model.Category{}, ErrNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	c.UpdatedAt = m.now()
	m.categories[id] = c
	return c, nil
}

func (m *MemoryStore) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return ErrNotFound
	}
	for _, p := range m.products {
		if p.InCategory(id) {
			return constraint("product %s references category %s", p.ID, id)
		}
	}
	delete(m.categories, id)
	return nil
}

// --- products ---

func (m *MemoryStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := values(m.products)
	slices.SortStableFunc(out, byName(func(p model.Product) string { return p.Name }))
	return out, nil
}

func (m *MemoryStore) InsertProduct(ctx context.Context, in model.ProductInput) (model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if in.Price.IsNegative() {
		return model.Product{}, constraint("price must be >= 0")
	}
	if in.Stock < 0 {
		return model.Product{}, constraint("stock must be >= 0")
	}
	if in.CategoryID != nil {
		if _, ok := m.categories[*in.CategoryID]; !ok {
			return model.Product{}, constraint("category %s does not exist", *in.CategoryID)
		}
	}
	now := m.now()
	p := model.Product{
		ID:         uuid.New(),
		Name:       in.Name,
		Brand:      in.Brand,
		Price:      in.Price,
		Stock:      in.Stock,
		CategoryID: in.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.products[p.ID] = p
	return p, nil
}

func (m *MemoryStore) UpdateProduct(ctx context.Context, id uuid.UUID, patch model.ProductPatch) (model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return model.Product{}, ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Brand != nil {
		p.Brand = *patch.Brand
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return model.Product{}, constraint("price must be >= 0")
		}
		p.Price = *patch.Price
	}
	switch {
	case patch.ClearCategory:
		p.CategoryID = nil
	case patch.CategoryID != nil:
		if _, ok := m.categories[*patch.CategoryID]; !ok {
			return model.Product{}, constraint("category %s does not exist", *patch.CategoryID)
		}
		cat := *patch.CategoryID
		p.CategoryID = &cat
	}
	p.UpdatedAt = m.now()
	m.products[id] = p
	return p, nil
}

func (m *MemoryStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	for _, sale := range m.sales {
		for _, it := range sale.Items {
			if it.ProductID == id {
				return constraint("sale %s references product %s", sale.ID, id)
			}
		}
	}
	delete(m.products, id)
	return nil
}

func (m *MemoryStore) UpdateStock(ctx context.Context, productID uuid.UUID, newStock int) (model.Product, error) {
	if newStock < 0 {
		return model.Product{}, model.ErrNegativeStock
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok {
		return model.Product{}, ErrNotFound
	}
	p.Stock = newStock
	p.UpdatedAt = m.now()
	m.products[productID] = p
	return p, nil
}

// --- clients ---

func (m *MemoryStore) ListClients(ctx context.Context) ([]model.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := values(m.clients)
	slices.SortStableFunc(out, byName(func(c model.Client) string { return c.Name }))
	return out, nil
}

func (m *MemoryStore) InsertClient(ctx context.Context, in model.ClientInput) (model.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch in.DocumentType {
	case model.DocumentDNI, model.DocumentRUC:
	default:
		return model.Client{}, constraint("document_type %q", in.DocumentType)
	}
	now := m.now()
	c := model.Client{
		ID:           uuid.New(),
		Name:         in.Name,
		Document:     in.Document,
		DocumentType: in.DocumentType,
		Phone:        in.Phone,
		Email:        in.Email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.clients[c.ID] = c
	return c, nil
}

func (m *MemoryStore) DeleteClient(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[id]; !ok {
		return ErrNotFound
	}
	for _, sale := range m.sales {
		if sale.ClientID != nil && *sale.ClientID == id {
			return constraint("sale %s references client %s", sale.ID, id)
		}
	}
	delete(m.clients, id)
	return nil
}

// --- sales ---

func (m *MemoryStore) ListSales(ctx context.Context) ([]model.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Sale, 0, len(m.sales))
	for _, sale := range m.sales {
		sale.Items = slices.Clone(sale.Items)
		out = append(out, sale)
	}
	slices.SortStableFunc(out, func(a, b model.Sale) int { return a.Date.Compare(b.Date) })
	return out, nil
}

func (m *MemoryStore) InsertSale(ctx context.Context, sale model.Sale) (model.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sale.ClientID != nil {
		if _, ok := m.clients[*sale.ClientID]; !ok {
			return model.Sale{}, constraint("client %s does not exist", *sale.ClientID)
		}
	}
	if sale.Date.IsZero() {
		sale.Date = m.now()
	}
	sale.ID = uuid.New()
	sale.CreatedAt = m.now()
	sale.Items = []model.SaleItem{}
	m.sales[sale.ID] = sale
	return sale, nil
}

func (m *MemoryStore) InsertSaleItems(ctx context.Context, saleID uuid.UUID, items []model.SaleItem) ([]model.SaleItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sale, ok := m.sales[saleID]
	if !ok {
		return nil, constraint("sale %s does not exist", saleID)
	}
	out := make([]model.SaleItem, 0, len(items))
	for _, it := range items {
		if _, ok := m.products[it.ProductID]; !ok {
			return nil, constraint("product %s does not exist", it.ProductID)
		}
		if it.Quantity <= 0 {
			return nil, constraint("quantity must be > 0")
		}
		it.ID = uuid.New()
		it.SaleID = saleID
		out = append(out, it)
	}
	sale.Items = append(sale.Items, out...)
	m.sales[saleID] = sale
	return slices.Clone(out), nil
}

func (m *MemoryStore) DeleteSale(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sales[id]; !ok {
		return ErrNotFound
	}
	delete(m.sales, id)
	return nil
}
