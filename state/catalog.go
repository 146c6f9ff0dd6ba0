package state

import (
	"context"
	"fmt"

	"libreria-pos/model"

	"github.com/google/uuid"
)

// --- products ---

func (st *State) CreateProduct(ctx context.Context, in model.ProductInput) (model.Product, error) {
	p, err := st.store.InsertProduct(ctx, in)
	if err != nil {
		return model.Product{}, fmt.Errorf("insert product: %w", err)
	}
	st.mu.Lock()
	st.products = replace(st.products, p, productID)
	st.mu.Unlock()
	return p, nil
}

func (st *State) UpdateProduct(ctx context.Context, id uuid.UUID, patch model.ProductPatch) (model.Product, error) {
	p, err := st.store.UpdateProduct(ctx, id, patch)
	if err != nil {
		return model.Product{}, fmt.Errorf("update product %s: %w", id, err)
	}
	st.mu.Lock()
	st.products = replace(st.products, p, productID)
	st.mu.Unlock()
	return p, nil
}

func (st *State) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := st.store.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	st.mu.Lock()
	st.products = remove(st.products, id, productID)
	st.mu.Unlock()
	return nil
}

// AdjustStock sets the absolute stock of a product.
func (st *State) AdjustStock(ctx context.Context, id uuid.UUID, newStock int) (model.Product, error) {
	if newStock < 0 {
		return model.Product{}, model.ErrNegativeStock
	}
	return st.writeStock(ctx, id, newStock)
}

// DecrementStock lowers stock by qty, floored at zero. The local product is
// replaced with the row the store reports as written.
func (st *State) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (model.Product, error) {
	p, ok := st.Product(id)
	if !ok {
		return model.Product{}, fmt.Errorf("product %s: %w", id, model.ErrNotFound)
	}
	return st.writeStock(ctx, id, max(0, p.Stock-qty))
}

func (st *State) writeStock(ctx context.Context, id uuid.UUID, stock int) (model.Product, error) {
	p, err := st.store.UpdateStock(ctx, id, stock)
	if err != nil {
		return model.Product{}, fmt.Errorf("update stock %s: %w", id, err)
	}
	st.mu.Lock()
	st.products = replace(st.products, p, productID)
	st.mu.Unlock()
	st.log.Debug("stock written", "product", p.ID, "stock", p.Stock)
	return p, nil
}

// --- categories ---

func (st *State) CreateCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	c, err := st.store.InsertCategory(ctx, in)
	if err != nil {
		return model.Category{}, fmt.Errorf("insert category: %w", err)
	}
	st.mu.Lock()
	st.categories = replace(st.categories, c, categoryID)
	st.mu.Unlock()
	return c, nil
}

func (st *State) UpdateCategory(ctx context.Context, id uuid.UUID, patch model.CategoryPatch) (model.Category, error) {
	c, err := st.store.UpdateCategory(ctx, id, patch)
	if err != nil {
		return model.Category{}, fmt.Errorf("update category %s: %w", id, err)
	}
	st.mu.Lock()
	st.categories = replace(st.categories, c, categoryID)
	st.mu.Unlock()
	return c, nil
}

// DeleteCategory refuses, without calling the store, while any product
// references the category.
func (st *State) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	st.mu.RLock()
	_, known := find(st.categories, id, categoryID)
	inUse := 0
	for _, p := range st.products {
		if p.InCategory(id) {
			inUse++
		}
	}
	st.mu.RUnlock()

	if !known {
		return fmt.Errorf("category %s: %w", id, model.ErrNotFound)
	}
	if inUse > 0 {
		return fmt.Errorf("%w: %d product(s) reference category %s", model.ErrCategoryInUse, inUse, id)
	}
	if err := st.store.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	st.mu.Lock()
	st.categories = remove(st.categories, id, categoryID)
	st.mu.Unlock()
	return nil
}

// CategoryUsage counts the products referencing each category.
func (st *State) CategoryUsage() map[uuid.UUID]int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make(map[uuid.UUID]int, len(st.categories))
	for _, p := range st.products {
		if p.CategoryID != nil {
			out[*p.CategoryID]++
		}
	}
	return out
}

// --- clients ---

func (st *State) CreateClient(ctx context.Context, in model.ClientInput) (model.Client, error) {
	c, err := st.store.InsertClient(ctx, in)
	if err != nil {
		return model.Client{}, fmt.Errorf("insert client: %w", err)
	}
	st.mu.Lock()
	st.clients = replace(st.clients, c, clientID)
	st.mu.Unlock()
	return c, nil
}

func (st *State) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if err := st.store.DeleteClient(ctx, id); err != nil {
		return fmt.Errorf("delete client %s: %w", id, err)
	}
	st.mu.Lock()
	st.clients = remove(st.clients, id, clientID)
	st.mu.Unlock()
	return nil
}
