// Package cart holds the pending, not yet persisted, lines of a sale.
package cart

import (
	"math"
	"slices"

	"libreria-pos/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Catalog resolves products with their current stock and price.
type Catalog interface {
	Product(id uuid.UUID) (model.Product, bool)
}

type Line struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func newLine(p model.Product, qty int) Line {
	return Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  qty,
		Subtotal:  p.Price.Mul(decimal.NewFromInt(int64(qty))),
	}
}

// Cart is an ordered set of lines keyed by product. It is not safe for
// concurrent use.
type Cart struct {
	catalog Catalog
	lines   []Line
}

func New(c Catalog) *Cart {
	return &Cart{catalog: c}
}

func (c *Cart) find(id uuid.UUID) int {
	return slices.IndexFunc(c.lines, func(l Line) bool { return l.ProductID == id })
}

// Add puts qty units of a product in the cart. Unknown products are ignored.
// When the resulting quantity would exceed stock the cart is left unchanged
// and an *model.InsufficientStockError is returned.
func (c *Cart) Add(productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return model.ErrInvalidQuantity
	}
	p, ok := c.catalog.Product(productID)
	if !ok {
		return nil
	}
	i := c.find(productID)
	have := 0
	if i >= 0 {
		have = c.lines[i].Quantity
	}
	// compare before adding so a huge qty cannot wrap around
	if qty > p.Stock-have {
		return &model.InsufficientStockError{ProductID: p.ID, Name: p.Name, Requested: saturatingAdd(have, qty), Available: p.Stock}
	}
	if i >= 0 {
		c.lines[i] = newLine(p, have+qty)
		return nil
	}
	c.lines = append(c.lines, newLine(p, qty))
	return nil
}

func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// UpdateQuantity replaces the quantity of an existing line; qty <= 0 removes it.
// Products that are unknown or not in the cart are ignored.
func (c *Cart) UpdateQuantity(productID uuid.UUID, qty int) error {
	i := c.find(productID)
	if i < 0 {
		return nil
	}
	if qty <= 0 {
		c.lines = slices.Delete(c.lines, i, i+1)
		return nil
	}
	p, ok := c.catalog.Product(productID)
	if !ok {
		return nil
	}
	if qty > p.Stock {
		return &model.InsufficientStockError{ProductID: p.ID, Name: p.Name, Requested: qty, Available: p.Stock}
	}
	c.lines[i] = newLine(p, qty)
	return nil
}

func (c *Cart) Remove(productID uuid.UUID) {
	if i := c.find(productID); i >= 0 {
		c.lines = slices.Delete(c.lines, i, i+1)
	}
}

// Total sums the line subtotals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line { return slices.Clone(c.lines) }

func (c *Cart) Len() int      { return len(c.lines) }
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }
func (c *Cart) Clear()        { c.lines = nil }
