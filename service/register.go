package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"libreria-pos/cart"
	"libreria-pos/model"
	"libreria-pos/state"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Register is the single sale session: one cart and one client choice.
type Register struct {
	mu       sync.Mutex
	state    *state.State
	cart     *cart.Cart
	choice   ClientChoice
	checkout *Checkout
	metrics  *Metrics
}

func NewRegister(st *state.State, co *Checkout, m *Metrics) *Register {
	return &Register{state: st, cart: cart.New(st), checkout: co, metrics: m}
}

type CartDTO struct {
	Lines  []cart.Line     `json:"lines"`
	Total  decimal.Decimal `json:"total"`
	Client ClientChoice    `json:"client"`
}

func (r *Register) Snapshot() CartDTO {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Register) snapshotLocked() CartDTO {
	lines := r.cart.Lines()
	if lines == nil {
		lines = []cart.Line{}
	}
	return CartDTO{Lines: lines, Total: r.cart.Total(), Client: r.choice}
}

func (r *Register) Add(productID uuid.UUID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stockSignal(r.cart.Add(productID, qty))
}

func (r *Register) UpdateQuantity(productID uuid.UUID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stockSignal(r.cart.UpdateQuantity(productID, qty))
}

func (r *Register) Remove(productID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cart.Remove(productID)
}

func (r *Register) stockSignal(err error) error {
	if errors.Is(err, model.ErrInsufficientStock) {
		r.metrics.stockRejected()
	}
	return err
}

// SelectClient picks an existing client and clears the inline fields.
func (r *Register) SelectClient(id uuid.UUID) error {
	if _, ok := r.state.Client(id); !ok {
		return fmt.Errorf("client %s: %w", id, model.ErrNotFound)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.choice = ClientChoice{ClientID: &id}
	return nil
}

// SetInlineClient records new-client fields and clears any selection.
func (r *Register) SetInlineClient(in InlineClient) error {
	if _, err := model.ParseDocumentType(string(in.DocumentType)); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.choice = ClientChoice{New: in}
	return nil
}

// Checkout commits the cart. Once the sale exists in the store the cart and
// client choice are reset, even if a later stock write failed.
func (r *Register) Checkout(ctx context.Context) (*Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	receipt, err := r.checkout.Commit(ctx, r.cart, r.choice)
	if receipt != nil {
		r.cart.Clear()
		r.choice = ClientChoice{}
	}
	return receipt, err
}

// Reset empties the cart and the client choice.
func (r *Register) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cart.Clear()
	r.choice = ClientChoice{}
}
