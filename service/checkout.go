package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"libreria-pos/cart"
	"libreria-pos/model"
	"libreria-pos/state"
	"libreria-pos/store"

	"github.com/google/uuid"
)

// Saga step names.
const (
	StepCreateClient   = "create_client"
	StepInsertSale     = "insert_sale"
	StepInsertItems    = "insert_items"
	StepDecrementStock = "decrement_stock"
	StepDeleteSale     = "delete_sale"
	StepDeleteClient   = "delete_client"
)

type StepStatus string

const (
	StepDone               StepStatus = "done"
	StepFailed             StepStatus = "failed"
	StepCompensated        StepStatus = "compensated"
	StepCompensationFailed StepStatus = "compensation_failed"
)

type Step struct {
	Name   string     `json:"name"`
	Target string     `json:"target,omitempty"`
	Status StepStatus `json:"status"`
	Err    string     `json:"error,omitempty"`
}

// CommitError is a store failure in the middle of a checkout. Steps holds the
// log up to and including any compensations that ran.
type CommitError struct {
	Step  string
	Steps []Step
	Err   error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("sale commit failed at %s: %v", e.Step, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }

// Receipt is a persisted sale and the step log that produced it.
type Receipt struct {
	Sale  model.Sale `json:"sale"`
	Steps []Step     `json:"steps"`
}

type compensation struct {
	name   string
	target string
	undo   func(context.Context) error
}

// saga records steps and the actions that undo them.
type saga struct {
	steps []Step
	undo  []compensation
}

func (s *saga) done(name, target string, c *compensation) {
	s.steps = append(s.steps, Step{Name: name, Target: target, Status: StepDone})
	if c != nil {
		s.undo = append(s.undo, *c)
	}
}

func (s *saga) fail(name, target string, err error) {
	s.steps = append(s.steps, Step{Name: name, Target: target, Status: StepFailed, Err: err.Error()})
}

// compensate undoes completed steps in reverse order. It keeps going after a
// failed undo so later compensations still run.
func (s *saga) compensate(ctx context.Context) {
	for i := len(s.undo) - 1; i >= 0; i-- {
		c := s.undo[i]
		if err := c.undo(ctx); err != nil {
			s.steps = append(s.steps, Step{Name: c.name, Target: c.target, Status: StepCompensationFailed, Err: err.Error()})
			continue
		}
		s.steps = append(s.steps, Step{Name: c.name, Target: c.target, Status: StepCompensated})
	}
	s.undo = nil
}

// Checkout turns a cart into a persisted sale.
type Checkout struct {
	store   store.Store
	state   *state.State
	metrics *Metrics
	log     *slog.Logger
	now     func() time.Time
}

func NewCheckout(s store.Store, st *state.State, m *Metrics, logger *slog.Logger) *Checkout {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checkout{store: s, state: st, metrics: m, log: logger, now: time.Now}
}

// Commit validates the cart and client, then writes client (when new), sale
// header, sale items and stock decrements in that order. Validation failures
// return before any store call. A failure writing the header or items undoes
// what was written and returns a *CommitError with a nil receipt. A failure
// while decrementing stock returns both the receipt, since the sale exists,
// and a *CommitError.
func (co *Checkout) Commit(ctx context.Context, c *cart.Cart, choice ClientChoice) (*Receipt, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, model.ErrEmptyCart
	}
	client, err := resolveClient(co.state, choice)
	if err != nil {
		return nil, err
	}
	items, err := co.snapshot(lines)
	if err != nil {
		return nil, err
	}

	s := &saga{}
	// compensations must run even if the request context is gone
	undoCtx := context.WithoutCancel(ctx)

	var clientID *uuid.UUID
	if client.existing != nil {
		id := client.existing.ID
		clientID = &id
	} else {
		created, err := co.state.CreateClient(ctx, *client.inline)
		if err != nil {
			s.fail(StepCreateClient, "", err)
			return nil, co.failed(s, StepCreateClient, err)
		}
		id := created.ID
		clientID = &id
		s.done(StepCreateClient, id.String(), &compensation{
			name: StepDeleteClient, target: id.String(),
			undo: func(ctx context.Context) error { return co.state.DeleteClient(ctx, id) },
		})
	}

	sale, err := co.store.InsertSale(ctx, model.Sale{
		Date:     co.now(),
		ClientID: clientID,
		Total:    model.ItemsTotal(items),
		Status:   model.SaleCompleted,
	})
	if err != nil {
		s.fail(StepInsertSale, "", err)
		s.compensate(undoCtx)
		return nil, co.failed(s, StepInsertSale, err)
	}
	saleID := sale.ID
	s.done(StepInsertSale, saleID.String(), &compensation{
		name: StepDeleteSale, target: saleID.String(),
		undo: func(ctx context.Context) error { return co.store.DeleteSale(ctx, saleID) },
	})

	written, err := co.store.InsertSaleItems(ctx, saleID, items)
	if err != nil {
		s.fail(StepInsertItems, saleID.String(), err)
		s.compensate(undoCtx)
		return nil, co.failed(s, StepInsertItems, err)
	}
	s.done(StepInsertItems, saleID.String(), nil)
	sale.Items = written
	co.state.AddSale(sale)
	co.metrics.saleCommitted(sale.Total)

	receipt := &Receipt{Sale: sale}
	for _, it := range written {
		target := it.ProductID.String()
		if _, err := co.state.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
			s.fail(StepDecrementStock, target, err)
			receipt.Steps = slices.Clone(s.steps)
			return receipt, co.failed(s, StepDecrementStock, err)
		}
		s.done(StepDecrementStock, target, nil)
	}
	receipt.Steps = s.steps

	co.log.Info("sale committed", "sale", sale.ID, "items", len(sale.Items), "total", sale.Total.StringFixed(2))
	return receipt, nil
}

// snapshot prices each line from the current product and re-checks stock.
func (co *Checkout) snapshot(lines []cart.Line) ([]model.SaleItem, error) {
	items := make([]model.SaleItem, 0, len(lines))
	for _, l := range lines {
		p, ok := co.state.Product(l.ProductID)
		if !ok {
			return nil, fmt.Errorf("product %s: %w", l.ProductID, model.ErrNotFound)
		}
		if l.Quantity > p.Stock {
			return nil, &model.InsufficientStockError{ProductID: p.ID, Name: p.Name, Requested: l.Quantity, Available: p.Stock}
		}
		items = append(items, model.NewSaleItem(p.ID, l.Quantity, p.Price))
	}
	return items, nil
}

func (co *Checkout) failed(s *saga, step string, err error) error {
	co.metrics.commitFailed(step)
	co.log.Error("sale commit failed", "step", step, "err", err, "steps", len(s.steps))
	return &CommitError{Step: step, Steps: slices.Clone(s.steps), Err: err}
}
