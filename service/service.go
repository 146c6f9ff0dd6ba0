package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"libreria-pos/model"
	"libreria-pos/state"
	"libreria-pos/store"

	"github.com/google/uuid"
)

type Service struct {
	state    *state.State
	register *Register
	checkout *Checkout
	lowStock int
	now      func() time.Time
}

type Option func(*Service)

func WithLowStockThreshold(n int) Option {
	return func(s *Service) { s.lowStock = n }
}

// WithClock replaces time.Now for sale timestamps and "today" figures.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
		s.checkout.now = now
	}
}

func NewService(st *state.State, s store.Store, m *Metrics, logger *slog.Logger, opts ...Option) *Service {
	co := NewCheckout(s, st, m, logger)
	svc := &Service{
		state:    st,
		register: NewRegister(st, co, m),
		checkout: co,
		lowStock: DefaultLowStockThreshold,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// --- products ---

func (s *Service) ListProducts() []model.Product { return s.state.Products() }

func (s *Service) CreateProduct(ctx context.Context, in model.ProductInput) (model.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Brand = strings.TrimSpace(in.Brand)
	if err := validateInput(in); err != nil {
		return model.Product{}, err
	}
	if in.Price.IsNegative() {
		return model.Product{}, model.ErrNegativePrice
	}
	if err := s.checkCategory(in.CategoryID); err != nil {
		return model.Product{}, err
	}
	return s.state.CreateProduct(ctx, in)
}

func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, patch model.ProductPatch) (model.Product, error) {
	patch.Name = trimmed(patch.Name)
	patch.Brand = trimmed(patch.Brand)
	if err := validateInput(patch); err != nil {
		return model.Product{}, err
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		return model.Product{}, model.ErrNegativePrice
	}
	if !patch.ClearCategory {
		if err := s.checkCategory(patch.CategoryID); err != nil {
			return model.Product{}, err
		}
	}
	return s.state.UpdateProduct(ctx, id, patch)
}

func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.state.DeleteProduct(ctx, id)
}

func (s *Service) UpdateStock(ctx context.Context, id uuid.UUID, newStock int) (model.Product, error) {
	return s.state.AdjustStock(ctx, id, newStock)
}

func (s *Service) checkCategory(id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, ok := s.state.Category(*id); !ok {
		return &model.ValidationError{Field: "category_id", Message: "does not match a category"}
	}
	return nil
}

// trimmed returns a trimmed copy of an optional patch field.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// --- categories ---

// CategoryDTO is a category with the number of products in it.
type CategoryDTO struct {
	model.Category
	Products int `json:"products"`
}

func (s *Service) ListCategories() []CategoryDTO {
	usage := s.state.CategoryUsage()
	cats := s.state.Categories()
	out := make([]CategoryDTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryDTO{Category: c, Products: usage[c.ID]})
	}
	return out
}

func (s *Service) CreateCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validateInput(in); err != nil {
		return model.Category{}, err
	}
	return s.state.CreateCategory(ctx, in)
}

func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, patch model.CategoryPatch) (model.Category, error) {
	patch.Name = trimmed(patch.Name)
	if err := validateInput(patch); err != nil {
		return model.Category{}, err
	}
	return s.state.UpdateCategory(ctx, id, patch)
}

func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.state.DeleteCategory(ctx, id)
}

// --- clients ---

func (s *Service) ListClients() []model.Client { return s.state.Clients() }

func (s *Service) CreateClient(ctx context.Context, in model.ClientInput) (model.Client, error) {
	docType, err := model.ParseDocumentType(string(in.DocumentType))
	if err != nil {
		return model.Client{}, err
	}
	in.DocumentType = docType
	in.Name = strings.TrimSpace(in.Name)
	in.Document = strings.TrimSpace(in.Document)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in); err != nil {
		return model.Client{}, err
	}
	return s.state.CreateClient(ctx, in)
}

func (s *Service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return s.state.DeleteClient(ctx, id)
}

// --- register ---

func (s *Service) GetCart() CartDTO { return s.register.Snapshot() }

func (s *Service) AddToCart(productID uuid.UUID, qty int) error {
	return s.register.Add(productID, qty)
}

func (s *Service) UpdateCartQuantity(productID uuid.UUID, qty int) error {
	return s.register.UpdateQuantity(productID, qty)
}

func (s *Service) RemoveFromCart(productID uuid.UUID) { s.register.Remove(productID) }

// ClearCart drops every line and the client choice.
func (s *Service) ClearCart() { s.register.Reset() }

func (s *Service) ChooseClient(choice ClientChoice) error {
	if choice.selected() {
		return s.register.SelectClient(*choice.ClientID)
	}
	return s.register.SetInlineClient(choice.New)
}

func (s *Service) Checkout(ctx context.Context) (*Receipt, error) {
	return s.register.Checkout(ctx)
}

// --- reports ---

func (s *Service) ListSales() []model.Sale { return s.state.Sales() }

func (s *Service) snapshot() Snapshot {
	return Snapshot{
		Sales:      s.state.Sales(),
		Products:   s.state.Products(),
		Categories: s.state.Categories(),
		Clients:    s.state.Clients(),
	}
}

func (s *Service) Report() Report {
	return BuildReport(s.snapshot(), s.now(), s.lowStock)
}

func (s *Service) Dashboard() Dashboard {
	return BuildDashboard(s.snapshot(), s.now(), s.lowStock)
}
