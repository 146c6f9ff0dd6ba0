package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"libreria-pos/model"
	"libreria-pos/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Handler is the HTTP layer that talks to service.Service
type Handler struct {
	svc service.ServiceInterface
}

// NewHandler returns a Handler instance
func NewHandler(s service.ServiceInterface) *Handler {
	return &Handler{svc: s}
}

// RegisterRoutes registers all routes on the provided router
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods("GET")

	// Products
	r.HandleFunc("/products", h.ListProducts).Methods("GET")
	r.HandleFunc("/products", h.CreateProduct).Methods("POST")
	r.HandleFunc("/products/{id}", h.UpdateProduct).Methods("PUT")
	r.HandleFunc("/products/{id}", h.DeleteProduct).Methods("DELETE")
	r.HandleFunc("/products/{id}/stock", h.UpdateStock).Methods("PUT")

	// Categories
	r.HandleFunc("/categories", h.ListCategories).Methods("GET")
	r.HandleFunc("/categories", h.CreateCategory).Methods("POST")
	r.HandleFunc("/categories/{id}", h.UpdateCategory).Methods("PUT")
	r.HandleFunc("/categories/{id}", h.DeleteCategory).Methods("DELETE")

	// Clients
	r.HandleFunc("/clients", h.ListClients).Methods("GET")
	r.HandleFunc("/clients", h.CreateClient).Methods("POST")
	r.HandleFunc("/clients/{id}", h.DeleteClient).Methods("DELETE")

	// Cart
	r.HandleFunc("/cart", h.GetCart).Methods("GET")
	r.HandleFunc("/cart", h.ClearCart).Methods("DELETE")
	r.HandleFunc("/cart/add", h.AddToCart).Methods("POST")
	r.HandleFunc("/cart/update", h.UpdateCart).Methods("POST")
	r.HandleFunc("/cart/remove", h.RemoveFromCart).Methods("POST")
	r.HandleFunc("/cart/client", h.ChooseClient).Methods("POST")

	// Checkout
	r.HandleFunc("/checkout/order", h.Checkout).Methods("POST")
	r.HandleFunc("/sales", h.ListSales).Methods("GET")

	// Reports
	r.HandleFunc("/reports", h.Report).Methods("GET")
	r.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
}

// --- helpers ---
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInsufficientStock),
		errors.Is(err, model.ErrConflict),
		errors.Is(err, model.ErrConstraint):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceErr writes err with its mapped status. Stock errors carry the
// available quantity, commit errors the step log.
func writeServiceErr(w http.ResponseWriter, err error) {
	body := map[string]interface{}{"error": err.Error()}
	var se *model.InsufficientStockError
	if errors.As(err, &se) {
		body["product_id"] = se.ProductID
		body["requested"] = se.Requested
		body["available"] = se.Available
	}
	var ce *service.CommitError
	if errors.As(err, &ce) {
		body["step"] = ce.Step
		body["steps"] = ce.Steps
	}
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		body["field"] = ve.Field
	}
	writeJSON(w, statusFor(err), body)
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// pathID parses the {id} route variable.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
