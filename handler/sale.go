package handler

import (
	"net/http"

	"libreria-pos/service"

	"github.com/google/uuid"
)

type cartReq struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  *int      `json:"quantity,omitempty"`
}

// GetCart handles GET /cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GetCart())
}

// ClearCart handles DELETE /cart
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearCart()
	writeJSON(w, http.StatusOK, h.svc.GetCart())
}

// AddToCart handles POST /cart/add
// body: { "product_id": "...", "quantity": 2 }, quantity defaults to 1
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartReq
	if !decode(w, r, &req) {
		return
	}
	if req.ProductID == uuid.Nil {
		writeErr(w, http.StatusBadRequest, "product_id is required")
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if err := h.svc.AddToCart(req.ProductID, qty); err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.GetCart())
}

// UpdateCart handles POST /cart/update
// body: { "product_id": "...", "quantity": 0 } removes the line
func (h *Handler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	var req cartReq
	if !decode(w, r, &req) {
		return
	}
	if req.ProductID == uuid.Nil {
		writeErr(w, http.StatusBadRequest, "product_id is required")
		return
	}
	if req.Quantity == nil {
		writeErr(w, http.StatusBadRequest, "quantity is required")
		return
	}
	if err := h.svc.UpdateCartQuantity(req.ProductID, *req.Quantity); err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.GetCart())
}

// RemoveFromCart handles POST /cart/remove
// body: { "product_id": "..." }
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req cartReq
	if !decode(w, r, &req) {
		return
	}
	if req.ProductID == uuid.Nil {
		writeErr(w, http.StatusBadRequest, "product_id is required")
		return
	}
	h.svc.RemoveFromCart(req.ProductID)
	writeJSON(w, http.StatusOK, h.svc.GetCart())
}

// ChooseClient handles POST /cart/client
// body: { "client_id": "..." } or { "new_client": { "name": "..." } }
func (h *Handler) ChooseClient(w http.ResponseWriter, r *http.Request) {
	var req service.ClientChoice
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.ChooseClient(req); err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.GetCart())
}

// Checkout handles POST /checkout/order
// A sale that was stored but whose stock update failed is still returned,
// next to the error.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.svc.Checkout(r.Context())
	if err != nil && receipt != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
			"sale":  receipt.Sale,
			"steps": receipt.Steps,
		})
		return
	}
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

// ListSales handles GET /sales
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListSales())
}
