package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/trogers1052/stock-dashboard/internal/client"
	"github.com/trogers1052/stock-dashboard/internal/dashboard"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	list       *dashboard.ListController
	collection dashboard.Collection
	opts       []dashboard.Option
}

// NewHandler creates a new Handler. opts are passed to the forms it builds.
func NewHandler(list *dashboard.ListController, collection dashboard.Collection, opts ...dashboard.Option) *Handler {
	return &Handler{
		list:       list,
		collection: collection,
		opts:       opts,
	}
}

// GetView handles GET /view
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.list.View())
}

// Reload handles POST /view/reload
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.list.Load(r.Context()); err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusOK, h.list.View())
}

// Search handles POST /view/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	respondJSON(w, http.StatusOK, h.list.SetSearchQuery(req.Query))
}

// ResetSearch handles POST /view/search/reset
func (h *Handler) ResetSearch(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.list.ResetSearch())
}

// SelectTradeCode handles POST /view/trade-code
func (h *Handler) SelectTradeCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TradeCode string `json:"trade_code"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	respondJSON(w, http.StatusOK, h.list.SelectTradeCode(req.TradeCode))
}

// NextPage handles POST /view/next
func (h *Handler) NextPage(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.list.NextPage())
}

// PreviousPage handles POST /view/previous
func (h *Handler) PreviousPage(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.list.PreviousPage())
}

// GoToPage handles POST /view/page
func (h *Handler) GoToPage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page int `json:"page"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	respondJSON(w, http.StatusOK, h.list.GoToPage(req.Page))
}

// CreateRecord handles POST /records
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var fields models.StockFields
	if !decodeBody(w, r, &fields) {
		return
	}

	form := dashboard.NewCreateForm(h.collection, h.backToList, h.opts...)
	if err := form.SetFields(fields); err != nil {
		respondError(w, http.StatusConflict, err)
		return
	}

	record, err := form.Submit(r.Context())
	if err != nil {
		respondJSON(w, statusFor(err), formErrorResponse{Error: err.Error(), Form: form.State()})
		return
	}

	respondJSON(w, http.StatusCreated, record)
}

// GetRecordForm handles GET /records/{id}
func (h *Handler) GetRecordForm(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	form := dashboard.NewEditForm(h.collection, nil, h.opts...)
	if err := form.Load(r.Context(), id); err != nil {
		respondError(w, statusFor(err), err)
		return
	}

	respondJSON(w, http.StatusOK, form.State())
}

// UpdateRecord handles PUT /records/{id}
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var fields models.StockFields
	if !decodeBody(w, r, &fields) {
		return
	}

	form := dashboard.NewEditForm(h.collection, h.backToList, h.opts...)
	if err := form.Load(r.Context(), id); err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	if err := form.SetFields(fields); err != nil {
		respondError(w, http.StatusConflict, err)
		return
	}

	if err := form.Submit(r.Context()); err != nil {
		respondJSON(w, statusFor(err), formErrorResponse{Error: err.Error(), Form: form.State()})
		return
	}

	respondJSON(w, http.StatusOK, form.State())
}

// DeleteRecord handles DELETE /records/{id}
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.list.Delete(r.Context(), id); err != nil {
		respondError(w, statusFor(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Export handles POST /export
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		respondError(w, http.StatusBadRequest, errors.New("path is required"))
		return
	}

	msg, err := h.list.Export(r.Context(), req.Path)
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// backToList refreshes the working set after a form submits, the way the
// list page reloads when navigated to
func (h *Handler) backToList(ctx context.Context) {
	if err := h.list.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to reload records after form submit")
	}
}

type formErrorResponse struct {
	Error string              `json:"error"`
	Form  dashboard.FormState `json:"form"`
}

// statusFor maps upstream failures onto a response status
func statusFor(err error) int {
	var serverErr *client.ServerError
	switch {
	case errors.As(err, &serverErr) && serverErr.StatusCode == http.StatusNotFound:
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrUnknownField):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return false
	}
	return true
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
