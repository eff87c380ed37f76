package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// List view state
	api.HandleFunc("/view", handler.GetView).Methods("GET")
	api.HandleFunc("/view/reload", handler.Reload).Methods("POST")
	api.HandleFunc("/view/search", handler.Search).Methods("POST")
	api.HandleFunc("/view/search/reset", handler.ResetSearch).Methods("POST")
	api.HandleFunc("/view/trade-code", handler.SelectTradeCode).Methods("POST")
	api.HandleFunc("/view/next", handler.NextPage).Methods("POST")
	api.HandleFunc("/view/previous", handler.PreviousPage).Methods("POST")
	api.HandleFunc("/view/page", handler.GoToPage).Methods("POST")

	// Record forms
	api.HandleFunc("/records", handler.CreateRecord).Methods("POST")
	api.HandleFunc("/records/{id}", handler.GetRecordForm).Methods("GET")
	api.HandleFunc("/records/{id}", handler.UpdateRecord).Methods("PUT")
	api.HandleFunc("/records/{id}", handler.DeleteRecord).Methods("DELETE")

	api.HandleFunc("/export", handler.Export).Methods("POST")

	return r
}
