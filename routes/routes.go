package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"dome.express/dispatch/handlers"
	"dome.express/dispatch/middleware"
)

// RegisterRoutes wires the order-creation workflow, history search and
// label printing endpoints.
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// Public routes (no authentication required)
	r.HandleFunc("/api/v1/login", handlers.Login).Methods("POST")

	// Protected API routes (require authentication)
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/logout", handlers.Logout).Methods("POST")

	// Location directory
	api.HandleFunc("/locations/states", handlers.GetStates).Methods("GET")
	api.HandleFunc("/locations/cities", handlers.GetCities).Methods("GET")

	// Pickup sessions (order-creation workflow)
	api.HandleFunc("/sessions", handlers.CreateSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", handlers.GetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}/shipper/resolve", handlers.ResolveShipper).Methods("POST")
	api.HandleFunc("/sessions/{id}/shipper/select", handlers.SelectShipper).Methods("POST")
	api.HandleFunc("/sessions/{id}/pickup-date", handlers.SetPickupDate).Methods("POST")
	api.HandleFunc("/sessions/{id}/lock", handlers.LockSession).Methods("POST")
	api.HandleFunc("/sessions/{id}/mode", handlers.SwitchMode).Methods("POST")

	// Draft batch
	api.HandleFunc("/sessions/{id}/orders", handlers.ListDrafts).Methods("GET")
	api.HandleFunc("/sessions/{id}/orders", handlers.SaveDraft).Methods("POST")
	api.HandleFunc("/sessions/{id}/orders/edit/cancel", handlers.CancelEdit).Methods("POST")
	api.HandleFunc("/sessions/{id}/orders/{index}/edit", handlers.EditDraft).Methods("POST")
	api.HandleFunc("/sessions/{id}/orders/{index}", handlers.DeleteDraft).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/import", handlers.ImportOrders).Methods("POST")
	api.HandleFunc("/sessions/{id}/submit", handlers.SubmitOrders).Methods("POST")

	// Order history
	api.HandleFunc("/orders/search", handlers.SearchOrders).Methods("GET")
	api.HandleFunc("/orders/{trackingId}", handlers.GetOrderDetail).Methods("GET")
	api.HandleFunc("/orders/{trackingId}", handlers.UpdateOrder).Methods("PUT")

	// Parcel measurements
	api.HandleFunc("/measurements", handlers.CreateMeasurement).Methods("POST")

	// AWB labels
	api.HandleFunc("/labels/print", handlers.PrintLabels).Methods("POST")
	api.HandleFunc("/labels/{trackingId}", handlers.GetLabel).Methods("GET")

	return r
}
