package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"dome.express/dispatch/models"
)

// GetOrderDetail fetches one persisted order and merges in its parcel
// measurement. The measurement is best-effort: when the fetch fails the
// detail still renders, with the measurement omitted.
func GetOrderDetail(w http.ResponseWriter, r *http.Request) {
	trackingID := mux.Vars(r)["trackingId"]

	order, err := api.GetOrder(r.Context(), trackingID)
	if err != nil {
		respondError(w, err)
		return
	}

	measurement, err := api.GetMeasurement(r.Context(), trackingID)
	if err != nil {
		measurement = nil
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"order":       order,
		"measurement": measurement,
	})
}

// UpdateOrder forwards a partial order edit upstream. Only named fields
// travel; everything unspecified stays untouched.
func UpdateOrder(w http.ResponseWriter, r *http.Request) {
	trackingID := mux.Vars(r)["trackingId"]

	var update models.OrderUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	order, err := api.UpdateOrder(r.Context(), trackingID, update)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// CreateMeasurement stores a captured weight/size/photo record upstream.
// The camera flow hands this handler its image references; capture
// mechanics live entirely client-side.
func CreateMeasurement(w http.ResponseWriter, r *http.Request) {
	var m models.ParcelMeasurement
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if m.TrackingID == "" {
		http.Error(w, "trackingId is required", http.StatusBadRequest)
		return
	}

	if err := api.CreateMeasurement(r.Context(), m); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}
