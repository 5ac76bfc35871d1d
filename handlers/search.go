package handlers

import (
	"net/http"

	"dome.express/dispatch/upstream"
	"dome.express/dispatch/utils"
)

// SearchOrders proxies the order-history search upstream. The tracking-id
// box accepts comma- or space-separated ids: one id searches exact, many
// search as a batch. Without the explicit=true parameter an empty filter
// set returns the server-bounded recent list; with it, at least one field
// is required, matching the search screen's behavior.
func SearchOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := upstream.SearchFilters{
		ShipperID:   q.Get("shipperId"),
		Name:        q.Get("name"),
		Phone:       q.Get("phone"),
		TrackingIDs: utils.SplitTrackingIDs(q.Get("trackingId")),
		StartDate:   q.Get("startDate"),
		EndDate:     q.Get("endDate"),
	}

	if q.Get("explicit") == "true" && filters.Empty() {
		http.Error(w, "please enter at least one search field", http.StatusBadRequest)
		return
	}

	orders, err := api.SearchOrders(r.Context(), filters)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	})
}
