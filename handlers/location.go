package handlers

import "net/http"

// GetStates serves the cached state directory.
func GetStates(w http.ResponseWriter, r *http.Request) {
	states := directory.States(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"states": states,
		"count":  len(states),
	})
}

// GetCities serves the cached city directory. With a stateId parameter the
// list cascades to that state's cities, optionally narrowed by a
// case-insensitive substring match on the name (q parameter).
func GetCities(w http.ResponseWriter, r *http.Request) {
	stateID := r.URL.Query().Get("stateId")
	query := r.URL.Query().Get("q")

	if stateID == "" {
		cities := directory.Cities(r.Context())
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"cities": cities,
			"count":  len(cities),
		})
		return
	}

	cities := directory.CitiesForState(r.Context(), stateID, query)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cities": cities,
		"count":  len(cities),
	})
}
