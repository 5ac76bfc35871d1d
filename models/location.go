package models

import "strings"

// State is upstream reference data served by /order/state/get.
type State struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// City is upstream reference data served by /order/city/get. Fee is the
// city's base delivery fee and may be absent for cities that are priced
// per order.
type City struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	StateID string   `json:"stateId"`
	Fee     *float64 `json:"fee,omitempty"`
	State   *State   `json:"state,omitempty"`
}

// FilterCities returns the cities belonging to stateID whose name contains
// query, case-insensitively. An empty query matches every city of the state.
func FilterCities(cities []City, stateID, query string) []City {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]City, 0)
	for _, c := range cities {
		if c.StateID != stateID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CityInState reports whether cityID belongs to stateID within the given
// city set.
func CityInState(cities []City, stateID string, cityID int) bool {
	for _, c := range cities {
		if c.ID == cityID && c.StateID == stateID {
			return true
		}
	}
	return false
}
