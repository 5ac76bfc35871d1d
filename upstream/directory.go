package upstream

import (
	"context"
	"log"
	"sync"

	"dome.express/dispatch/models"
)

// Directory is the in-memory state/city reference cache. Both lists are
// fetched once on first use; a failed fetch logs a warning and yields an
// empty list so the rest of the console keeps working, and the next call
// retries.
type Directory struct {
	client *Client

	mu     sync.Mutex
	states []models.State
	cities []models.City
	loaded bool
}

// NewDirectory wraps the client with the location cache.
func NewDirectory(client *Client) *Directory {
	return &Directory{client: client}
}

func (d *Directory) load(ctx context.Context) {
	if d.loaded {
		return
	}
	states, err := d.client.GetStates(ctx)
	if err != nil {
		log.Printf("warning: could not load states: %v", err)
		return
	}
	cities, err := d.client.GetCities(ctx)
	if err != nil {
		log.Printf("warning: could not load cities: %v", err)
		return
	}
	d.states = states
	d.cities = cities
	d.loaded = true
}

// States returns the cached state list, fetching it on first use.
func (d *Directory) States(ctx context.Context) []models.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.load(ctx)
	if d.states == nil {
		return []models.State{}
	}
	return d.states
}

// Cities returns the cached full city list.
func (d *Directory) Cities(ctx context.Context) []models.City {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.load(ctx)
	if d.cities == nil {
		return []models.City{}
	}
	return d.cities
}

// CitiesForState returns the cities of one state, optionally filtered by a
// case-insensitive substring of the city name. An empty query returns the
// whole set.
func (d *Directory) CitiesForState(ctx context.Context, stateID, query string) []models.City {
	return models.FilterCities(d.Cities(ctx), stateID, query)
}

// CityInState reports whether the city belongs to the state per the cached
// directory.
func (d *Directory) CityInState(ctx context.Context, stateID string, cityID int) bool {
	return models.CityInState(d.Cities(ctx), stateID, cityID)
}
