package models

import "testing"

func testCities() []City {
	return []City{
		{ID: 1, Name: "Los Angeles", StateID: "CA"},
		{ID: 2, Name: "San Francisco", StateID: "CA"},
		{ID: 3, Name: "San Diego", StateID: "CA"},
		{ID: 4, Name: "New York City", StateID: "NY"},
		{ID: 5, Name: "Buffalo", StateID: "NY"},
		{ID: 6, Name: "Rochester", StateID: "NY"},
	}
}

func TestFilterCities(t *testing.T) {
	tests := []struct {
		name    string
		stateID string
		query   string
		wantIDs []int
	}{
		{"empty query returns all cities of state", "CA", "", []int{1, 2, 3}},
		{"substring match", "CA", "san", []int{2, 3}},
		{"match is case-insensitive", "NY", "BUFF", []int{5}},
		{"query from another state's city yields nothing", "CA", "buffalo", nil},
		{"unknown state yields nothing", "TX", "", nil},
		{"surrounding whitespace is trimmed", "NY", "  buffalo  ", []int{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterCities(testCities(), tt.stateID, tt.query)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("FilterCities(%q, %q) returned %d cities, expected %d",
					tt.stateID, tt.query, len(got), len(tt.wantIDs))
			}
			for i, c := range got {
				if c.ID != tt.wantIDs[i] {
					t.Errorf("result[%d].ID = %d, expected %d", i, c.ID, tt.wantIDs[i])
				}
				if c.StateID != tt.stateID {
					t.Errorf("result[%d] belongs to state %q, expected %q", i, c.StateID, tt.stateID)
				}
			}
		})
	}
}

func TestCityInState(t *testing.T) {
	cities := testCities()

	if !CityInState(cities, "NY", 5) {
		t.Error("Buffalo should belong to NY")
	}
	if CityInState(cities, "CA", 5) {
		t.Error("Buffalo should not belong to CA")
	}
	if CityInState(cities, "NY", 99) {
		t.Error("unknown city id should not belong anywhere")
	}
}
