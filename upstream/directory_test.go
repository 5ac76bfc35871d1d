package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func directoryServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		switch r.URL.Path {
		case "/order/state/get":
			fmt.Fprint(w, `{"success":true,"data":[{"id":"NY","name":"New York"},{"id":"CA","name":"California"}]}`)
		case "/order/city/get":
			fmt.Fprint(w, `{"success":true,"data":[
				{"id":1,"name":"Albany","stateId":"NY"},
				{"id":2,"name":"Buffalo","stateId":"NY"},
				{"id":3,"name":"Fresno","stateId":"CA"}
			]}`)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestDirectoryCachesAfterFirstLoad(t *testing.T) {
	var hits int32
	srv := directoryServer(t, &hits)
	defer srv.Close()

	dir := NewDirectory(New(srv.URL, nil))
	ctx := context.Background()

	if got := len(dir.States(ctx)); got != 2 {
		t.Fatalf("expected 2 states, got %d", got)
	}
	if got := len(dir.Cities(ctx)); got != 3 {
		t.Fatalf("expected 3 cities, got %d", got)
	}
	dir.States(ctx)
	dir.Cities(ctx)

	// One call for states, one for cities, nothing on the repeats.
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Fatalf("expected 2 upstream hits, got %d", n)
	}
}

func TestDirectoryCitiesForState(t *testing.T) {
	var hits int32
	srv := directoryServer(t, &hits)
	defer srv.Close()

	dir := NewDirectory(New(srv.URL, nil))
	ctx := context.Background()

	ny := dir.CitiesForState(ctx, "NY", "")
	if len(ny) != 2 {
		t.Fatalf("expected 2 NY cities, got %d", len(ny))
	}
	buf := dir.CitiesForState(ctx, "NY", "buff")
	if len(buf) != 1 || buf[0].Name != "Buffalo" {
		t.Fatalf("expected Buffalo, got %+v", buf)
	}
	if !dir.CityInState(ctx, "CA", 3) {
		t.Fatal("Fresno should belong to CA")
	}
	if dir.CityInState(ctx, "CA", 1) {
		t.Fatal("Albany should not belong to CA")
	}
}

func TestDirectoryRetriesAfterFetchFailure(t *testing.T) {
	var broken atomic.Bool
	broken.Store(true)
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if broken.Load() {
			http.Error(w, "upstream down", http.StatusInternalServerError)
			return
		}
		switch r.URL.Path {
		case "/order/state/get":
			fmt.Fprint(w, `{"success":true,"data":[{"id":"NY","name":"New York"}]}`)
		case "/order/city/get":
			fmt.Fprint(w, `{"success":true,"data":[{"id":1,"name":"Albany","stateId":"NY"}]}`)
		}
	}))
	defer srv.Close()

	dir := NewDirectory(New(srv.URL, nil))
	ctx := context.Background()

	// The failed fetch yields an empty list, not a crash.
	if got := dir.States(ctx); len(got) != 0 {
		t.Fatalf("expected empty states while upstream is down, got %+v", got)
	}

	broken.Store(false)
	if got := dir.States(ctx); len(got) != 1 {
		t.Fatalf("expected states after recovery, got %+v", got)
	}
	if got := dir.Cities(ctx); len(got) != 1 {
		t.Fatalf("expected cities after recovery, got %+v", got)
	}
}
