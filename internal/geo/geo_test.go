package geo

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func newFakeNominatim(t *testing.T, results string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a User-Agent header")
		}
		if r.URL.Query().Get("format") != "json" {
			t.Errorf("expected format=json, got %q", r.URL.Query().Get("format"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(results))
	}))
}

func TestGeocode(t *testing.T) {
	srv := newFakeNominatim(t, `[{"lat":"19.0760","lon":"72.8777"}]`)
	defer srv.Close()

	c := NewNominatimClient(srv.URL, "test-agent", 5*time.Second)
	coord, err := c.Geocode(context.Background(), "Mumbai")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if coord.Lat != 19.0760 || coord.Lon != 72.8777 {
		t.Errorf("unexpected coordinate %+v", coord)
	}
}

func TestGeocodeNoMatch(t *testing.T) {
	srv := newFakeNominatim(t, `[]`)
	defer srv.Close()

	c := NewNominatimClient(srv.URL, "test-agent", 5*time.Second)
	_, err := c.Geocode(context.Background(), "nowhere at all")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGeocodeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL, "test-agent", 5*time.Second)
	_, err := c.Geocode(context.Background(), "Mumbai")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestGeocodeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL, "test-agent", 10*time.Millisecond)
	_, err := c.Geocode(context.Background(), "Mumbai")
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestFindNearbyDeterministic(t *testing.T) {
	srv := newFakeNominatim(t, `[{"lat":"19.0760","lon":"72.8777"}]`)
	defer srv.Close()

	r := NewResolver(NewNominatimClient(srv.URL, "test-agent", 5*time.Second))

	first, err := r.FindNearby(context.Background(), "Mumbai")
	if err != nil {
		t.Fatalf("FindNearby: %v", err)
	}
	second, err := r.FindNearby(context.Background(), "Mumbai")
	if err != nil {
		t.Fatalf("FindNearby: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical facility lists for identical queries")
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 facilities, got %d", len(first))
	}
}

func TestFindNearbyOffsets(t *testing.T) {
	srv := newFakeNominatim(t, `[{"lat":"10.0","lon":"20.0"}]`)
	defer srv.Close()

	r := NewResolver(NewNominatimClient(srv.URL, "test-agent", 5*time.Second))
	facilities, err := r.FindNearby(context.Background(), "somewhere")
	if err != nil {
		t.Fatalf("FindNearby: %v", err)
	}

	want := []Facility{
		{Name: "City General Hospital", Lat: 10.002, Lon: 20.002, Address: "Main Road, Near Chowk"},
		{Name: "LifeCare Emergency Clinic", Lat: 9.998, Lon: 19.999, Address: "Sector 4, Green Park"},
		{Name: "Arogya Kendra (Govt)", Lat: 10.001, Lon: 19.997, Address: "Station Road"},
	}
	for i, w := range want {
		got := facilities[i]
		if got.Name != w.Name || got.Address != w.Address {
			t.Errorf("facility %d = %+v, want %+v", i, got, w)
		}
		if math.Abs(got.Lat-w.Lat) > 1e-9 || math.Abs(got.Lon-w.Lon) > 1e-9 {
			t.Errorf("facility %d coordinates = (%g, %g), want (%g, %g)", i, got.Lat, got.Lon, w.Lat, w.Lon)
		}
	}
}

func TestFindNearbyNotFound(t *testing.T) {
	srv := newFakeNominatim(t, `[]`)
	defer srv.Close()

	r := NewResolver(NewNominatimClient(srv.URL, "test-agent", 5*time.Second))
	_, err := r.FindNearby(context.Background(), "nowhere")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
