package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"grocery-route-service/internal/adapters/distance"
	"grocery-route-service/internal/api/dto"
	"grocery-route-service/internal/domain"
)

type fakeStoreRepo struct {
	stores []*domain.Store
}

func (f *fakeStoreRepo) ListStores(ctx context.Context) ([]*domain.Store, error) {
	return f.stores, nil
}

func (f *fakeStoreRepo) GetStore(ctx context.Context, storeID string) (*domain.Store, error) {
	for _, s := range f.stores {
		if s.StoreID == storeID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStoreRepo) StoresNear(ctx context.Context, center domain.Coordinates, radiusMiles float64) ([]*domain.Store, error) {
	return f.stores, nil
}

type fakeGeocoder struct {
	coords domain.Coordinates
	calls  int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	f.calls++
	return f.coords, nil
}

func newTripHandler() *TripHandler {
	repo := &fakeStoreRepo{
		stores: []*domain.Store{
			{
				StoreID:  "corner-market",
				Name:     "Corner Market",
				Location: domain.Coordinates{Lon: 0, Lat: 0.0145},
				Items:    domain.NewItemSet("milk", "eggs"),
			},
			{
				StoreID:  "far-depot",
				Name:     "Far Depot",
				Location: domain.Coordinates{Lon: 0, Lat: 0.29},
				Items:    domain.NewItemSet("bread"),
			},
		},
	}
	return &TripHandler{
		Stores:   repo,
		Provider: distance.NewHaversineProvider(),
	}
}

func postTrip(t *testing.T, h *TripHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Plan(rec, req)
	return rec
}

func TestTripPlanReturnsRankedRoutes(t *testing.T) {
	h := newTripHandler()

	rec := postTrip(t, h, `{"lat": 0, "lon": 0, "items": ["milk", "eggs"], "max_distance_miles": 50}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.TripResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(res.Routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(res.Routes))
	}
	route := res.Routes[0]
	if len(route.Stops) != 1 || route.Stops[0].StoreID != "corner-market" {
		t.Fatalf("unexpected stops: %+v", route.Stops)
	}
	if route.TotalDistanceMiles <= 0 || route.TotalDistanceMiles > 2 {
		t.Fatalf("total distance = %v, want roughly one mile", route.TotalDistanceMiles)
	}
	if res.Truncated {
		t.Fatal("plan should not be truncated")
	}
}

func TestTripPlanGeocodesAddressWhenNoCoordinatesGiven(t *testing.T) {
	h := newTripHandler()
	geocoder := &fakeGeocoder{coords: domain.Coordinates{Lon: 0, Lat: 0}}
	h.Geocoder = geocoder

	rec := postTrip(t, h, `{"address": "958 Great Plain Ave, Needham, MA", "items": ["milk"], "max_distance_miles": 50}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if geocoder.calls != 1 {
		t.Fatalf("geocoder calls = %d, want 1", geocoder.calls)
	}

	var res dto.TripResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Routes) == 0 {
		t.Fatal("expected at least one route from the geocoded start")
	}
}

func TestTripPlanNoCoverageIsEmptyNotError(t *testing.T) {
	h := newTripHandler()

	rec := postTrip(t, h, `{"lat": 0, "lon": 0, "items": ["caviar"], "max_distance_miles": 50}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.TripResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Routes == nil {
		t.Fatal("routes should serialize as an empty array, not null")
	}
	if len(res.Routes) != 0 {
		t.Fatalf("routes = %d, want 0", len(res.Routes))
	}
}

func TestTripPlanRejectsBadRequests(t *testing.T) {
	h := newTripHandler()

	cases := map[string]string{
		"unknown field":     `{"lat": 0, "lon": 0, "items": ["milk"], "max_distance_miles": 5, "bogus": 1}`,
		"missing items":     `{"lat": 0, "lon": 0, "max_distance_miles": 5}`,
		"zero budget":       `{"lat": 0, "lon": 0, "items": ["milk"], "max_distance_miles": 0}`,
		"no start location": `{"items": ["milk"], "max_distance_miles": 5}`,
		"trailing object":   `{"lat": 0, "lon": 0, "items": ["milk"], "max_distance_miles": 5}{}`,
	}

	for name, body := range cases {
		rec := postTrip(t, h, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
	}
}

func TestTripPlanMethodNotAllowed(t *testing.T) {
	h := newTripHandler()

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()
	h.Plan(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
