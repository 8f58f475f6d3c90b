package geo

import "context"

// Facility is a nearby medical facility shown on the map.
type Facility struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
}

// Resolver turns a free-text location into a list of nearby facilities.
// The facility list is simulated: fixed records at small offsets from the
// geocoded point, so they render near the user on a map. Real directory
// lookup is out of scope; swapping it in only requires a new Resolver
// implementation behind the same Geocoder seam.
type Resolver struct {
	geocoder Geocoder
}

// NewResolver creates a Resolver backed by the given geocoder.
func NewResolver(geocoder Geocoder) *Resolver {
	return &Resolver{geocoder: geocoder}
}

// FindNearby geocodes the query and returns the simulated facility list.
// Every call re-geocodes; results are deterministic for a fixed geocode
// result. Returns ErrNotFound (wrapped) when the location cannot be resolved.
func (r *Resolver) FindNearby(ctx context.Context, query string) ([]Facility, error) {
	coord, err := r.geocoder.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}
	return nearbyFacilities(coord), nil
}

// nearbyFacilities synthesizes the fixed facility set around a coordinate.
func nearbyFacilities(c Coordinate) []Facility {
	return []Facility{
		{
			Name:    "City General Hospital",
			Lat:     c.Lat + 0.002,
			Lon:     c.Lon + 0.002,
			Address: "Main Road, Near Chowk",
		},
		{
			Name:    "LifeCare Emergency Clinic",
			Lat:     c.Lat - 0.002,
			Lon:     c.Lon - 0.001,
			Address: "Sector 4, Green Park",
		},
		{
			Name:    "Arogya Kendra (Govt)",
			Lat:     c.Lat + 0.001,
			Lon:     c.Lon - 0.003,
			Address: "Station Road",
		},
	}
}
