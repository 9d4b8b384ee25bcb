// Package catalog provides read-only snapshots of the known design locations.
package catalog

import "context"

// Location is one district's engineering design parameters.
type Location struct {
	State       string  `json:"state"`
	District    string  `json:"district"`
	WindSpeed   float64 `json:"wind_speed"` // basic wind speed, m/s
	SeismicZone Zone    `json:"seismic_zone"`
	MinTemp     float64 `json:"min_temp"` // °C
	MaxTemp     float64 `json:"max_temp"` // °C
}

// Provider serves the full location list. Each call returns a fresh snapshot
// the caller may keep for the duration of one computation.
type Provider interface {
	ListAllLocations(ctx context.Context) ([]Location, error)
}

// Static serves a fixed list.
type Static []Location

func (s Static) ListAllLocations(ctx context.Context) ([]Location, error) {
	out := make([]Location, len(s))
	copy(out, s)
	return out, nil
}
