// Package sites loads the registry of fixed radar installations that the
// server and CLI resolve conversion requests against.
package sites

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/viper"

	"github.com/signalsfoundry/radar-geodesy/geo"
)

// ErrUnknownSite reports a lookup for a site ID the registry does not hold.
var ErrUnknownSite = errors.New("unknown site")

// Site is a fixed radar installation. K is the site's preferred effective
// Earth radius factor; zero lets converters fall back to the 4/3 standard.
type Site struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Longitude float64 `json:"longitude"` // degrees, east positive
	Latitude  float64 `json:"latitude"`  // degrees, north positive
	Altitude  float64 `json:"altitude"`  // metres
	K         float64 `json:"k,omitempty"`
}

// Position returns the site's geodetic position.
func (s Site) Position() geo.Geodetic {
	return geo.NewGeodetic(s.Longitude, s.Latitude, s.Altitude)
}

func (s Site) validate() error {
	if s.Latitude < -90 || s.Latitude > 90 {
		return fmt.Errorf("latitude %g out of range [-90, 90]", s.Latitude)
	}
	if s.Longitude < -180 || s.Longitude > 180 {
		return fmt.Errorf("longitude %g out of range [-180, 180]", s.Longitude)
	}
	if s.K < 0 {
		return fmt.Errorf("k %g must not be negative", s.K)
	}
	return nil
}

// Registry is an immutable, ID-keyed set of sites.
type Registry struct {
	byID  map[string]Site
	order []string
}

// NewRegistry builds a registry, validating each site and keeping the
// listing in ascending ID order. An empty Name defaults to the ID.
func NewRegistry(list ...Site) (*Registry, error) {
	reg := &Registry{byID: make(map[string]Site, len(list))}
	for _, s := range list {
		if s.ID == "" {
			return nil, errors.New("site ID is required")
		}
		if _, ok := reg.byID[s.ID]; ok {
			return nil, fmt.Errorf("duplicate site %q", s.ID)
		}
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("site %q: %w", s.ID, err)
		}
		if s.Name == "" {
			s.Name = s.ID
		}
		reg.byID[s.ID] = s
		reg.order = append(reg.order, s.ID)
	}
	sort.Strings(reg.order)
	return reg, nil
}

// Load reads the registry from a YAML, JSON or TOML file: a top-level
// `sites` list of IDs and one `site.<id>` table per entry carrying name,
// latitude, longitude, altitude and k keys.
func Load(path string) (*Registry, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read site config: %w", err)
	}

	ids := v.GetStringSlice("sites")
	list := make([]Site, 0, len(ids))
	for _, id := range ids {
		key := fmt.Sprintf("site.%s.", id)
		if !v.IsSet(key+"latitude") || !v.IsSet(key+"longitude") {
			return nil, fmt.Errorf("site %q: latitude and longitude are required", id)
		}
		list = append(list, Site{
			ID:        id,
			Name:      v.GetString(key + "name"),
			Longitude: v.GetFloat64(key + "longitude"),
			Latitude:  v.GetFloat64(key + "latitude"),
			Altitude:  v.GetFloat64(key + "altitude"),
			K:         v.GetFloat64(key + "k"),
		})
	}
	return NewRegistry(list...)
}

// Get looks a site up by ID.
func (r *Registry) Get(id string) (Site, error) {
	s, ok := r.byID[id]
	if !ok {
		return Site{}, fmt.Errorf("%w: %q", ErrUnknownSite, id)
	}
	return s, nil
}

// List returns all sites in ascending ID order.
func (r *Registry) List() []Site {
	out := make([]Site, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of registered sites.
func (r *Registry) Len() int { return len(r.byID) }
