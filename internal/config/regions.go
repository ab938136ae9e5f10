package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"skyherald/internal/types"
)

// regionFile is the on-disk shape of the region definition file.
type regionFile struct {
	Regions []types.Region `json:"regions"`
}

// Registry holds the loaded campaign regions with stable iteration order.
type Registry struct {
	regions []types.Region
	byID    map[string]types.Region
}

// LoadRegions reads, normalizes and validates the region definition file.
// Unspecified condition weights are defaulted to 1 so that a plain list of
// condition names behaves as a uniform distribution.
func LoadRegions(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{
			Type:    ErrTypeRegionFile,
			Message: fmt.Sprintf("failed to read region file %q", path),
			Err:     err,
		}
	}

	var file regionFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, &ConfigError{
			Type:    ErrTypeRegionFile,
			Message: fmt.Sprintf("failed to parse region file %q", path),
			Err:     err,
		}
	}

	return BuildRegistry(file.Regions)
}

// BuildRegistry normalizes and validates an in-memory region list. It is the
// common path for LoadRegions and for tests that construct regions directly.
func BuildRegistry(regions []types.Region) (*Registry, error) {
	validate := validator.New()
	byID := make(map[string]types.Region, len(regions))

	for i := range regions {
		normalizeWeights(&regions[i])

		if err := validate.Struct(regions[i]); err != nil {
			return nil, &ConfigError{
				Type:    ErrTypeValidation,
				Message: fmt.Sprintf("region %q failed validation", regions[i].ID),
				Err:     err,
			}
		}
		if err := checkRegion(regions[i]); err != nil {
			return nil, err
		}

		if _, dup := byID[regions[i].ID]; dup {
			return nil, &ConfigError{
				Type:    ErrTypeValidation,
				Message: fmt.Sprintf("duplicate region id %q", regions[i].ID),
			}
		}
		byID[regions[i].ID] = regions[i]
	}

	return &Registry{regions: regions, byID: byID}, nil
}

// normalizeWeights applies the default weight of 1 to every entry that left
// the weight unspecified or non-positive.
func normalizeWeights(r *types.Region) {
	for season, entries := range r.Seasons {
		for i := range entries {
			if entries[i].Weight <= 0 {
				entries[i].Weight = 1
			}
		}
		r.Seasons[season] = entries
	}
}

// checkRegion enforces the domain rules the struct tags cannot express:
// every season key must be real, every candidate list non-empty, and every
// condition name must be a known condition.
func checkRegion(r types.Region) error {
	if len(r.Seasons) == 0 {
		return &ConfigError{
			Type:    ErrTypeValidation,
			Message: fmt.Sprintf("region %q defines no seasons", r.ID),
		}
	}
	for season, entries := range r.Seasons {
		if !season.Valid() {
			return &ConfigError{
				Type:    ErrTypeValidation,
				Message: fmt.Sprintf("region %q has unknown season %q", r.ID, season),
			}
		}
		if len(entries) == 0 {
			return &ConfigError{
				Type:    ErrTypeValidation,
				Message: fmt.Sprintf("region %q has an empty condition list for %s", r.ID, season),
			}
		}
		for _, entry := range entries {
			if !entry.Condition.Valid() {
				return &ConfigError{
					Type:    ErrTypeValidation,
					Message: fmt.Sprintf("region %q lists unknown condition %q for %s", r.ID, entry.Condition, season),
				}
			}
		}
	}
	return nil
}

// Get returns the region with the given ID.
func (reg *Registry) Get(id string) (types.Region, bool) {
	r, ok := reg.byID[id]
	return r, ok
}

// All returns the regions in file order.
func (reg *Registry) All() []types.Region {
	return reg.regions
}

// Len returns the number of loaded regions.
func (reg *Registry) Len() int {
	return len(reg.regions)
}
