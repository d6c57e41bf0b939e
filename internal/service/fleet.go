package service

import (
	"context"
	"fmt"
	"time"

	"reefermon/internal/cache"
	"reefermon/internal/models"
)

// Cache keys and TTL defaults for roster lookups. The organization rarely
// changes; the roster can gain sensors, so it refreshes more often.
const (
	cacheKeyOrg     = "org"
	cacheKeyRoster  = "roster"
	cacheKeySensors = "sensors"

	DefaultOrgTTL    = time.Hour
	DefaultRosterTTL = 5 * time.Minute
)

// FleetService serves roster lookups, memoizing provider responses in a TTL
// cache so a busy dashboard does not hammer the provider.
type FleetService struct {
	fetch     Fetcher
	cache     *cache.TTLCache
	orgTTL    time.Duration
	rosterTTL time.Duration
}

// NewFleetService builds a FleetService. A nil cache disables memoization.
func NewFleetService(fetch Fetcher, c *cache.TTLCache, orgTTL, rosterTTL time.Duration) *FleetService {
	if orgTTL <= 0 {
		orgTTL = DefaultOrgTTL
	}
	if rosterTTL <= 0 {
		rosterTTL = DefaultRosterTTL
	}
	return &FleetService{fetch: fetch, cache: c, orgTTL: orgTTL, rosterTTL: rosterTTL}
}

// Org returns the provider organization for the configured token.
func (s *FleetService) Org(ctx context.Context) (models.Org, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(cacheKeyOrg); ok {
			if org, ok := v.(models.Org); ok {
				return org, nil
			}
		}
	}
	org, err := s.fetch.Org(ctx)
	if err != nil {
		return models.Org{}, err
	}
	if s.cache != nil {
		s.cache.Set(cacheKeyOrg, org, s.orgTTL)
	}
	return org, nil
}

// Assets returns the fleet roster with flattened sensor configurations.
func (s *FleetService) Assets(ctx context.Context) ([]models.Asset, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(cacheKeyRoster); ok {
			if assets, ok := v.([]models.Asset); ok {
				return assets, nil
			}
		}
	}
	assets, err := s.fetch.Vehicles(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(cacheKeyRoster, assets, s.rosterTTL)
	}
	return assets, nil
}

// Asset returns a single asset by id, or ErrUnknownAsset.
func (s *FleetService) Asset(ctx context.Context, id int64) (models.Asset, error) {
	assets, err := s.Assets(ctx)
	if err != nil {
		return models.Asset{}, err
	}
	for _, a := range assets {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Asset{}, fmt.Errorf("%w: %d", ErrUnknownAsset, id)
}

// Sensors returns the organization-wide sensor inventory.
func (s *FleetService) Sensors(ctx context.Context) ([]models.Sensor, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(cacheKeySensors); ok {
			if sensors, ok := v.([]models.Sensor); ok {
				return sensors, nil
			}
		}
	}
	sensors, err := s.fetch.Sensors(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(cacheKeySensors, sensors, s.rosterTTL)
	}
	return sensors, nil
}
