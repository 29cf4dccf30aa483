// Package cdn purges the Cloudflare cache of the zone serving a deployed site.
package cdn

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudflare/cloudflare-go"
)

const zoneStatusActive = "active"

var (
	ErrZoneNotFound       = errors.New("zone not found")
	ErrMissingCredentials = errors.New("cloudflare api key or email is missing")
)

type Purger struct {
	api *cloudflare.API
}

// NewPurger authenticates with the legacy API key and account email pair.
func NewPurger(apiKey, email string, opts ...cloudflare.Option) (*Purger, error) {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(email) == "" {
		return nil, ErrMissingCredentials
	}

	api, err := cloudflare.New(apiKey, email, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating cloudflare client: %w", err)
	}
	return &Purger{api: api}, nil
}

// FindZone returns the active zone whose name equals domain.
func (p *Purger) FindZone(ctx context.Context, domain string) (cloudflare.Zone, error) {
	res, err := p.api.ListZonesContext(ctx, cloudflare.WithZoneFilters(domain, "", zoneStatusActive))
	if err != nil {
		return cloudflare.Zone{}, fmt.Errorf("error listing zones: %w", err)
	}

	for _, z := range res.Result {
		if z.Name == domain {
			return z, nil
		}
	}
	return cloudflare.Zone{}, fmt.Errorf("%w: %s", ErrZoneNotFound, domain)
}

// Purge drops every cached file of the zone named domain and returns the
// zone id.
func (p *Purger) Purge(ctx context.Context, domain string) (string, error) {
	zone, err := p.FindZone(ctx, domain)
	if err != nil {
		return "", err
	}

	res, err := p.api.PurgeEverything(ctx, zone.ID)
	if err != nil {
		return "", fmt.Errorf("error purging zone %s: %w", zone.ID, err)
	}
	if !res.Success {
		return "", fmt.Errorf("error purging zone %s: %v", zone.ID, res.Errors)
	}
	return zone.ID, nil
}
