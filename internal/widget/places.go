package widget

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/models"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
	wrap "github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger/wrapper"
)

// Geocoder resolves free text to coordinates. Implemented by the LocationIQ
// adapter.
type Geocoder interface {
	GetLocation(ctx context.Context, address string) (lat, lon float64, displayName string, err error)
}

// PlacesInput is the address input widget: an explicit loading state machine
// around the external geocoding service.
//
//	Uninitialized -> Loading -> Ready
//	                         -> Failed (terminal for this instance)
//
// The Ready transition happens at most once. Failed carries a human-readable
// reason that the page flow renders inline; the rest of the page stays
// usable.
type PlacesInput struct {
	mu       sync.Mutex
	state    types.ResourceState
	reason   string
	geocoder Geocoder

	apiKey string
}

func NewPlacesInput(apiKey string, geocoder Geocoder) *PlacesInput {
	return &PlacesInput{
		state:    types.ResourceUninitialized,
		apiKey:   apiKey,
		geocoder: geocoder,
	}
}

// Load initializes the external service capability. Calling it again after
// Ready or Failed is a no-op.
func (p *PlacesInput) Load(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != types.ResourceUninitialized {
		return
	}
	p.state = types.ResourceLoading

	if p.apiKey == "" {
		p.state = types.ResourceFailed
		p.reason = "geocoding is unavailable: the LocationIQ API key is not configured"
		return
	}
	if p.geocoder == nil {
		p.state = types.ResourceFailed
		p.reason = "geocoding is unavailable: no geocoder configured"
		return
	}

	p.state = types.ResourceReady
}

// State returns the current phase and, when Failed, the visible reason.
func (p *PlacesInput) State() (types.ResourceState, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state, p.reason
}

// Resolve turns a free-text query into a fully resolved GeoPoint. While the
// widget is not Ready the input is effectively disabled: Loading reports a
// pending error, Failed reports its terminal reason.
func (p *PlacesInput) Resolve(ctx context.Context, query string) (models.GeoPoint, error) {
	ctx = wrap.WithAction(ctx, types.ActionGeocode)

	// An empty query never reaches the geocoder; whatever it would return
	// for "" is not the user's address.
	if strings.TrimSpace(query) == "" {
		return models.GeoPoint{}, wrap.Error(ctx, fmt.Errorf("%w: address must be provided", types.ErrValidation))
	}

	p.mu.Lock()
	state, reason := p.state, p.reason
	p.mu.Unlock()

	switch state {
	case types.ResourceReady:
	case types.ResourceFailed:
		return models.GeoPoint{}, wrap.Error(ctx, fmt.Errorf("%w: %s", types.ErrExternalService, reason))
	default:
		return models.GeoPoint{}, wrap.Error(ctx, fmt.Errorf("%w: address lookup is still loading", types.ErrExternalService))
	}

	lat, lon, display, err := p.geocoder.GetLocation(ctx, query)
	if err != nil {
		return models.GeoPoint{}, err
	}
	if display == "" {
		display = query
	}
	return models.ResolvedPoint(lat, lon, display), nil
}

// ResolveOrPartial is Resolve with the typed-but-unresolved fallback: when
// the lookup cannot produce coordinates the typed text is kept as a partial,
// explicitly unresolved GeoPoint instead of a (0,0) sentinel.
func (p *PlacesInput) ResolveOrPartial(ctx context.Context, query string) models.GeoPoint {
	point, err := p.Resolve(ctx, query)
	if err != nil {
		return models.UnresolvedPoint(query)
	}
	return point
}
