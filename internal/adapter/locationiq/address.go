package locationiq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/internal/domain/types"
	wrap "github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/logger/wrapper"
	"github.com/VipulSingh-10/Tanzania-Car-Sharing-Frontend/pkg/metrics"
)

// Client resolves free-text addresses to coordinates and back using the
// LocationIQ API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func New(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// GetAddress fetches the display address for a coordinate pair.
func (c *Client) GetAddress(ctx context.Context, latitude, longitude float64) (string, error) {
	ctx = wrap.WithAction(ctx, types.ActionGeocode)

	endpoint := fmt.Sprintf("%s/v1/reverse?key=%s&lat=%f&lon=%f&format=json",
		c.baseURL, url.QueryEscape(c.apiKey), latitude, longitude)

	var payload struct {
		Address string `json:"display_name"`
	}
	err := c.getJSON(ctx, endpoint, &payload)
	metrics.RecordGeocodeLookup("reverse", err)
	if err != nil {
		return "", err
	}

	return payload.Address, nil
}

// GetLocation fetches the coordinates and display address for a free-text
// query. The first candidate wins.
func (c *Client) GetLocation(ctx context.Context, address string) (float64, float64, string, error) {
	ctx = wrap.WithAction(ctx, types.ActionGeocode)

	endpoint := fmt.Sprintf("%s/v1/search?key=%s&q=%s&format=json",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(address))

	var results []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	err := c.getJSON(ctx, endpoint, &results)
	metrics.RecordGeocodeLookup("forward", err)
	if err != nil {
		return 0, 0, "", err
	}

	if len(results) == 0 {
		return 0, 0, "", wrap.Error(ctx, types.ErrLocationNotFound)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, "", wrap.Error(ctx, fmt.Errorf("failed to parse latitude: %w", err))
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, "", wrap.Error(ctx, fmt.Errorf("failed to parse longitude: %w", err))
	}

	return lat, lon, results[0].DisplayName, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to build geocoder request: %w", err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionExternalServiceFailed)
		return wrap.Error(ctx, fmt.Errorf("%w: %v", types.ErrExternalService, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		ctx = wrap.WithAction(ctx, types.ActionExternalServiceFailed)
		return wrap.Error(ctx, fmt.Errorf("%w: unexpected response status %d", types.ErrExternalService, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%w: malformed geocoder response: %v", types.ErrExternalService, err))
	}

	return nil
}
