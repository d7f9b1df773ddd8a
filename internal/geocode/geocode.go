// File: internal/geocode/geocode.go
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"safe-radius/internal/cache"
)

// ErrNoResult means the provider resolved nothing for the address. Callers
// surface this as a user-correctable validation error.
var ErrNoResult = errors.New("no result for address")

const (
	requestTimeout = 10 * time.Second
	cacheTTL       = 24 * time.Hour
)

// Result is a resolved coordinate pair.
type Result struct {
	Lat float64
	Lon float64
}

// Client resolves free-text addresses against a Nominatim-style endpoint.
// The provider requires a client identification header on every request.
type Client struct {
	baseURL   string
	userAgent string
	country   string
	http      *http.Client
	cache     cache.Cache
}

// NewClient builds a geocoder. rdb may be nil to disable result caching;
// country is appended to every lookup so partial addresses stay unambiguous.
func NewClient(baseURL, userAgent, country string, rdb cache.Cache) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		country:   country,
		http:      &http.Client{Timeout: requestTimeout},
		cache:     rdb,
	}
}

// Geocode resolves area/city/postalCode into coordinates, taking the first
// candidate the provider returns. Successful lookups are cached for 24h.
func (g *Client) Geocode(ctx context.Context, area, city, postalCode string) (*Result, error) {
	fullAddress := fmt.Sprintf("%s, %s, %s, %s", area, city, postalCode, g.country)

	if r, ok := g.fromCache(ctx, fullAddress); ok {
		return r, nil
	}

	reqURL := fmt.Sprintf("%s?format=json&q=%s&limit=1", g.baseURL, url.QueryEscape(fullAddress))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	// Nominatim encodes coordinates as JSON strings.
	var candidates []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}
	if len(candidates) == 0 {
		return nil, ErrNoResult
	}

	lat, err := strconv.ParseFloat(candidates[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode: bad latitude %q", candidates[0].Lat)
	}
	lon, err := strconv.ParseFloat(candidates[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode: bad longitude %q", candidates[0].Lon)
	}

	result := &Result{Lat: lat, Lon: lon}
	g.toCache(ctx, fullAddress, result)
	return result, nil
}

func cacheKey(fullAddress string) string {
	return "geocode:" + strings.ToLower(fullAddress)
}

func (g *Client) fromCache(ctx context.Context, fullAddress string) (*Result, bool) {
	if g.cache == nil {
		return nil, false
	}
	val, err := g.cache.Get(ctx, cacheKey(fullAddress)).Result()
	if err != nil {
		return nil, false
	}
	parts := strings.SplitN(val, ",", 2)
	if len(parts) != 2 {
		return nil, false
	}
	lat, err1 := strconv.ParseFloat(parts[0], 64)
	lon, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil {
		return nil, false
	}
	return &Result{Lat: lat, Lon: lon}, true
}

func (g *Client) toCache(ctx context.Context, fullAddress string, r *Result) {
	if g.cache == nil {
		return
	}
	val := strconv.FormatFloat(r.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(r.Lon, 'f', -1, 64)
	// best effort: a failed cache write never fails the lookup
	_ = g.cache.Set(ctx, cacheKey(fullAddress), val, cacheTTL).Err()
}
