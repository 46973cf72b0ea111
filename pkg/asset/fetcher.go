// Package asset fetches remote presentation assets (sprites, shader
// sources, manifests) over HTTP behind a circuit breaker. Asset fetching
// happens once at game start; a failure here is fatal rather than
// degraded, so the fetcher fails fast instead of retrying.
package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-gravwars/pkg/config"
	"github.com/opd-ai/go-gravwars/pkg/logging"
)

// ErrAssetsUnavailable marks any failure to retrieve a required asset.
// Callers treat it as fatal at startup.
var ErrAssetsUnavailable = errors.New("assets unavailable")

// maxAssetSize bounds a single asset download.
const maxAssetSize = 16 << 20 // 16 MiB

// Fetcher retrieves assets from a remote base URL. All requests go
// through a shared circuit breaker so a flapping asset host trips once
// instead of stalling every lookup.
type Fetcher struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *logging.Logger
}

// NewFetcher creates a Fetcher configured from environment settings.
func NewFetcher(envConfig *config.EnvironmentConfig) *Fetcher {
	logger := logging.NewLogger()

	settings := gobreaker.Settings{
		Name:        "gravwars-assets",
		MaxRequests: uint32(envConfig.CircuitBreakerMaxRequests),
		Interval:    envConfig.CircuitBreakerInterval,
		Timeout:     envConfig.CircuitBreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(envConfig.CircuitBreakerMaxConsecutiveFails)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info(context.Background(), "circuit breaker state changed",
				"name", name,
				"from", from,
				"to", to,
			)
		},
	}

	return &Fetcher{
		baseURL: envConfig.AssetBaseURL,
		client: &http.Client{
			Timeout: envConfig.AssetFetchTimeout,
		},
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// Fetch retrieves one asset by name relative to the base URL. Any
// transport error, non-200 status, or open circuit surfaces as
// ErrAssetsUnavailable.
func (f *Fetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if f.baseURL == "" {
		return nil, fmt.Errorf("%w: no asset base URL configured", ErrAssetsUnavailable)
	}

	assetURL, err := url.JoinPath(f.baseURL, name)
	if err != nil {
		return nil, fmt.Errorf("%w: bad asset name %q: %v", ErrAssetsUnavailable, name, err)
	}

	result, err := f.breaker.Execute(func() (interface{}, error) {
		return f.get(ctx, assetURL)
	})
	if err != nil {
		f.logger.Error(ctx, "asset fetch failed", err,
			"asset", name,
			"state", f.breaker.State().String(),
		)
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetsUnavailable, name, err)
	}

	data := result.([]byte)
	f.logger.Debug(ctx, "asset fetched",
		"asset", name,
		"bytes", len(data),
	)
	return data, nil
}

// FetchAll retrieves a set of assets, stopping at the first failure.
func (f *Fetcher) FetchAll(ctx context.Context, names []string) (map[string][]byte, error) {
	assets := make(map[string][]byte, len(names))
	for _, name := range names {
		data, err := f.Fetch(ctx, name)
		if err != nil {
			return nil, err
		}
		assets[name] = data
	}
	return assets, nil
}

// State returns the circuit breaker state, for monitoring.
func (f *Fetcher) State() gobreaker.State {
	return f.breaker.State()
}

func (f *Fetcher) get(ctx context.Context, assetURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxAssetSize))
}
