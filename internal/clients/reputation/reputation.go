package reputation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	internalhttp "github.com/ansa-dev/ansa/internal/http"
)

// ErrLookupFailed is returned when the reputation service could not be
// consulted. Callers are expected to fail open on it.
var ErrLookupFailed = errors.New("reputation lookup failed")

// LineInfo is the reputation service's view of a phone number.
type LineInfo struct {
	Valid       bool   `json:"valid"`
	Number      string `json:"number"`
	CountryName string `json:"country_name"`
	Location    string `json:"location"`
	Carrier     string `json:"carrier"`
	LineType    string `json:"line_type"`

	// Error is populated when the service rejects the request. The API
	// reports such failures with a 200 status, so it has to be checked
	// explicitly.
	Error *APIError `json:"error,omitempty"`
}

// APIError is the error object embedded in a rejected lookup response.
type APIError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

// KeySource provides the API credential for the lookup service.
type KeySource interface {
	APIKey(ctx context.Context) (string, error)
}

// Client is an interface that defines the methods for looking up a phone
// number's reputation.
type Client interface {
	Lookup(ctx context.Context, number string) (*LineInfo, error)
}

// client is the concrete implementation of the Client interface, backed by
// the NumVerify HTTP API.
type client struct {
	http *resty.Client
	keys KeySource
}

// NewClient creates a new reputation client. The timeout bounds the whole
// lookup round trip; the caller's fail-open policy depends on it.
func NewClient(endpoint string, timeout time.Duration, keys KeySource) Client {
	c := resty.NewWithClient(internalhttp.NewClient()).
		SetBaseURL(endpoint).
		SetTimeout(timeout)

	return &client{
		http: c,
		keys: keys,
	}
}

// Lookup queries the reputation service for a single phone number. Malformed
// numbers are passed through as-is; the service is the source of truth for
// validity.
func (c *client) Lookup(ctx context.Context, number string) (*LineInfo, error) {
	key, err := c.keys.APIKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get api key: %w", ErrLookupFailed, err)
	}

	var info LineInfo
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"access_key": key,
			"number":     number,
			"format":     "1",
		}).
		SetResult(&info).
		Get("/validate")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrLookupFailed, resp.Status())
	}
	if info.Error != nil {
		return nil, fmt.Errorf("%w: %s (code %d)", ErrLookupFailed, info.Error.Type, info.Error.Code)
	}

	return &info, nil
}
