package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"ProfitChart/internal/model"
)

// HTTPFetcher implements Fetcher with a single GET to a fixed endpoint.
// No client timeout is set; the request is bounded only by its context.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// NewHTTPFetcher creates a fetcher with optional proxy support.
func NewHTTPFetcher(endpoint, proxyURL string) *HTTPFetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPFetcher{
		URL:    endpoint,
		Client: &http.Client{Transport: transport},
	}
}

func (f *HTTPFetcher) Name() string { return "http" }

// FetchSeries issues one GET and extracts seriesKey from the response envelope.
// Every failure is returned as *FetchError.
func (f *HTTPFetcher) FetchSeries(ctx context.Context, seriesKey string) ([]model.RawPoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, &FetchError{Op: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &FetchError{Op: "fetch series", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: "read body", Err: err}
	}

	// The status is not checked up front: an error status with a valid
	// envelope still carries the series.
	points, err := DecodeSeries(body, seriesKey)
	if err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &FetchError{Op: "fetch series", Err: fmt.Errorf("status %d, body: %s", resp.StatusCode, truncate(body, 256))}
		}
		return nil, &FetchError{Op: "parse series", Err: err}
	}
	return points, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
