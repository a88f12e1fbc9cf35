// Package fred retrieves the US Treasury constant-maturity yield curve from
// FRED (Federal Reserve Economic Data). The fredgraph CSV endpoint needs no
// API key.
package fred

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/meenmo/yieldcurve/curve"
)

// Series maps maturity tags to FRED H.15 series IDs. Read-only.
var Series = map[string]string{
	"1M":  "DGS1MO",
	"3M":  "DGS3MO",
	"6M":  "DGS6MO",
	"1Y":  "DGS1",
	"2Y":  "DGS2",
	"3Y":  "DGS3",
	"5Y":  "DGS5",
	"7Y":  "DGS7",
	"10Y": "DGS10",
	"20Y": "DGS20",
	"30Y": "DGS30",
}

// Feed supplies a yield curve. Client fetches live data; StaticFeed serves a
// fixed curve for offline use and tests.
type Feed interface {
	YieldCurve(ctx context.Context) (curve.Curve, error)
}

// DefaultBaseURL is the fredgraph CSV endpoint.
const DefaultBaseURL = "https://fred.stlouisfed.org/graph/fredgraph.csv"

// Client fetches yields series-by-series over HTTP.
type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// NewClient returns a Client against the public FRED endpoint.
func NewClient() *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		UserAgent:  "yieldcurve/1.0",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// YieldCurve fetches every series in Series and returns the curve of
// latest observations. A series whose retrieval or parse fails is skipped
// rather than failing the whole fetch, leaving a gap for that maturity.
// An error is returned only when no series at all could be retrieved.
func (c *Client) YieldCurve(ctx context.Context) (curve.Curve, error) {
	out := curve.Curve{}
	for tag, id := range Series {
		v, err := c.fetchSeries(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("fred: fetch %s: %w", id, ctx.Err())
			}
			continue
		}
		out[tag] = v
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("fred: no series could be retrieved from %s", c.BaseURL)
	}
	return out, nil
}

// fetchSeries returns the last observation of one series. FRED publishes
// rows oldest-first with "." for market holidays; the last row with a
// parseable value wins.
func (c *Client) fetchSeries(ctx context.Context, id string) (float64, error) {
	url := fmt.Sprintf("%s?id=%s", c.BaseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fred: %s: status %d", id, resp.StatusCode)
	}

	rows, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		return 0, err
	}
	if len(rows) < 2 {
		return 0, fmt.Errorf("fred: %s: no observation rows", id)
	}

	for i := len(rows) - 1; i >= 1; i-- {
		if len(rows[i]) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rows[i][1]), 64)
		if err != nil {
			continue
		}
		return v, nil
	}
	return 0, fmt.Errorf("fred: %s: no parseable observation", id)
}

// StaticFeed is a map-backed feed for development and testing.
type StaticFeed curve.Curve

// YieldCurve returns a copy of the backing curve.
func (f StaticFeed) YieldCurve(context.Context) (curve.Curve, error) {
	out := make(curve.Curve, len(f))
	for tag, y := range f {
		out[tag] = y
	}
	return out, nil
}

// SampleCurve is a snapshot of the US Treasury curve, useful offline.
func SampleCurve() curve.Curve {
	return curve.Curve{
		"1M":  4.02,
		"3M":  3.93,
		"6M":  3.80,
		"1Y":  3.65,
		"2Y":  3.57,
		"3Y":  3.58,
		"5Y":  3.69,
		"7Y":  3.89,
		"10Y": 4.11,
		"20Y": 4.45,
		"30Y": 4.25,
	}
}

var (
	_ Feed = (*Client)(nil)
	_ Feed = StaticFeed(nil)
)
