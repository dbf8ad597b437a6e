package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
)

// ExchangeRateClient talks to the ExchangeRate-API v6 pair endpoint.
// baseURL already contains the api key, e.g. https://v6.exchangerate-api.com/v6/<key>
type ExchangeRateClient struct {
	http    *http.Client
	baseURL string
}

type pairResponse struct {
	Result         string  `json:"result"`
	ErrorType      string  `json:"error-type"`
	BaseCode       string  `json:"base_code"`
	TargetCode     string  `json:"target_code"`
	ConversionRate float64 `json:"conversion_rate"`
}

func (c *ExchangeRateClient) GetPairRate(ctx context.Context, base string, quote string) (float64, error) {
	pair := base + "/" + quote

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return 0, fmt.Errorf("failed to parse base URL: %w", err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/pair/" + url.PathEscape(base) + "/" + url.PathEscape(quote)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request for pair %q: %w", pair, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to execute request for pair %q: %w", pair, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("unexpected status code %d for pair %q: %s", resp.StatusCode, pair, resp.Status)
	}

	var body pairResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode response for pair %q: %w", pair, err)
	}

	if body.Result != "success" {
		if body.ErrorType != "" {
			return 0, fmt.Errorf("api returned non-success result for pair %q: %s (%s)", pair, body.Result, body.ErrorType)
		}
		return 0, fmt.Errorf("api returned non-success result for pair %q: %s", pair, body.Result)
	}

	if body.BaseCode != "" && body.TargetCode != "" && (body.BaseCode != base || body.TargetCode != quote) {
		return 0, fmt.Errorf("api answered for pair %q instead of %q", body.BaseCode+"/"+body.TargetCode, pair)
	}

	rate := body.ConversionRate
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("api returned unusable rate %v for pair %q", rate, pair)
	}

	return rate, nil
}

func NewExchangeRateClient(httpClient *http.Client, baseURL string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, baseURL: baseURL}
}
