package httpclient

import (
	"context"
	"cryptodesk/internal/domain"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const (
	vsCurrency   = "usd"
	apiKeyHeader = "x-cg-demo-api-key"
)

// CoinGeckoClient talks to the public CoinGecko v3 API.
type CoinGeckoClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

type marketResponse struct {
	ID           string   `json:"id"`
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	Image        string   `json:"image"`
	CurrentPrice *float64 `json:"current_price"`
	High24h      *float64 `json:"high_24h"`
	Low24h       *float64 `json:"low_24h"`
}

func (c *CoinGeckoClient) GetUSDPrices(ctx context.Context, ids []string) (map[string]float64, error) {
	if len(ids) == 0 {
		return map[string]float64{}, nil
	}
	uniq := slices.Clone(ids)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)

	query := url.Values{}
	query.Set("ids", strings.Join(uniq, ","))
	query.Set("vs_currencies", vsCurrency)

	// A quote can be null for delisted or stale coins.
	var body map[string]map[string]*float64
	if err := c.getJSON(ctx, "/simple/price", query, &body); err != nil {
		return nil, fmt.Errorf("failed to get prices for %q: %w", uniq, err)
	}

	prices := make(map[string]float64, len(body))
	for id, quotes := range body {
		if v := quotes[vsCurrency]; v != nil {
			prices[id] = *v
		}
	}
	return prices, nil
}

func (c *CoinGeckoClient) GetTopMarkets(ctx context.Context, limit int) ([]domain.MarketSummary, error) {
	query := url.Values{}
	query.Set("vs_currency", vsCurrency)
	query.Set("order", "market_cap_desc")
	query.Set("per_page", strconv.Itoa(limit))
	query.Set("page", "1")

	var body []marketResponse
	if err := c.getJSON(ctx, "/coins/markets", query, &body); err != nil {
		return nil, fmt.Errorf("failed to get top %d markets: %w", limit, err)
	}

	markets := make([]domain.MarketSummary, 0, len(body))
	for _, m := range body {
		markets = append(markets, domain.MarketSummary{
			ID:           m.ID,
			Name:         m.Name,
			Symbol:       m.Symbol,
			ImageURL:     m.Image,
			CurrentPrice: m.CurrentPrice,
			High24h:      m.High24h,
			Low24h:       m.Low24h,
		})
	}
	if len(markets) > limit {
		markets = markets[:limit]
	}
	return markets, nil
}

func (c *CoinGeckoClient) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, resp.Status)
	}

	if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func NewCoinGeckoClient(httpClient *http.Client, baseURL string, apiKey string) *CoinGeckoClient {
	return &CoinGeckoClient{http: httpClient, baseURL: baseURL, apiKey: apiKey}
}
