// internal/adapters/openfoodfacts/client.go
package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ammerola/stockscan/internal/core/domain"
	"github.com/ammerola/stockscan/internal/core/ports"
)

// Config holds OpenFoodFacts client settings
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	UserAgent         string
	RequestsPerMinute int
	IgnoredCodes      []string
}

// Client looks up product names through the OpenFoodFacts v0 product API
type Client struct {
	baseURL   string
	userAgent string
	ignored   map[string]struct{}
	client    *http.Client
	limiter   *rate.Limiter
	logger    *slog.Logger
}

var _ ports.ProductLookup = (*Client)(nil)

// NewClient creates a lookup client
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}

	ignored := make(map[string]struct{}, len(cfg.IgnoredCodes))
	for _, code := range cfg.IgnoredCodes {
		ignored[code] = struct{}{}
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		ignored:   ignored,
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.RequestsPerMinute),
		logger:    logger.With(slog.String("component", "openfoodfacts")),
	}
}

type productResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName   string `json:"product_name"`
		ProductNameDE string `json:"product_name_de"`
	} `json:"product"`
}

// LookupName returns the product name for code. Codes on the ignore list
// are reported as not found without a request.
func (c *Client) LookupName(ctx context.Context, code string) (string, bool, error) {
	if _, skip := c.ignored[code]; skip {
		c.logger.DebugContext(ctx, "ignored code", slog.String("code", code))
		return "", false, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", false, fmt.Errorf("lookup rate limit wait: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/v0/product/%s.json?fields=product_name,product_name_de",
		c.baseURL, url.PathEscape(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("%w: failed to call openfoodfacts: %v", domain.ErrIntegration, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("%w: openfoodfacts returned status %d", domain.ErrIntegration, resp.StatusCode)
	}

	var body productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", false, fmt.Errorf("%w: failed to decode openfoodfacts response: %v", domain.ErrIntegration, err)
	}

	c.logger.DebugContext(ctx, "lookup completed",
		slog.String("code", code),
		slog.Int("status", body.Status),
		slog.Duration("duration", time.Since(start)))

	if body.Status != 1 {
		return "", false, nil
	}

	name := strings.TrimSpace(body.Product.ProductNameDE)
	if name == "" {
		name = strings.TrimSpace(body.Product.ProductName)
	}
	if name == "" {
		return "", false, fmt.Errorf("%w: product %s has no name", domain.ErrIntegration, code)
	}

	return name, true, nil
}
