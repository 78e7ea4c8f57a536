// internal/adapters/niimbot/client.go
package niimbot

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ammerola/stockscan/internal/core/domain"
)

// Config holds print service settings
type Config struct {
	BaseURL   string
	Transport string
	Address   string
	Density   int
	LabelType int
	Threshold int
	Timeout   time.Duration
}

// DefaultConfig returns the settings of a locally attached printer
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:58000",
		Transport: "serial",
		Address:   "/dev/ttyACM0",
		Density:   3,
		LabelType: 1,
		Threshold: 128,
		Timeout:   30 * time.Second,
	}
}

// Client talks to a niimbot print service over HTTP
type Client struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a print service client
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With(slog.String("component", "niimbot")),
	}
}

type connectRequest struct {
	Transport string `json:"transport"`
	Address   string `json:"address"`
}

type printRequest struct {
	Quantity      int    `json:"quantity"`
	LabelType     int    `json:"labelType"`
	Density       int    `json:"density"`
	ImageBase64   string `json:"imageBase64"`
	Threshold     int    `json:"threshold"`
	ImagePosition string `json:"imagePosition"`
	ImageFit      string `json:"imageFit"`
}

type serviceResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// PrintPNG connects to the printer, checks it is ready and prints one copy
// of the image.
func (c *Client) PrintPNG(ctx context.Context, png []byte) error {
	if err := c.Connect(ctx); err != nil {
		return err
	}
	if err := c.Ready(ctx); err != nil {
		return err
	}

	req := printRequest{
		Quantity:      1,
		LabelType:     c.cfg.LabelType,
		Density:       c.cfg.Density,
		ImageBase64:   base64.StdEncoding.EncodeToString(png),
		Threshold:     c.cfg.Threshold,
		ImagePosition: "centre",
		ImageFit:      "contain",
	}

	status, resp, err := c.postJSON(ctx, "/print", req)
	if err != nil {
		return err
	}
	if status != http.StatusOK || resp.Message != "Printed" {
		return fmt.Errorf("%w: print failed (status %d): %s", domain.ErrIntegration, status, resp.describe())
	}

	c.logger.DebugContext(ctx, "label printed", slog.Int("bytes", len(png)))
	return nil
}

// Connect opens the printer connection. An already open connection is
// accepted.
func (c *Client) Connect(ctx context.Context) error {
	status, resp, err := c.postJSON(ctx, "/connect", connectRequest{
		Transport: c.cfg.Transport,
		Address:   c.cfg.Address,
	})
	if err != nil {
		return err
	}

	switch {
	case status == http.StatusOK && resp.Message == "Connected":
		c.logger.InfoContext(ctx, "printer connected", slog.String("address", c.cfg.Address))
		return nil
	case status == http.StatusBadRequest && resp.Error == "Already connected":
		return nil
	default:
		return fmt.Errorf("%w: connect failed (status %d): %s", domain.ErrIntegration, status, resp.describe())
	}
}

// Ready reports an error unless the printer returned its model metadata
func (c *Client) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/info", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to call print service: %v", domain.ErrIntegration, err)
	}
	defer resp.Body.Close()

	var info map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return fmt.Errorf("%w: failed to decode printer info: %v", domain.ErrIntegration, err)
	}

	if _, ok := info["modelMetadata"]; !ok {
		return fmt.Errorf("%w: printer not ready", domain.ErrIntegration)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (int, serviceResponse, error) {
	var out serviceResponse

	payload, err := json.Marshal(body)
	if err != nil {
		return 0, out, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, out, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, out, fmt.Errorf("%w: failed to call print service: %v", domain.ErrIntegration, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, out, fmt.Errorf("%w: failed to read print service response: %v", domain.ErrIntegration, err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			return resp.StatusCode, out, fmt.Errorf("%w: failed to decode print service response: %v", domain.ErrIntegration, err)
		}
	}

	return resp.StatusCode, out, nil
}

func (r serviceResponse) describe() string {
	switch {
	case r.Error != "":
		return r.Error
	case r.Message != "":
		return r.Message
	default:
		return "empty response"
	}
}
