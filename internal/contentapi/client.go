package contentapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// connection settings for the content-understanding service, sourced once
// at process start by the caller; this package never reads the environment
type Config struct {
	Endpoint        string
	APIVersion      string
	SubscriptionKey string
	HTTPClient      *http.Client
}

// thin client for the frame-retrieval endpoint of an analyzer result
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
	}, nil
}

type frameResponse struct {
	Data string `json:"data"`
}

// retrieves one frame of an analyzed video as raw JPEG bytes. The service
// returns the frame base64-encoded in the "data" field.
func (c *Client) GetFrame(ctx context.Context, operationID string, timeMS int64) ([]byte, error) {
	if operationID == "" {
		return nil, fmt.Errorf("operation ID is required")
	}

	endpoint := strings.TrimRight(c.cfg.Endpoint, "/")
	requestURL := fmt.Sprintf("%s/analyzerResults/%s/frames/%d",
		endpoint, url.PathEscape(operationID), timeMS)
	if c.cfg.APIVersion != "" {
		requestURL += "?api-version=" + url.QueryEscape(c.cfg.APIVersion)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build frame request: %w", err)
	}
	if c.cfg.SubscriptionKey != "" {
		req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.SubscriptionKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("frame request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("frame request returned %s", resp.Status)
	}

	var fr frameResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return nil, fmt.Errorf("failed to decode frame response: %w", err)
	}
	if fr.Data == "" {
		return nil, fmt.Errorf("frame response has no data field")
	}

	raw, err := base64.StdEncoding.DecodeString(fr.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame payload: %w", err)
	}

	return raw, nil
}
