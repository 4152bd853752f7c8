// Package usage fetches quota utilization from the Anthropic OAuth usage
// endpoint.
package usage

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/erwint/claude-usage-monitor/internal/config"
	"github.com/erwint/claude-usage-monitor/internal/types"
)

const (
	Endpoint   = "https://api.anthropic.com/api/oauth/usage"
	UserAgent  = "claude-code-usage-monitor/1.0.0"
	BetaHeader = "oauth-2025-04-20"
)

// Client performs usage requests. The zero value uses http.DefaultClient
// and the production endpoint.
type Client struct {
	HTTPClient *http.Client
	Endpoint   string
}

// NewClient returns a client for endpoint, or the production endpoint if
// endpoint is empty.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = Endpoint
	}
	return &Client{HTTPClient: &http.Client{}, Endpoint: endpoint}
}

// usagePayload mirrors types.UsageResponse with the required windows as
// pointers so their absence can be detected.
type usagePayload struct {
	FiveHour       *types.UsageMetric `json:"five_hour"`
	SevenDay       *types.UsageMetric `json:"seven_day"`
	SevenDayOpus   *types.UsageMetric `json:"seven_day_opus"`
	SevenDaySonnet *types.UsageMetric `json:"seven_day_sonnet"`
}

// FetchUsage issues a single GET for accessToken. It does not retry.
func (c *Client) FetchUsage(accessToken string) (*types.UsageResponse, error) {
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = Endpoint
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("anthropic-beta", BetaHeader)

	resp, err := httpClient.Do(req)
	if err != nil {
		config.DebugLog("Usage request failed: %v", err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		config.DebugLog("Usage API returned %d", resp.StatusCode)
		return nil, &ResponseError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	var payload usagePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if payload.FiveHour == nil {
		return nil, &DecodeError{Err: errors.New("missing field five_hour")}
	}
	if payload.SevenDay == nil {
		return nil, &DecodeError{Err: errors.New("missing field seven_day")}
	}

	config.DebugLog("Fetched usage: 5h=%.1f%% 7d=%.1f%%", payload.FiveHour.Utilization, payload.SevenDay.Utilization)
	return &types.UsageResponse{
		FiveHour:       *payload.FiveHour,
		SevenDay:       *payload.SevenDay,
		SevenDayOpus:   payload.SevenDayOpus,
		SevenDaySonnet: payload.SevenDaySonnet,
	}, nil
}
