package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/restopos/inventory-service/internal/application/inventory"
	"github.com/restopos/inventory-service/internal/domain"
)

// Compile-time check that Client implements the OrdersClient port.
var _ inventory.OrdersClient = (*Client)(nil)

// Client talks to the Orders service over HTTP. The base URL comes from its
// own configuration value and every call carries a bounded timeout; the
// upstream is treated as unreliable, so any transport failure surfaces as
// domain.ErrUpstreamUnavailable rather than crashing the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds the client. timeout bounds the whole request.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchOrderItems retrieves the line items of one order.
func (c *Client) FetchOrderItems(ctx context.Context, orderID string) ([]inventory.OrderLine, error) {
	endpoint := fmt.Sprintf("%s/orders/%s/items", c.baseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build orders request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}

	var lines []inventory.OrderLine
	if err := json.NewDecoder(resp.Body).Decode(&lines); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrUpstreamUnavailable, err)
	}
	return lines, nil
}
