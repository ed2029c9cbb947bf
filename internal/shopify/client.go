package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Sugar-Kane/shopify-reviews-backend/pkg/httpclient"
)

// Config holds Shopify Admin API credentials and addressing.
type Config struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
	// BaseURL overrides the URL derived from ShopDomain. Used in tests.
	BaseURL string
}

// Client looks up order history through the Shopify Admin API.
type Client struct {
	cfg    Config
	http   *httpclient.CircuitBreakerClient
	logger *slog.Logger
}

// NewClient creates a Shopify Admin API client.
func NewClient(cfg Config, httpClient *httpclient.CircuitBreakerClient, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   httpClient,
		logger: logger,
	}
}

// Configured reports whether the client has credentials to call Shopify.
func (c *Client) Configured() bool {
	return c.cfg.ShopDomain != "" && c.cfg.AccessToken != ""
}

type ordersResponse struct {
	Orders []order `json:"orders"`
}

type order struct {
	FinancialStatus   string     `json:"financial_status"`
	FulfillmentStatus string     `json:"fulfillment_status"`
	LineItems         []lineItem `json:"line_items"`
}

type lineItem struct {
	// Shopify returns numeric product ids; decoded as json.Number so they
	// can be compared against the string ids stored with reviews.
	ProductID json.Number `json:"product_id"`
}

// qualifies reports whether the order counts as a real purchase.
func (o order) qualifies() bool {
	if o.FinancialStatus == "paid" {
		return true
	}
	return o.FulfillmentStatus == "fulfilled" || o.FulfillmentStatus == "partial"
}

// VerifyPurchase reports whether the given email has a paid or fulfilled
// order containing the product. Missing credentials and non-2xx responses
// degrade to (false, nil); only transport failures are returned as errors.
func (c *Client) VerifyPurchase(ctx context.Context, productID, email string) (bool, error) {
	if !c.Configured() {
		c.logger.DebugContext(ctx, "shopify credentials missing, skipping purchase verification")
		return false, nil
	}

	endpoint := fmt.Sprintf("%s/admin/api/%s/orders.json?status=any&email=%s",
		c.baseURL(), c.cfg.APIVersion, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build orders request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.cfg.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return false, fmt.Errorf("fetch orders: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := httpclient.NewStatusError(resp, "shopify")
		c.logger.WarnContext(ctx, "shopify order lookup failed",
			slog.Int("status", resp.StatusCode),
			slog.String("error", statusErr.Error()),
		)
		return false, nil
	}

	var body ordersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("decode orders response: %w", err)
	}

	for _, o := range body.Orders {
		if !o.qualifies() {
			continue
		}
		for _, li := range o.LineItems {
			if li.ProductID.String() == productID {
				return true, nil
			}
		}
	}

	return false, nil
}

func (c *Client) baseURL() string {
	if c.cfg.BaseURL != "" {
		return c.cfg.BaseURL
	}
	return "https://" + c.cfg.ShopDomain
}
