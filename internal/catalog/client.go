// Package catalog implements the HTTP client for the external product
// catalog. Products are resolved live by product ID; nothing from the
// catalog is persisted.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// placeholder is substituted with the product ID in the URL template.
const placeholder = "|PRODUCT_ID|"

// ErrProductNotFound is returned when the catalog answers anything but 200
// for a product ID.
var ErrProductNotFound = errors.New("catalog: product not found")

// Product is the display metadata the catalog returns for a product ID.
// ReviewScore is absent for products without reviews.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Price       float64  `json:"price"`
	ReviewScore *float64 `json:"review_score,omitempty"`
}

// catalogResponse mirrors the catalog's wire format.
type catalogResponse struct {
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Price       float64  `json:"price"`
	ReviewScore *float64 `json:"reviewScore"`
}

// Client resolves product IDs against the configured catalog endpoint.
// It is safe for concurrent use.
type Client struct {
	urlTemplate string
	httpClient  *http.Client
}

// NewClient builds a Client for the given URL template (containing the
// |PRODUCT_ID| placeholder) with a per-request timeout.
func NewClient(urlTemplate string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		urlTemplate: urlTemplate,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// URL returns the catalog endpoint for productID.
func (c *Client) URL(productID string) string {
	return strings.ReplaceAll(c.urlTemplate, placeholder, productID)
}

// Fetch resolves a single product. A non-200 catalog answer yields
// ErrProductNotFound; transport and decoding failures return the
// underlying error.
func (c *Client) Fetch(ctx context.Context, productID string) (*Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(productID), nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch %s: %w", productID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrProductNotFound
	}

	var body catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", productID, err)
	}

	return &Product{
		ID:          productID,
		Title:       body.Title,
		Image:       body.Image,
		Price:       body.Price,
		ReviewScore: body.ReviewScore,
	}, nil
}

// Exists reports whether the catalog knows productID.
func (c *Client) Exists(ctx context.Context, productID string) (bool, error) {
	_, err := c.Fetch(ctx, productID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrProductNotFound) {
		return false, nil
	}
	return false, err
}
