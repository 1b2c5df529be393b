package yakshop

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/yakshop/internal/config"
	"github.com/mamadbah2/yakshop/internal/domain/models"
)

// Client exposes the upstream YakShop data API operations used by the application.
type Client interface {
	FetchHerd(ctx context.Context) ([]models.Animal, error)
	FetchStock(ctx context.Context) (models.StockLedger, error)
	FetchOrderHistory(ctx context.Context) ([]models.Order, error)
	PlaceOrder(ctx context.Context, order models.Order) (*models.Order, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a YakShop API client using the provided configuration values.
func NewClient(cfg config.YakShopConfig) *APIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &APIClient{httpClient: restyClient}
}

// herdRecord is the upstream herd shape; ages are in years.
type herdRecord struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Age  float64 `json:"age"`
}

type stockRecord struct {
	Milk float64 `json:"milk"`
	Wool float64 `json:"wool"`
}

// apiError represents an upstream error payload.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e *apiError) text() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// FetchHerd returns the herd with ages converted to days.
func (c *APIClient) FetchHerd(ctx context.Context) ([]models.Animal, error) {
	var records []herdRecord
	if err := c.get(ctx, "/herd", &records); err != nil {
		return nil, fmt.Errorf("%w: herd: %w", models.ErrFetchFailed, err)
	}

	animals := make([]models.Animal, 0, len(records))
	for _, r := range records {
		animals = append(animals, models.Animal{
			ID:        r.ID,
			Name:      r.Name,
			AgeInDays: models.DaysFromYears(r.Age),
		})
	}
	return animals, nil
}

// FetchStock returns the baseline stock published upstream.
func (c *APIClient) FetchStock(ctx context.Context) (models.StockLedger, error) {
	var record stockRecord
	if err := c.get(ctx, "/stock", &record); err != nil {
		return models.StockLedger{}, fmt.Errorf("%w: stock: %w", models.ErrFetchFailed, err)
	}
	return models.StockLedger{Milk: record.Milk, Wool: record.Wool}, nil
}

// FetchOrderHistory returns persisted orders in upstream order.
func (c *APIClient) FetchOrderHistory(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.get(ctx, "/orders", &orders); err != nil {
		return nil, fmt.Errorf("%w: orders: %w", models.ErrFetchFailed, err)
	}
	return orders, nil
}

// PlaceOrder submits a reconciled order and returns the stored record.
func (c *APIClient) PlaceOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	result := new(models.Order)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(order).
		SetResult(result).
		SetError(apiErr).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("%w: post order: %w", models.ErrSubmitFailed, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: yakshop api error: code=%d, message=%s", models.ErrSubmitFailed, resp.StatusCode(), apiErr.text())
	}

	// Some deployments answer 201 with an empty body.
	if result.ID == 0 {
		return &order, nil
	}
	return result, nil
}

func (c *APIClient) get(ctx context.Context, path string, out any) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(out).
		SetError(apiErr).
		Get(path)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("yakshop api error: code=%d, message=%s", resp.StatusCode(), apiErr.text())
	}
	return nil
}
