package postgrest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/stockroom/internal/config"
)

// Client exposes the PostgREST table operations used by the record sources.
type Client interface {
	Select(ctx context.Context, table string, result any) error
	Insert(ctx context.Context, table string, row any, result any) error
	Update(ctx context.Context, table, id string, row any, result any) error
	Delete(ctx context.Context, table, id string, result any) error
}

// APIClient is a resty-backed implementation of Client talking to the
// Supabase REST endpoint.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a PostgREST client using the provided configuration values.
func NewClient(cfg config.SupabaseConfig) *APIClient {
	base := strings.TrimSuffix(cfg.URL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base+"/rest/v1").
		SetHeader("apikey", cfg.AnonKey).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AnonKey)).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// APIError is a PostgREST error payload together with the HTTP status.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("postgrest api error: status=%d, code=%s, message=%s", e.Status, e.Code, e.Message)
}

func (c *APIClient) Select(ctx context.Context, table string, result any) error {
	req, apiErr := c.request(ctx, result)
	resp, err := req.
		SetQueryParam("select", "*").
		SetQueryParam("order", "created_at.asc").
		Get(table)
	return check("select", table, resp, apiErr, err)
}

func (c *APIClient) Insert(ctx context.Context, table string, row any, result any) error {
	req, apiErr := c.request(ctx, result)
	resp, err := req.
		SetHeader("Prefer", "return=representation").
		SetBody(row).
		Post(table)
	return check("insert", table, resp, apiErr, err)
}

func (c *APIClient) Update(ctx context.Context, table, id string, row any, result any) error {
	req, apiErr := c.request(ctx, result)
	resp, err := req.
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", "eq."+id).
		SetBody(row).
		Patch(table)
	return check("update", table, resp, apiErr, err)
}

func (c *APIClient) Delete(ctx context.Context, table, id string, result any) error {
	req, apiErr := c.request(ctx, result)
	resp, err := req.
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", "eq."+id).
		Delete(table)
	return check("delete", table, resp, apiErr, err)
}

func (c *APIClient) request(ctx context.Context, result any) (*resty.Request, *APIError) {
	apiErr := new(APIError)
	req := c.httpClient.R().
		SetContext(ctx).
		SetError(apiErr)
	if result != nil {
		req.SetResult(result)
	}
	return req, apiErr
}

func check(op, table string, resp *resty.Response, apiErr *APIError, err error) error {
	if err != nil {
		return fmt.Errorf("postgrest %s %s: %w", op, table, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		apiErr.Status = resp.StatusCode()
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(resp.String())
		}
		return fmt.Errorf("postgrest %s %s: %w", op, table, apiErr)
	}

	return nil
}
