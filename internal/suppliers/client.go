// Package suppliers talks to the Data API for supplier-facing resources:
// frameworks, declarations, and draft services.
package suppliers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// APIError is returned when the Data API responds with a non-2xx status.
// The status code is propagated uninterpreted so callers can decide how to
// surface it (a 404 declaration is normal for a supplier who has not started).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("data api: status %d: %s", e.StatusCode, e.Message)
}

// Client is an HTTP client for the Data API.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	tracer     trace.Tracer
}

// NewClient builds a Data API client. baseURL should not have a trailing slash.
func NewClient(baseURL, authToken string) *Client {
	return &Client{
		baseURL:   baseURL,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tracer: otel.Tracer("suppliers"),
	}
}

// GetFramework fetches a framework by slug.
func (c *Client) GetFramework(ctx context.Context, slug string) (*Framework, error) {
	ctx, span := c.tracer.Start(ctx, "GetFramework")
	defer span.End()

	var envelope struct {
		Frameworks Framework `json:"frameworks"`
	}
	path := "/frameworks/" + url.PathEscape(slug)
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Frameworks, nil
}

// GetSupplierDeclaration fetches a supplier's declaration answers for a framework.
func (c *Client) GetSupplierDeclaration(ctx context.Context, supplierID int, frameworkSlug string) (map[string]any, error) {
	ctx, span := c.tracer.Start(ctx, "GetSupplierDeclaration")
	defer span.End()

	var envelope struct {
		Declaration map[string]any `json:"declaration"`
	}
	path := fmt.Sprintf("/suppliers/%d/frameworks/%s/declaration", supplierID, url.PathEscape(frameworkSlug))
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Declaration, nil
}

// SetSupplierDeclaration replaces a supplier's declaration for a framework.
func (c *Client) SetSupplierDeclaration(ctx context.Context, supplierID int, frameworkSlug string, declaration map[string]any, updatedBy string) error {
	ctx, span := c.tracer.Start(ctx, "SetSupplierDeclaration")
	defer span.End()

	body := map[string]any{
		"declaration": declaration,
		"updated_by":  updatedBy,
	}
	path := fmt.Sprintf("/suppliers/%d/frameworks/%s/declaration", supplierID, url.PathEscape(frameworkSlug))
	return c.do(ctx, http.MethodPut, path, body, nil)
}

// FindDraftServices lists a supplier's draft services for a framework.
func (c *Client) FindDraftServices(ctx context.Context, supplierID int, frameworkSlug string) ([]DraftService, error) {
	ctx, span := c.tracer.Start(ctx, "FindDraftServices")
	defer span.End()

	var envelope struct {
		Services []DraftService `json:"services"`
	}
	query := url.Values{
		"supplier_id": {strconv.Itoa(supplierID)},
		"framework":   {frameworkSlug},
	}
	if err := c.do(ctx, http.MethodGet, "/draft-services?"+query.Encode(), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Services, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    apiErrorMessage(resp.Body),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// apiErrorMessage pulls the "error" field out of a failure body when there is
// one; the Data API sends {"error": "..."} on most failures.
func apiErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var envelope struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &envelope) == nil && envelope.Error != "" {
		return envelope.Error
	}
	return string(bytes.TrimSpace(raw))
}
