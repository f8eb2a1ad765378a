// Package client talks to the transaction API and keeps a local, summarized copy of the records
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/damon-houk/finance-tracker/internal/domain/entity"
)

// APIError is a non-2xx response from the server
type APIError struct {
	StatusCode  int
	Message     string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("api error %d: %s: %s", e.StatusCode, e.Message, e.Description)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client calls the transaction endpoints of a running server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL, e.g. http://192.168.1.198:5000/api
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

type createRequest struct {
	Type     entity.TransactionType `json:"type"`
	Category string                 `json:"category"`
	Amount   float64                `json:"amount"`
}

// List fetches every transaction, most recent first
func (c *Client) List(ctx context.Context) ([]entity.Transaction, error) {
	var txs []entity.Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions", nil, &txs); err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []entity.Transaction{}
	}
	return txs, nil
}

// Create records a new transaction and returns it as stored
func (c *Client) Create(ctx context.Context, txType entity.TransactionType, category string, amount float64) (*entity.Transaction, error) {
	var tx entity.Transaction
	body := createRequest{Type: txType, Category: category, Amount: amount}
	if err := c.do(ctx, http.MethodPost, "/transactions", body, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// Delete removes a transaction by ID
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil)
}

// Summary fetches the server-side totals
func (c *Client) Summary(ctx context.Context) (entity.Summary, error) {
	var s entity.Summary
	err := c.do(ctx, http.MethodGet, "/transactions/summary", nil, &s)
	return s, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload struct {
			Error       string `json:"error"`
			Description string `json:"description"`
		}
		if json.NewDecoder(resp.Body).Decode(&payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
			apiErr.Description = payload.Description
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
