package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

var (
	errEmptyArray = errors.New("empty array")
	errEmptyBody  = errors.New("empty body")
)

// Client talks to the remote stock record API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Client for the API rooted at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListAll fetches the whole collection. Filtering happens client side.
func (c *Client) ListAll(ctx context.Context) ([]models.StockRecord, error) {
	body, err := c.do(ctx, "list", http.MethodGet, "/api/all", nil)
	if err != nil {
		return nil, err
	}

	var records []models.StockRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &DataShapeError{Op: "list", Body: string(body), Err: err}
	}
	return records, nil
}

// GetByID fetches one record. Some deployments answer with a one element
// array instead of an object; the first element is used in that case.
func (c *Client) GetByID(ctx context.Context, id string) (models.StockRecord, error) {
	body, err := c.do(ctx, "get", http.MethodGet, "/api/stock/"+url.PathEscape(id), nil)
	if err != nil {
		return models.StockRecord{}, err
	}

	record, err := decodeOne(body)
	if err != nil {
		return models.StockRecord{}, &DataShapeError{Op: "get", Body: string(body), Err: err}
	}
	return record, nil
}

// Create sends a new record and returns it with the server assigned ID
func (c *Client) Create(ctx context.Context, fields models.StockFields) (models.StockRecord, error) {
	body, err := c.do(ctx, "create", http.MethodPost, "/api/stock/create", fields)
	if err != nil {
		return models.StockRecord{}, err
	}

	record, err := decodeOne(body)
	if err != nil {
		return models.StockRecord{}, &DataShapeError{Op: "create", Body: string(body), Err: err}
	}
	return record, nil
}

// Update replaces the editable fields of record id
func (c *Client) Update(ctx context.Context, id string, fields models.StockFields) error {
	_, err := c.do(ctx, "update", http.MethodPut, "/api/stock/update/"+url.PathEscape(id), fields)
	return err
}

// Delete removes record id
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, "delete", http.MethodDelete, "/api/stock/delete/"+url.PathEscape(id), nil)
	return err
}

// Export asks the server to write the full dataset to path and returns the
// server's message. What gets written there is up to the server.
func (c *Client) Export(ctx context.Context, path string) (string, error) {
	body, err := c.do(ctx, "export", http.MethodPost, "/api/stock/export", map[string]string{"path": path})
	if err != nil {
		return "", err
	}

	var msg string
	if err := json.Unmarshal(body, &msg); err == nil {
		return msg, nil
	}
	return strings.TrimSpace(string(body)), nil
}

func (c *Client) do(ctx context.Context, op, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s request: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("op", op).Str("path", path).Msg("Stock API request failed")
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	log.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Stock API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serverErr := &ServerError{Op: op, StatusCode: resp.StatusCode, Payload: strings.TrimSpace(string(body))}
		log.Error().
			Str("op", op).
			Int("status", resp.StatusCode).
			Str("payload", serverErr.Payload).
			Msg("Stock API returned error")
		return nil, serverErr
	}

	return body, nil
}

// decodeOne accepts either a record object or an array of records
func decodeOne(body []byte) (models.StockRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return models.StockRecord{}, errEmptyBody
	}
	if trimmed[0] == '[' {
		var records []models.StockRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return models.StockRecord{}, err
		}
		if len(records) == 0 {
			return models.StockRecord{}, errEmptyArray
		}
		return records[0], nil
	}

	var record models.StockRecord
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return models.StockRecord{}, err
	}
	return record, nil
}
