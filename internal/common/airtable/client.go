// Package airtable is a minimal client for the external tabular record
// store holding the Candidates, Campaigns and Interest Expressions tables.
package airtable

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
)

const defaultBaseURL = "https://api.airtable.com/v0"

// maxBodyDetail caps how much of an upstream error body is carried into
// error details.
const maxBodyDetail = 512

type Client struct {
	apiKey     string
	baseID     string
	baseURL    string
	httpClient *http.Client
}

// Record is one row of a table. Fields carries the raw column values as
// decoded JSON; absent columns are simply missing keys.
type Record struct {
	ID          string                 `json:"id"`
	CreatedTime string                 `json:"createdTime,omitempty"`
	Fields      map[string]interface{} `json:"fields"`
}

// SortField orders query results by one column.
type SortField struct {
	Field     string
	Direction string // "asc" or "desc"
}

// QueryOptions narrows a table query. A zero MaxRecords fetches all
// matching records, following the store's offset pagination.
type QueryOptions struct {
	FilterByFormula string
	MaxRecords      int
	Sort            []SortField
}

type recordPage struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

func NewClient(apiKey, baseID string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseID:  baseID,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWithBaseURL points the client at a non-default API host.
func NewClientWithBaseURL(apiKey, baseID, baseURL string, timeout time.Duration) *Client {
	c := NewClient(apiKey, baseID, timeout)
	c.baseURL = baseURL
	return c
}

// Query lists records of a table matching the filter formula.
func (c *Client) Query(ctx context.Context, tableID string, opts QueryOptions) ([]Record, error) {
	var records []Record
	offset := ""

	for {
		page, err := c.queryPage(ctx, tableID, opts, offset)
		if err != nil {
			return nil, err
		}
		records = append(records, page.Records...)

		if opts.MaxRecords > 0 && len(records) >= opts.MaxRecords {
			return records[:opts.MaxRecords], nil
		}
		if page.Offset == "" {
			return records, nil
		}
		offset = page.Offset
	}
}

func (c *Client) queryPage(ctx context.Context, tableID string, opts QueryOptions, offset string) (*recordPage, error) {
	params := url.Values{}
	if opts.FilterByFormula != "" {
		params.Set("filterByFormula", opts.FilterByFormula)
	}
	if opts.MaxRecords > 0 {
		params.Set("maxRecords", strconv.Itoa(opts.MaxRecords))
	}
	for i, s := range opts.Sort {
		params.Set(fmt.Sprintf("sort[%d][field]", i), s.Field)
		if s.Direction != "" {
			params.Set(fmt.Sprintf("sort[%d][direction]", i), s.Direction)
		}
	}
	if offset != "" {
		params.Set("offset", offset)
	}

	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(tableID))
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyDetail))
		return nil, fmt.Errorf("query %s failed (status %d): %s", tableID, resp.StatusCode, string(body))
	}

	var page recordPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &page, nil
}

// CreateRecord inserts one record into a table and returns it with the
// store-assigned id.
func (c *Client) CreateRecord(ctx context.Context, tableID string, fields map[string]interface{}) (*Record, error) {
	payload := map[string]interface{}{
		"records": []map[string]interface{}{
			{"fields": fields},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(tableID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		if len(body) > maxBodyDetail {
			body = body[:maxBodyDetail]
		}
		return nil, fmt.Errorf("create in %s failed (status %d): %s", tableID, resp.StatusCode, string(body))
	}

	var page recordPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(page.Records) == 0 {
		return nil, fmt.Errorf("no record in response")
	}
	return &page.Records[0], nil
}
