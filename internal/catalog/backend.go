package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/stylehub/internal/logging"
	"github.com/Skotchmaster/stylehub/internal/models"
)

const productTable = "product"

var ErrBackend = errors.New("backend request failed")

var productFields = []string{
	"Name", "Tags", "Owner", "brand", "price", "discount_price", "sale_end_time",
	"images", "sizes", "colors", "category", "subcategory", "in_stock",
}

// BackendClient reads products from the hosted records API.
type BackendClient struct {
	baseURL    string
	projectID  string
	publicKey  string
	httpClient *http.Client
}

func NewBackendClient(baseURL, projectID, publicKey string) *BackendClient {
	return &BackendClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		projectID: projectID,
		publicKey: publicKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type fieldRef struct {
	Field struct {
		Name string `json:"Name"`
	} `json:"field"`
}

type whereClause struct {
	FieldName string   `json:"FieldName"`
	Operator  string   `json:"Operator"`
	Values    []string `json:"Values"`
}

type condition struct {
	FieldName string   `json:"fieldName"`
	Operator  string   `json:"operator"`
	Values    []string `json:"values"`
}

type subGroup struct {
	Conditions []condition `json:"conditions"`
}

type whereGroup struct {
	Operator  string     `json:"operator"`
	SubGroups []subGroup `json:"subGroups"`
}

type pagingInfo struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type fetchParams struct {
	Fields      []fieldRef    `json:"fields"`
	Where       []whereClause `json:"where,omitempty"`
	WhereGroups []whereGroup  `json:"whereGroups,omitempty"`
	PagingInfo  *pagingInfo   `json:"pagingInfo,omitempty"`
}

type backendResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newFetchParams() fetchParams {
	fields := make([]fieldRef, len(productFields))
	for i, name := range productFields {
		fields[i].Field.Name = name
	}
	return fetchParams{Fields: fields}
}

func (c *BackendClient) GetAll(ctx context.Context) ([]models.Product, error) {
	return c.fetch(ctx, newFetchParams())
}

func (c *BackendClient) GetByID(ctx context.Context, id int) (models.Product, error) {
	data, err := c.call(ctx, "/records/"+productTable+"/"+strconv.Itoa(id), newFetchParams())
	if err != nil {
		return models.Product{}, err
	}
	if len(data) == 0 || string(data) == "null" {
		return models.Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	var rec BackendRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.Product{}, fmt.Errorf("decode product %d: %w", id, err)
	}
	return FromBackend(rec)
}

func (c *BackendClient) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	params := newFetchParams()
	params.Where = []whereClause{{FieldName: "category", Operator: "EqualTo", Values: []string{category}}}
	return c.fetch(ctx, params)
}

// Search matches the query against name, brand or category.
func (c *BackendClient) Search(ctx context.Context, query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Product{}, nil
	}
	group := whereGroup{Operator: "OR"}
	for _, field := range []string{"Name", "brand", "category"} {
		group.SubGroups = append(group.SubGroups, subGroup{
			Conditions: []condition{{FieldName: field, Operator: "Contains", Values: []string{query}}},
		})
	}
	params := newFetchParams()
	params.WhereGroups = []whereGroup{group}
	return c.fetch(ctx, params)
}

func (c *BackendClient) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = FeaturedLimit
	}
	params := newFetchParams()
	params.PagingInfo = &pagingInfo{Limit: limit}
	return c.fetch(ctx, params)
}

func (c *BackendClient) fetch(ctx context.Context, params fetchParams) ([]models.Product, error) {
	data, err := c.call(ctx, "/records/"+productTable+"/fetch", params)
	if err != nil {
		return nil, err
	}

	var recs []BackendRecord
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &recs); err != nil {
			return nil, fmt.Errorf("decode products: %w", err)
		}
	}

	l := logging.FromContext(ctx).With("provider", "backend")
	out := make([]models.Product, 0, len(recs))
	for _, r := range recs {
		p, err := FromBackend(r)
		if err != nil {
			l.Warn("backend_product_skipped", "id", r.ID, "error", err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (c *BackendClient) call(ctx context.Context, path string, params fetchParams) (json.RawMessage, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Project-Id", c.projectID)
	req.Header.Set("X-Public-Key", c.publicKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %w", resp.StatusCode, ErrBackend)
	}

	var result backendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("%s: %w", result.Message, ErrBackend)
	}
	return result.Data, nil
}
