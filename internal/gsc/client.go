// Package gsc fetches per-query performance rows from the Search Console
// Search Analytics API.
package gsc

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

	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/oauth2"

	"keyword-insights/internal/common/config"
	"keyword-insights/internal/common/database"
	"keyword-insights/internal/common/errors"
	httpclient "keyword-insights/internal/common/http"
	"keyword-insights/internal/common/logger"
	"keyword-insights/internal/models"
)

const dateLayout = "2006-01-02"

// responseSchema rejects payloads whose rows do not match the published
// Search Analytics shape before any row is mapped to a KeywordRecord.
const responseSchema = `{
	"type": "object",
	"properties": {
		"rows": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["keys", "clicks", "impressions", "ctr", "position"],
				"properties": {
					"keys": {"type": "array", "items": {"type": "string"}, "minItems": 1},
					"clicks": {"type": "number", "minimum": 0},
					"impressions": {"type": "number", "minimum": 0},
					"ctr": {"type": "number", "minimum": 0, "maximum": 1},
					"position": {"type": "number", "minimum": 0}
				}
			}
		}
	}
}`

// Client pages through searchAnalytics/query for one property. A redis
// cache, when configured, holds whole date ranges so repeated channel runs
// inside one window do not refetch.
type Client struct {
	http     *httpclient.Client
	tokens   oauth2.TokenSource
	baseURL  string
	siteURL  string
	pageSize int
	cache    *database.RedisClient
	cacheTTL time.Duration
	schema   *gojsonschema.Schema
	log      logger.Logger
}

// NewClient builds a client from config. cache may be nil to disable
// caching entirely.
func NewClient(cfg config.GSCConfig, cache *database.RedisClient, log logger.Logger) (*Client, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(responseSchema))
	if err != nil {
		return nil, fmt.Errorf("compile response schema: %w", err)
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: cfg.TokenURL},
	}
	tokens := oauthCfg.TokenSource(context.Background(), &oauth2.Token{RefreshToken: cfg.RefreshToken})

	return &Client{
		http:     httpclient.NewClient(config.GetDuration(cfg.Timeout)),
		tokens:   tokens,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		siteURL:  cfg.SiteURL,
		pageSize: cfg.PageSize,
		cache:    cache,
		cacheTTL: config.GetDuration(cfg.CacheTTL),
		schema:   schema,
		log:      log,
	}, nil
}

type queryRequest struct {
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Dimensions []string `json:"dimensions"`
	RowLimit   int      `json:"rowLimit"`
	StartRow   int      `json:"startRow"`
}

type queryResponse struct {
	Rows []struct {
		Keys        []string `json:"keys"`
		Clicks      float64  `json:"clicks"`
		Impressions float64  `json:"impressions"`
		CTR         float64  `json:"ctr"`
		Position    float64  `json:"position"`
	} `json:"rows"`
}

// FetchSearchAnalytics returns every query row for the date range, paging
// until a short page arrives.
func (c *Client) FetchSearchAnalytics(ctx context.Context, start, end time.Time) ([]models.KeywordRecord, error) {
	cacheKey := fmt.Sprintf("gsc:sa:%s:%s:%s", c.siteURL, start.Format(dateLayout), end.Format(dateLayout))

	if cached, ok := c.readCache(ctx, cacheKey); ok {
		return cached, nil
	}

	var records []models.KeywordRecord
	startRow := 0
	for {
		page, err := c.fetchPage(ctx, start, end, startRow)
		if err != nil {
			return nil, err
		}
		records = append(records, page...)
		if len(page) < c.pageSize {
			break
		}
		startRow += len(page)
	}

	c.log.Info("search analytics fetched", map[string]interface{}{
		"site":    c.siteURL,
		"start":   start.Format(dateLayout),
		"end":     end.Format(dateLayout),
		"records": len(records),
	})

	c.writeCache(ctx, cacheKey, records)
	return records, nil
}

func (c *Client) fetchPage(ctx context.Context, start, end time.Time, startRow int) ([]models.KeywordRecord, error) {
	body, err := json.Marshal(queryRequest{
		StartDate:  start.Format(dateLayout),
		EndDate:    end.Format(dateLayout),
		Dimensions: []string{"query"},
		RowLimit:   c.pageSize,
		StartRow:   startRow,
	})
	if err != nil {
		return nil, errors.NewGSCFetchFailedError(err)
	}

	endpoint := fmt.Sprintf("%s/sites/%s/searchAnalytics/query", c.baseURL, url.PathEscape(c.siteURL))
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewGSCFetchFailedError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.tokens.Token()
	if err != nil {
		return nil, errors.NewGSCAuthFailedError(err.Error())
	}
	token.SetAuthHeader(req)

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return nil, errors.NewGSCFetchFailedError(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewGSCFetchFailedError(err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errors.NewGSCAuthFailedError(fmt.Sprintf("status %d: %s", resp.StatusCode, payload))
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errors.NewGSCRateLimitedError(fmt.Sprintf("status %d", resp.StatusCode))
	case resp.StatusCode >= 400:
		return nil, errors.NewGSCFetchFailedError(fmt.Errorf("status %d: %s", resp.StatusCode, payload))
	}

	if err := c.validate(payload); err != nil {
		return nil, err
	}

	var parsed queryResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, errors.NewGSCBadResponseError(err.Error())
	}

	records := make([]models.KeywordRecord, 0, len(parsed.Rows))
	for _, row := range parsed.Rows {
		records = append(records, models.KeywordRecord{
			Query:       row.Keys[0],
			Impressions: int(row.Impressions),
			Clicks:      int(row.Clicks),
			CTR:         row.CTR,
			Position:    row.Position,
		})
	}
	return records, nil
}

func (c *Client) validate(payload []byte) error {
	result, err := c.schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return errors.NewGSCBadResponseError(err.Error())
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return errors.NewGSCBadResponseError(strings.Join(details, "; "))
	}
	return nil
}

func (c *Client) readCache(ctx context.Context, key string) ([]models.KeywordRecord, bool) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return nil, false
	}
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var records []models.KeywordRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		c.log.Warn("discarding undecodable cache entry", map[string]interface{}{"key": key, "error": err.Error()})
		return nil, false
	}
	c.log.Debug("search analytics served from cache", map[string]interface{}{"key": key, "records": len(records)})
	return records, true
}

func (c *Client) writeCache(ctx context.Context, key string, records []models.KeywordRecord) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, string(raw), c.cacheTTL); err != nil {
		c.log.Warn("failed to cache search analytics", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
