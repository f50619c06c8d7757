package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/route-engine/internal/config"
	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/domain/repository"
	"github.com/route-engine/internal/pkg/metrics"
)

const userAgent = "route-engine/1.0"

type client struct {
	httpClient    *http.Client
	urls          []string
	timeout       time.Duration
	retryAttempts int
	retryDelay    time.Duration
	logger        *zap.Logger
}

// NewOverpassClient создает клиент Overpass API: основной URL, затем резервные
func NewOverpassClient(cfg *config.OverpassConfig, logger *zap.Logger) repository.RemotePOIRepository {
	urls := make([]string, 0, len(cfg.FallbackURLs)+1)
	urls = append(urls, cfg.URL)
	urls = append(urls, cfg.FallbackURLs...)

	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	return &client{
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		urls:          urls,
		timeout:       cfg.Timeout,
		retryAttempts: attempts,
		retryDelay:    cfg.RetryDelay,
		logger:        logger.With(zap.String("component", "overpass")),
	}
}

// FetchInBoundingBox загружает POI запрошенных категорий в прямоугольнике
func (c *client) FetchInBoundingBox(ctx context.Context, bbox domain.BoundingBox, categories []domain.POICategory) ([]*domain.POI, error) {
	if !hasSelectors(categories) {
		return nil, nil
	}
	return c.fetch(ctx, buildQuery(bboxFilter(bbox), categories, c.timeout), categories)
}

// FetchInRadius загружает POI запрошенных категорий в радиусе (метры)
func (c *client) FetchInRadius(ctx context.Context, center domain.Coordinate, radius float64, categories []domain.POICategory) ([]*domain.POI, error) {
	if !hasSelectors(categories) {
		return nil, nil
	}
	return c.fetch(ctx, buildQuery(aroundFilter(center, radius), categories, c.timeout), categories)
}

func (c *client) fetch(ctx context.Context, query string, categories []domain.POICategory) ([]*domain.POI, error) {
	resp, err := c.executeQuery(ctx, query)
	if err != nil {
		metrics.RemotePOIFetches.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.RemotePOIFetches.WithLabelValues("ok").Inc()

	pois := parseResponse(resp, categories)
	c.logger.Debug("Overpass POIs parsed",
		zap.Int("elements", len(resp.Elements)),
		zap.Int("pois", len(pois)))
	return pois, nil
}

// linearBackOff - задержка delay*attempt между попытками
type linearBackOff struct {
	delay   time.Duration
	attempt int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return b.delay * time.Duration(b.attempt)
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}

// executeQuery пробует каждый сервер retryAttempts раз, затем переходит к следующему
func (c *client) executeQuery(ctx context.Context, query string) (*response, error) {
	var lastErr error

	for _, endpoint := range c.urls {
		var result *response
		attempt := 0

		operation := func() error {
			attempt++
			c.logger.Debug("Executing Overpass query",
				zap.String("url", endpoint),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", c.retryAttempts))

			r, err := c.post(ctx, endpoint, query)
			if err != nil {
				c.logger.Warn("Overpass query failed",
					zap.String("url", endpoint),
					zap.Int("attempt", attempt),
					zap.Error(err))
				return err
			}
			result = r
			return nil
		}

		policy := backoff.WithContext(
			backoff.WithMaxRetries(&linearBackOff{delay: c.retryDelay}, uint64(c.retryAttempts-1)),
			ctx,
		)

		if err := backoff.Retry(operation, policy); err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}

		c.logger.Info("Overpass query succeeded", zap.String("url", endpoint))
		return result, nil
	}

	c.logger.Error("All Overpass servers failed", zap.Error(lastErr))
	return nil, fmt.Errorf("all overpass servers failed: %w", lastErr)
}

func (c *client) post(ctx context.Context, endpoint, query string) (*response, error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("overpass API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}
