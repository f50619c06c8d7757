package valhalla

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"

	"go.uber.org/zap"

	"github.com/route-engine/internal/config"
	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/domain/repository"
	"github.com/route-engine/internal/pkg/errors"
)

// BackendName - имя бэкенда в метриках и RouteResult
const BackendName = "valhalla"

type client struct {
	httpClient   *http.Client
	healthClient *http.Client
	baseURL      string
	language     string
	logger       *zap.Logger
}

// NewValhallaClient создает клиент основного бэкенда маршрутизации
func NewValhallaClient(cfg *config.ValhallaConfig, logger *zap.Logger) repository.RoutingBackend {
	return &client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		healthClient: &http.Client{Timeout: cfg.HealthTimeout},
		baseURL:      cfg.URL,
		language:     cfg.Language,
		logger:       logger.With(zap.String("backend", BackendName)),
	}
}

func (c *client) Name() string {
	return BackendName
}

// costingProfile переводит способ передвижения в costing Valhalla
func costingProfile(mode domain.TransportMode) string {
	switch mode {
	case domain.TransportModeBicycle:
		return "bicycle"
	case domain.TransportModePedestrian:
		return "pedestrian"
	default:
		return "auto"
	}
}

func toLocation(c domain.Coordinate, kind string) location {
	return location{Lat: c.Latitude, Lon: c.Longitude, Type: kind}
}

// HealthCheck проверяет GET /status
func (c *client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.healthClient.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return errors.Wrap(errors.ErrBackendUnavailable, fmt.Errorf("valhalla status: %d", resp.StatusCode))
	}
	return nil
}

// Route строит маршрут: origin и destination - break, промежуточные точки - through
func (c *client) Route(ctx context.Context, req domain.RouteRequest) ([]*domain.RouteResult, error) {
	locations := make([]location, 0, len(req.Waypoints)+2)
	locations = append(locations, toLocation(req.Origin, "break"))
	for _, wp := range req.Waypoints {
		locations = append(locations, toLocation(wp, "through"))
	}
	locations = append(locations, toLocation(req.Destination, "break"))

	costing := costingProfile(req.Mode)
	body := routeRequest{
		Locations: locations,
		Costing:   costing,
		DirectionsOptions: &directionsOptions{
			Units:    "kilometers",
			Language: c.language,
		},
		Alternates: req.Options.AlternateCount,
	}

	if costing == "auto" && (req.Options.AvoidHighways || req.Options.AvoidTolls) {
		auto := map[string]float64{}
		if req.Options.AvoidHighways {
			auto["use_highways"] = 0
		}
		if req.Options.AvoidTolls {
			auto["use_tolls"] = 0
		}
		body.CostingOptions = map[string]map[string]float64{"auto": auto}
	}

	var resp routeResponse
	if err := c.post(ctx, "/route", body, &resp); err != nil {
		return nil, err
	}

	if resp.Trip == nil || len(resp.Trip.Legs) == 0 {
		return nil, errors.Wrap(errors.ErrRouteNotFound, fmt.Errorf("valhalla returned no trip"))
	}

	results := []*domain.RouteResult{toRouteResult(resp.Trip)}
	for _, alt := range resp.Alternates {
		if alt.Trip != nil && len(alt.Trip.Legs) > 0 {
			results = append(results, toRouteResult(alt.Trip))
		}
	}

	c.logger.Debug("Valhalla route computed",
		zap.Int("locations", len(locations)),
		zap.Int("routes", len(results)),
		zap.Float64("distance_m", results[0].Distance))

	return results, nil
}

// OptimizedRoute вызывает /optimized_route, все точки - break
func (c *client) OptimizedRoute(ctx context.Context, locations []domain.Coordinate, mode domain.TransportMode) (*domain.RouteResult, error) {
	body := routeRequest{
		Locations: make([]location, len(locations)),
		Costing:   costingProfile(mode),
	}
	for i, loc := range locations {
		body.Locations[i] = toLocation(loc, "break")
	}

	var resp routeResponse
	if err := c.post(ctx, "/optimized_route", body, &resp); err != nil {
		return nil, err
	}
	if resp.Trip == nil || len(resp.Trip.Legs) == 0 {
		return nil, errors.Wrap(errors.ErrRouteNotFound, fmt.Errorf("valhalla returned no optimized trip"))
	}

	return toRouteResult(resp.Trip), nil
}

// Matrix вызывает /sources_to_targets. Отсутствующие ячейки - +Inf.
func (c *client) Matrix(ctx context.Context, sources, targets []domain.Coordinate, mode domain.TransportMode) (*domain.MatrixResult, error) {
	body := matrixRequest{
		Sources: make([]location, len(sources)),
		Targets: make([]location, len(targets)),
		Costing: costingProfile(mode),
	}
	for i, s := range sources {
		body.Sources[i] = toLocation(s, "")
	}
	for i, t := range targets {
		body.Targets[i] = toLocation(t, "")
	}

	var resp matrixResponse
	if err := c.post(ctx, "/sources_to_targets", body, &resp); err != nil {
		return nil, err
	}

	result := &domain.MatrixResult{
		Distances: make([][]float64, len(sources)),
		Durations: make([][]float64, len(sources)),
	}
	for i := range sources {
		result.Distances[i] = make([]float64, len(targets))
		result.Durations[i] = make([]float64, len(targets))
		for j := range targets {
			result.Distances[i][j] = math.Inf(1)
			result.Durations[i][j] = math.Inf(1)

			if i >= len(resp.SourcesToTargets) || j >= len(resp.SourcesToTargets[i]) {
				continue
			}
			cell := resp.SourcesToTargets[i][j]
			if cell == nil {
				continue
			}
			if cell.Distance != nil {
				result.Distances[i][j] = *cell.Distance * 1000
			}
			if cell.Time != nil {
				result.Durations[i][j] = *cell.Time
			}
		}
	}

	return result, nil
}

// Locate привязывает точку к дороге через /locate
func (c *client) Locate(ctx context.Context, point domain.Coordinate, mode domain.TransportMode) (*domain.Coordinate, error) {
	body := locateRequest{
		Locations: []location{toLocation(point, "")},
		Costing:   costingProfile(mode),
		Verbose:   true,
	}

	var resp []locateResult
	if err := c.post(ctx, "/locate", body, &resp); err != nil {
		return nil, err
	}

	if len(resp) == 0 || len(resp[0].Edges) == 0 {
		return nil, nil
	}

	edge := resp[0].Edges[0]
	return &domain.Coordinate{Latitude: edge.CorrelatedLat, Longitude: edge.CorrelatedLon}, nil
}

func (c *client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Calling Valhalla API", zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.String("path", path), zap.Error(err))
		return errors.Wrap(errors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("Valhalla API returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return errors.Wrap(errors.ErrBackendUnavailable,
			fmt.Errorf("valhalla API error: status %d, body: %s", resp.StatusCode, string(respBody)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode response", zap.String("path", path), zap.Error(err))
		return errors.Wrap(errors.ErrBackendUnavailable, fmt.Errorf("failed to decode response: %w", err))
	}

	return nil
}

// toRouteResult нормализует trip Valhalla: километры переводятся в метры
func toRouteResult(t *trip) *domain.RouteResult {
	result := &domain.RouteResult{
		Backend:   BackendName,
		Locations: make([]domain.Coordinate, len(t.Locations)),
		Legs:      make([]domain.LegResult, len(t.Legs)),
		Distance:  t.Summary.Length * 1000,
		Duration:  t.Summary.Time,
	}

	for i, loc := range t.Locations {
		result.Locations[i] = domain.Coordinate{Latitude: loc.Lat, Longitude: loc.Lon}
	}

	for i, l := range t.Legs {
		maneuvers := make([]domain.ManeuverResult, len(l.Maneuvers))
		for j, m := range l.Maneuvers {
			maneuvers[j] = domain.ManeuverResult{
				Type:            m.Type,
				Instruction:     m.Instruction,
				BeginShapeIndex: m.BeginShapeIndex,
				EndShapeIndex:   m.EndShapeIndex,
				Distance:        m.Length * 1000,
				Duration:        m.Time,
				BearingBefore:   m.BearingBefore,
				BearingAfter:    m.BearingAfter,
			}
		}
		result.Legs[i] = domain.LegResult{
			Shape:     l.Shape,
			Distance:  l.Summary.Length * 1000,
			Duration:  l.Summary.Time,
			Maneuvers: maneuvers,
		}
	}

	return result
}
