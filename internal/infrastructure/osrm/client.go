package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/route-engine/internal/config"
	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/domain/repository"
	"github.com/route-engine/internal/pkg/errors"
	"github.com/route-engine/internal/pkg/polyline"
)

// BackendName - имя бэкенда в метриках и RouteResult
const BackendName = "osrm"

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewOSRMClient создает клиент публичного резервного бэкенда
func NewOSRMClient(cfg *config.OSRMConfig, logger *zap.Logger) repository.RoutingBackend {
	return &client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.URL,
		logger:     logger.With(zap.String("backend", BackendName)),
	}
}

func (c *client) Name() string {
	return BackendName
}

// profile переводит способ передвижения в профиль OSRM
func profile(mode domain.TransportMode) string {
	switch mode {
	case domain.TransportModeBicycle:
		return "cycling"
	case domain.TransportModePedestrian:
		return "foot"
	default:
		return "driving"
	}
}

func formatCoordinates(points []domain.Coordinate) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = strconv.FormatFloat(p.Longitude, 'f', -1, 64) + "," + strconv.FormatFloat(p.Latitude, 'f', -1, 64)
	}
	return strings.Join(parts, ";")
}

func indexList(from, to int) string {
	parts := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		parts = append(parts, strconv.Itoa(i))
	}
	return strings.Join(parts, ";")
}

// HealthCheck - у публичного OSRM нет отдельного эндпоинта, проверяем nearest для нулевой точки
func (c *client) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/nearest/v1/driving/0,0?number=1", c.baseURL)
	var resp nearestResponse
	return c.get(ctx, url, &resp)
}

// Route строит маршрут через все точки запроса; каждая нога OSRM становится отдельным участком.
// Публичный OSRM не поддерживает avoid-опции, они игнорируются.
func (c *client) Route(ctx context.Context, req domain.RouteRequest) ([]*domain.RouteResult, error) {
	locations := req.Locations()
	alternatives := "false"
	if req.Options.AlternateCount > 0 && len(locations) == 2 {
		alternatives = "true"
	}

	url := fmt.Sprintf("%s/route/v1/%s/%s?overview=full&geometries=polyline6&alternatives=%s&steps=true",
		c.baseURL, profile(req.Mode), formatCoordinates(locations), alternatives)

	var resp routeResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, err
	}

	if resp.Code != "Ok" || len(resp.Routes) == 0 {
		return nil, errors.Wrap(errors.ErrRouteNotFound, fmt.Errorf("osrm returned no routes: code %s", resp.Code))
	}

	inputs := make([]domain.Coordinate, len(resp.Waypoints))
	for i, wp := range resp.Waypoints {
		inputs[i] = domain.Coordinate{Latitude: wp.Location[1], Longitude: wp.Location[0]}
	}

	results := make([]*domain.RouteResult, 0, len(resp.Routes))
	for _, r := range resp.Routes {
		result, err := toRouteResult(r)
		if err != nil {
			c.logger.Warn("Skipping undecodable OSRM route", zap.Error(err))
			continue
		}
		result.Locations = inputs
		results = append(results, result)
	}
	if len(results) == 0 {
		return nil, errors.Wrap(errors.ErrRouteNotFound, fmt.Errorf("osrm routes could not be decoded"))
	}

	c.logger.Debug("OSRM route computed",
		zap.Int("locations", len(locations)),
		zap.Int("routes", len(results)),
		zap.Float64("distance_m", results[0].Distance))

	return results, nil
}

// OptimizedRoute вызывает /trip с фиксированными началом и концом
func (c *client) OptimizedRoute(ctx context.Context, locations []domain.Coordinate, mode domain.TransportMode) (*domain.RouteResult, error) {
	url := fmt.Sprintf("%s/trip/v1/%s/%s?source=first&destination=last&roundtrip=false&overview=full&geometries=polyline6&steps=true",
		c.baseURL, profile(mode), formatCoordinates(locations))

	var resp tripResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, err
	}
	if resp.Code != "Ok" || len(resp.Trips) == 0 {
		return nil, errors.Wrap(errors.ErrRouteNotFound, fmt.Errorf("osrm returned no trips: code %s", resp.Code))
	}

	result, err := toRouteResult(resp.Trips[0])
	if err != nil {
		return nil, errors.Wrap(errors.ErrBackendUnavailable, err)
	}

	// waypoint_index - позиция входной точки в поездке
	ordered := make([]waypoint, len(resp.Waypoints))
	copy(ordered, resp.Waypoints)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].WaypointIndex < ordered[j].WaypointIndex
	})
	result.Locations = make([]domain.Coordinate, len(ordered))
	for i, wp := range ordered {
		result.Locations[i] = domain.Coordinate{Latitude: wp.Location[1], Longitude: wp.Location[0]}
	}

	return result, nil
}

// Matrix вызывает /table; null в ответе - недостижимая пара (+Inf)
func (c *client) Matrix(ctx context.Context, sources, targets []domain.Coordinate, mode domain.TransportMode) (*domain.MatrixResult, error) {
	all := make([]domain.Coordinate, 0, len(sources)+len(targets))
	all = append(all, sources...)
	all = append(all, targets...)

	url := fmt.Sprintf("%s/table/v1/%s/%s?sources=%s&destinations=%s&annotations=distance,duration",
		c.baseURL, profile(mode), formatCoordinates(all),
		indexList(0, len(sources)), indexList(len(sources), len(all)))

	var resp tableResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, err
	}
	if resp.Code != "Ok" {
		return nil, errors.Wrap(errors.ErrBackendUnavailable, fmt.Errorf("osrm table code: %s", resp.Code))
	}

	return &domain.MatrixResult{
		Distances: fillMatrix(resp.Distances, len(sources), len(targets)),
		Durations: fillMatrix(resp.Durations, len(sources), len(targets)),
	}, nil
}

func fillMatrix(raw [][]*float64, rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for j := range out[i] {
			out[i][j] = math.Inf(1)
			if i < len(raw) && j < len(raw[i]) && raw[i][j] != nil {
				out[i][j] = *raw[i][j]
			}
		}
	}
	return out
}

// Locate вызывает /nearest; nil если сегмент не найден
func (c *client) Locate(ctx context.Context, point domain.Coordinate, mode domain.TransportMode) (*domain.Coordinate, error) {
	url := fmt.Sprintf("%s/nearest/v1/%s/%s?number=1", c.baseURL, profile(mode), formatCoordinates([]domain.Coordinate{point}))

	var resp nearestResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, err
	}
	if resp.Code != "Ok" || len(resp.Waypoints) == 0 {
		return nil, nil
	}

	loc := resp.Waypoints[0].Location
	return &domain.Coordinate{Latitude: loc[1], Longitude: loc[0]}, nil
}

func (c *client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug("Calling OSRM API", zap.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return errors.Wrap(errors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(errors.ErrBackendUnavailable, fmt.Errorf("failed to read response: %w", err))
	}

	// OSRM отвечает 400 с code=NoRoute/NoSegment: это валидный ответ, а не сбой
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusBadRequest {
		c.logger.Error("OSRM API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return errors.Wrap(errors.ErrBackendUnavailable,
			fmt.Errorf("osrm API error: status %d, body: %s", resp.StatusCode, string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return errors.Wrap(errors.ErrBackendUnavailable, fmt.Errorf("failed to decode response: %w", err))
	}

	return nil
}

// toRouteResult нормализует маршрут OSRM: геометрия ноги собирается из геометрий шагов,
// индексы манёвров считаются по вершинам этой геометрии
func toRouteResult(r route) (*domain.RouteResult, error) {
	result := &domain.RouteResult{
		Backend:  BackendName,
		Legs:     make([]domain.LegResult, 0, len(r.Legs)),
		Distance: r.Distance,
		Duration: r.Duration,
	}

	for _, l := range r.Legs {
		var shape []domain.Coordinate
		maneuvers := make([]domain.ManeuverResult, 0, len(l.Steps))

		for _, s := range l.Steps {
			points, err := polyline.Decode(s.Geometry, polyline.DefaultPrecision)
			if err != nil {
				return nil, fmt.Errorf("decode step geometry: %w", err)
			}

			begin := len(shape) - 1
			if begin < 0 {
				begin = 0
			}
			if len(shape) > 0 && len(points) > 0 {
				points = points[1:]
			}
			shape = append(shape, points...)
			end := len(shape) - 1
			if end < begin {
				end = begin
			}

			before := s.Maneuver.BearingBefore
			after := s.Maneuver.BearingAfter
			maneuvers = append(maneuvers, domain.ManeuverResult{
				Type:            maneuverType(s.Maneuver.Type, s.Maneuver.Modifier),
				Instruction:     instruction(s),
				BeginShapeIndex: begin,
				EndShapeIndex:   end,
				Distance:        s.Distance,
				Duration:        s.Duration,
				BearingBefore:   &before,
				BearingAfter:    &after,
			})
		}

		result.Legs = append(result.Legs, domain.LegResult{
			Shape:     polyline.Encode(shape, polyline.DefaultPrecision),
			Distance:  l.Distance,
			Duration:  l.Duration,
			Maneuvers: maneuvers,
		})
	}

	// без шагов геометрия есть только у маршрута целиком
	if len(result.Legs) == 1 && len(r.Legs[0].Steps) == 0 {
		result.Legs[0].Shape = r.Geometry
	}
	if len(result.Legs) == 0 {
		result.Legs = append(result.Legs, domain.LegResult{
			Shape:    r.Geometry,
			Distance: r.Distance,
			Duration: r.Duration,
		})
	}

	return result, nil
}

func instruction(s step) string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Maneuver.Type != "":
		return s.Maneuver.Type
	default:
		return "Continue"
	}
}

var maneuverCodes = map[string]int{
	"depart":       1,
	"arrive":       4,
	"turn":         9,
	"continue":     7,
	"new name":     7,
	"slight right": 8,
	"right":        9,
	"sharp right":  10,
	"slight left":  15,
	"left":         14,
	"sharp left":   13,
	"uturn":        12,
}

// maneuverType переводит тип (и направление для поворотов) OSRM в числовой код Valhalla
func maneuverType(kind, modifier string) int {
	switch kind {
	case "turn", "end of road", "fork", "on ramp", "off ramp", "merge":
		if code, ok := maneuverCodes[modifier]; ok {
			return code
		}
	}
	if code, ok := maneuverCodes[kind]; ok {
		return code
	}
	return 7
}
