package usecase

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/pkg/errors"
	"github.com/route-engine/internal/pkg/geo"
	"github.com/route-engine/internal/pkg/polyline"
)

// shapeLeg - участок результата маршрутизации с декодированной геометрией
type shapeLeg struct {
	shape     []domain.Coordinate
	distance  float64
	duration  float64
	maneuvers []domain.ManeuverResult
}

// assembleRoute собирает Route из канонического результата. Число участков
// всегда равно числу точек минус один: если бэкенд вернул другое количество,
// геометрия делится в вершинах, ближайших к промежуточным точкам.
func assembleRoute(
	origin, destination domain.Coordinate,
	ordered []domain.ScoredPOI,
	result *domain.RouteResult,
	settings domain.RouteSettings,
) (*domain.GeneratedRoute, error) {
	legs, err := decodeLegs(result.Legs)
	if err != nil {
		return nil, errors.Wrap(errors.ErrRouteNotFound, err)
	}

	waypoints := buildWaypoints(origin, destination, ordered)
	merged := mergeLegs(legs, result.Distance, result.Duration)
	if len(legs) != len(waypoints)-1 {
		legs = splitLegs(merged, waypoints)
	}

	routeLegs := make([]domain.RouteLeg, len(legs))
	elapsed := 0.0
	for i, leg := range legs {
		routeLegs[i] = toRouteLeg(i, leg)
		elapsed += leg.duration
		if i+1 < len(waypoints)-1 {
			arrival := elapsed
			waypoints[i+1].ArrivalTime = &arrival
		}
	}

	pois := make([]*domain.POI, 0, len(ordered))
	for _, wp := range ordered {
		pois = append(pois, wp.POI)
	}

	route := &domain.Route{
		ID:          uuid.New().String(),
		Origin:      origin,
		Destination: destination,
		Waypoints:   waypoints,
		Geometry:    polyline.ToLineString(merged.shape),
		Distance:    roundInt(result.Distance),
		Duration:    roundInt(result.Duration),
		Legs:        routeLegs,
		Settings:    settings,
		Backend:     result.Backend,
		CreatedAt:   time.Now().UTC(),
	}

	return &domain.GeneratedRoute{Route: route, POIsOnRoute: pois}, nil
}

func buildWaypoints(origin, destination domain.Coordinate, ordered []domain.ScoredPOI) []domain.Waypoint {
	waypoints := make([]domain.Waypoint, 0, len(ordered)+2)
	waypoints = append(waypoints, domain.Waypoint{Coordinates: origin, Type: domain.WaypointTypeOrigin})
	for _, wp := range ordered {
		waypoints = append(waypoints, domain.Waypoint{
			Coordinates: wp.POI.Coordinates,
			POI:         wp.POI,
			Type:        domain.WaypointTypePOI,
		})
	}
	return append(waypoints, domain.Waypoint{Coordinates: destination, Type: domain.WaypointTypeDestination})
}

func decodeLegs(legs []domain.LegResult) ([]shapeLeg, error) {
	out := make([]shapeLeg, len(legs))
	for i, leg := range legs {
		shape, err := polyline.Decode(leg.Shape, polyline.DefaultPrecision)
		if err != nil {
			return nil, err
		}
		out[i] = shapeLeg{
			shape:     shape,
			distance:  leg.Distance,
			duration:  leg.Duration,
			maneuvers: leg.Maneuvers,
		}
	}
	return out, nil
}

// mergeLegs склеивает участки в один; общая вершина на стыке не дублируется,
// индексы манёвров сдвигаются на смещение участка
func mergeLegs(legs []shapeLeg, distance, duration float64) shapeLeg {
	merged := shapeLeg{distance: distance, duration: duration}

	for _, leg := range legs {
		offset := len(merged.shape)
		shape := leg.shape
		if offset > 0 && len(shape) > 0 && shape[0] == merged.shape[offset-1] {
			shape = shape[1:]
			offset--
		}
		merged.shape = append(merged.shape, shape...)

		for _, m := range leg.maneuvers {
			m.BeginShapeIndex += offset
			m.EndShapeIndex += offset
			merged.maneuvers = append(merged.maneuvers, m)
		}
	}
	return merged
}

// splitLegs делит склеенный участок на len(waypoints)-1 частей. Расстояние и
// время распределяются пропорционально длине геометрии, манёвры - по индексу начала.
func splitLegs(merged shapeLeg, waypoints []domain.Waypoint) []shapeLeg {
	n := len(waypoints) - 1
	last := len(merged.shape) - 1

	cuts := make([]int, 0, n+1)
	cuts = append(cuts, 0)
	prev := 0
	for _, wp := range waypoints[1:n] {
		idx := nearestVertex(merged.shape, prev, wp.Coordinates)
		cuts = append(cuts, idx)
		prev = idx
	}
	cuts = append(cuts, max(last, 0))

	legs := make([]shapeLeg, n)
	lengths := make([]float64, n)
	total := 0.0
	for k := 0; k < n; k++ {
		if last >= 0 {
			piece := make([]domain.Coordinate, cuts[k+1]-cuts[k]+1)
			copy(piece, merged.shape[cuts[k]:cuts[k+1]+1])
			legs[k].shape = piece
		}
		lengths[k] = geo.PolylineLength(legs[k].shape)
		total += lengths[k]
	}

	for k := range legs {
		ratio := 1 / float64(n)
		if total > 0 {
			ratio = lengths[k] / total
		}
		legs[k].distance = merged.distance * ratio
		legs[k].duration = merged.duration * ratio
	}

	for _, m := range merged.maneuvers {
		k := n - 1
		for k > 0 && m.BeginShapeIndex < cuts[k] {
			k--
		}
		start := cuts[k]
		m.BeginShapeIndex = clampIndex(m.BeginShapeIndex-start, len(legs[k].shape))
		m.EndShapeIndex = clampIndex(m.EndShapeIndex-start, len(legs[k].shape))
		legs[k].maneuvers = append(legs[k].maneuvers, m)
	}

	return legs
}

// nearestVertex - индекс вершины shape (не раньше from), ближайшей к p
func nearestVertex(shape []domain.Coordinate, from int, p domain.Coordinate) int {
	if len(shape) == 0 || from >= len(shape)-1 {
		return max(from, 0)
	}

	_, _, segment := geo.DistanceToPolyline(p, shape[from:])
	if segment < 0 {
		return from
	}

	a := from + segment
	if geo.HaversineDistance(p, shape[a+1]) < geo.HaversineDistance(p, shape[a]) {
		return a + 1
	}
	return a
}

func toRouteLeg(index int, leg shapeLeg) domain.RouteLeg {
	maneuvers := make([]domain.Maneuver, 0, len(leg.maneuvers))
	for _, m := range leg.maneuvers {
		maneuver := domain.Maneuver{
			Type:        domain.ManeuverTypeFromCode(m.Type),
			Instruction: m.Instruction,
			Distance:    roundInt(m.Distance),
			Duration:    roundInt(m.Duration),
		}
		if len(leg.shape) > 0 {
			maneuver.Coordinates = leg.shape[clampIndex(m.BeginShapeIndex, len(leg.shape))]
		}
		if m.BearingBefore != nil {
			maneuver.BearingBefore = *m.BearingBefore
		}
		if m.BearingAfter != nil {
			maneuver.BearingAfter = *m.BearingAfter
		}
		maneuvers = append(maneuvers, maneuver)
	}

	return domain.RouteLeg{
		StartIndex: index,
		EndIndex:   index + 1,
		Distance:   roundInt(leg.distance),
		Duration:   roundInt(leg.duration),
		Geometry:   polyline.ToLineString(leg.shape),
		Maneuvers:  maneuvers,
	}
}

func clampIndex(i, length int) int {
	if i < 0 || length == 0 {
		return 0
	}
	if i >= length {
		return length - 1
	}
	return i
}

func roundInt(v float64) int64 {
	return int64(math.Round(v))
}
