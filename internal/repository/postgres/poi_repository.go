package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/domain/repository"
	"github.com/route-engine/internal/pkg/errors"
)

const poiColumns = `
	id, name, description, latitude, longitude, category, subcategory,
	rating, rating_count, photos, opening_hours, website, phone, address,
	source, external_id, tags, created_at, updated_at`

// pointSQL - точка geography из параметров $lng, $lat
const pointSQL = "ST_SetSRID(ST_MakePoint($%d, $%d), 4326)::geography"

type poiRow struct {
	ID           string          `db:"id"`
	Name         string          `db:"name"`
	Description  sql.NullString  `db:"description"`
	Latitude     float64         `db:"latitude"`
	Longitude    float64         `db:"longitude"`
	Category     string          `db:"category"`
	Subcategory  sql.NullString  `db:"subcategory"`
	Rating       sql.NullFloat64 `db:"rating"`
	RatingCount  int             `db:"rating_count"`
	Photos       pq.StringArray  `db:"photos"`
	OpeningHours sql.NullString  `db:"opening_hours"`
	Website      sql.NullString  `db:"website"`
	Phone        sql.NullString  `db:"phone"`
	Address      sql.NullString  `db:"address"`
	Source       string          `db:"source"`
	ExternalID   string          `db:"external_id"`
	Tags         []byte          `db:"tags"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r poiRow) toDomain() *domain.POI {
	poi := &domain.POI{
		ID:           r.ID,
		Name:         r.Name,
		Description:  nullString(r.Description),
		Coordinates:  domain.Coordinate{Latitude: r.Latitude, Longitude: r.Longitude},
		Category:     domain.POICategory(r.Category),
		Subcategory:  nullString(r.Subcategory),
		RatingCount:  r.RatingCount,
		Photos:       []string(r.Photos),
		OpeningHours: nullString(r.OpeningHours),
		Website:      nullString(r.Website),
		Phone:        nullString(r.Phone),
		Address:      nullString(r.Address),
		Source:       domain.POISource(r.Source),
		SourceID:     r.ExternalID,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.Rating.Valid {
		rating := r.Rating.Float64
		poi.Rating = &rating
	}
	return poi
}

type poiRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPOIRepository(db *DB) repository.POIRepository {
	return &poiRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func categoryStrings(categories []domain.POICategory) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}

// selectPOIs выполняет запрос и разбирает строки, теги из jsonb
func (r *poiRepository) selectPOIs(ctx context.Context, query string, args ...interface{}) ([]*domain.POI, error) {
	var rows []poiRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Failed to query POIs", zap.Error(err))
		return nil, errors.Wrap(errors.ErrDatabaseError, err)
	}

	pois := make([]*domain.POI, 0, len(rows))
	for _, row := range rows {
		poi := row.toDomain()
		if len(row.Tags) > 0 {
			tags := make(map[string]string)
			if err := json.Unmarshal(row.Tags, &tags); err != nil {
				r.logger.Warn("Failed to unmarshal tags", zap.String("id", row.ID), zap.Error(err))
			} else {
				poi.Tags = tags
			}
		}
		pois = append(pois, poi)
	}
	return pois, nil
}

func (r *poiRepository) GetByID(ctx context.Context, id string) (*domain.POI, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.ErrPOINotFound
	}

	pois, err := r.selectPOIs(ctx, "SELECT "+poiColumns+" FROM pois WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(pois) == 0 {
		return nil, errors.ErrPOINotFound
	}
	return pois[0], nil
}

// FindInBoundingBox - сравнение координат с границами, сначала высокий рейтинг
func (r *poiRepository) FindInBoundingBox(ctx context.Context, bbox domain.BoundingBox, categories []domain.POICategory, limit int) ([]*domain.POI, error) {
	query := "SELECT " + poiColumns + `
		FROM pois
		WHERE latitude >= $1 AND latitude <= $2
		  AND longitude >= $3 AND longitude <= $4`
	args := []interface{}{bbox.MinLat, bbox.MaxLat, bbox.MinLng, bbox.MaxLng}
	argIdx := 5

	if len(categories) > 0 {
		query += fmt.Sprintf(" AND category = ANY($%d)", argIdx)
		args = append(args, pq.Array(categoryStrings(categories)))
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY rating DESC NULLS LAST LIMIT $%d", argIdx)
	args = append(args, limit)

	return r.selectPOIs(ctx, query, args...)
}

// FindInRadius - ST_DWithin по geography, ближайшие первыми
func (r *poiRepository) FindInRadius(ctx context.Context, center domain.Coordinate, radius float64, categories []domain.POICategory, limit int) ([]*domain.POI, error) {
	point := fmt.Sprintf(pointSQL, 1, 2)
	query := "SELECT " + poiColumns + `
		FROM pois
		WHERE ST_DWithin(location, ` + point + `, $3)`
	args := []interface{}{center.Longitude, center.Latitude, radius}
	argIdx := 4

	if len(categories) > 0 {
		query += fmt.Sprintf(" AND category = ANY($%d)", argIdx)
		args = append(args, pq.Array(categoryStrings(categories)))
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY ST_Distance(location, %s) ASC LIMIT $%d", point, argIdx)
	args = append(args, limit)

	return r.selectPOIs(ctx, query, args...)
}

// Search ищет по подстроке имени; при заданных center и radius - только в радиусе
func (r *poiRepository) Search(ctx context.Context, query string, center *domain.Coordinate, radius float64, categories []domain.POICategory, limit int) ([]*domain.POI, error) {
	sqlQuery := "SELECT " + poiColumns + " FROM pois WHERE name ILIKE $1"
	args := []interface{}{"%" + escapeLike(query) + "%"}
	argIdx := 2

	if len(categories) > 0 {
		sqlQuery += fmt.Sprintf(" AND category = ANY($%d)", argIdx)
		args = append(args, pq.Array(categoryStrings(categories)))
		argIdx++
	}

	if center != nil && radius > 0 {
		point := fmt.Sprintf(pointSQL, argIdx, argIdx+1)
		sqlQuery += fmt.Sprintf(" AND ST_DWithin(location, %s, $%d)", point, argIdx+2)
		sqlQuery += fmt.Sprintf(" ORDER BY ST_Distance(location, %s) ASC", point)
		args = append(args, center.Longitude, center.Latitude, radius)
		argIdx += 3
	} else {
		sqlQuery += " ORDER BY rating DESC NULLS LAST, name ASC"
	}

	sqlQuery += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, limit)

	return r.selectPOIs(ctx, sqlQuery, args...)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

const upsertPOISQL = `
	INSERT INTO pois (
		id, name, description, latitude, longitude, category, subcategory,
		rating, rating_count, photos, opening_hours, website, phone, address,
		source, external_id, tags
	) VALUES (
		:id, :name, :description, :latitude, :longitude, :category, :subcategory,
		:rating, :rating_count, :photos, :opening_hours, :website, :phone, :address,
		:source, :external_id, :tags
	)
	ON CONFLICT (source, external_id) DO UPDATE SET
		name = EXCLUDED.name,
		description = EXCLUDED.description,
		rating = EXCLUDED.rating,
		opening_hours = EXCLUDED.opening_hours,
		updated_at = NOW()`

// Upsert сохраняет POI в одной транзакции; существующие по (source, external_id) обновляются
func (r *poiRepository) Upsert(ctx context.Context, pois []*domain.POI) error {
	if len(pois) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrDatabaseError, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, poi := range pois {
		row, err := toRow(poi)
		if err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, upsertPOISQL, row); err != nil {
			r.logger.Error("Failed to upsert POI",
				zap.String("source", string(poi.Source)),
				zap.String("source_id", poi.SourceID),
				zap.Error(err))
			return errors.Wrap(errors.ErrDatabaseError, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrDatabaseError, err)
	}

	r.logger.Debug("POIs upserted", zap.Int("count", len(pois)))
	return nil
}

func toRow(poi *domain.POI) (poiRow, error) {
	id := poi.ID
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.New().String()
	}

	tags := poi.Tags
	if tags == nil {
		tags = map[string]string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return poiRow{}, fmt.Errorf("marshal tags: %w", err)
	}

	photos := poi.Photos
	if photos == nil {
		photos = []string{}
	}

	row := poiRow{
		ID:           id,
		Name:         poi.Name,
		Description:  toNullString(poi.Description),
		Latitude:     poi.Coordinates.Latitude,
		Longitude:    poi.Coordinates.Longitude,
		Category:     string(poi.Category),
		Subcategory:  toNullString(poi.Subcategory),
		RatingCount:  poi.RatingCount,
		Photos:       pq.StringArray(photos),
		OpeningHours: toNullString(poi.OpeningHours),
		Website:      toNullString(poi.Website),
		Phone:        toNullString(poi.Phone),
		Address:      toNullString(poi.Address),
		Source:       string(poi.Source),
		ExternalID:   poi.SourceID,
		Tags:         tagsJSON,
	}
	if poi.Rating != nil {
		row.Rating = sql.NullFloat64{Float64: *poi.Rating, Valid: true}
	}
	return row, nil
}
