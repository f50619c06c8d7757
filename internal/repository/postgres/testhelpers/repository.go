package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/route-engine/internal/domain/repository"
	"github.com/route-engine/internal/repository/postgres"
)

// NewPOIRepositoryForTest creates a POI repository with test database and logger
func NewPOIRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.POIRepository {
	return postgres.NewPOIRepository(postgres.NewDBForTest(db, logger))
}
