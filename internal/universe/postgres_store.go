package universe

import (
	"context"
	"fmt"
	"log/slog"

	"planets-galaxy/internal/galaxy"
	"planets-galaxy/internal/hyperlane"
	"planets-galaxy/internal/planet"
	"planets-galaxy/internal/sector"
	"planets-galaxy/internal/shared/config"
	"planets-galaxy/internal/shared/database"
	"planets-galaxy/internal/spatial"
	"planets-galaxy/internal/system"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// PostgresStore writes through the repositories. Each sector's systems and
// bodies share one transaction; every write first waits on the limiter.
type PostgresStore struct {
	db       *database.DB
	galaxies *galaxy.Repository
	sectors  *sector.Repository
	systems  *system.Repository
	bodies   *planet.Repository
	lanes    *hyperlane.Repository
	limiter  *rate.Limiter
	logger   *slog.Logger
}

func NewPostgresStore(db *database.DB, cfg config.DatabaseConfig, logger *slog.Logger) *PostgresStore {
	logger.Debug("Initializing postgres store",
		"writes_per_second", cfg.WritesPerSecond, "write_burst", cfg.WriteBurst)

	limit := rate.Inf
	if cfg.WritesPerSecond > 0 {
		limit = rate.Limit(cfg.WritesPerSecond)
	}

	return &PostgresStore{
		db:       db,
		galaxies: galaxy.NewRepository(db, logger),
		sectors:  sector.NewRepository(db, logger),
		systems:  system.NewRepository(db, logger),
		bodies:   planet.NewRepository(db, logger),
		lanes:    hyperlane.NewRepository(db, logger),
		limiter:  rate.NewLimiter(limit, max(cfg.WriteBurst, 1)),
		logger:   logger.With("component", "postgres_store"),
	}
}

func (s *PostgresStore) wait(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("write throttle: %w", err)
	}
	return nil
}

func (s *PostgresStore) GalaxyExists(ctx context.Context, seed string) (bool, error) {
	return s.galaxies.Exists(ctx, seed)
}

func (s *PostgresStore) SaveGalaxy(ctx context.Context, g *galaxy.Galaxy) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *database.Tx) error {
		return s.galaxies.CreateGalaxy(ctx, g, tx)
	})
}

func (s *PostgresStore) SaveSectors(ctx context.Context, sectors []sector.Sector) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.sectors.CreateSectorsBatch(ctx, sectors, nil)
}

func (s *PostgresStore) SaveSectorContents(ctx context.Context, contents SectorContents) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *database.Tx) error {
		if err := s.systems.CreateSystemsBatch(ctx, contents.Systems, tx); err != nil {
			return err
		}
		return s.bodies.CreateBodiesBatch(ctx, contents.Bodies, tx)
	})
}

func (s *PostgresStore) UpsertHyperlaneTiles(ctx context.Context, galaxyID uuid.UUID, tiles []hyperlane.Tile) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.lanes.UpsertTiles(ctx, galaxyID, tiles, nil)
}

func (s *PostgresStore) CompleteGalaxy(ctx context.Context, galaxyID uuid.UUID) error {
	return s.galaxies.MarkCompleted(ctx, galaxyID)
}

func (s *PostgresStore) GalaxyBySeed(ctx context.Context, seed string) (*galaxy.Galaxy, error) {
	return s.galaxies.GetGalaxyBySeed(ctx, seed)
}

func (s *PostgresStore) SectorsByGalaxy(ctx context.Context, galaxyID uuid.UUID) ([]sector.Sector, error) {
	return s.sectors.GetSectorsByGalaxyID(ctx, galaxyID)
}

func (s *PostgresStore) SystemsBySector(ctx context.Context, sectorID uuid.UUID) ([]system.System, error) {
	return s.systems.GetSystemsBySectorID(ctx, sectorID)
}

func (s *PostgresStore) BodiesBySystem(ctx context.Context, systemID uuid.UUID) ([]planet.Body, error) {
	return s.bodies.GetBodiesBySystemID(ctx, systemID)
}

func (s *PostgresStore) TilesBySector(ctx context.Context, galaxyID uuid.UUID, coord spatial.Point) ([]hyperlane.Tile, error) {
	return s.lanes.GetTilesBySector(ctx, galaxyID, coord.X, coord.Y)
}

func (s *PostgresStore) inTx(ctx context.Context, fn func(tx *database.Tx) error) error {
	return s.db.WithTx(ctx, s.logger, fn)
}
