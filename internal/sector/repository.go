package sector

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"planets-galaxy/internal/shared/database"

	"github.com/google/uuid"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing sector repository")

	return &Repository{
		db:     db,
		logger: logger.With("component", "sector_repository"),
	}
}

type sectorRow struct {
	ID          uuid.UUID   `json:"id"`
	GalaxyID    uuid.UUID   `json:"galaxy_id"`
	X           int         `json:"x"`
	Y           int         `json:"y"`
	Name        string      `json:"name"`
	Environment Environment `json:"environment"`
}

// CreateSectorsBatch creates every sector of a galaxy in a single statement
func (r *Repository) CreateSectorsBatch(ctx context.Context, sectors []Sector, tx *database.Tx) error {
	if len(sectors) == 0 {
		return nil
	}

	exec := r.db.Executor(tx)
	logger := r.logger.With("operation", "create_sectors_batch", "count", len(sectors))
	logger.Debug("Creating sectors in batch")

	rows := make([]sectorRow, 0, len(sectors))
	for _, s := range sectors {
		rows = append(rows, sectorRow{
			ID:          s.ID,
			GalaxyID:    s.GalaxyID,
			X:           s.Coord.X,
			Y:           s.Coord.Y,
			Name:        s.Name,
			Environment: s.Environment,
		})
	}

	sectorsJSON, err := json.Marshal(rows)
	if err != nil {
		logger.Error("Failed to marshal sectors to JSON", "error", err)
		return fmt.Errorf("failed to marshal sectors: %w", err)
	}

	query := `
		INSERT INTO sectors (id, galaxy_id, sector_x, sector_y, name, environment)
		SELECT
			(data->>'id')::uuid,
			(data->>'galaxy_id')::uuid,
			(data->>'x')::integer,
			(data->>'y')::integer,
			data->>'name',
			data->>'environment'
		FROM json_array_elements($1::json) AS data
		ON CONFLICT (galaxy_id, sector_x, sector_y) DO NOTHING`

	if _, err := exec.ExecContext(ctx, query, string(sectorsJSON)); err != nil {
		logger.Error("Failed to batch create sectors", "error", err)
		return fmt.Errorf("failed to batch create sectors: %w", err)
	}

	logger.Info("Sectors batch created successfully")
	return nil
}

func (r *Repository) GetSectorsByGalaxyID(ctx context.Context, galaxyID uuid.UUID) ([]Sector, error) {
	logger := r.logger.With("operation", "get_sectors_by_galaxy", "galaxy_id", galaxyID)
	logger.Debug("Getting sectors by galaxy ID")

	query := `
		SELECT id, galaxy_id, sector_x, sector_y, name, environment
		FROM sectors
		WHERE galaxy_id = $1
		ORDER BY sector_y, sector_x`

	rows, err := r.db.QueryContext(ctx, query, galaxyID)
	if err != nil {
		logger.Error("Failed to query sectors", "error", err)
		return nil, fmt.Errorf("failed to query sectors: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var sectors []Sector
	for rows.Next() {
		var s Sector
		if err := rows.Scan(&s.ID, &s.GalaxyID, &s.Coord.X, &s.Coord.Y, &s.Name, &s.Environment); err != nil {
			logger.Error("Failed to scan sector row", "error", err)
			return nil, fmt.Errorf("failed to scan sector: %w", err)
		}
		sectors = append(sectors, s)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating sectors: %w", err)
	}

	logger.Debug("Sectors retrieved", "count", len(sectors))
	return sectors, nil
}
