package hyperlane

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
	logger.Debug("Initializing hyperlane repository")

	return &Repository{
		db:     db,
		logger: logger.With("component", "hyperlane_repository"),
	}
}

type tileRow struct {
	SectorX     int      `json:"sector_x"`
	SectorY     int      `json:"sector_y"`
	FieldX      int      `json:"field_x"`
	FieldY      int      `json:"field_y"`
	LaneName    string   `json:"lane_name"`
	LaneColor   string   `json:"lane_color"`
	LaneType    LaneType `json:"lane_type"`
	Priority    int      `json:"priority"`
	Convergence bool     `json:"convergence"`
}

// UpsertTiles writes tiles keyed by (sector, field). An existing tile is only
// replaced by a higher-priority lane; any overlap of two lanes marks it as a
// convergence tile. Re-upserting identical tiles is a no-op.
func (r *Repository) UpsertTiles(ctx context.Context, galaxyID uuid.UUID, tiles []Tile, tx *database.Tx) error {
	if len(tiles) == 0 {
		return nil
	}

	exec := r.db.Executor(tx)
	logger := r.logger.With("operation", "upsert_tiles", "galaxy_id", galaxyID, "count", len(tiles))
	logger.Debug("Upserting hyperlane tiles")

	rows := make([]tileRow, 0, len(tiles))
	for _, t := range tiles {
		rows = append(rows, tileRow{
			SectorX:     t.Sector.X,
			SectorY:     t.Sector.Y,
			FieldX:      t.Field.X,
			FieldY:      t.Field.Y,
			LaneName:    t.LaneName,
			LaneColor:   t.LaneColor,
			LaneType:    t.LaneType,
			Priority:    t.Priority,
			Convergence: t.Convergence,
		})
	}

	tilesJSON, err := json.Marshal(rows)
	if err != nil {
		logger.Error("Failed to marshal tiles to JSON", "error", err)
		return fmt.Errorf("failed to marshal tiles: %w", err)
	}

	query := `
		INSERT INTO hyperlane_tiles (galaxy_id, sector_x, sector_y, field_x, field_y,
			lane_name, lane_color, lane_type, priority, convergence)
		SELECT
			$1,
			(data->>'sector_x')::integer,
			(data->>'sector_y')::integer,
			(data->>'field_x')::integer,
			(data->>'field_y')::integer,
			data->>'lane_name',
			data->>'lane_color',
			data->>'lane_type',
			(data->>'priority')::integer,
			(data->>'convergence')::boolean
		FROM json_array_elements($2::json) AS data
		ON CONFLICT (galaxy_id, sector_x, sector_y, field_x, field_y) DO UPDATE SET
			lane_name = CASE WHEN EXCLUDED.priority > hyperlane_tiles.priority
				THEN EXCLUDED.lane_name ELSE hyperlane_tiles.lane_name END,
			lane_color = CASE WHEN EXCLUDED.priority > hyperlane_tiles.priority
				THEN EXCLUDED.lane_color ELSE hyperlane_tiles.lane_color END,
			lane_type = CASE WHEN EXCLUDED.priority > hyperlane_tiles.priority
				THEN EXCLUDED.lane_type ELSE hyperlane_tiles.lane_type END,
			priority = GREATEST(EXCLUDED.priority, hyperlane_tiles.priority),
			convergence = hyperlane_tiles.convergence OR EXCLUDED.convergence
				OR hyperlane_tiles.lane_name <> EXCLUDED.lane_name,
			updated_at = NOW()`

	if _, err := exec.ExecContext(ctx, query, galaxyID, string(tilesJSON)); err != nil {
		logger.Error("Failed to upsert hyperlane tiles", "error", err)
		return fmt.Errorf("failed to upsert hyperlane tiles: %w", err)
	}

	logger.Info("Hyperlane tiles upserted successfully")
	return nil
}

func (r *Repository) GetTilesBySector(ctx context.Context, galaxyID uuid.UUID, sectorX, sectorY int) ([]Tile, error) {
	logger := r.logger.With("operation", "get_tiles_by_sector", "galaxy_id", galaxyID,
		"coordinates", fmt.Sprintf("(%d,%d)", sectorX, sectorY))
	logger.Debug("Getting hyperlane tiles by sector")

	query := `
		SELECT sector_x, sector_y, field_x, field_y, lane_name, lane_color, lane_type, priority, convergence
		FROM hyperlane_tiles
		WHERE galaxy_id = $1 AND sector_x = $2 AND sector_y = $3
		ORDER BY field_y, field_x`

	rows, err := r.db.QueryContext(ctx, query, galaxyID, sectorX, sectorY)
	if err != nil {
		logger.Error("Failed to query hyperlane tiles", "error", err)
		return nil, fmt.Errorf("failed to query hyperlane tiles: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var tiles []Tile
	for rows.Next() {
		var t Tile
		if err := rows.Scan(&t.Sector.X, &t.Sector.Y, &t.Field.X, &t.Field.Y,
			&t.LaneName, &t.LaneColor, &t.LaneType, &t.Priority, &t.Convergence); err != nil {
			logger.Error("Failed to scan hyperlane tile row", "error", err)
			return nil, fmt.Errorf("failed to scan hyperlane tile: %w", err)
		}
		tiles = append(tiles, t)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating hyperlane tiles: %w", err)
	}

	return tiles, nil
}
