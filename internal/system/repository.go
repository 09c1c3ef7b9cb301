package system

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"planets-galaxy/internal/shared/database"
	"planets-galaxy/internal/star"

	"github.com/google/uuid"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing system repository")

	return &Repository{
		db:     db,
		logger: logger.With("component", "system_repository"),
	}
}

type systemRow struct {
	ID               uuid.UUID  `json:"id"`
	SectorID         uuid.UUID  `json:"sector_id"`
	FieldX           int        `json:"field_x"`
	FieldY           int        `json:"field_y"`
	Name             string     `json:"name"`
	Type             star.Type  `json:"system_type"`
	GridSize         int        `json:"grid_size"`
	IsBinary         bool       `json:"is_binary"`
	PrimarySubType   *star.Type `json:"primary_sub_type"`
	SecondarySubType *star.Type `json:"secondary_sub_type"`
	BodyCount        int        `json:"body_count"`
}

// CreateSystemsBatch creates the systems of one sector in a single statement
func (r *Repository) CreateSystemsBatch(ctx context.Context, systems []System, tx *database.Tx) error {
	if len(systems) == 0 {
		return nil
	}

	exec := r.db.Executor(tx)
	logger := r.logger.With("operation", "create_systems_batch", "count", len(systems))
	logger.Debug("Creating systems in batch")

	rows := make([]systemRow, 0, len(systems))
	for _, s := range systems {
		rows = append(rows, systemRow{
			ID:               s.ID,
			SectorID:         s.SectorID,
			FieldX:           s.Field.X,
			FieldY:           s.Field.Y,
			Name:             s.Name,
			Type:             s.Type,
			GridSize:         s.GridSize,
			IsBinary:         s.IsBinary,
			PrimarySubType:   s.PrimarySubType,
			SecondarySubType: s.SecondarySubType,
			BodyCount:        s.BodyCount,
		})
	}

	systemsJSON, err := json.Marshal(rows)
	if err != nil {
		logger.Error("Failed to marshal systems to JSON", "error", err)
		return fmt.Errorf("failed to marshal systems: %w", err)
	}

	query := `
		INSERT INTO systems (id, sector_id, field_x, field_y, name, system_type, grid_size,
			is_binary, primary_sub_type, secondary_sub_type, body_count)
		SELECT
			(data->>'id')::uuid,
			(data->>'sector_id')::uuid,
			(data->>'field_x')::integer,
			(data->>'field_y')::integer,
			data->>'name',
			data->>'system_type',
			(data->>'grid_size')::integer,
			(data->>'is_binary')::boolean,
			data->>'primary_sub_type',
			data->>'secondary_sub_type',
			(data->>'body_count')::integer
		FROM json_array_elements($1::json) AS data
		ON CONFLICT (sector_id, field_x, field_y) DO NOTHING`

	if _, err := exec.ExecContext(ctx, query, string(systemsJSON)); err != nil {
		logger.Error("Failed to batch create systems", "error", err)
		return fmt.Errorf("failed to batch create systems: %w", err)
	}

	logger.Debug("Systems batch created successfully")
	return nil
}

func (r *Repository) GetSystemsBySectorID(ctx context.Context, sectorID uuid.UUID) ([]System, error) {
	logger := r.logger.With("operation", "get_systems_by_sector", "sector_id", sectorID)
	logger.Debug("Getting systems by sector ID")

	query := `
		SELECT s.id, s.sector_id, sec.sector_x, sec.sector_y, s.field_x, s.field_y, s.name, s.system_type,
			s.grid_size, s.is_binary, s.primary_sub_type, s.secondary_sub_type, s.body_count
		FROM systems s
		JOIN sectors sec ON sec.id = s.sector_id
		WHERE s.sector_id = $1
		ORDER BY s.field_y, s.field_x`

	rows, err := r.db.QueryContext(ctx, query, sectorID)
	if err != nil {
		logger.Error("Failed to query systems", "error", err)
		return nil, fmt.Errorf("failed to query systems: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var systems []System
	for rows.Next() {
		var s System
		err := rows.Scan(
			&s.ID,
			&s.SectorID,
			&s.Sector.X,
			&s.Sector.Y,
			&s.Field.X,
			&s.Field.Y,
			&s.Name,
			&s.Type,
			&s.GridSize,
			&s.IsBinary,
			&s.PrimarySubType,
			&s.SecondarySubType,
			&s.BodyCount,
		)
		if err != nil {
			logger.Error("Failed to scan system row", "error", err)
			return nil, fmt.Errorf("failed to scan system: %w", err)
		}
		systems = append(systems, s)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating systems: %w", err)
	}

	logger.Debug("Systems retrieved", "count", len(systems))
	return systems, nil
}
