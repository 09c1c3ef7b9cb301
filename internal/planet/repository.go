package planet

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
	logger.Debug("Initializing planet repository")

	return &Repository{
		db:     db,
		logger: logger.With("component", "planet_repository"),
	}
}

// bodyRow is the JSON shape fed to json_array_elements
type bodyRow struct {
	ID         uuid.UUID       `json:"id"`
	SystemID   uuid.UUID       `json:"system_id"`
	ParentID   *uuid.UUID      `json:"parent_body_id"`
	Kind       Kind            `json:"kind"`
	Name       string          `json:"name"`
	PlanetType *PlanetType     `json:"planet_type"`
	Size       int             `json:"size"`
	GridX      int             `json:"grid_x"`
	GridY      int             `json:"grid_y"`
	Cells      json.RawMessage `json:"cells"`
}

// CreateBodiesBatch inserts every body of one or more systems in a single
// statement. Parents must precede their moons in bodies.
func (r *Repository) CreateBodiesBatch(ctx context.Context, bodies []Body, tx *database.Tx) error {
	if len(bodies) == 0 {
		return nil
	}

	exec := r.db.Executor(tx)
	logger := r.logger.With("operation", "create_bodies_batch", "count", len(bodies))
	logger.Debug("Creating bodies in batch")

	rows := make([]bodyRow, 0, len(bodies))
	for _, b := range bodies {
		cells, err := json.Marshal(b.Cells)
		if err != nil {
			return fmt.Errorf("failed to marshal cells of %s: %w", b.Name, err)
		}
		row := bodyRow{
			ID:       b.ID,
			SystemID: b.SystemID,
			ParentID: b.ParentID,
			Kind:     b.Kind,
			Name:     b.Name,
			Size:     b.Size,
			GridX:    b.GridX,
			GridY:    b.GridY,
			Cells:    cells,
		}
		if b.PlanetType != "" {
			planetType := b.PlanetType
			row.PlanetType = &planetType
		}
		rows = append(rows, row)
	}

	bodiesJSON, err := json.Marshal(rows)
	if err != nil {
		logger.Error("Failed to marshal bodies to JSON", "error", err)
		return fmt.Errorf("failed to marshal bodies: %w", err)
	}

	query := `
		INSERT INTO bodies (id, system_id, parent_body_id, kind, name, planet_type, size, grid_x, grid_y, cells)
		SELECT
			(data->>'id')::uuid,
			(data->>'system_id')::uuid,
			(data->>'parent_body_id')::uuid,
			data->>'kind',
			data->>'name',
			data->>'planet_type',
			(data->>'size')::integer,
			(data->>'grid_x')::integer,
			(data->>'grid_y')::integer,
			(data->'cells')::jsonb
		FROM json_array_elements($1::json) AS data
		ON CONFLICT (id) DO NOTHING`

	result, err := exec.ExecContext(ctx, query, string(bodiesJSON))
	if err != nil {
		logger.Error("Failed to batch create bodies", "error", err)
		return fmt.Errorf("failed to batch create bodies: %w", err)
	}

	inserted, _ := result.RowsAffected()
	logger.Debug("Bodies batch created", "inserted", inserted)
	return nil
}

func (r *Repository) GetBodiesBySystemID(ctx context.Context, systemID uuid.UUID) ([]Body, error) {
	logger := r.logger.With("operation", "get_bodies_by_system", "system_id", systemID)
	logger.Debug("Getting bodies by system ID")

	query := `
		SELECT id, system_id, parent_body_id, kind, name, COALESCE(planet_type, ''), size, grid_x, grid_y, cells
		FROM bodies
		WHERE system_id = $1
		ORDER BY grid_y, grid_x`

	rows, err := r.db.QueryContext(ctx, query, systemID)
	if err != nil {
		logger.Error("Failed to query bodies", "error", err)
		return nil, fmt.Errorf("failed to query bodies: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var bodies []Body
	for rows.Next() {
		var (
			b     Body
			cells []byte
		)
		if err := rows.Scan(
			&b.ID,
			&b.SystemID,
			&b.ParentID,
			&b.Kind,
			&b.Name,
			&b.PlanetType,
			&b.Size,
			&b.GridX,
			&b.GridY,
			&cells,
		); err != nil {
			logger.Error("Failed to scan body row", "error", err)
			return nil, fmt.Errorf("failed to scan body: %w", err)
		}
		if err := json.Unmarshal(cells, &b.Cells); err != nil {
			return nil, fmt.Errorf("failed to decode cells of %s: %w", b.Name, err)
		}
		bodies = append(bodies, b)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating bodies: %w", err)
	}

	logger.Debug("Bodies retrieved", "count", len(bodies))
	return bodies, nil
}
