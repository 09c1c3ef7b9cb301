package galaxy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"planets-galaxy/internal/shared/database"
	apperrors "planets-galaxy/internal/shared/errors"

	"github.com/google/uuid"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing galaxy repository")

	return &Repository{
		db:     db,
		logger: logger.With("component", "galaxy_repository"),
	}
}

// Exists reports whether a completed galaxy for seed is stored
func (r *Repository) Exists(ctx context.Context, seed string) (bool, error) {
	logger := r.logger.With("operation", "exists", "seed", seed)

	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM galaxies WHERE seed = $1 AND completed)`, seed,
	).Scan(&exists)
	if err != nil {
		logger.Error("Failed to check galaxy existence", "error", err)
		return false, fmt.Errorf("failed to check galaxy existence: %w", err)
	}

	logger.Debug("Galaxy existence checked", "exists", exists)
	return exists, nil
}

// CreateGalaxy inserts g, replacing an incomplete galaxy left by an aborted run
func (r *Repository) CreateGalaxy(ctx context.Context, g *Galaxy, tx *database.Tx) error {
	exec := r.db.Executor(tx)
	logger := r.logger.With("operation", "create_galaxy", "galaxy_id", g.ID, "seed", g.Seed)
	logger.Debug("Creating galaxy")

	if _, err := exec.ExecContext(ctx, `DELETE FROM galaxies WHERE seed = $1 AND NOT completed`, g.Seed); err != nil {
		logger.Error("Failed to clear incomplete galaxy", "error", err)
		return fmt.Errorf("failed to clear incomplete galaxy: %w", err)
	}

	query := `
		INSERT INTO galaxies (id, seed, name, scale, sectors_per_side, fields_per_sector, run_id, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false)
		RETURNING created_at`

	err := exec.QueryRowContext(ctx, query,
		g.ID, g.Seed, g.Name, g.Scale, g.SectorsPerSide, g.FieldsPerSector, g.RunID,
	).Scan(&g.CreatedAt)
	if err != nil {
		logger.Error("Failed to create galaxy", "error", err)
		return fmt.Errorf("failed to create galaxy: %w", err)
	}

	logger.Info("Galaxy created successfully")
	return nil
}

func (r *Repository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	logger := r.logger.With("operation", "mark_completed", "galaxy_id", id)

	result, err := r.db.ExecContext(ctx,
		`UPDATE galaxies SET completed = true, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		logger.Error("Failed to mark galaxy completed", "error", err)
		return fmt.Errorf("failed to mark galaxy completed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFoundf("galaxy %s not found", id)
	}

	logger.Info("Galaxy marked completed")
	return nil
}

func (r *Repository) GetGalaxyBySeed(ctx context.Context, seed string) (*Galaxy, error) {
	logger := r.logger.With("operation", "get_galaxy_by_seed", "seed", seed)
	logger.Debug("Getting galaxy by seed")

	query := `
		SELECT id, seed, name, scale, sectors_per_side, fields_per_sector, run_id, completed, created_at
		FROM galaxies
		WHERE seed = $1`

	var g Galaxy
	err := r.db.QueryRowContext(ctx, query, seed).Scan(
		&g.ID,
		&g.Seed,
		&g.Name,
		&g.Scale,
		&g.SectorsPerSide,
		&g.FieldsPerSector,
		&g.RunID,
		&g.Completed,
		&g.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("galaxy with seed %q not found", seed)
	}
	if err != nil {
		logger.Error("Failed to get galaxy", "error", err)
		return nil, fmt.Errorf("failed to get galaxy: %w", err)
	}

	return &g, nil
}
