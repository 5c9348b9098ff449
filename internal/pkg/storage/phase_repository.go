package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

var _ Repository[models.Phase] = (*PhaseRepository)(nil)

// PhaseRepository persists phases, scoped to one season.
type PhaseRepository struct {
	db     *sql.DB
	season string
}

func NewPhaseRepository(db *sql.DB, season string) (*PhaseRepository, error) {
	r := &PhaseRepository{db: db, season: season}
	if err := r.initSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize phases schema: %w", err)
	}
	return r, nil
}

func (r *PhaseRepository) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS phases (
		season VARCHAR(8) NOT NULL,
		id INT NOT NULL,
		name VARCHAR(100) NOT NULL,
		start_event INT NOT NULL,
		stop_event INT NOT NULL,
		PRIMARY KEY (season, id)
	);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

func (r *PhaseRepository) FindAll(ctx context.Context) ([]models.Phase, error) {
	query := `SELECT id, name, start_event, stop_event FROM phases WHERE season = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, r.season)
	if err != nil {
		return nil, fmt.Errorf("failed to query phases: %w", err)
	}
	defer rows.Close()

	var phases []models.Phase
	for rows.Next() {
		var p models.Phase
		if err := rows.Scan(&p.ID, &p.Name, &p.StartEvent, &p.StopEvent); err != nil {
			return nil, fmt.Errorf("failed to scan phase: %w", err)
		}
		phases = append(phases, p)
	}
	return phases, rows.Err()
}

func (r *PhaseRepository) FindByID(ctx context.Context, id string) (models.Phase, bool, error) {
	phaseID, err := strconv.Atoi(id)
	if err != nil {
		return models.Phase{}, false, fmt.Errorf("invalid phase id %q", id)
	}

	var p models.Phase
	err = r.db.QueryRowContext(ctx,
		`SELECT id, name, start_event, stop_event FROM phases WHERE season = $1 AND id = $2`,
		r.season, phaseID).Scan(&p.ID, &p.Name, &p.StartEvent, &p.StopEvent)
	if err == sql.ErrNoRows {
		return models.Phase{}, false, nil
	}
	if err != nil {
		return models.Phase{}, false, fmt.Errorf("failed to get phase %d: %w", phaseID, err)
	}
	return p, true, nil
}

func (r *PhaseRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Phase, error) {
	phaseIDs, err := toIntIDs(ids)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, start_event, stop_event FROM phases WHERE season = $1 AND id = ANY($2) ORDER BY id`,
		r.season, pq.Array(phaseIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query phases by ids: %w", err)
	}
	defer rows.Close()

	var phases []models.Phase
	for rows.Next() {
		var p models.Phase
		if err := rows.Scan(&p.ID, &p.Name, &p.StartEvent, &p.StopEvent); err != nil {
			return nil, fmt.Errorf("failed to scan phase: %w", err)
		}
		phases = append(phases, p)
	}
	return phases, rows.Err()
}

func (r *PhaseRepository) SaveBatch(ctx context.Context, rows []models.Phase) ([]models.Phase, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO phases (season, id, name, start_event, stop_event)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (season, id) DO NOTHING
	`
	for _, p := range rows {
		if _, err := tx.ExecContext(ctx, query, r.season, p.ID, p.Name, p.StartEvent, p.StopEvent); err != nil {
			return nil, fmt.Errorf("failed to insert phase %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit phases: %w", err)
	}
	return rows, nil
}

func (r *PhaseRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM phases WHERE season = $1`, r.season); err != nil {
		return fmt.Errorf("failed to delete phases: %w", err)
	}
	return nil
}

func (r *PhaseRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	phaseIDs, err := toIntIDs(ids)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM phases WHERE season = $1 AND id = ANY($2)`, r.season, pq.Array(phaseIDs)); err != nil {
		return fmt.Errorf("failed to delete phases by ids: %w", err)
	}
	return nil
}
