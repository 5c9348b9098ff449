package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

var _ Repository[models.Team] = (*TeamRepository)(nil)

// TeamRepository persists teams, scoped to one season.
type TeamRepository struct {
	db     *sql.DB
	season string
}

func NewTeamRepository(db *sql.DB, season string) (*TeamRepository, error) {
	r := &TeamRepository{db: db, season: season}
	if err := r.initSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize teams schema: %w", err)
	}
	return r, nil
}

func (r *TeamRepository) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS teams (
		season VARCHAR(8) NOT NULL,
		id INT NOT NULL,
		code INT NOT NULL,
		name VARCHAR(100) NOT NULL,
		short_name VARCHAR(10) NOT NULL,
		strength INT NOT NULL DEFAULT 0,
		position INT NOT NULL DEFAULT 0,
		points INT NOT NULL DEFAULT 0,
		win INT NOT NULL DEFAULT 0,
		draw INT NOT NULL DEFAULT 0,
		loss INT NOT NULL DEFAULT 0,
		PRIMARY KEY (season, id)
	);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

const teamColumns = `id, code, name, short_name, strength, position, points, win, draw, loss`

func (r *TeamRepository) scanTeam(rows *sql.Rows) (models.Team, error) {
	var t models.Team
	err := rows.Scan(&t.ID, &t.Code, &t.Name, &t.ShortName, &t.Strength, &t.Position, &t.Points, &t.Win, &t.Draw, &t.Loss)
	return t, err
}

func (r *TeamRepository) FindAll(ctx context.Context) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE season = $1 ORDER BY id`, r.season)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		t, err := r.scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *TeamRepository) FindByID(ctx context.Context, id string) (models.Team, bool, error) {
	teamID, err := strconv.Atoi(id)
	if err != nil {
		return models.Team{}, false, fmt.Errorf("invalid team id %q", id)
	}

	var t models.Team
	err = r.db.QueryRowContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE season = $1 AND id = $2`, r.season, teamID).
		Scan(&t.ID, &t.Code, &t.Name, &t.ShortName, &t.Strength, &t.Position, &t.Points, &t.Win, &t.Draw, &t.Loss)
	if err == sql.ErrNoRows {
		return models.Team{}, false, nil
	}
	if err != nil {
		return models.Team{}, false, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}
	return t, true, nil
}

func (r *TeamRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Team, error) {
	teamIDs, err := toIntIDs(ids)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE season = $1 AND id = ANY($2) ORDER BY id`,
		r.season, pq.Array(teamIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query teams by ids: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		t, err := r.scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *TeamRepository) SaveBatch(ctx context.Context, rows []models.Team) ([]models.Team, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO teams (season, id, code, name, short_name, strength, position, points, win, draw, loss)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (season, id) DO NOTHING
	`
	for _, t := range rows {
		if _, err := tx.ExecContext(ctx, query, r.season, t.ID, t.Code, t.Name, t.ShortName, t.Strength, t.Position, t.Points, t.Win, t.Draw, t.Loss); err != nil {
			return nil, fmt.Errorf("failed to insert team %d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit teams: %w", err)
	}
	return rows, nil
}

func (r *TeamRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE season = $1`, r.season); err != nil {
		return fmt.Errorf("failed to delete teams: %w", err)
	}
	return nil
}

func (r *TeamRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	teamIDs, err := toIntIDs(ids)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE season = $1 AND id = ANY($2)`, r.season, pq.Array(teamIDs)); err != nil {
		return fmt.Errorf("failed to delete teams by ids: %w", err)
	}
	return nil
}
