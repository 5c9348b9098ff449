package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

var _ Repository[models.Fixture] = (*FixtureRepository)(nil)

// FixtureRepository persists fixtures, scoped to one season. The derived
// team-name columns are stored alongside the mapped fields so the cache can
// be rebuilt from the database alone.
type FixtureRepository struct {
	db     *sql.DB
	season string
}

func NewFixtureRepository(db *sql.DB, season string) (*FixtureRepository, error) {
	r := &FixtureRepository{db: db, season: season}
	if err := r.initSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize fixtures schema: %w", err)
	}
	return r, nil
}

func (r *FixtureRepository) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS fixtures (
		season VARCHAR(8) NOT NULL,
		id INT NOT NULL,
		code INT NOT NULL,
		event_id INT NOT NULL,
		home_team_id INT NOT NULL,
		away_team_id INT NOT NULL,
		home_team_name VARCHAR(100) NOT NULL DEFAULT '',
		away_team_name VARCHAR(100) NOT NULL DEFAULT '',
		kickoff_time TIMESTAMPTZ NOT NULL,
		started BOOLEAN NOT NULL DEFAULT FALSE,
		finished BOOLEAN NOT NULL DEFAULT FALSE,
		home_score INT NOT NULL DEFAULT 0,
		away_score INT NOT NULL DEFAULT 0,
		difficulty INT NOT NULL DEFAULT 0,
		PRIMARY KEY (season, id)
	);

	CREATE INDEX IF NOT EXISTS idx_fixtures_event ON fixtures(season, event_id);
	CREATE INDEX IF NOT EXISTS idx_fixtures_teams ON fixtures(season, home_team_id, away_team_id);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

const fixtureColumns = `id, code, event_id, home_team_id, away_team_id, home_team_name, away_team_name, kickoff_time, started, finished, home_score, away_score, difficulty`

func scanFixture(rows *sql.Rows) (models.Fixture, error) {
	var f models.Fixture
	err := rows.Scan(&f.ID, &f.Code, &f.EventID, &f.HomeTeamID, &f.AwayTeamID, &f.HomeTeamName, &f.AwayTeamName, &f.KickoffTime, &f.Started, &f.Finished, &f.HomeScore, &f.AwayScore, &f.Difficulty)
	return f, err
}

func (r *FixtureRepository) queryFixtures(ctx context.Context, query string, args ...any) ([]models.Fixture, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fixtures: %w", err)
	}
	defer rows.Close()

	var fixtures []models.Fixture
	for rows.Next() {
		f, err := scanFixture(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fixture: %w", err)
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, rows.Err()
}

func (r *FixtureRepository) FindAll(ctx context.Context) ([]models.Fixture, error) {
	return r.queryFixtures(ctx,
		`SELECT `+fixtureColumns+` FROM fixtures WHERE season = $1 ORDER BY id`, r.season)
}

func (r *FixtureRepository) FindByID(ctx context.Context, id string) (models.Fixture, bool, error) {
	fixtureID, err := strconv.Atoi(id)
	if err != nil {
		return models.Fixture{}, false, fmt.Errorf("invalid fixture id %q", id)
	}

	var f models.Fixture
	err = r.db.QueryRowContext(ctx,
		`SELECT `+fixtureColumns+` FROM fixtures WHERE season = $1 AND id = $2`, r.season, fixtureID).
		Scan(&f.ID, &f.Code, &f.EventID, &f.HomeTeamID, &f.AwayTeamID, &f.HomeTeamName, &f.AwayTeamName, &f.KickoffTime, &f.Started, &f.Finished, &f.HomeScore, &f.AwayScore, &f.Difficulty)
	if err == sql.ErrNoRows {
		return models.Fixture{}, false, nil
	}
	if err != nil {
		return models.Fixture{}, false, fmt.Errorf("failed to get fixture %d: %w", fixtureID, err)
	}
	return f, true, nil
}

func (r *FixtureRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Fixture, error) {
	fixtureIDs, err := toIntIDs(ids)
	if err != nil {
		return nil, err
	}
	return r.queryFixtures(ctx,
		`SELECT `+fixtureColumns+` FROM fixtures WHERE season = $1 AND id = ANY($2) ORDER BY id`,
		r.season, pq.Array(fixtureIDs))
}

// FindByEvent returns the fixtures of one event.
func (r *FixtureRepository) FindByEvent(ctx context.Context, eventID int) ([]models.Fixture, error) {
	return r.queryFixtures(ctx,
		`SELECT `+fixtureColumns+` FROM fixtures WHERE season = $1 AND event_id = $2 ORDER BY kickoff_time, id`,
		r.season, eventID)
}

// FindByTeam returns the fixtures one team takes part in, home or away.
func (r *FixtureRepository) FindByTeam(ctx context.Context, teamID int) ([]models.Fixture, error) {
	return r.queryFixtures(ctx,
		`SELECT `+fixtureColumns+` FROM fixtures WHERE season = $1 AND (home_team_id = $2 OR away_team_id = $2) ORDER BY event_id, id`,
		r.season, teamID)
}

func (r *FixtureRepository) SaveBatch(ctx context.Context, rows []models.Fixture) ([]models.Fixture, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO fixtures (season, id, code, event_id, home_team_id, away_team_id, home_team_name, away_team_name, kickoff_time, started, finished, home_score, away_score, difficulty)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (season, id) DO NOTHING
	`
	for _, f := range rows {
		if _, err := tx.ExecContext(ctx, query, r.season, f.ID, f.Code, f.EventID, f.HomeTeamID, f.AwayTeamID, f.HomeTeamName, f.AwayTeamName, f.KickoffTime, f.Started, f.Finished, f.HomeScore, f.AwayScore, f.Difficulty); err != nil {
			return nil, fmt.Errorf("failed to insert fixture %d: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit fixtures: %w", err)
	}
	return rows, nil
}

func (r *FixtureRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM fixtures WHERE season = $1`, r.season); err != nil {
		return fmt.Errorf("failed to delete fixtures: %w", err)
	}
	return nil
}

func (r *FixtureRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	fixtureIDs, err := toIntIDs(ids)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM fixtures WHERE season = $1 AND id = ANY($2)`, r.season, pq.Array(fixtureIDs)); err != nil {
		return fmt.Errorf("failed to delete fixtures by ids: %w", err)
	}
	return nil
}

// ForEvent returns an event-scoped view satisfying Repository[Fixture], used
// by the live fixture refresh.
func (r *FixtureRepository) ForEvent(eventID int) *EventFixtureRepository {
	return &EventFixtureRepository{parent: r, eventID: eventID}
}

var _ Repository[models.Fixture] = (*EventFixtureRepository)(nil)

// EventFixtureRepository is a FixtureRepository narrowed to one event.
type EventFixtureRepository struct {
	parent  *FixtureRepository
	eventID int
}

func (r *EventFixtureRepository) FindAll(ctx context.Context) ([]models.Fixture, error) {
	return r.parent.FindByEvent(ctx, r.eventID)
}

func (r *EventFixtureRepository) FindByID(ctx context.Context, id string) (models.Fixture, bool, error) {
	f, found, err := r.parent.FindByID(ctx, id)
	if err != nil || !found {
		return models.Fixture{}, false, err
	}
	if f.EventID != r.eventID {
		return models.Fixture{}, false, nil
	}
	return f, true, nil
}

func (r *EventFixtureRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Fixture, error) {
	rows, err := r.parent.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	var fixtures []models.Fixture
	for _, f := range rows {
		if f.EventID == r.eventID {
			fixtures = append(fixtures, f)
		}
	}
	return fixtures, nil
}

func (r *EventFixtureRepository) SaveBatch(ctx context.Context, rows []models.Fixture) ([]models.Fixture, error) {
	return r.parent.SaveBatch(ctx, rows)
}

func (r *EventFixtureRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.parent.db.ExecContext(ctx,
		`DELETE FROM fixtures WHERE season = $1 AND event_id = $2`,
		r.parent.season, r.eventID); err != nil {
		return fmt.Errorf("failed to delete event fixtures: %w", err)
	}
	return nil
}

func (r *EventFixtureRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	return r.parent.DeleteByIDs(ctx, ids)
}
