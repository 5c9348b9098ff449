package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

// PlayerStatRepository persists live element stats, scoped to one season.
// Sync cycles run per event, so ForEvent narrows the repository to one
// event's rows while keeping the same contract.
type PlayerStatRepository struct {
	db     *sql.DB
	season string
}

func NewPlayerStatRepository(db *sql.DB, season string) (*PlayerStatRepository, error) {
	r := &PlayerStatRepository{db: db, season: season}
	if err := r.initSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize player_stats schema: %w", err)
	}
	return r, nil
}

func (r *PlayerStatRepository) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS player_stats (
		season VARCHAR(8) NOT NULL,
		element_id INT NOT NULL,
		event_id INT NOT NULL,
		minutes INT NOT NULL DEFAULT 0,
		goals_scored INT NOT NULL DEFAULT 0,
		assists INT NOT NULL DEFAULT 0,
		clean_sheets INT NOT NULL DEFAULT 0,
		goals_conceded INT NOT NULL DEFAULT 0,
		own_goals INT NOT NULL DEFAULT 0,
		penalties_saved INT NOT NULL DEFAULT 0,
		yellow_cards INT NOT NULL DEFAULT 0,
		red_cards INT NOT NULL DEFAULT 0,
		saves INT NOT NULL DEFAULT 0,
		bonus INT NOT NULL DEFAULT 0,
		bps INT NOT NULL DEFAULT 0,
		total_points INT NOT NULL DEFAULT 0,
		PRIMARY KEY (season, element_id, event_id)
	);

	CREATE INDEX IF NOT EXISTS idx_player_stats_event ON player_stats(season, event_id);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// Events lists the event ids that have persisted stats, used by the cache
// rebuild tool to know which buckets to reconstruct.
func (r *PlayerStatRepository) Events(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT event_id FROM player_stats WHERE season = $1 ORDER BY event_id`, r.season)
	if err != nil {
		return nil, fmt.Errorf("failed to list stat events: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan event id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ForEvent returns an event-scoped view satisfying Repository[PlayerStat].
func (r *PlayerStatRepository) ForEvent(eventID int) *EventPlayerStatRepository {
	return &EventPlayerStatRepository{parent: r, eventID: eventID}
}

var _ Repository[models.PlayerStat] = (*EventPlayerStatRepository)(nil)

// EventPlayerStatRepository is a PlayerStatRepository narrowed to one event.
type EventPlayerStatRepository struct {
	parent  *PlayerStatRepository
	eventID int
}

const statColumns = `element_id, event_id, minutes, goals_scored, assists, clean_sheets, goals_conceded, own_goals, penalties_saved, yellow_cards, red_cards, saves, bonus, bps, total_points`

func scanStat(rows *sql.Rows) (models.PlayerStat, error) {
	var s models.PlayerStat
	err := rows.Scan(&s.ElementID, &s.EventID, &s.Minutes, &s.GoalsScored, &s.Assists, &s.CleanSheets, &s.GoalsConceded, &s.OwnGoals, &s.PenaltiesSaved, &s.YellowCards, &s.RedCards, &s.Saves, &s.Bonus, &s.BPS, &s.TotalPoints)
	return s, err
}

func (r *EventPlayerStatRepository) FindAll(ctx context.Context) ([]models.PlayerStat, error) {
	rows, err := r.parent.db.QueryContext(ctx,
		`SELECT `+statColumns+` FROM player_stats WHERE season = $1 AND event_id = $2 ORDER BY element_id`,
		r.parent.season, r.eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query player stats: %w", err)
	}
	defer rows.Close()

	var stats []models.PlayerStat
	for rows.Next() {
		s, err := scanStat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *EventPlayerStatRepository) FindByID(ctx context.Context, id string) (models.PlayerStat, bool, error) {
	elementID, eventID, err := models.ParseStatID(id)
	if err != nil {
		return models.PlayerStat{}, false, err
	}

	var s models.PlayerStat
	err = r.parent.db.QueryRowContext(ctx,
		`SELECT `+statColumns+` FROM player_stats WHERE season = $1 AND element_id = $2 AND event_id = $3`,
		r.parent.season, elementID, eventID).
		Scan(&s.ElementID, &s.EventID, &s.Minutes, &s.GoalsScored, &s.Assists, &s.CleanSheets, &s.GoalsConceded, &s.OwnGoals, &s.PenaltiesSaved, &s.YellowCards, &s.RedCards, &s.Saves, &s.Bonus, &s.BPS, &s.TotalPoints)
	if err == sql.ErrNoRows {
		return models.PlayerStat{}, false, nil
	}
	if err != nil {
		return models.PlayerStat{}, false, fmt.Errorf("failed to get player stat %s: %w", id, err)
	}
	return s, true, nil
}

func (r *EventPlayerStatRepository) FindByIDs(ctx context.Context, ids []string) ([]models.PlayerStat, error) {
	var stats []models.PlayerStat
	for _, id := range ids {
		s, found, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			stats = append(stats, s)
		}
	}
	return stats, nil
}

func (r *EventPlayerStatRepository) SaveBatch(ctx context.Context, rows []models.PlayerStat) ([]models.PlayerStat, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	tx, err := r.parent.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO player_stats (season, element_id, event_id, minutes, goals_scored, assists, clean_sheets, goals_conceded, own_goals, penalties_saved, yellow_cards, red_cards, saves, bonus, bps, total_points)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	ON CONFLICT (season, element_id, event_id) DO NOTHING
	`
	for _, s := range rows {
		if _, err := tx.ExecContext(ctx, query, r.parent.season, s.ElementID, s.EventID, s.Minutes, s.GoalsScored, s.Assists, s.CleanSheets, s.GoalsConceded, s.OwnGoals, s.PenaltiesSaved, s.YellowCards, s.RedCards, s.Saves, s.Bonus, s.BPS, s.TotalPoints); err != nil {
			return nil, fmt.Errorf("failed to insert player stat %s: %w", s.CacheID(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit player stats: %w", err)
	}
	return rows, nil
}

func (r *EventPlayerStatRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.parent.db.ExecContext(ctx,
		`DELETE FROM player_stats WHERE season = $1 AND event_id = $2`,
		r.parent.season, r.eventID); err != nil {
		return fmt.Errorf("failed to delete player stats: %w", err)
	}
	return nil
}

func (r *EventPlayerStatRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	for _, id := range ids {
		elementID, eventID, err := models.ParseStatID(id)
		if err != nil {
			return err
		}
		if _, err := r.parent.db.ExecContext(ctx,
			`DELETE FROM player_stats WHERE season = $1 AND element_id = $2 AND event_id = $3`,
			r.parent.season, elementID, eventID); err != nil {
			return fmt.Errorf("failed to delete player stat %s: %w", id, err)
		}
	}
	return nil
}
