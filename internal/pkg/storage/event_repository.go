package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

var _ Repository[models.Event] = (*EventRepository)(nil)

// EventRepository persists events, scoped to one season.
type EventRepository struct {
	db     *sql.DB
	season string
}

func NewEventRepository(db *sql.DB, season string) (*EventRepository, error) {
	r := &EventRepository{db: db, season: season}
	if err := r.initSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize events schema: %w", err)
	}
	return r, nil
}

func (r *EventRepository) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS events (
		season VARCHAR(8) NOT NULL,
		id INT NOT NULL,
		name VARCHAR(100) NOT NULL,
		deadline_time TIMESTAMPTZ NOT NULL,
		finished BOOLEAN NOT NULL DEFAULT FALSE,
		is_previous BOOLEAN NOT NULL DEFAULT FALSE,
		is_current BOOLEAN NOT NULL DEFAULT FALSE,
		is_next BOOLEAN NOT NULL DEFAULT FALSE,
		average_score INT NOT NULL DEFAULT 0,
		highest_score INT NOT NULL DEFAULT 0,
		PRIMARY KEY (season, id)
	);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

func (r *EventRepository) FindAll(ctx context.Context) ([]models.Event, error) {
	query := `
	SELECT id, name, deadline_time, finished, is_previous, is_current, is_next, average_score, highest_score
	FROM events WHERE season = $1 ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, r.season)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.DeadlineTime, &e.Finished, &e.IsPrevious, &e.IsCurrent, &e.IsNext, &e.AverageScore, &e.HighestScore); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (models.Event, bool, error) {
	eventID, err := strconv.Atoi(id)
	if err != nil {
		return models.Event{}, false, fmt.Errorf("invalid event id %q", id)
	}

	query := `
	SELECT id, name, deadline_time, finished, is_previous, is_current, is_next, average_score, highest_score
	FROM events WHERE season = $1 AND id = $2
	`
	var e models.Event
	err = r.db.QueryRowContext(ctx, query, r.season, eventID).
		Scan(&e.ID, &e.Name, &e.DeadlineTime, &e.Finished, &e.IsPrevious, &e.IsCurrent, &e.IsNext, &e.AverageScore, &e.HighestScore)
	if err == sql.ErrNoRows {
		return models.Event{}, false, nil
	}
	if err != nil {
		return models.Event{}, false, fmt.Errorf("failed to get event %d: %w", eventID, err)
	}
	return e, true, nil
}

func (r *EventRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Event, error) {
	eventIDs, err := toIntIDs(ids)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT id, name, deadline_time, finished, is_previous, is_current, is_next, average_score, highest_score
	FROM events WHERE season = $1 AND id = ANY($2) ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, r.season, pq.Array(eventIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query events by ids: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.DeadlineTime, &e.Finished, &e.IsPrevious, &e.IsCurrent, &e.IsNext, &e.AverageScore, &e.HighestScore); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *EventRepository) SaveBatch(ctx context.Context, rows []models.Event) ([]models.Event, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO events (season, id, name, deadline_time, finished, is_previous, is_current, is_next, average_score, highest_score)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (season, id) DO NOTHING
	`
	for _, e := range rows {
		if _, err := tx.ExecContext(ctx, query, r.season, e.ID, e.Name, e.DeadlineTime, e.Finished, e.IsPrevious, e.IsCurrent, e.IsNext, e.AverageScore, e.HighestScore); err != nil {
			return nil, fmt.Errorf("failed to insert event %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit events: %w", err)
	}
	return rows, nil
}

func (r *EventRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE season = $1`, r.season); err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}
	return nil
}

func (r *EventRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	eventIDs, err := toIntIDs(ids)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE season = $1 AND id = ANY($2)`, r.season, pq.Array(eventIDs)); err != nil {
		return fmt.Errorf("failed to delete events by ids: %w", err)
	}
	return nil
}

// toIntIDs converts string ids to ints, rejecting malformed input before it
// reaches the database.
func toIntIDs(ids []string) ([]int64, error) {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", id)
		}
		out = append(out, n)
	}
	return out, nil
}
