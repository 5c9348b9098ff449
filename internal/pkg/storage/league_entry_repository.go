package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

// LeagueEntryRepository persists league standings, scoped to one season.
// Sync cycles run per league, so ForLeague narrows the repository to one
// league's rows while keeping the same contract.
type LeagueEntryRepository struct {
	db     *sql.DB
	season string
}

func NewLeagueEntryRepository(db *sql.DB, season string) (*LeagueEntryRepository, error) {
	r := &LeagueEntryRepository{db: db, season: season}
	if err := r.initSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize league_entries schema: %w", err)
	}
	return r, nil
}

func (r *LeagueEntryRepository) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS league_entries (
		season VARCHAR(8) NOT NULL,
		league_id INT NOT NULL,
		league_name VARCHAR(200) NOT NULL DEFAULT '',
		entry_id INT NOT NULL,
		entry_name VARCHAR(200) NOT NULL,
		player_name VARCHAR(200) NOT NULL,
		rank INT NOT NULL,
		last_rank INT NOT NULL DEFAULT 0,
		event_total INT NOT NULL DEFAULT 0,
		total INT NOT NULL DEFAULT 0,
		PRIMARY KEY (season, league_id, entry_id)
	);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// Leagues lists the league ids with persisted standings, used by the cache
// rebuild tool.
func (r *LeagueEntryRepository) Leagues(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT league_id FROM league_entries WHERE season = $1 ORDER BY league_id`, r.season)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan league id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ForLeague returns a league-scoped view satisfying Repository[LeagueEntry].
func (r *LeagueEntryRepository) ForLeague(leagueID int) *ScopedLeagueEntryRepository {
	return &ScopedLeagueEntryRepository{parent: r, leagueID: leagueID}
}

var _ Repository[models.LeagueEntry] = (*ScopedLeagueEntryRepository)(nil)

// ScopedLeagueEntryRepository is a LeagueEntryRepository narrowed to one league.
type ScopedLeagueEntryRepository struct {
	parent   *LeagueEntryRepository
	leagueID int
}

const leagueEntryColumns = `league_id, league_name, entry_id, entry_name, player_name, rank, last_rank, event_total, total`

func scanLeagueEntry(rows *sql.Rows) (models.LeagueEntry, error) {
	var l models.LeagueEntry
	err := rows.Scan(&l.LeagueID, &l.LeagueName, &l.EntryID, &l.EntryName, &l.PlayerName, &l.Rank, &l.LastRank, &l.EventTotal, &l.Total)
	return l, err
}

func (r *ScopedLeagueEntryRepository) FindAll(ctx context.Context) ([]models.LeagueEntry, error) {
	rows, err := r.parent.db.QueryContext(ctx,
		`SELECT `+leagueEntryColumns+` FROM league_entries WHERE season = $1 AND league_id = $2 ORDER BY rank`,
		r.parent.season, r.leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query league entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LeagueEntry
	for rows.Next() {
		l, err := scanLeagueEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan league entry: %w", err)
		}
		entries = append(entries, l)
	}
	return entries, rows.Err()
}

func (r *ScopedLeagueEntryRepository) FindByID(ctx context.Context, id string) (models.LeagueEntry, bool, error) {
	entryID, err := strconv.Atoi(id)
	if err != nil {
		return models.LeagueEntry{}, false, fmt.Errorf("invalid entry id %q", id)
	}

	var l models.LeagueEntry
	err = r.parent.db.QueryRowContext(ctx,
		`SELECT `+leagueEntryColumns+` FROM league_entries WHERE season = $1 AND league_id = $2 AND entry_id = $3`,
		r.parent.season, r.leagueID, entryID).
		Scan(&l.LeagueID, &l.LeagueName, &l.EntryID, &l.EntryName, &l.PlayerName, &l.Rank, &l.LastRank, &l.EventTotal, &l.Total)
	if err == sql.ErrNoRows {
		return models.LeagueEntry{}, false, nil
	}
	if err != nil {
		return models.LeagueEntry{}, false, fmt.Errorf("failed to get league entry %d: %w", entryID, err)
	}
	return l, true, nil
}

func (r *ScopedLeagueEntryRepository) FindByIDs(ctx context.Context, ids []string) ([]models.LeagueEntry, error) {
	entryIDs, err := toIntIDs(ids)
	if err != nil {
		return nil, err
	}

	rows, err := r.parent.db.QueryContext(ctx,
		`SELECT `+leagueEntryColumns+` FROM league_entries WHERE season = $1 AND league_id = $2 AND entry_id = ANY($3) ORDER BY rank`,
		r.parent.season, r.leagueID, pq.Array(entryIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query league entries by ids: %w", err)
	}
	defer rows.Close()

	var entries []models.LeagueEntry
	for rows.Next() {
		l, err := scanLeagueEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan league entry: %w", err)
		}
		entries = append(entries, l)
	}
	return entries, rows.Err()
}

func (r *ScopedLeagueEntryRepository) SaveBatch(ctx context.Context, rows []models.LeagueEntry) ([]models.LeagueEntry, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	tx, err := r.parent.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO league_entries (season, league_id, league_name, entry_id, entry_name, player_name, rank, last_rank, event_total, total)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (season, league_id, entry_id) DO NOTHING
	`
	for _, l := range rows {
		if _, err := tx.ExecContext(ctx, query, r.parent.season, l.LeagueID, l.LeagueName, l.EntryID, l.EntryName, l.PlayerName, l.Rank, l.LastRank, l.EventTotal, l.Total); err != nil {
			return nil, fmt.Errorf("failed to insert league entry %d: %w", l.EntryID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit league entries: %w", err)
	}
	return rows, nil
}

func (r *ScopedLeagueEntryRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.parent.db.ExecContext(ctx,
		`DELETE FROM league_entries WHERE season = $1 AND league_id = $2`,
		r.parent.season, r.leagueID); err != nil {
		return fmt.Errorf("failed to delete league entries: %w", err)
	}
	return nil
}

func (r *ScopedLeagueEntryRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	entryIDs, err := toIntIDs(ids)
	if err != nil {
		return err
	}
	if _, err := r.parent.db.ExecContext(ctx,
		`DELETE FROM league_entries WHERE season = $1 AND league_id = $2 AND entry_id = ANY($3)`,
		r.parent.season, r.leagueID, pq.Array(entryIDs)); err != nil {
		return fmt.Errorf("failed to delete league entries by ids: %w", err)
	}
	return nil
}
