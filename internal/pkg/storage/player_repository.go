package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/enums"
	"github.com/tonglam/letletme-data-sub006/internal/pkg/models"
)

var _ Repository[models.Player] = (*PlayerRepository)(nil)

// PlayerRepository persists players, scoped to one season.
type PlayerRepository struct {
	db     *sql.DB
	season string
}

func NewPlayerRepository(db *sql.DB, season string) (*PlayerRepository, error) {
	r := &PlayerRepository{db: db, season: season}
	if err := r.initSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize players schema: %w", err)
	}
	return r, nil
}

func (r *PlayerRepository) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS players (
		season VARCHAR(8) NOT NULL,
		id INT NOT NULL,
		code INT NOT NULL,
		element_type INT NOT NULL,
		team_id INT NOT NULL,
		web_name VARCHAR(100) NOT NULL,
		first_name VARCHAR(100) NOT NULL,
		second_name VARCHAR(100) NOT NULL,
		price INT NOT NULL DEFAULT 0,
		start_price INT NOT NULL DEFAULT 0,
		PRIMARY KEY (season, id)
	);

	CREATE INDEX IF NOT EXISTS idx_players_team ON players(season, team_id);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

const playerColumns = `id, code, element_type, team_id, web_name, first_name, second_name, price, start_price`

func scanPlayer(rows *sql.Rows) (models.Player, error) {
	var p models.Player
	var elementType int
	err := rows.Scan(&p.ID, &p.Code, &elementType, &p.TeamID, &p.WebName, &p.FirstName, &p.SecondName, &p.Price, &p.StartPrice)
	p.ElementType = enums.ElementType(elementType)
	return p, err
}

func (r *PlayerRepository) FindAll(ctx context.Context) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE season = $1 ORDER BY id`, r.season)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *PlayerRepository) FindByID(ctx context.Context, id string) (models.Player, bool, error) {
	playerID, err := strconv.Atoi(id)
	if err != nil {
		return models.Player{}, false, fmt.Errorf("invalid player id %q", id)
	}

	var p models.Player
	var elementType int
	err = r.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE season = $1 AND id = $2`, r.season, playerID).
		Scan(&p.ID, &p.Code, &elementType, &p.TeamID, &p.WebName, &p.FirstName, &p.SecondName, &p.Price, &p.StartPrice)
	if err == sql.ErrNoRows {
		return models.Player{}, false, nil
	}
	if err != nil {
		return models.Player{}, false, fmt.Errorf("failed to get player %d: %w", playerID, err)
	}
	p.ElementType = enums.ElementType(elementType)
	return p, true, nil
}

func (r *PlayerRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Player, error) {
	playerIDs, err := toIntIDs(ids)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE season = $1 AND id = ANY($2) ORDER BY id`,
		r.season, pq.Array(playerIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query players by ids: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// FindByTeam returns the players of one team.
func (r *PlayerRepository) FindByTeam(ctx context.Context, teamID int) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE season = $1 AND team_id = $2 ORDER BY id`,
		r.season, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query players by team: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *PlayerRepository) SaveBatch(ctx context.Context, rows []models.Player) ([]models.Player, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO players (season, id, code, element_type, team_id, web_name, first_name, second_name, price, start_price)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (season, id) DO NOTHING
	`
	for _, p := range rows {
		if _, err := tx.ExecContext(ctx, query, r.season, p.ID, p.Code, int(p.ElementType), p.TeamID, p.WebName, p.FirstName, p.SecondName, p.Price, p.StartPrice); err != nil {
			return nil, fmt.Errorf("failed to insert player %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit players: %w", err)
	}
	return rows, nil
}

func (r *PlayerRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE season = $1`, r.season); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}
	return nil
}

func (r *PlayerRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	playerIDs, err := toIntIDs(ids)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE season = $1 AND id = ANY($2)`, r.season, pq.Array(playerIDs)); err != nil {
		return fmt.Errorf("failed to delete players by ids: %w", err)
	}
	return nil
}
