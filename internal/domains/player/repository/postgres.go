package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaign-backend/internal/domains/player/model"
	"campaign-backend/pkg/database"
)

type postgresPlayerRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPlayerRepository(pool *pgxpool.Pool) PlayerRepository {
	return &postgresPlayerRepository{pool: pool}
}

const playerColumns = `id, telegram_id, bio, admin, verified, avatar_url, created_at`

func scanPlayer(row pgx.Row) (*model.Player, error) {
	p := &model.Player{}
	err := row.Scan(
		&p.ID,
		&p.TelegramID,
		&p.Bio,
		&p.Admin,
		&p.Verified,
		&p.AvatarURL,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int64) (*model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	p, err := scanPlayer(r.pool.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, err
}

func (r *postgresPlayerRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE telegram_id = $1 ORDER BY id LIMIT 1`

	p, err := scanPlayer(r.pool.QueryRow(ctx, query, telegramID))
	if err != nil && !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, fmt.Errorf("failed to get player by telegram id: %w", err)
	}
	return p, err
}

func (r *postgresPlayerRepository) GetOrCreateByTelegramID(ctx context.Context, player *model.Player) (bool, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (bool, error) {
		// Transaction-scoped lock keyed by telegram id; released on commit or rollback
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, player.TelegramID); err != nil {
			return false, fmt.Errorf("failed to lock telegram id: %w", err)
		}

		query := `SELECT ` + playerColumns + ` FROM players WHERE telegram_id = $1 ORDER BY id LIMIT 1`
		existing, err := scanPlayer(tx.QueryRow(ctx, query, player.TelegramID))
		if err == nil {
			*player = *existing
			return false, nil
		}
		if !errors.Is(err, model.ErrPlayerNotFound) {
			return false, fmt.Errorf("failed to get player by telegram id: %w", err)
		}

		insert := `
			INSERT INTO players (telegram_id, bio, admin, verified, avatar_url)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`
		err = tx.QueryRow(ctx, insert,
			player.TelegramID,
			player.Bio,
			player.Admin,
			player.Verified,
			player.AvatarURL,
		).Scan(&player.ID, &player.CreatedAt)
		if err != nil {
			return false, fmt.Errorf("failed to create player: %w", err)
		}
		return true, nil
	})
}
