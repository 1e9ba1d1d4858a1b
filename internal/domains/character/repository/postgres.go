package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaign-backend/internal/domains/character/model"
	"campaign-backend/pkg/database"
)

type postgresCharacterRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCharacterRepository(pool *pgxpool.Pool) CharacterRepository {
	return &postgresCharacterRepository{pool: pool}
}

func (r *postgresCharacterRepository) Create(ctx context.Context, character *model.Character, persist PersistFunc) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO characters (owner_id, campaign_id)
			VALUES ($1, $2)
			RETURNING id, version, created_at, updated_at
		`
		err := tx.QueryRow(ctx, query, character.OwnerID, character.CampaignID).Scan(
			&character.ID,
			&character.Version,
			&character.CreatedAt,
			&character.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create character: %w", err)
		}

		return persist(ctx, character)
	})
}

func (r *postgresCharacterRepository) GetByID(ctx context.Context, id int64) (*model.Character, error) {
	query := `
		SELECT c.id, c.owner_id, p.telegram_id, c.campaign_id, c.version, c.created_at, c.updated_at
		FROM characters c
		LEFT JOIN players p ON p.id = c.owner_id
		WHERE c.id = $1
	`

	c := &model.Character{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.OwnerID,
		&c.OwnerTelegramID,
		&c.CampaignID,
		&c.Version,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return c, nil
}

func (r *postgresCharacterRepository) UpdateDocument(ctx context.Context, id int64, mutate MutateFunc) (bool, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (bool, error) {
		query := `
			SELECT c.id, c.owner_id, p.telegram_id, c.campaign_id, c.version, c.created_at, c.updated_at
			FROM characters c
			LEFT JOIN players p ON p.id = c.owner_id
			WHERE c.id = $1
			FOR UPDATE OF c
		`

		c := &model.Character{}
		err := tx.QueryRow(ctx, query, id).Scan(
			&c.ID,
			&c.OwnerID,
			&c.OwnerTelegramID,
			&c.CampaignID,
			&c.Version,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return false, model.ErrCharacterNotFound
			}
			return false, fmt.Errorf("failed to lock character: %w", err)
		}

		save, err := mutate(ctx, c)
		if err != nil || save == nil {
			return false, err
		}

		err = tx.QueryRow(ctx,
			`UPDATE characters SET version = version + 1, updated_at = NOW() WHERE id = $1 RETURNING version, updated_at`,
			id,
		).Scan(&c.Version, &c.UpdatedAt)
		if err != nil {
			return false, fmt.Errorf("failed to bump character version: %w", err)
		}

		// The blob is written last so a failed bump leaves the stored document untouched
		if err := save(ctx, c); err != nil {
			return false, err
		}
		return true, nil
	})
}
