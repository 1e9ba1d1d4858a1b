package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaign-backend/internal/domains/campaign/model"
	"campaign-backend/pkg/cache"
	"campaign-backend/pkg/database"
	"campaign-backend/pkg/logger"
)

type postgresCampaignRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewPostgresCampaignRepository caches campaign rows by id; memberships are always read from the database
func NewPostgresCampaignRepository(pool *pgxpool.Pool, cache cache.Cache, cacheTTL time.Duration) CampaignRepository {
	return &postgresCampaignRepository{
		pool:     pool,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

const campaignCacheKeyPrefix = "campaign:"

const campaignColumns = `id, title, description, icon_key, icon_url, verified, private, created_at, updated_at`

func campaignCacheKey(id int64) string {
	return campaignCacheKeyPrefix + strconv.FormatInt(id, 10)
}

func scanCampaign(row pgx.Row) (*model.Campaign, error) {
	c := &model.Campaign{}
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.IconKey,
		&c.IconURL,
		&c.Verified,
		&c.Private,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (r *postgresCampaignRepository) GetByID(ctx context.Context, id int64) (*model.Campaign, error) {
	key := campaignCacheKey(id)

	var cached model.Campaign
	if hit, err := r.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

	c, err := scanCampaign(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	if err := r.cache.Set(ctx, key, c, r.cacheTTL); err != nil {
		logger.Warn("campaign cache set failed", map[string]interface{}{"key": key, "error": err.Error()})
	}

	return c, nil
}

func (r *postgresCampaignRepository) ListVisible(ctx context.Context, userID *int64) ([]*model.Campaign, error) {
	query := `
		SELECT ` + campaignColumns + `
		FROM campaigns c
		WHERE c.private = false
		   OR ($1::bigint IS NOT NULL AND EXISTS (
				SELECT 1 FROM campaign_memberships m
				WHERE m.campaign_id = c.id AND m.user_id = $1
		   ))
		ORDER BY c.id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*model.Campaign, 0)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate campaigns: %w", err)
	}

	return campaigns, nil
}

func (r *postgresCampaignRepository) CreateWithOwner(ctx context.Context, campaign *model.Campaign, ownerID int64) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		insertCampaign := `
			INSERT INTO campaigns (title, description, icon_key, icon_url, verified, private)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at
		`
		err := tx.QueryRow(ctx, insertCampaign,
			campaign.Title,
			campaign.Description,
			campaign.IconKey,
			campaign.IconURL,
			campaign.Verified,
			campaign.Private,
		).Scan(&campaign.ID, &campaign.CreatedAt, &campaign.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create campaign: %w", err)
		}

		insertOwner := `
			INSERT INTO campaign_memberships (user_id, campaign_id, role)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.Exec(ctx, insertOwner, ownerID, campaign.ID, model.RoleOwner); err != nil {
			return fmt.Errorf("failed to create owner membership: %w", err)
		}

		return nil
	})
}

func (r *postgresCampaignRepository) Update(ctx context.Context, campaign *model.Campaign) error {
	query := `
		UPDATE campaigns
		SET description = $2, icon_key = $3, icon_url = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		campaign.ID,
		campaign.Description,
		campaign.IconKey,
		campaign.IconURL,
	).Scan(&campaign.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrCampaignNotFound
		}
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	if err := r.cache.Delete(ctx, campaignCacheKey(campaign.ID)); err != nil {
		logger.Warn("campaign cache invalidation failed", map[string]interface{}{"campaign_id": campaign.ID, "error": err.Error()})
	}

	return nil
}

func (r *postgresCampaignRepository) GetMembership(ctx context.Context, campaignID, userID int64) (*model.Membership, error) {
	query := `
		SELECT id, user_id, campaign_id, role
		FROM campaign_memberships
		WHERE campaign_id = $1 AND user_id = $2
	`

	m := &model.Membership{}
	err := r.pool.QueryRow(ctx, query, campaignID, userID).Scan(&m.ID, &m.UserID, &m.CampaignID, &m.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return m, nil
}

func (r *postgresCampaignRepository) UpsertMembership(ctx context.Context, campaignID, userID int64, role model.Role) (bool, error) {
	// xmax = 0 only for freshly inserted tuples
	query := `
		INSERT INTO campaign_memberships (user_id, campaign_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, campaign_id) DO UPDATE SET role = EXCLUDED.role
		RETURNING (xmax = 0)
	`

	var created bool
	if err := r.pool.QueryRow(ctx, query, userID, campaignID, role).Scan(&created); err != nil {
		return false, fmt.Errorf("failed to upsert membership: %w", err)
	}

	return created, nil
}

func (r *postgresCampaignRepository) UpdateMembershipRole(ctx context.Context, campaignID, userID int64, role model.Role) error {
	query := `
		UPDATE campaign_memberships
		SET role = $3
		WHERE campaign_id = $1 AND user_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, campaignID, userID, role)
	if err != nil {
		return fmt.Errorf("failed to update membership role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMembershipNotFound
	}

	return nil
}
