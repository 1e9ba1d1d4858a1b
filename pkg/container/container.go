package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"campaign-backend/internal/config"
	infraCache "campaign-backend/internal/infrastructure/cache"
	"campaign-backend/internal/infrastructure/database"
	infraStorage "campaign-backend/internal/infrastructure/storage"
	"campaign-backend/pkg/cache"
	"campaign-backend/pkg/storage"

	playerHandler "campaign-backend/internal/domains/player/handler"
	playerRepo "campaign-backend/internal/domains/player/repository"
	playerService "campaign-backend/internal/domains/player/service"

	campaignHandler "campaign-backend/internal/domains/campaign/handler"
	campaignRepo "campaign-backend/internal/domains/campaign/repository"
	campaignService "campaign-backend/internal/domains/campaign/service"

	characterHandler "campaign-backend/internal/domains/character/handler"
	characterRepo "campaign-backend/internal/domains/character/repository"
	characterService "campaign-backend/internal/domains/character/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa tất cả dependencies của application.
// Thứ tự khởi tạo: Config -> Infrastructure -> Repositories -> Services -> Handlers
type Container struct {
	// Infrastructure
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache
	Blobs  storage.BlobStore
	Icons  *infraStorage.ImageProcessor

	// Repositories
	PlayerRepo    playerRepo.PlayerRepository
	CampaignRepo  campaignRepo.CampaignRepository
	CharacterRepo characterRepo.CharacterRepository

	// Services
	PlayerService    playerService.ServiceInterface
	CampaignService  campaignService.ServiceInterface
	CharacterService characterService.ServiceInterface

	// Handlers
	PlayerHandler    *playerHandler.PlayerHandler
	CampaignHandler  *campaignHandler.CampaignHandler
	CharacterHandler *characterHandler.CharacterHandler
}

// NewContainer tạo và initialize toàn bộ dependency graph.
// Database và object storage là bắt buộc; Redis thì không.
func NewContainer() (*Container, error) {
	log.Info().Msg("[CONTAINER] Initializing...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("env", cfg.App.Environment).Msg("[CONTAINER] Config loaded")

	// ========================================
	// STEP 2: INITIALIZE INFRASTRUCTURE
	// ========================================
	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	c.initCache()
	if err := c.initStorage(); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 3: REPOSITORIES -> SERVICES -> HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("[CONTAINER] Ready")
	return c, nil
}

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	return nil
}

// initCache never fails: campaign reads fall through to Postgres when Redis is down
func (c *Container) initCache() {
	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rc.Connect(ctx); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Redis unavailable, continuing without cache")
		}
	}

	c.Cache = redisCache
}

func (c *Container) initStorage() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	blobs, err := infraStorage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}

	c.Blobs = blobs
	c.Icons = infraStorage.NewImageProcessor(c.Config.Icon.MaxBytes)
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool
	cacheTTL := time.Duration(c.Config.Redis.CacheTTL) * time.Minute

	c.PlayerRepo = playerRepo.NewPostgresPlayerRepository(pool)
	c.CampaignRepo = campaignRepo.NewPostgresCampaignRepository(pool, c.Cache, cacheTTL)
	c.CharacterRepo = characterRepo.NewPostgresCharacterRepository(pool)
}

func (c *Container) initServices() {
	c.PlayerService = playerService.NewPlayerService(c.PlayerRepo)
	c.CampaignService = campaignService.NewCampaignService(c.CampaignRepo, c.PlayerRepo, c.Blobs, c.Icons)
	c.CharacterService = characterService.NewCharacterService(c.CharacterRepo, c.PlayerRepo, c.CampaignRepo, c.Blobs)
}

func (c *Container) initHandlers() {
	c.PlayerHandler = playerHandler.NewPlayerHandler(c.PlayerService)
	c.CampaignHandler = campaignHandler.NewCampaignHandler(c.CampaignService)
	c.CharacterHandler = characterHandler.NewCharacterHandler(c.CharacterService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("[CONTAINER] Cleaning up resources...")

	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close Redis")
		}
	}

	log.Info().Msg("[CONTAINER] Cleanup completed")
}
