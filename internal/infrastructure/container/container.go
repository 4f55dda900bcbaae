package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/redondonicolas-afk/padel/internal/config"
	httpdelivery "github.com/redondonicolas-afk/padel/internal/delivery/http"
	"github.com/redondonicolas-afk/padel/internal/delivery/http/handler"
	"github.com/redondonicolas-afk/padel/internal/delivery/http/middleware"
	"github.com/redondonicolas-afk/padel/internal/infrastructure/database"
	"github.com/redondonicolas-afk/padel/internal/infrastructure/dedup"
	"github.com/redondonicolas-afk/padel/internal/infrastructure/gateway"
	"github.com/redondonicolas-afk/padel/internal/infrastructure/server"
	"github.com/redondonicolas-afk/padel/internal/repository"
	"github.com/redondonicolas-afk/padel/internal/repository/jsonfile"
	"github.com/redondonicolas-afk/padel/internal/repository/postgres"
	"github.com/redondonicolas-afk/padel/internal/usecase/coordinator"
	"github.com/redondonicolas-afk/padel/internal/usecase/followup"
	"github.com/redondonicolas-afk/padel/internal/usecase/match"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	DB       *sqlx.DB
	Redis    *redis.Client
	Server   *server.Server
	Worker   *followup.Worker
	Matches  *match.UseCase
	Notifier *gateway.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// Snapshot storage
	var repo repository.SnapshotRepository
	switch cfg.Storage.Type {
	case config.StoragePostgres:
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		repo, err = postgres.NewSnapshotRepository(db)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize snapshot repository: %w", err)
		}
	default:
		repo = jsonfile.NewSnapshotRepository(cfg.Storage.Path)
	}

	// Duplicate-message filter: shared via Redis when available, otherwise
	// a per-process map
	var filter dedup.Filter
	if cfg.Redis.Enabled {
		redisClient, err := database.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Redis = redisClient
		filter = dedup.NewRedisFilter(redisClient, dedup.DefaultWindow)
	} else {
		filter = dedup.NewMemoryFilter(dedup.DefaultWindow)
	}

	// Use cases
	matches, err := match.NewUseCase(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize match state: %w", err)
	}
	c.Matches = matches

	coord := coordinator.New(matches, filter)

	// Outbound gateway + follow-up worker
	c.Notifier = gateway.NewClient(cfg.Gateway.URL, cfg.Gateway.Token)
	c.Worker = followup.NewWorker(matches, c.Notifier, cfg.Gateway.PromptInterval)

	// HTTP delivery
	messageHandler := handler.NewMessageHandler(coord)
	gatewayAuth := middleware.NewGatewayAuthMiddleware(cfg.Gateway.JWTSecret)
	router := httpdelivery.NewRouter(messageHandler, gatewayAuth)
	c.Server = server.NewServer(&cfg.Server, router.Setup())

	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			fmt.Printf("Error closing Redis: %v\n", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
