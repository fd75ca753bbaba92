package di

import (
	"fmt"
	"log/slog"
	"os"

	"marketplace-core/app/config"
	"marketplace-core/app/driver/kratos"
	"marketplace-core/app/driver/postgres"
	redisdriver "marketplace-core/app/driver/redis"
	"marketplace-core/app/driver/rolecache"
	"marketplace-core/app/gateway"
	"marketplace-core/app/port"
	"marketplace-core/app/store"
	"marketplace-core/app/usecase"
)

// Container holds all dependencies for the client core
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB             *postgres.DB
	KratosClient   *kratos.Client
	IdentityClient *kratos.IdentityClient
	RecordStore    port.DocumentStore
	RoleCache      port.RoleCache

	// Store access layer
	Subscriptions *store.Manager
	Records       *store.DataAccess

	// Gateways
	IdentityGateway port.IdentityGateway
	Profiles        port.ProfileRepository
	Listings        *gateway.ListingRepository
	Applications    *gateway.ApplicationRepository

	// Usecases
	Sessions *usecase.SessionUseCase
	Profile  *usecase.ProfileProjector
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	// Initialize drivers
	var err error
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		container.DB, err = postgres.NewConnection(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		container.RecordStore = postgres.NewDocumentStore(container.DB.Pool(), container.DB.Pool(), logger)
	case config.BackendRedis:
		container.RecordStore = redisdriver.NewDocumentStore(cfg.RedisAddr, cfg.RedisPassword, logger)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}

	container.KratosClient, err = kratos.NewClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Kratos client: %w", err)
	}
	container.IdentityClient = kratos.NewIdentityClient(
		container.KratosClient, cfg.SessionTokenPath(), cfg.IdentityPollInterval, logger)

	container.RoleCache, err = rolecache.Open(cfg.RoleCachePath(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open role cache: %w", err)
	}

	// Store access layer
	container.Subscriptions = store.NewManager(container.RecordStore, cfg.StoreNamespace, logger)
	container.Records = store.NewDataAccess(container.RecordStore, cfg.StoreNamespace, logger)

	// Gateways
	container.IdentityGateway = gateway.NewIdentityGateway(container.IdentityClient, logger)
	container.Profiles = gateway.NewProfileRepository(container.Records, container.Subscriptions, logger)
	container.Listings = gateway.NewListingRepository(container.Records, container.Subscriptions, logger)
	container.Applications = gateway.NewApplicationRepository(container.Records, container.Subscriptions, logger)

	// Usecases
	container.Sessions = usecase.NewSessionUseCase(
		container.IdentityGateway, container.Profiles, container.RoleCache, logger)
	container.Profile = usecase.NewProfileProjector(container.Sessions, container.Profiles, logger)

	logger.Info("Container initialized with full dependency stack",
		"store_backend", cfg.StoreBackend)

	return container, nil
}

// Close closes all resources
func (c *Container) Close() error {
	if c.Sessions != nil {
		c.Sessions.Close()
	}
	if c.IdentityClient != nil {
		c.IdentityClient.Close()
	}
	if c.RecordStore != nil {
		if err := c.RecordStore.Close(); err != nil {
			c.Logger.Warn("record store close failed", "error", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}

	c.Logger.Info("Container closed successfully")
	return nil
}
