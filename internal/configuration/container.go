package configuration

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/devimrittika/Green-Planet/internal/auth"
	"github.com/devimrittika/Green-Planet/internal/db"
	"github.com/devimrittika/Green-Planet/internal/handler"
	"github.com/devimrittika/Green-Planet/internal/hub"
	"github.com/devimrittika/Green-Planet/internal/model"
	"github.com/devimrittika/Green-Planet/internal/repo"
	"github.com/devimrittika/Green-Planet/internal/service"
	"github.com/devimrittika/Green-Planet/internal/worker"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Container wires every component of the application.
type Container struct {
	Config Config
	Logger *zap.Logger

	UserHandler      handler.UserHandler
	BlogHandler      handler.BlogHandler
	DonationHandler  handler.DonationHandler
	SellPlantHandler handler.SellPlantHandler
	SwapHandler      handler.SwapHandler
	OrderHandler     handler.OrderHandler
	UploadHandler    handler.UploadHandler
	FeedHandler      handler.FeedHandler
	MonitorHandler   handler.MonitorHandler

	TokenManager *auth.JWTManager
	Hub          *hub.Hub
	Processor    *worker.RedisTaskProcessor

	// private - for cleanup
	database    *mongo.Database
	distributor *worker.RedisTaskDistributor
}

func BuildContainer(configPath string) (*Container, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	database, err := db.OpenConnection(config.Mongo.Uri, config.Mongo.Database)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.EnsureIndexes(ctx, database); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	tokenManager, err := auth.NewJWTManager(config.Auth.TokenSecret, config.Auth.TokenTTL())
	if err != nil {
		return nil, fmt.Errorf("init token manager: %w", err)
	}

	if err := os.MkdirAll(config.Server.UploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}

	userRepo := repo.NewUserRepository(db.NewRepository[model.User](database, config.Mongo.UsersCollection), logger)
	blogRepo := repo.NewBlogRepository(db.NewRepository[model.Blog](database, config.Mongo.BlogsCollection), logger)
	donationRepo := repo.NewDonationRepository(db.NewRepository[model.Donation](database, config.Mongo.DonationsCollection), logger)
	sellPlantRepo := repo.NewSellPlantRepository(db.NewRepository[model.SellPlant](database, config.Mongo.SellPlantsCollection), logger)
	swapRepo := repo.NewSwapRepository(db.NewRepository[model.Swap](database, config.Mongo.SwapsCollection), logger)

	feedHub := hub.NewHub(config.Server.AllowedOrigins, logger)

	redisOpt := asynq.RedisClientOpt{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	}
	distributor := worker.NewRedisTaskDistributor(redisOpt, logger)

	activityService := service.NewActivityService(userRepo, feedHub, logger)
	recommendationService := service.NewRecommendationService(userRepo, swapRepo, logger)
	userService := service.NewUserService(userRepo, blogRepo, donationRepo, sellPlantRepo, swapRepo, tokenManager, logger)
	blogService := service.NewBlogService(blogRepo, userRepo, activityService, logger)
	donationService := service.NewDonationService(donationRepo, userRepo, activityService, logger)
	sellPlantService := service.NewSellPlantService(sellPlantRepo, userRepo, activityService, logger)
	swapService := service.NewSwapService(swapRepo, userRepo, activityService, recommendationService, distributor, logger)

	processor := worker.NewRedisTaskProcessor(redisOpt, recommendationService, logger)

	return &Container{
		Config: *config,
		Logger: logger,

		UserHandler:      handler.NewUserHandler(userService, activityService, swapService, logger),
		BlogHandler:      handler.NewBlogHandler(blogService, logger),
		DonationHandler:  handler.NewDonationHandler(donationService, logger),
		SellPlantHandler: handler.NewSellPlantHandler(sellPlantService, logger),
		SwapHandler:      handler.NewSwapHandler(swapService, logger),
		OrderHandler:     handler.NewOrderHandler(),
		UploadHandler:    handler.NewUploadHandler(config.Server.UploadsDir, logger),
		FeedHandler:      handler.NewFeedHandler(feedHub),
		MonitorHandler:   handler.NewMonitorHandler(hub.NewMonitorService(feedHub)),

		TokenManager: tokenManager,
		Hub:          feedHub,
		Processor:    processor,

		database:    database,
		distributor: distributor,
	}, nil
}

// Close gracefully shuts down all connections.
func (c *Container) Close() error {
	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.Processor != nil {
		c.Processor.Shutdown()
	}

	if c.distributor != nil {
		_ = c.distributor.Close()
	}

	if c.Logger != nil {
		_ = c.Logger.Sync()
	}

	if c.database != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.database.Client().Disconnect(ctx); err != nil {
			return fmt.Errorf("close mongo connection: %w", err)
		}
	}

	return nil
}
