package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"chore-rooms/internal/api"
	"chore-rooms/internal/cli"
	"chore-rooms/internal/config"
	"chore-rooms/internal/datasource"
	"chore-rooms/internal/feed"
	"chore-rooms/internal/logging"
	"chore-rooms/internal/services"
	"chore-rooms/internal/validation"

	"go.uber.org/zap"
)

func main() {
	env := getEnvironment()
	logging.Debugf("rooms: %s environment, config %s\n", env, config.DefaultConfigPath())

	factory := NewRepositoryFactory(env)
	root := cli.NewRootCommand(config.NewLoader(), func(cfg *config.Config) (*cli.App, func(), error) {
		return bootstrap(cfg, factory)
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap wires the repository, data source, change feed and business API
// for one command run
func bootstrap(cfg *config.Config, factory *RepositoryFactory) (*cli.App, func(), error) {
	logger, err := logging.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	repo, err := factory.CreateRepository(cfg)
	if err != nil {
		logger.Sync()
		return nil, nil, fmt.Errorf("error creating repository: %w", err)
	}

	var publisher feed.Publisher
	var reader feed.Reader
	var redisFeed *feed.RedisFeed
	if cfg.Feed.Enabled {
		redisFeed = feed.NewRedisFeed(feed.NewRedisClient(cfg.Feed.RedisAddr), cfg.Feed.Stream, cfg.Feed.MaxLen, logger)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisFeed.Ping(ctx); err != nil {
			logger.Warn("change feed unreachable, changes are still saved", zap.String("addr", cfg.Feed.RedisAddr), zap.Error(err))
		}
		cancel()
		publisher, reader = redisFeed, redisFeed
	} else {
		logging.Debugln("rooms: change feed disabled")
	}

	source := datasource.New(cfg.RoomUser())
	service := services.NewRoomService(repo, source, validation.NewRoomValidatorWithConfig(cfg), publisher, logger)
	businessAPI := api.NewBusinessAPI(service, source, reader)

	logger.Debug("application ready",
		zap.String("database", cfg.GetDatabasePath()),
		zap.String("tier", cfg.User.Tier),
		zap.Bool("feed", cfg.Feed.Enabled))

	cleanup := func() {
		businessAPI.Close()
		if redisFeed != nil {
			redisFeed.Close()
		}
		repo.Close()
		logger.Sync()
	}
	return cli.NewApp(businessAPI, cfg, logger), cleanup, nil
}
