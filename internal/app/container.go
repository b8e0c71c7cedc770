package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"emploiplus/internal/config"
	"emploiplus/internal/database"
	dbpostgres "emploiplus/internal/database/postgres"
	"emploiplus/internal/domain/matching"
	"emploiplus/internal/infrastructure/cache"
	"emploiplus/internal/infrastructure/notification"
	"emploiplus/internal/repository"
	"emploiplus/internal/scheduler"
	"emploiplus/internal/usecase"
	"emploiplus/internal/worker"
	"emploiplus/internal/ws"

	"go.uber.org/zap"
)

type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Redis  *cache.Redis
	Hub    *ws.Hub
	Pool   *worker.Pool
	Kafka  *notification.KafkaSender

	Scheduler *scheduler.Scheduler

	Matching  *usecase.Matching
	Roadmap   *usecase.Roadmap
	JobNotify *usecase.JobNotify

	stopHub context.CancelFunc
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Database.Enabled() {
		return nil, errors.New("database is not configured (DB_HOST, DB_NAME)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, DB: db}

	profiles := repository.NewPostgresProfileRepository(db)
	jobs := repository.NewPostgresJobRepository(db)
	reqs := repository.NewPostgresJobRequirementRepository(db)
	formations := repository.NewPostgresFormationRepository(db)
	logs := repository.NewPostgresWebhookLogRepository(db)

	if cfg.Redis.Enabled() {
		c.Redis = cache.NewRedis(cfg.Redis, logger.Named("redis"))
	}

	sweepers := map[string]scheduler.Sweeper{}

	var matchCache usecase.MatchCache
	switch {
	case cfg.Matching.CacheBackend == config.CacheBackendRedis && c.Redis.Available():
		matchCache = cache.NewRedisMatchCache(c.Redis, cfg.Matching.CacheTTL, logger.Named("match_cache"))
	default:
		if cfg.Matching.CacheBackend == config.CacheBackendRedis {
			logger.Warn("Redis match cache requested but unavailable, using memory")
		}
		store := cache.NewMemory[matching.MatchScore](cfg.Matching.CacheTTL,
			cache.WithMaxEntries[matching.MatchScore](cfg.Matching.CacheMaxEntries))
		mc := cache.NewMemoryMatchCache(store)
		sweepers["match_cache"] = mc
		matchCache = mc
	}

	var dedup usecase.EventDeduper
	if c.Redis.Available() {
		dedup = cache.NewRedisDeduper(c.Redis, cfg.Notify.DedupTTL)
	} else {
		md := cache.NewMemoryDeduper(cfg.Notify.DedupTTL)
		sweepers["webhook_dedup"] = md
		dedup = md
	}

	c.Scheduler = scheduler.New(cfg.Matching.CacheSweepSpec, sweepers, logger.Named("scheduler"))

	c.Hub = ws.NewHub(logger.Named("ws"))
	hubCtx, stopHub := context.WithCancel(context.Background())
	c.stopHub = stopHub
	go c.Hub.Run(hubCtx)

	senders := []notification.Sender{notification.NewHubSender(c.Hub, logger.Named("ws_sender"))}
	if len(cfg.Kafka.Brokers) > 0 {
		k, err := notification.NewKafkaSender(cfg.Kafka, logger.Named("kafka"))
		if err != nil {
			_ = c.Close(context.Background())
			return nil, fmt.Errorf("kafka sender: %w", err)
		}
		c.Kafka = k
		senders = append(senders, k)
	}

	c.Pool = worker.NewPool(worker.Options{
		Workers:     cfg.Notify.Workers,
		QueueSize:   cfg.Notify.QueueSize,
		TaskTimeout: cfg.Notify.TaskTimeout,
		Logger:      logger.Named("worker"),
	})
	c.Pool.Start()

	c.Matching = usecase.NewMatchingUsecase(profiles, jobs, reqs, matchCache, logger.Named("matching"))
	c.Roadmap = usecase.NewRoadmapUsecase(profiles, jobs, reqs, formations, logger.Named("roadmap"))
	c.JobNotify = usecase.NewJobNotifyUsecase(profiles, logs, notification.NewMultiSender(senders...), dedup, c.Pool, logger.Named("job_notify"))

	if err := c.Scheduler.Start(); err != nil {
		_ = c.Close(context.Background())
		return nil, err
	}

	return c, nil
}

// Close drains background work before releasing the connections it uses.
func (c *Container) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Pool != nil {
		if err := c.Pool.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("worker pool: %w", err))
		}
	}
	if c.stopHub != nil {
		c.stopHub()
	}
	if c.Kafka != nil {
		if err := c.Kafka.Close(); err != nil {
			errs = append(errs, fmt.Errorf("kafka: %w", err))
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}
