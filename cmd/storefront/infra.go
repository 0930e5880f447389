package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Skotchmaster/stylehub/internal/catalog"
	"github.com/Skotchmaster/stylehub/internal/config"
	"github.com/Skotchmaster/stylehub/internal/db"
	"github.com/Skotchmaster/stylehub/internal/es"
	"github.com/Skotchmaster/stylehub/internal/events"
	"github.com/Skotchmaster/stylehub/internal/logging"
	"github.com/Skotchmaster/stylehub/internal/store"
)

// infra holds the connections behind the services.
type infra struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Products   catalog.Provider
	Categories catalog.CategoryStore
	Store      store.Store
	Publisher  events.Publisher
}

func setup(ctx context.Context, cfg config.Config) (*infra, error) {
	l := logging.FromContext(ctx)
	in := &infra{Publisher: events.NopPublisher{}}

	if cfg.NeedsDB() {
		gdb, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		in.DB = gdb
	}

	if err := in.setupCatalog(ctx, cfg); err != nil {
		in.Close(l)
		return nil, err
	}
	if err := in.setupStore(ctx, cfg); err != nil {
		in.Close(l)
		return nil, err
	}

	if len(cfg.KafkaBrokers) > 0 {
		if err := events.EnsureTopics(cfg.KafkaBrokers[0], events.TopicCart, events.TopicWishlist); err != nil {
			l.Warn("kafka_topics_error", "error", err)
		}
		in.Publisher = events.NewKafkaPublisher(cfg.KafkaBrokers)
		l.Info("kafka_publisher_ready", "brokers", cfg.KafkaBrokers)
	}
	return in, nil
}

func (in *infra) setupCatalog(ctx context.Context, cfg config.Config) error {
	l := logging.FromContext(ctx)

	mock, err := catalog.NewMockProvider(ctx)
	if err != nil {
		return fmt.Errorf("load mock catalog: %w", err)
	}
	in.Products, in.Categories = mock, mock

	switch cfg.CatalogSource {
	case config.CatalogDB:
		repo, err := catalog.NewGormRepo(in.DB)
		if err != nil {
			return err
		}
		if cfg.SeedCatalog {
			products, err := mock.GetAll(ctx)
			if err != nil {
				return fmt.Errorf("read mock products: %w", err)
			}
			categories, err := mock.Categories(ctx)
			if err != nil {
				return fmt.Errorf("read mock categories: %w", err)
			}
			if err := repo.Seed(ctx, products, categories); err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}
			l.Info("catalog_seeded", "products", len(products), "categories", len(categories))
		}
		in.Products, in.Categories = repo, repo
	case config.CatalogBackend:
		// the hosted backend has no category table; categories stay bundled
		in.Products = catalog.NewBackendClient(cfg.BackendURL, cfg.BackendProjectID, cfg.BackendPublicKey)
	}

	if cfg.ESURL == "" {
		return nil
	}
	client, err := es.NewClient(ctx, es.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
	if err != nil {
		l.Warn("es_unavailable", "error", err)
		return nil
	}
	searcher := catalog.NewESSearcher(client, cfg.ESIndex)
	all, err := in.Products.GetAll(ctx)
	if err == nil {
		err = searcher.IndexProducts(ctx, all)
	}
	if err != nil {
		l.Warn("es_index_error", "error", err)
		return nil
	}
	in.Products = catalog.WithSearcher(in.Products, searcher)
	l.Info("es_search_enabled", "index", cfg.ESIndex, "products", len(all))
	return nil
}

func (in *infra) setupStore(ctx context.Context, cfg config.Config) error {
	switch cfg.StoreDriver {
	case config.StoreDB:
		s, err := store.NewGormStore(in.DB)
		if err != nil {
			return err
		}
		in.Store = s
	case config.StoreRedis:
		in.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := in.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		in.Store = store.NewRedisStore(in.Redis, cfg.SessionTTL)
	default:
		in.Store = store.NewMemoryStore()
	}
	return nil
}

func (in *infra) Ready(ctx context.Context) error {
	if in.DB != nil {
		sqlDB, err := in.DB.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("db: %w", err)
		}
	}
	if in.Redis != nil {
		if err := in.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

func (in *infra) Close(l *slog.Logger) {
	if in.Publisher != nil {
		if err := in.Publisher.Close(); err != nil {
			l.Error("kafka_close_error", "error", err)
		}
	}
	if in.Redis != nil {
		if err := in.Redis.Close(); err != nil {
			l.Error("redis_close_error", "error", err)
		}
	}
	if in.DB != nil {
		if err := db.Close(in.DB); err != nil {
			l.Error("db_close_error", "error", err)
		}
	}
}
