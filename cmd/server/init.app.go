package main

import (
	"context"
	"fmt"
	"time"

	"quickart/config"
	basehdl "quickart/internal/api/base/handler"
	"quickart/internal/api/events"
	"quickart/internal/api/layout/graph"
	layouthdl "quickart/internal/api/layout/handler"
	"quickart/internal/api/layout/models"
	layoutrouter "quickart/internal/api/layout/router"
	layoutsvc "quickart/internal/api/layout/service"
	"quickart/internal/api/router"
	"quickart/internal/cache"
	"quickart/internal/global"
	"quickart/internal/logger"
	"quickart/internal/metrics"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Dependencies gom các thành phần dùng chung của server
type Dependencies struct {
	Metrics  *metrics.Metrics // nil khi METRICS_ENABLED=false
	Redis    *redis.Client    // nil khi không cấu hình REDIS_ADDR
	Services *layoutsvc.Services
	Executor *graph.Executor
	Health   *basehdl.SystemHandler
}

// Close giải phóng kết nối Redis
func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			logger.GetAppLogger().WithError(err).Warn("Failed to close Redis client")
		}
	}
}

// Routes trả về các hàm đăng ký route của server
func (d *Dependencies) Routes(cfg *config.Configuration) []router.RegisterFunc {
	sys := router.SystemRoutes{Health: d.Health}
	if d.Metrics != nil {
		sys.Metrics = d.Metrics.Handler()
	}

	h := layouthdl.NewGraphQLHandler(d.Executor)
	layout := func(root fiber.Router, _ *router.Router) error {
		layoutrouter.Register(root, layoutrouter.Config{
			Path:       cfg.GraphQL_Path,
			Playground: cfg.GraphQL_Playground,
		}, h)
		return nil
	}
	return []router.RegisterFunc{router.RegisterSystem(sys), layout}
}

// InitDependencies dựng store, cache, service và executor theo cấu hình
func InitDependencies(ctx context.Context, cfg *config.Configuration, client *mongo.Client) (*Dependencies, error) {
	deps := &Dependencies{Health: basehdl.NewSystemHandler()}
	if cfg.Metrics_Enabled {
		deps.Metrics = metrics.New()
	}

	stores, err := initStores(cfg)
	if err != nil {
		return nil, err
	}
	if client != nil {
		deps.Health.AddCheck("database", func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		})
	}

	var mapCache *cache.Cache
	if cfg.Redis_Addr != "" {
		deps.Redis, err = cache.NewClient(ctx, cfg.Redis_Addr, cfg.Redis_Password, cfg.Redis_DB)
		if err != nil {
			return nil, err
		}
		mapCache = cache.New(deps.Redis, "quickart:map:", time.Duration(cfg.MapCache_TTL)*time.Second, deps.Metrics)
		redisClient := deps.Redis
		deps.Health.AddCheck("cache", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
		logger.GetAppLogger().WithField("addr", cfg.Redis_Addr).Info("Map cache enabled")
	}

	deps.Services = layoutsvc.New(stores, mapCache)
	deps.Services.Map.SetCoordLimit(cfg.Map_MaxCoords)
	registerDataHandlers(deps.Services, deps.Metrics)

	deps.Executor, err = graph.New(deps.Services, deps.Metrics)
	if err != nil {
		deps.Close()
		return nil, err
	}
	return deps, nil
}

// initStores chọn adapter lưu trữ theo STORE_DRIVER
func initStores(cfg *config.Configuration) (*layoutsvc.Stores, error) {
	if cfg.UsesMemoryStore() {
		return layoutsvc.NewMemoryStores(), nil
	}
	stores, err := layoutsvc.NewMongoStores()
	if err != nil {
		return nil, fmt.Errorf("init mongo stores: %w", err)
	}
	return stores, nil
}

// registerDataHandlers đăng ký phản ứng với insert: đếm metrics, ghi sẵn sơ đồ mới vào cache
func registerDataHandlers(svc *layoutsvc.Services, m *metrics.Metrics) {
	events.Reset()
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		m.IncInserted(e.CollectionName)
		logger.WithContext(ctx).WithFields(map[string]interface{}{
			"collection": e.CollectionName,
			"id":         events.GetObjectIDField(e.Document, "ID").Hex(),
		}).Debug("Document inserted")
	})
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		if e.CollectionName != global.MongoDB_ColNames.Maps {
			return
		}
		if storeMap, ok := e.Document.(models.StoreMap); ok {
			svc.Map.Remember(ctx, storeMap)
		}
	})
}
