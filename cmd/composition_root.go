package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	apihttp "intimacoes/internal/adapters/in/http"
	"intimacoes/internal/adapters/out/assistant"
	"intimacoes/internal/adapters/out/memory"
	"intimacoes/internal/adapters/out/postgres"
	"intimacoes/internal/adapters/out/sqlite"
	"intimacoes/internal/core/application/usecases/commands"
	"intimacoes/internal/core/application/usecases/queries"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/core/domain/services"
	"intimacoes/internal/core/ports"
	"intimacoes/internal/jobs"
	"intimacoes/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type CompositionRoot struct {
	config      Config
	logger      *slog.Logger
	registry    *prometheus.Registry
	metrics     *metrics.Metrics
	store       *memory.Store
	uowFactory  *memory.UnitOfWorkFactory
	fee         kernel.Money
	partitioner services.Partitioner
	aggregator  services.Aggregator
	assistant   *assistant.Client
	closers     []io.Closer
}

// NewCompositionRoot opens the snapshot store, loads the entity store from it and builds
// the shared collaborators of the use cases.
func NewCompositionRoot(ctx context.Context, config Config, logger *slog.Logger) (*CompositionRoot, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	fee, _ := config.Fee()
	archivalDelay, _ := config.ArchivalDelayDuration()
	partitioner, err := services.NewPartitioner(archivalDelay)
	if err != nil {
		return nil, err
	}

	assistantTimeout, _ := config.AssistantTimeoutDuration()
	assistantClient, err := assistant.NewClient(assistant.Config{
		BaseURL: config.AssistantBaseURL,
		APIKey:  config.AssistantAPIKey,
		Model:   config.AssistantModel,
		Timeout: assistantTimeout,
	}, nil, logger)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	root := &CompositionRoot{
		config:      config,
		logger:      logger,
		registry:    registry,
		metrics:     m,
		fee:         fee,
		partitioner: partitioner,
		aggregator:  services.NewAggregator(),
		assistant:   assistantClient,
	}

	snapshots, err := root.openSnapshotStore(ctx)
	if err != nil {
		return nil, err
	}

	root.store = memory.NewStore(snapshots, logger, m)
	if err = root.store.Load(ctx); err != nil {
		_ = root.Close()
		return nil, fmt.Errorf("load entity store: %w", err)
	}
	root.uowFactory = memory.NewUnitOfWorkFactory(root.store)

	return root, nil
}

func (c *CompositionRoot) openSnapshotStore(ctx context.Context) (ports.SnapshotStore, error) {
	switch strings.ToLower(c.config.StorageDriver) {
	case StoragePostgres:
		db, err := postgres.Open(ctx, c.config.Postgres())
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql.DB: %w", err)
		}
		c.closers = append(c.closers, sqlDB)

		store := postgres.NewSnapshotStore(db)
		if err = store.Migrate(ctx); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("migrate snapshot tables: %w", err)
		}
		c.logger.InfoContext(ctx, "Using postgres snapshot store", "host", c.config.DBHost, "db", c.config.DBName)
		return store, nil
	default:
		store, err := sqlite.NewSnapshotStore(c.config.SQLitePath)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, store)
		c.logger.InfoContext(ctx, "Using sqlite snapshot store", "path", store.Path())
		return store, nil
	}
}

// Close releases the snapshot store connection.
func (c *CompositionRoot) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

// Store returns the entity store.
func (c *CompositionRoot) Store() *memory.Store {
	return c.store
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.uowFactory, c.metrics)
}

func (c *CompositionRoot) CreateUpdateCourierCommandHandler() commands.UpdateCourierCommandHandler {
	return commands.NewUpdateCourierCommandHandler(c.uowFactory, c.metrics)
}

func (c *CompositionRoot) CreateDeleteCourierCommandHandler() commands.DeleteCourierCommandHandler {
	return commands.NewDeleteCourierCommandHandler(c.uowFactory, c.metrics)
}

func (c *CompositionRoot) CreateCreateBatchCommandHandler() commands.CreateBatchCommandHandler {
	return commands.NewCreateBatchCommandHandler(c.uowFactory, c.metrics)
}

func (c *CompositionRoot) CreateUpdateBatchCommandHandler() commands.UpdateBatchCommandHandler {
	return commands.NewUpdateBatchCommandHandler(c.uowFactory, c.fee, c.metrics)
}

func (c *CompositionRoot) CreateFinalizeBatchCommandHandler() commands.FinalizeBatchCommandHandler {
	return commands.NewFinalizeBatchCommandHandler(c.uowFactory, c.fee, c.metrics)
}

func (c *CompositionRoot) CreateDeleteBatchCommandHandler() commands.DeleteBatchCommandHandler {
	return commands.NewDeleteBatchCommandHandler(c.uowFactory, c.metrics)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetDashboardQueryHandler() queries.GetDashboardQueryHandler {
	return queries.NewGetDashboardQueryHandler(c.store, systemClock{}, c.partitioner)
}

func (c *CompositionRoot) CreateGetReportQueryHandler() queries.GetReportQueryHandler {
	return queries.NewGetReportQueryHandler(c.store, systemClock{}, c.partitioner, c.aggregator)
}

func (c *CompositionRoot) CreateSuggestDescriptionQueryHandler() queries.SuggestDescriptionQueryHandler {
	var generator ports.TextGenerator
	if c.assistant.Enabled() {
		generator = c.assistant
	} else {
		c.logger.Info("Description assistant disabled: no API key configured")
	}
	return queries.NewSuggestDescriptionQueryHandler(generator, c.assistant.Timeout(), c.logger)
}

// CreateRouter builds the HTTP API.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := apihttp.NewServer(apihttp.Handlers{
		CreateCourier:      c.CreateCreateCourierCommandHandler(),
		UpdateCourier:      c.CreateUpdateCourierCommandHandler(),
		DeleteCourier:      c.CreateDeleteCourierCommandHandler(),
		CreateBatch:        c.CreateCreateBatchCommandHandler(),
		UpdateBatch:        c.CreateUpdateBatchCommandHandler(),
		FinalizeBatch:      c.CreateFinalizeBatchCommandHandler(),
		DeleteBatch:        c.CreateDeleteBatchCommandHandler(),
		GetAllCouriers:     c.CreateGetAllCouriersQueryHandler(),
		GetDashboard:       c.CreateGetDashboardQueryHandler(),
		GetReport:          c.CreateGetReportQueryHandler(),
		SuggestDescription: c.CreateSuggestDescriptionQueryHandler(),
	})
	return apihttp.NewRouter(server, c.registry, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.store,
		c.CreateGetDashboardQueryHandler(),
		c.metrics,
		jobs.Schedules{
			SnapshotFlush:  c.config.SnapshotFlushSchedule,
			DashboardStats: c.config.DashboardStatsSchedule,
		},
		c.logger,
	)
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
