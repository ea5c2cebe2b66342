package cmd

import (
	"log/slog"
	"net/http"

	httpadapter "dropoff/internal/adapters/in/http"
	"dropoff/internal/adapters/out/postgres"
	redisadapter "dropoff/internal/adapters/out/redis"
	"dropoff/internal/adapters/out/towerctl"
	"dropoff/internal/core/application/monitor"
	"dropoff/internal/core/application/tracking"
	"dropoff/internal/core/application/usecases/commands"
	"dropoff/internal/core/application/usecases/queries"
	"dropoff/internal/core/domain/services"
	"dropoff/internal/core/ports"
	"dropoff/internal/jobs"
	"dropoff/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot owns the process-wide collaborators: the database, the
// tracking store, the tower client, the delivery monitor and the metrics
// registry. Handlers are created on demand and share them.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	gormDB          *gorm.DB
	uowFactory      *postgres.GormUnitOfWorkFactory
	droneUoWFactory *postgres.GormDroneUnitOfWorkFactory

	store      *tracking.Store
	registry   *prometheus.Registry
	sink       metrics.Sink
	analytics  ports.DeliveryAnalytics
	controller *towerctl.Client
	supervisor *monitor.Supervisor
}

// NewCompositionRoot wires the collaborators. redisClient may be nil, which
// disables delivery analytics.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	redisClient goredis.UniversalClient,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &CompositionRoot{
		cfg:             cfg,
		logger:          logger,
		gormDB:          gormDB,
		uowFactory:      postgres.NewGormUnitOfWorkFactory(gormDB),
		droneUoWFactory: postgres.NewGormDroneUnitOfWorkFactory(gormDB),
		store:           tracking.NewStore(),
		registry:        registry,
		sink:            metrics.NewPrometheusSink(registry, logger),
		controller: towerctl.NewClient(&http.Client{}, towerctl.Config{
			CommandTimeout: cfg.LaunchTimeout,
			StatusTimeout:  cfg.StatusTimeout,
		}, logger),
	}

	if redisClient != nil {
		c.analytics = redisadapter.NewAnalyticsSink(redisClient, cfg.AnalyticsRetention)
	}

	outcomes := commands.NewDeliveryOutcomes(
		c.CreateCompleteDeliveryCommandHandler(),
		commands.NewFailDeliveryCommandHandler(c.uowFactory, c.store, c.analytics, c.sink, logger),
		commands.NewMarkUnreachableCommandHandler(c.uowFactory, c.store, c.analytics, c.sink, logger),
	)

	supervisor, err := monitor.NewSupervisor(c.controller, outcomes, c.store, c.sink, logger, monitor.Config{
		Interval: cfg.MonitorPollInterval,
		Deadline: cfg.MonitorDeadline,
	})
	if err != nil {
		return nil, err
	}
	c.supervisor = supervisor

	return c, nil
}

func (c *CompositionRoot) CreateLaunchPackageCommandHandler() commands.LaunchPackageCommandHandler {
	return commands.NewLaunchPackageCommandHandler(
		c.uowFactory, c.controller, c.supervisor, c.store, c.analytics, c.sink, c.logger,
	)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(
		c.uowFactory, services.NewCredentialGenerator(), c.store, c.analytics, c.sink, c.logger,
	)
}

func (c *CompositionRoot) CreateResetPackageCommandHandler() commands.ResetPackageCommandHandler {
	return commands.NewResetPackageCommandHandler(c.uowFactory, c.controller, c.supervisor, c.store, c.logger)
}

func (c *CompositionRoot) CreatePickupPackageCommandHandler() commands.PickupPackageCommandHandler {
	return commands.NewPickupPackageCommandHandler(c.uowFactory, c.supervisor, c.store, c.analytics, c.sink, c.logger)
}

func (c *CompositionRoot) CreateUpdateDroneCoordinatesCommandHandler() commands.UpdateDroneCoordinatesCommandHandler {
	return commands.NewUpdateDroneCoordinatesCommandHandler(c.droneUoWFactory)
}

func (c *CompositionRoot) CreateOpenRackDoorCommandHandler() commands.OpenRackDoorCommandHandler {
	return commands.NewOpenRackDoorCommandHandler(c.uowFactory, c.controller, c.logger)
}

func (c *CompositionRoot) CreateReconcileCredentialsCommandHandler() commands.ReconcileCredentialsCommandHandler {
	return commands.NewReconcileCredentialsCommandHandler(
		c.uowFactory, c.CreateCompleteDeliveryCommandHandler(), c.sink, c.logger,
	)
}

func (c *CompositionRoot) CreateGetPackageStatusQueryHandler() queries.GetPackageStatusQueryHandler {
	return queries.NewGetPackageStatusQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetCredentialQueryHandler() queries.GetCredentialQueryHandler {
	return queries.NewGetCredentialQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetControlKeyQueryHandler() queries.GetControlKeyQueryHandler {
	return queries.NewGetControlKeyQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTowerRacksQueryHandler() queries.GetTowerRacksQueryHandler {
	return queries.NewGetTowerRacksQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPackagesQueryHandler() queries.ListPackagesQueryHandler {
	return queries.NewListPackagesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDeliveryDronesQueryHandler() queries.ListDeliveryDronesQueryHandler {
	return queries.NewListDeliveryDronesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDroneQueryHandler() queries.GetDroneQueryHandler {
	return queries.NewGetDroneQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDroneDestinationQueryHandler() queries.GetDroneDestinationQueryHandler {
	return queries.NewGetDroneDestinationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpadapter.NewServer(httpadapter.Handlers{
		Launch:           c.CreateLaunchPackageCommandHandler(),
		Reset:            c.CreateResetPackageCommandHandler(),
		Pickup:           c.CreatePickupPackageCommandHandler(),
		DroneCoordinates: c.CreateUpdateDroneCoordinatesCommandHandler(),
		OpenRackDoor:     c.CreateOpenRackDoorCommandHandler(),
		PackageStatus:    c.CreateGetPackageStatusQueryHandler(),
		Credential:       c.CreateGetCredentialQueryHandler(),
		ControlKey:       c.CreateGetControlKeyQueryHandler(),
		TowerRacks:       c.CreateGetTowerRacksQueryHandler(),
		Packages:         c.CreateListPackagesQueryHandler(),
		DeliveryDrones:   c.CreateListDeliveryDronesQueryHandler(),
		Drone:            c.CreateGetDroneQueryHandler(),
		DroneDestination: c.CreateGetDroneDestinationQueryHandler(),
	}, c.logger)

	return httpadapter.NewRouter(server, httpadapter.RouterConfig{
		Gatherer: c.registry,
		Logger:   c.logger,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewCredentialReconciliationJob(
			c.CreateReconcileCredentialsCommandHandler(),
			c.cfg.ReconcileSchedule,
			commands.DefaultReconcileBatch,
			c.logger,
		),
	)
}

// StopMonitors cancels every running delivery monitor.
func (c *CompositionRoot) StopMonitors() {
	c.supervisor.StopAll()
}
