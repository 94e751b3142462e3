package cmd

import (
	"log/slog"

	httpin "distribops/internal/adapters/in/http"
	"distribops/internal/adapters/out/cache"
	"distribops/internal/adapters/out/postgres"
	"distribops/internal/core/application/eventhandlers"
	"distribops/internal/core/application/usecases/commands"
	"distribops/internal/core/application/usecases/queries"
	"distribops/internal/core/ports"
	"distribops/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	cache      ports.Cache
	logger     *slog.Logger
}

// NewCompositionRoot wires the object graph. The cache backend is picked from
// the config: Redis when an address is configured, in-process otherwise.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	var queryCache ports.Cache
	if config.RedisAddr != "" {
		queryCache = cache.NewRedisCache(config.RedisAddr)
	} else {
		queryCache = cache.NewMemoryCache()
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		cache:      queryCache,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderCommandHandler(f, c.cache)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteOrderCommandHandler(f, c.cache)
}

func (c *CompositionRoot) CreateCreateReturnOrderCommandHandler() commands.CreateReturnOrderCommandHandler {
	var f commands.ReturnOrderUoWFactory = FuncReturnOrderUoWFactory(func() commands.ReturnOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateReturnOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceDeliveryCommandHandler() commands.AdvanceDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderByIDQueryHandler() queries.GetOrderByIDQueryHandler {
	return queries.NewGetOrderByIDQueryHandler(c.gormDB, c.cache)
}

func (c *CompositionRoot) CreateGetReturnOrderByIDQueryHandler() queries.GetReturnOrderByIDQueryHandler {
	return queries.NewGetReturnOrderByIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryByIDQueryHandler() queries.GetDeliveryByIDQueryHandler {
	return queries.NewGetDeliveryByIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryByOrderIDQueryHandler() queries.GetDeliveryByOrderIDQueryHandler {
	return queries.NewGetDeliveryByOrderIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the REST server with all handlers wired.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderCommandHandler(),
		c.CreateDeleteOrderCommandHandler(),
		c.CreateCreateReturnOrderCommandHandler(),
		c.CreateAdvanceDeliveryCommandHandler(),
		c.CreateCancelDeliveryCommandHandler(),
		c.CreateGetOrderByIDQueryHandler(),
		c.CreateGetReturnOrderByIDQueryHandler(),
		c.CreateGetDeliveryByIDQueryHandler(),
		c.CreateGetDeliveryByOrderIDQueryHandler(),
		c.CreateGetActiveDeliveriesQueryHandler(),
	)
}

// CreateJobManager builds the background jobs: the outbox dispatcher with its
// event handler routing and the delivery delay monitor.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	orderCreated := eventhandlers.NewOrderCreatedHandler(
		c.CreateCreateDeliveryCommandHandler(),
		c.logger,
	)

	return jobs.NewJobManager(
		c.uowFactory.Create().OutboxRepository(),
		map[string]jobs.EventHandler{
			ports.EventOrderCreated: orderCreated,
		},
		c.CreateGetActiveDeliveriesQueryHandler(),
		prometheus.DefaultRegisterer,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncReturnOrderUoWFactory func() commands.ReturnOrderUoW

func (f FuncReturnOrderUoWFactory) Create() commands.ReturnOrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}
