package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "mediflow/internal/adapters/in/http"
	"mediflow/internal/adapters/out/auth"
	"mediflow/internal/adapters/out/catalog"
	"mediflow/internal/adapters/out/inmem"
	"mediflow/internal/adapters/out/postgres/orderrepo"
	"mediflow/internal/adapters/out/postgres/pharmacistrepo"
	"mediflow/internal/adapters/out/prescriptionstore"
	"mediflow/internal/adapters/out/redisq"
	"mediflow/internal/adapters/out/settlement"
	"mediflow/internal/core/application/usecases/commands"
	"mediflow/internal/core/application/usecases/queries"
	"mediflow/internal/core/ports"
	"mediflow/internal/jobs"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CompositionRoot builds and owns all adapters and hands out use case
// handlers wired to them.
type CompositionRoot struct {
	config Config

	orders      ports.OrderRepository
	pharmacists ports.PharmacistRepository
	queue       ports.Queue
	catalog     ports.Catalog
	storage     ports.ArtifactStorage
	settlement  ports.SettlementGateway
	auth        *auth.Provider
}

// NewCompositionRoot builds the object graph selected by the configuration.
func NewCompositionRoot(config Config) (*CompositionRoot, error) {
	root := &CompositionRoot{
		config:  config,
		catalog: catalog.NewStaticCatalog(),
	}

	switch config.StorageBackend {
	case "postgres":
		db, err := openPostgres(config)
		if err != nil {
			return nil, err
		}
		root.orders = orderrepo.NewGormOrderRepository(db)
		root.pharmacists = pharmacistrepo.NewGormPharmacistRepository(db)
	default:
		root.orders = inmem.NewOrderStore()
		root.pharmacists = inmem.NewPharmacistStore()
	}

	switch config.QueueBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		root.queue = redisq.NewQueue(client)
	default:
		root.queue = inmem.NewQueue()
	}

	store, err := prescriptionstore.NewFSStore(config.PrescriptionDir)
	if err != nil {
		return nil, fmt.Errorf("prescription store: %w", err)
	}
	root.storage = store

	if config.SettlementURL != "" {
		root.settlement = settlement.NewHTTPGateway(config.SettlementURL)
	} else {
		limit := decimal.Zero
		if config.SettlementLimit != "" {
			limit, err = decimal.NewFromString(config.SettlementLimit)
			if err != nil {
				return nil, fmt.Errorf("settlement limit: %w", err)
			}
		}
		root.settlement = settlement.NewSimulator(limit)
	}

	root.auth = auth.NewProvider(root.pharmacists)
	return root, nil
}

func openPostgres(config Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err = db.AutoMigrate(&orderrepo.OrderDTO{}, &pharmacistrepo.PharmacistDTO{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// SeedDemoAccounts provisions the demo customer and pharmacist used in
// local development. Errors on re-seeding an existing account are ignored.
func (c *CompositionRoot) SeedDemoAccounts(ctx context.Context, logger *slog.Logger) {
	if _, err := c.auth.SeedCustomer("Test User", "test@user.com", "user123"); err != nil {
		logger.WarnContext(ctx, "Demo customer not seeded", "error", err)
	}
	if _, err := c.auth.SeedPharmacist(ctx, "Dr. Smith", "dr.smith@mediflow.com", "pharm123"); err != nil {
		logger.WarnContext(ctx, "Demo pharmacist not seeded", "error", err)
	}
}

func (c *CompositionRoot) routingPolicy() commands.RoutingPolicy {
	return commands.RoutingPolicy{OTCRequiresReview: c.config.OTCRequiresReview}
}

func (c *CompositionRoot) cancellationPolicy() commands.CancellationPolicy {
	return commands.CancellationPolicy{
		Customer:   c.config.CustomerCanCancel,
		Pharmacist: c.config.PharmacistCanCancel,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orders, c.queue, c.catalog, c.routingPolicy())
}

func (c *CompositionRoot) CreateAttachPrescriptionCommandHandler() commands.AttachPrescriptionCommandHandler {
	return commands.NewAttachPrescriptionCommandHandler(c.orders, c.queue, c.storage)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orders, c.queue)
}

func (c *CompositionRoot) CreateStartConsultationCommandHandler() commands.StartConsultationCommandHandler {
	return commands.NewStartConsultationCommandHandler(c.orders)
}

func (c *CompositionRoot) CreateFinalizeItemsCommandHandler() commands.FinalizeItemsCommandHandler {
	return commands.NewFinalizeItemsCommandHandler(c.orders, c.catalog)
}

func (c *CompositionRoot) CreateProcessPaymentCommandHandler() commands.ProcessPaymentCommandHandler {
	return commands.NewProcessPaymentCommandHandler(c.orders, c.settlement)
}

func (c *CompositionRoot) CreateConfirmFulfillmentCommandHandler() commands.ConfirmFulfillmentCommandHandler {
	return commands.NewConfirmFulfillmentCommandHandler(c.orders)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orders, c.queue, c.cancellationPolicy())
}

func (c *CompositionRoot) CreateCancelStaleConsultationsCommandHandler() commands.CancelStaleConsultationsCommandHandler {
	return commands.NewCancelStaleConsultationsCommandHandler(c.orders)
}

func (c *CompositionRoot) CreateGetPharmacistQueueQueryHandler() queries.GetPharmacistQueueQueryHandler {
	return queries.NewGetPharmacistQueueQueryHandler(c.orders, c.queue)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.orders)
}

// CreateHTTPServer wires all handlers into the REST server.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.auth,
		c.catalog,
		c.CreateCreateOrderCommandHandler(),
		c.CreateAttachPrescriptionCommandHandler(),
		c.CreateClaimOrderCommandHandler(),
		c.CreateStartConsultationCommandHandler(),
		c.CreateFinalizeItemsCommandHandler(),
		c.CreateProcessPaymentCommandHandler(),
		c.CreateConfirmFulfillmentCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetPharmacistQueueQueryHandler(),
		c.CreateGetCustomerOrdersQueryHandler(),
	)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateCancelStaleConsultationsCommandHandler(),
		c.config.ConsultationTimeout,
		logger,
	)
}
