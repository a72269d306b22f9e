package provider

import (
	"github.com/fuelflow/internal/authz"
	"github.com/fuelflow/internal/cache"
	"github.com/fuelflow/internal/config"
	"github.com/fuelflow/internal/logger"
	"github.com/fuelflow/internal/models"
	"github.com/fuelflow/internal/queue"
	"github.com/fuelflow/internal/repository"
	"github.com/fuelflow/internal/service"
)

// Container wires repositories and services once at startup.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo             repository.UserRepository
	OrderRepo            repository.OrderRepository
	NoteRepo             repository.NoteRepository
	ClientRepo           repository.ClientRepository
	DriverRepo           repository.DriverRepository
	TruckRepo            repository.TruckRepository
	TransportCompanyRepo repository.TransportCompanyRepository
	DocumentRepo         repository.DocumentRepository
	RegulatoryPriceRepo  repository.RegulatoryPriceRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	CaptchaService   *service.CaptchaService
	EmailService     *service.EmailService
	UserService      *service.UserService
	OrderService     *service.OrderService
	WorkflowService  *service.WorkflowService
	NoteService      *service.NoteService
	DocumentService  *service.DocumentService
	ReferenceService *service.ReferenceService
	PriceService     *service.RegulatoryPriceService
	AnalyticsService *service.AnalyticsService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.NoteRepo = repository.NewNoteRepository(db)
	c.ClientRepo = repository.NewClientRepository(db)
	c.DriverRepo = repository.NewDriverRepository(db)
	c.TruckRepo = repository.NewTruckRepository(db)
	c.TransportCompanyRepo = repository.NewTransportCompanyRepository(db)
	c.DocumentRepo = repository.NewDocumentRepository(db)
	c.RegulatoryPriceRepo = repository.NewRegulatoryPriceRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.UserService = service.NewUserService(c.UserRepo, c.AuthService)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.NoteRepo,
		c.ClientRepo,
		c.RegulatoryPriceRepo,
		c.QueueClient,
		c.Config.Workflow.ApprovalReminderHours,
	)
	c.WorkflowService = service.NewWorkflowService(
		models.DB,
		c.OrderRepo,
		c.NoteRepo,
		c.QueueClient,
		c.Config.Workflow.StoreRetryAttempts,
		c.Config.Workflow.StoreRetryBaseMS,
	)
	c.NoteService = service.NewNoteService(c.OrderRepo, c.NoteRepo)
	c.DocumentService = service.NewDocumentService(c.Config, c.OrderRepo, c.DocumentRepo, c.NoteRepo)
	c.ReferenceService = service.NewReferenceService(c.ClientRepo, c.DriverRepo, c.TruckRepo, c.TransportCompanyRepo)
	c.PriceService = service.NewRegulatoryPriceService(c.RegulatoryPriceRepo)
	c.AnalyticsService = service.NewAnalyticsService(c.OrderRepo, c.UserRepo)
}
