package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workflow-config-api/internal/client"
	"workflow-config-api/internal/events"
	"workflow-config-api/internal/handler"
	"workflow-config-api/internal/metrics"
	"workflow-config-api/internal/middleware"
	"workflow-config-api/internal/repository"
	"workflow-config-api/internal/service"
)

// Config carries everything Setup needs to assemble the HTTP surface
type Config struct {
	DB           *gorm.DB
	Redis        *redis.Client
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
	JWTSecret    string
	BasePath     string
	EventChannel string
	S3Client     client.S3ClientInterface
}

// Setup wires repositories, services and handlers into a gin engine
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS())
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Repositories
	projectRepo := repository.NewProjectRepository(cfg.DB)
	issueTypeRepo := repository.NewIssueTypeRepository(cfg.DB)
	statusRepo := repository.NewIssueStatusRepository(cfg.DB)
	fieldRepo := repository.NewCustomFieldRepository(cfg.DB)
	bindingRepo := repository.NewBindingRepository(cfg.DB)
	workflowRepo := repository.NewWorkflowRepository(cfg.DB)
	workflowStatusRepo := repository.NewWorkflowStatusRepository(cfg.DB)

	// Event publisher (nil Redis client makes it a no-op)
	publisher := events.NewRedisPublisher(cfg.Redis, cfg.EventChannel, cfg.Logger)

	// Services
	issueTypeService := service.NewIssueTypeService(issueTypeRepo, projectRepo, publisher)
	statusService := service.NewIssueStatusService(statusRepo, publisher)
	fieldService := service.NewCustomFieldService(fieldRepo, projectRepo, publisher, cfg.Metrics)
	bindingService := service.NewFieldBindingService(bindingRepo, issueTypeRepo, fieldRepo, publisher, cfg.Metrics)
	workflowService := service.NewWorkflowService(workflowRepo, statusRepo, issueTypeRepo, publisher, cfg.Metrics)
	statusOrderService := service.NewStatusOrderService(workflowRepo, workflowStatusRepo, publisher)
	snapshotService := service.NewSnapshotService(
		issueTypeRepo, statusRepo, fieldRepo, bindingRepo, workflowRepo, workflowStatusRepo,
		cfg.S3Client, cfg.Metrics, cfg.Logger,
	)

	// Handlers
	issueTypeHandler := handler.NewIssueTypeHandler(issueTypeService)
	statusHandler := handler.NewIssueStatusHandler(statusService)
	fieldHandler := handler.NewCustomFieldHandler(fieldService)
	bindingHandler := handler.NewBindingHandler(bindingService)
	workflowHandler := handler.NewWorkflowHandler(workflowService, statusOrderService)
	snapshotHandler := handler.NewSnapshotHandler(snapshotService)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)

	// Operational endpoints (no auth)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	validator := middleware.NewJWTValidator(cfg.JWTSecret)

	api := r.Group(cfg.BasePath)
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)

		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(validator))
		{
			// Issue types and their field bindings
			authenticated.GET("/issue-types", issueTypeHandler.GetIssueTypes)
			authenticated.POST("/issue-types", issueTypeHandler.CreateIssueType)
			authenticated.GET("/issue-types/:issueTypeId", issueTypeHandler.GetIssueType)
			authenticated.PUT("/issue-types/:issueTypeId", issueTypeHandler.UpdateIssueType)
			authenticated.DELETE("/issue-types/:issueTypeId", issueTypeHandler.DeleteIssueType)
			authenticated.GET("/issue-types/:issueTypeId/custom-fields", bindingHandler.GetBindings)
			authenticated.POST("/issue-types/:issueTypeId/custom-fields", bindingHandler.ReplaceBindings)
			authenticated.GET("/issue-types/:issueTypeId/custom-fields/unbound", bindingHandler.GetUnboundFields)

			// Issue statuses
			authenticated.GET("/issue-statuses", statusHandler.GetIssueStatuses)
			authenticated.POST("/issue-statuses", statusHandler.CreateIssueStatus)
			authenticated.GET("/issue-statuses/:statusId", statusHandler.GetIssueStatus)
			authenticated.PUT("/issue-statuses/:statusId", statusHandler.UpdateIssueStatus)
			authenticated.DELETE("/issue-statuses/:statusId", statusHandler.DeleteIssueStatus)

			// Custom field definitions
			authenticated.GET("/custom-fields", fieldHandler.GetCustomFields)
			authenticated.POST("/custom-fields", fieldHandler.CreateCustomField)
			authenticated.GET("/custom-fields/:fieldId", fieldHandler.GetCustomField)
			authenticated.PUT("/custom-fields/:fieldId", fieldHandler.UpdateCustomField)
			authenticated.DELETE("/custom-fields/:fieldId", fieldHandler.DeleteCustomField)

			// Workflow transition edges (static route before dynamic)
			authenticated.GET("/workflows/by-issue-type/:issueTypeId", workflowHandler.GetGraphByIssueType)
			authenticated.GET("/workflows", workflowHandler.GetTransitions)
			authenticated.POST("/workflows", workflowHandler.CreateTransition)
			authenticated.GET("/workflows/:workflowId", workflowHandler.GetTransition)
			authenticated.PUT("/workflows/:workflowId", workflowHandler.UpdateTransition)
			authenticated.DELETE("/workflows/:workflowId", workflowHandler.DeleteTransition)
			authenticated.GET("/workflows/:workflowId/statuses", workflowHandler.GetOrderedStatuses)
			authenticated.PUT("/workflows/:workflowId/statuses/order", workflowHandler.SetStatusOrder)

			// Admin
			authenticated.POST("/admin/snapshots", snapshotHandler.ExportSnapshot)
		}
	}

	return r
}
