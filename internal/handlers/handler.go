package handlers

import (
	"html/template"

	"campervan_catalog/internal/logger"
	"campervan_catalog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services  *service.Service
	log       *logger.Logger
	templates *template.Template
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log, templates: parseTemplates()}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(h.templates)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Page and mock provider
	router.GET("/", h.index)
	router.GET("/api/data", h.apiData)

	// Session API, keyed by the token embedded into the page
	h.registerSessionRoutes(router)

	// View stream for the same session
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerSessionRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.sessionMiddleware)
	{
		sess := api.Group("/session")
		sess.GET("", h.getSession)
		sess.POST("/load", h.loadMore)
		// Body example: {"minPrice":"1 500","maxPrice":4000,"vehicleTypes":{"Alcove":true}}
		sess.PUT("/filters", h.setFilters)
		sess.POST("/filters/vehicle-type", h.toggleVehicleType)
	}
}
