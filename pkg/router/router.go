// Package router sets up the HTTP interface the user interface calls
// commands through.
package router

import (
	"io"
	"net/http"

	docs "github.com/budgetbook/backend/api"
	"github.com/budgetbook/backend/pkg/commands"
	"github.com/budgetbook/backend/pkg/database"
	"github.com/budgetbook/backend/pkg/httperrors"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Options configure the router.
type Options struct {
	CORSAllowOrigins []string
	EnablePprof      bool
}

// Config returns a gin engine with all middlewares, but without routes.
func Config(options Options) *gin.Engine {
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		httperrors.New(c, http.StatusMethodNotAllowed, "This HTTP method is not allowed for the endpoint you called")
	})
	r.NoRoute(func(c *gin.Context) {
		httperrors.New(c, http.StatusNotFound, "There is no endpoint at this path")
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	if len(options.CORSAllowOrigins) > 0 {
		log.Debug().Strs("CORS Allowed Origins", options.CORSAllowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     options.CORSAllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// The backend only listens locally, no proxy to trust
	_ = r.SetTrustedProxies([]string{})

	log.Info().Str("version", version).Msg("Router")

	docs.SwaggerInfo.Title = "Budget Book"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The backend for Budget Book, a monthly budget planner with per-category ledgers, templates and a change history."

	return r
}

// AttachRoutes attaches all routes to the router group.
func AttachRoutes(group *gin.RouterGroup, registry *commands.Registry, db *gorm.DB, options Options) error {
	metrics := prometheus.NewRegistry()
	metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := registerMetrics(metrics, registry.Collectors()...); err != nil {
		return err
	}

	group.GET("/healthz", getHealthz(db))
	group.GET("/version", GetVersion)
	group.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics, promhttp.HandlerOpts{})))
	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if options.EnablePprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	v1 := group.Group("/v1")
	v1.GET("/commands", listCommands(registry))
	v1.POST("/commands/:name", invokeCommand(registry))

	return nil
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Produce		json
// @Success		204
// @Failure		500	{object}	httperrors.HTTPError
// @Router			/healthz [get]
func getHealthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := database.Ping(c.Request.Context(), db); err != nil {
			httperrors.Handler(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// GetVersion returns the API version object
//
//	@Summary		API version
//	@Description	Returns the software version of the API
//	@Tags			General
//	@Success		200	{object}	VersionResponse
//	@Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

type CommandListResponse struct {
	Data []string `json:"data" example:"add_budget_category,add_category_entry"`
}

// @Summary		List commands
// @Description	Returns the names of all commands
// @Tags			Commands
// @Success		200	{object}	CommandListResponse
// @Router			/v1/commands [get]
func listCommands(registry *commands.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, CommandListResponse{Data: registry.Names()})
	}
}

type CommandResponse struct {
	Data any `json:"data"` // Result of the command, null for commands without result
}

// @Summary		Invoke command
// @Description	Runs a command. The body is the JSON payload of the command.
// @Tags			Commands
// @Accept			json
// @Produce		json
// @Param			name	path		string	true	"Name of the command"
// @Success		200		{object}	CommandResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		404		{object}	httperrors.HTTPError
// @Failure		409		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Router			/v1/commands/{name} [post]
func invokeCommand(registry *commands.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			httperrors.New(c, http.StatusBadRequest, "The request body could not be read")
			return
		}

		result, err := registry.Invoke(c.Request.Context(), c.Param("name"), payload)
		if err != nil {
			httperrors.Handler(c, err)
			return
		}

		c.JSON(http.StatusOK, CommandResponse{Data: result})
	}
}
