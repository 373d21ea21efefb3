package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/maintenance-system/maintenance-service/api"
	"github.com/maintenance-system/maintenance-service/internal/auth"
	"github.com/maintenance-system/maintenance-service/internal/handler"
	"github.com/maintenance-system/maintenance-service/internal/middleware"
	"github.com/maintenance-system/maintenance-service/internal/model"
)

// New builds the gin router. Route shape mirrors the public contract:
// token endpoints are open, everything under /api/maintenance-requests
// requires auth, create is operator-only, start/finish maintenance-only.
func New(requests *handler.RequestHandler, tokens *handler.TokenHandler, manager *auth.Manager) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", handler.Health)
	r.GET("/ready", handler.Ready)
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/") })
	r.GET("/swagger/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = "/swagger/index.html"
			c.Request.RequestURI = "/swagger/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	r.POST("/api/token/", tokens.Obtain)
	r.POST("/api/token/refresh/", tokens.Refresh)

	authed := r.Group("/api/maintenance-requests", middleware.RequireAuth(manager))
	{
		authed.GET("/", requests.List)
		authed.POST("/", middleware.RequireRole(model.RoleOperator), requests.Create)
		authed.GET("/:id/", requests.Get)
		authed.POST("/:id/start/", middleware.RequireRole(model.RoleMaintenance), requests.Start)
		authed.POST("/:id/finish/", middleware.RequireRole(model.RoleMaintenance), requests.Finish)
	}

	return r
}
