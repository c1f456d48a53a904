package handler

import (
	"pharmaops/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by every handler.
type RouteRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// Mount registers handlers behind JWT authentication.
func Mount(router *gin.Engine, secret []byte, handlers ...RouteRegistrar) {
	api := router.Group("")
	api.Use(middleware.Authenticate(secret))
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}
}
