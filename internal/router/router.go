// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"safe-radius/internal/cache"
	"safe-radius/internal/database"
	"safe-radius/internal/handler"
	"safe-radius/internal/handler/admin"
	"safe-radius/internal/handler/auth"
	"safe-radius/internal/handler/pois"
	"safe-radius/internal/middleware"
	"safe-radius/internal/service"
	"safe-radius/internal/worker"
)

// Setup registers every route and its access middleware.
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, cipher *service.Cipher, geo pois.Geocoder, wp worker.Pool) {
	api := e.Group("/api")

	api.GET("/ping", handler.PingHandler(db, rdb), middleware.RequireAuth)

	// Public registration and login
	api.POST("/auth/register", auth.RegisterHandler(db))
	api.POST("/auth/register-admin", auth.RegisterAdminHandler(db))
	api.POST("/auth/login", auth.LoginHandler(db))

	// POI management and search
	apiPOIs := api.Group("/pois")
	apiPOIs.POST("", pois.CreatePOIHandler(db, cipher, geo, rdb, wp), middleware.RequirePermission(service.OpSubmitPOI))
	apiPOIs.GET("/mine", pois.MyPOIsHandler(db), middleware.RequirePermission(service.OpViewOwnPOIs))
	apiPOIs.POST("/search", pois.SearchPOIsHandler(db, cipher), middleware.RequirePermission(service.OpSearchPOIs))

	// Admin surface
	apiAdmin := api.Group("/admin")
	apiAdmin.GET("/pois", admin.ListAllPOIsHandler(db), middleware.RequirePermission(service.OpViewAllPOIs))
	apiAdmin.DELETE("/pois/:id", admin.DeletePOIHandler(db, rdb, wp), middleware.RequirePermission(service.OpDeletePOI))
	apiAdmin.GET("/users", admin.ListUsersHandler(db), middleware.RequirePermission(service.OpListUsers))
	apiAdmin.PUT("/users/:id/role", admin.UpdateUserRoleHandler(db), middleware.RequirePermission(service.OpChangeUserRole))
	apiAdmin.GET("/stats", admin.StatsHandler(db, rdb), middleware.RequirePermission(service.OpViewStats))
}
