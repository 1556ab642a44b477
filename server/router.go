package server

import (
	"github.com/gin-gonic/gin"

	"partserver/database"
	"partserver/export"
	"partserver/providers"
	"partserver/server/handlers"
	"partserver/server/middleware"
)

// NewRouter собирает Gin роутер со всеми middleware и маршрутами API
func NewRouter(registry *providers.Registry, partsDB *database.PartsDB) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinLoggerMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinGzipMiddleware())

	providerHandler := handlers.NewProviderHandler(registry, partsDB)
	partsHandler := handlers.NewPartsHandler(partsDB, export.NewExporter(partsDB))

	api := router.Group("/api")
	{
		api.GET("/health", handleHealth)

		api.GET("/info-providers", providerHandler.HandleListProviders)
		api.GET("/info-providers/search", providerHandler.HandleSearch)
		api.GET("/info-providers/:key/parts/:id", providerHandler.HandleGetDetails)
		api.POST("/info-providers/:key/parts/:id/import", providerHandler.HandleImport)

		api.GET("/parts", partsHandler.HandleListParts)
		api.GET("/parts/search", partsHandler.HandleSearchParts)
		api.GET("/parts/stats", partsHandler.HandleGetStatistics)
		api.GET("/parts/export", partsHandler.HandleExportParts)
		api.GET("/parts/:id", partsHandler.HandleGetPart)
	}

	handlers.RegisterSwaggerRoutes(router)

	return router
}

// handleHealth проверка живости сервера
// @Summary Проверка живости
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{} "Статус сервера"
// @Router /api/health [get]
func handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
