package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kontorhq/kontor-api/internal/config"
	"github.com/kontorhq/kontor-api/internal/presentation/http/handler"
	"github.com/kontorhq/kontor-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Report   *handler.ReportHandler
	Elster   *handler.ElsterHandler
	Export   *handler.ExportHandler
	Asset    *handler.AssetHandler
	Entry    *handler.EntryHandler
	Client   *handler.ClientHandler
	Settings *handler.SettingsHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		registerReportRoutes(v1, h)
		registerElsterRoutes(v1, h)
		registerExportRoutes(v1, h)
		registerAssetRoutes(v1, h)
		registerEntryRoutes(v1, h)
		registerClientRoutes(v1, h)

		v1.GET("/settings", h.Settings.GetSettings)
		v1.PUT("/settings", h.Settings.UpdateSettings)
	}

	return router
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/bwa/:year", h.Report.GetYearlyBWA)
		reports.GET("/bwa/:year/export", h.Report.ExportBWA)
		reports.GET("/bwa/:year/month/:month", h.Report.GetMonthlyBWA)
	}
}

func registerElsterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	elster := v1.Group("/elster")
	{
		elster.GET("/ustva", h.Elster.CalculateUstVa)
		elster.POST("/ustva/xml", h.Elster.GenerateUstVaXml)
		elster.GET("/zm", h.Elster.CalculateZm)
		elster.POST("/zm/xml", h.Elster.GenerateZmXml)

		elster.GET("/submissions", h.Elster.ListSubmissions)
		elster.GET("/submissions/:id", h.Elster.GetSubmission)
		elster.PATCH("/submissions/:id/status", h.Elster.UpdateSubmissionStatus)
	}
}

func registerExportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	exports := v1.Group("/exports")
	{
		exports.GET("/datev", h.Export.GenerateDatevExport)
		exports.GET("/datev/download", h.Export.DownloadDatevExport)
	}
}

func registerAssetRoutes(v1 *gin.RouterGroup, h *Handlers) {
	assets := v1.Group("/assets")
	{
		assets.POST("", h.Asset.CreateAsset)
		assets.GET("", h.Asset.ListAssets)
		assets.GET("/:id", h.Asset.GetAsset)
		assets.PUT("/:id", h.Asset.UpdateAsset)
		assets.DELETE("/:id", h.Asset.DeleteAsset)
	}
}

func registerEntryRoutes(v1 *gin.RouterGroup, h *Handlers) {
	entries := v1.Group("/entries")
	{
		entries.POST("/income", h.Entry.CreateIncome)
		entries.GET("/income", h.Entry.ListIncome)
		entries.GET("/income/:id", h.Entry.GetIncome)
		entries.POST("/expense", h.Entry.CreateExpense)
		entries.GET("/expense", h.Entry.ListExpenses)
		entries.GET("/expense/:id", h.Entry.GetExpense)

		entries.DELETE("/:type/:id", h.Entry.DeleteEntry)
		entries.POST("/:type/:id/restore", h.Entry.RestoreEntry)

		entries.GET("/:type/duplicates", h.Entry.FindDuplicates)
		entries.POST("/:type/:id/duplicate", h.Entry.MarkDuplicate)
		entries.DELETE("/:type/:id/duplicate", h.Entry.UnmarkDuplicate)
	}
}

func registerClientRoutes(v1 *gin.RouterGroup, h *Handlers) {
	clients := v1.Group("/clients")
	{
		clients.POST("", h.Client.CreateClient)
		clients.GET("", h.Client.ListClients)
		clients.GET("/:id", h.Client.GetClient)
		clients.PUT("/:id", h.Client.UpdateClient)
		clients.DELETE("/:id", h.Client.DeleteClient)
	}
}
