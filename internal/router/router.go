package router

import (
	"github.com/gin-gonic/gin"

	"brickledger/internal/handler"
	"brickledger/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	invoiceH *handler.InvoiceHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Invoice register
	invoices := v1.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/:number", invoiceH.GetByNumber)
	invoices.PUT("/:number", invoiceH.Update)
	invoices.DELETE("/:number", invoiceH.Delete)

	// Derived reports
	reports := v1.Group("/reports")
	reports.GET("/monthly-summary", reportH.MonthlySummary)
	reports.GET("/gst", reportH.GSTReport)

	// Snapshot export and backup
	v1.GET("/export", reportH.Export)
	v1.POST("/backup", reportH.Backup)

	return r
}
