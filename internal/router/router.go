package router

import (
	"github.com/gin-gonic/gin"

	"gstsuite/internal/handler"
	"gstsuite/internal/middleware"
	"gstsuite/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	returnH *handler.ReturnHandler,
	reconH *handler.ReconciliationHandler,
	settingsH *handler.SettingsHandler,
	einvoiceH *handler.EInvoiceHandler,
	ewaybillH *handler.EWayBillHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// All engine routes require a suite-issued token with business context.
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(authSvc))

	returns := v1.Group("/returns")
	returns.POST("/gstr1/:period", returnH.GSTR1)
	returns.GET("/gstr1/:period", returnH.GSTR1)
	returns.POST("/gstr3b/:period", returnH.GSTR3B)
	returns.GET("/gstr3b/:period", returnH.GSTR3B)
	returns.POST("/gstr4/:period", returnH.GSTR4)
	returns.GET("/gstr4/:period", returnH.GSTR4)

	recon := v1.Group("/reconciliation")
	recon.POST("/:period/import", reconH.Import)
	recon.GET("/:period", reconH.Get)
	recon.POST("/records/:id/match", reconH.ManualMatch)

	v1.GET("/settings", settingsH.Get)
	v1.PUT("/settings", settingsH.Upsert)

	einvoice := v1.Group("/einvoice")
	einvoice.POST("/:invoiceId", einvoiceH.Generate)
	einvoice.POST("/:invoiceId/cancel", einvoiceH.Cancel)
	einvoice.GET("/:invoiceId", einvoiceH.GetStatus)

	ewaybill := v1.Group("/ewaybill")
	ewaybill.POST("/:invoiceId", ewaybillH.Generate)
	ewaybill.POST("/:invoiceId/cancel", ewaybillH.Cancel)
	ewaybill.PUT("/:invoiceId", ewaybillH.Update)
	ewaybill.GET("/:invoiceId", ewaybillH.GetStatus)

	return r
}
