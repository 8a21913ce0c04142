// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "akademiku_backend/internals/middlewares/auth"
	"akademiku_backend/internals/middlewares"
	routeDetails "akademiku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	// Webhook Midtrans: tanpa JWT, rate limit longgar
	log.Println("[INFO] Setting up PUBLIC webhook group...")
	public := app.Group("/api", middlewares.WebhookRateLimiter())
	routeDetails.FinanceWebhookRoutes(public, db)

	// ===================== ADMIN (operator) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		authMiddleware.RequireOperator(),
	)
	routeDetails.AcademyAdminRoutes(admin, db)
	routeDetails.FinanceAdminRoutes(admin, db)

	// ===================== PORTAL (siswa) =====================
	log.Println("[INFO] Setting up PORTAL group (Auth)...")
	portal := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)
	routeDetails.AcademyPortalRoutes(portal, db)
}
