package middlewares

import (
	"github.com/gofiber/fiber/v2"

	mwlogger "akademiku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar dengan urutan: recover dulu,
// lalu CORS, rate limiter global, terakhir access log.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
	app.Use(mwlogger.LoggerMiddleware())
}
