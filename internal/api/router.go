package api

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"receipt-insights/docs"
	"receipt-insights/internal/api/handlers"
	"receipt-insights/pkg/config"
	"receipt-insights/pkg/middleware"
	"receipt-insights/web"
)

// multipartOverhead leaves room for form boundaries so oversize files reach
// the validator instead of being cut off by the transport.
const multipartOverhead = 1 << 20

type Handlers struct {
	Upload    *handlers.UploadHandler
	Receipts  *handlers.ReceiptHandler
	Analytics *handlers.AnalyticsHandler
}

func SetupRouter(h Handlers, cfg *config.Config, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "receipt-insights",
		BodyLimit:    int(cfg.Storage.MaxUploadSize) + multipartOverhead,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID",
	}))
	app.Use(middleware.RequestLogger(appLogger))

	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// dashboard
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(web.Static),
		PathPrefix: "static",
	}))
	app.Get("/", func(c *fiber.Ctx) error {
		return filesystem.SendFile(c, http.FS(web.Static), "static/index.html")
	})

	appLogger.Info("Serving uploads", zap.String("path", cfg.Storage.UploadDir))
	app.Static("/uploads", cfg.Storage.UploadDir)

	v1 := app.Group("/api/v1")

	receipts := v1.Group("/receipts")
	receipts.Post("/upload", h.Upload.UploadReceipt)
	receipts.Get("", h.Receipts.ListReceipts)
	receipts.Get("/search", h.Receipts.SearchReceipts)
	receipts.Get("/sorted", h.Receipts.SortedReceipts)

	analytics := v1.Group("/analytics")
	analytics.Get("/summary", h.Analytics.Summary)
	analytics.Get("/vendors", h.Analytics.Vendors)
	analytics.Get("/monthly", h.Analytics.Monthly)

	return app
}
