// server.go
//
// Production scheduling and order file service for the metalworking shop floor
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of shopfloor.
// shopfloor is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// shopfloor is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with shopfloor.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package server assembles the HTTP application shared by the server, lambda and tests.
package server

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/localnerve/shopfloor/internal/config"
	"github.com/localnerve/shopfloor/internal/handlers"
	"github.com/localnerve/shopfloor/internal/middleware"
	"github.com/localnerve/shopfloor/internal/storage"
	"github.com/localnerve/shopfloor/internal/utils"
	"gorm.io/gorm"

	_ "github.com/localnerve/shopfloor/docs/api" // Swagger docs
)

// Options tune New for the different entry points
type Options struct {
	// Metrics registers the prometheus middleware and /metrics
	Metrics bool
	// AccessLog enables the request logger
	AccessLog bool
}

// New builds the fiber app with all routes
func New(cfg *config.Config, db *gorm.DB, store storage.Store, opts Options) *fiber.App {
	bodyLimit := cfg.MaxBodyBytes
	if bodyLimit <= 0 {
		bodyLimit = fiber.DefaultBodyLimit
	}

	app := fiber.New(fiber.Config{
		AppName:               "shopfloor",
		ErrorHandler:          utils.NewErrorHandler(cfg.ExposeErrorDetails),
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} [${locals:requestid}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(compress.New())

	if opts.Metrics {
		prometheus := fiberprometheus.New("shopfloor")
		prometheus.RegisterAt(app, "/metrics")
		app.Use(prometheus.Middleware)
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", healthHandler(cfg, db, store))

	api := app.Group("/api")

	production := &handlers.ProductionHandler{DB: db}
	api.All("/production",
		middleware.CORS(fiber.MethodGet, fiber.MethodPost, fiber.MethodPut),
		production.Handle,
	)

	dashboardAuth := middleware.RequireTokenPresence()
	if cfg.DashboardVerifyToken {
		dashboardAuth = middleware.RequireToken(cfg.JWTSecret)
	}
	dashboard := &handlers.DashboardHandler{DB: db, Aggregate: cfg.DashboardAggregate}
	api.All("/dashboard",
		middleware.CORS(fiber.MethodGet),
		dashboardAuth,
		dashboard.Handle,
	)

	files := &handlers.FilesHandler{DB: db, Store: store}
	api.All("/files",
		middleware.CORS(fiber.MethodGet, fiber.MethodPost, fiber.MethodDelete),
		middleware.RequireToken(cfg.JWTSecret),
		files.Handle,
	)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "Not found")
	})

	return app
}
