package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	config "github.com/campusworks/unihire/configs"
	"github.com/campusworks/unihire/database"
	"github.com/campusworks/unihire/handlers"
	"github.com/campusworks/unihire/jobs"
	"github.com/campusworks/unihire/notifications"
	"github.com/campusworks/unihire/payments"
	"github.com/campusworks/unihire/repository"
	"github.com/campusworks/unihire/routes"
	"github.com/campusworks/unihire/services"
	"github.com/campusworks/unihire/websocket"
)

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	database.ConnectDB(cfg)
	database.Migrate()
	database.SeedAdmin(cfg)

	store := repository.NewStore(database.DB)
	hub := websocket.NewHub()
	notifier := notifications.NewNotifier(store, hub)
	gateway := payments.NewSimulatedGateway()

	handlers.Init(handlers.Deps{
		Store:     store,
		Hires:     services.NewHireService(store, notifier),
		Contracts: services.NewContractService(store, notifier, gateway),
		Orders:    services.NewOrderService(store, notifier, gateway),
		Reviews:   services.NewReviewService(store, notifier),
		Chats:     services.NewChatService(store),
		Notifier:  notifier,
		Hub:       hub,
	})

	c := cron.New()
	reminders := jobs.NewReminders(store, notifier)
	c.AddFunc("0 * * * *", reminders.Run)
	c.Start()

	app := fiber.New(fiber.Config{
		AppName:       "UniHire",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("request failed")
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.AuthRoutes(app)
	routes.ServiceRoutes(app)
	routes.HireRoutes(app)
	routes.ContractRoutes(app)
	routes.OrderRoutes(app)
	routes.ChatRoutes(app)
	routes.AccountRoutes(app)
	routes.AdminRoutes(app)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("server starting")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server failed to start")
	}
}
