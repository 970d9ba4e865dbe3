// Package main is the entry point for the orderhub-backend microservice: a
// payment-order approval workflow API with org-scoped access control,
// document-gated submission and an append-only audit ledger.
package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/orderhub/orderhub-backend/database"
	orderevents "github.com/orderhub/orderhub-backend/events/modules/orders"
	gqlschema "github.com/orderhub/orderhub-backend/graphql"
	"github.com/orderhub/orderhub-backend/internal/kafka"
	"github.com/orderhub/orderhub-backend/internal/profiles"
	"github.com/orderhub/orderhub-backend/internal/store"
	"github.com/orderhub/orderhub-backend/internal/workflow"
	"github.com/orderhub/orderhub-backend/restapi"
	"github.com/orderhub/orderhub-backend/restapi/modules/auth"
)

func notifier(log *zap.Logger) workflow.Notifier {
	cfg, err := orderevents.LoadNotifyConfig(os.Getenv("NOTIFY_CONFIG"))
	if err != nil {
		log.Warn("failed to load notify config, falling back to log notifier", zap.Error(err))
		return workflow.LogNotifier{Log: log}
	}

	brokers := cfg.Brokers
	if len(brokers) == 0 {
		if env := os.Getenv("KAFKA_BROKERS"); env != "" {
			brokers = strings.Split(env, ",")
		}
	}
	if len(brokers) == 0 {
		return workflow.LogNotifier{Log: log}
	}

	topic := cfg.Topic
	if topic == "" {
		topic = database.GetEnvDefault("KAFKA_ORDER_TOPIC", "order-events")
	}
	return orderevents.NewOrderProducer(brokers, topic)
}

func main() {
	log := database.Logger()

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		auth.SetJWTSecret(secret)
	}

	db := database.InitializeDatabase()
	st := store.NewArangoStore(db)

	orderSvc := workflow.NewService(
		st,
		workflow.AllowAllLimits{},
		workflow.LogObjectStorage{Log: log},
		notifier(log),
		log,
	)
	profileSvc := profiles.NewService(st, log)

	schema, err := gqlschema.CreateSchema(orderSvc)
	if err != nil {
		log.Sugar().Fatalf("Failed to create GraphQL schema: %v", err)
	}

	// Background consumer turning committed events into notifications.
	if os.Getenv("KAFKA_BROKERS") != "" {
		if err := kafka.RunEventProcessor(context.Background(), log); err != nil {
			log.Warn("event processor not started", zap.Error(err))
		}
	}

	app := fiber.New(fiber.Config{
		AppName:     "orderhub-backend API v1.0",
		BodyLimit:   10 * 1024 * 1024,
		ReadTimeout: time.Second * 60,
	})

	app.Use(fiberrecover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	restapi.RegisterRoutes(app, st, orderSvc, profileSvc, schema)

	port := database.GetEnvDefault("MS_PORT", "3000")

	log.Sugar().Infof("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Sugar().Fatalf("Failed to start server: %v", err)
	}
}
