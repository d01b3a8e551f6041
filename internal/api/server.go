package api

import (
	"strings"
	"time"

	"github.com/fathima-sithara/social-service/internal/metrics"
	"github.com/fathima-sithara/social-service/internal/middleware"
	"github.com/fathima-sithara/social-service/internal/repository"
	"github.com/fathima-sithara/social-service/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type Deps struct {
	Messages *service.MessagingService
	Users    *service.UserService
	Posts    *service.PostService
	Health   repository.Pinger
	Metrics  *metrics.Metrics
	Log      *zap.Logger

	CORSOrigins string
	// RateLimit is optional; nil disables limiting.
	RateLimit fiber.Handler
}

func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "social-service",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: errorHandler(d.Log),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(d.Log, d.Metrics))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(d.CORSOrigins),
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type",
	}))

	sys := NewSystemHandler(d.Health, d.Log)
	app.Get("/", sys.Root)
	app.Get("/healthz", sys.Health)
	app.Get("/metrics", adaptor.HTTPHandler(d.Metrics.Handler()))

	Setup(app, d)
	return app
}

// Setup registers the resource routes.
func Setup(app *fiber.App, d Deps) {
	r := fiber.Router(app)
	if d.RateLimit != nil {
		r = app.Group("", d.RateLimit)
	}

	mh := NewMessageHandler(d.Messages)
	r.Post("/messages", mh.Send)
	r.Get("/messages", mh.List)

	uh := NewUserHandler(d.Users)
	r.Post("/users", uh.Register)
	r.Get("/users", uh.List)

	ph := NewPostHandler(d.Posts)
	r.Post("/posts", ph.Create)
	r.Get("/posts", ph.List)
	r.Delete("/posts/:id", ph.Delete)
}

func corsOrigins(s string) string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "*"
	}
	return strings.Join(out, ",")
}
