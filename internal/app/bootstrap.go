package app

import (
	"context"
	"fmt"
	"strings"

	"emploiplus/internal/config"
	"emploiplus/internal/delivery/http/handler"
	"emploiplus/internal/delivery/http/middleware"
	"emploiplus/internal/delivery/http/routes"
	"emploiplus/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func(ctx context.Context) error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger.Named("http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger.Named("http")).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	deps := map[string]handler.Pinger{"database": c.DB}
	if c.Redis.Available() {
		deps["redis"] = c.Redis
	}

	routes.NewRegistry(routes.Handlers{
		Health:    handler.NewHealthHandler(deps),
		JobNotify: handler.NewJobNotifyHandler(c.JobNotify, c.Config.Notify.WebhookSecret, c.Logger.Named("webhook")),
		Match:     handler.NewMatchHandler(c.Matching),
		Roadmap:   handler.NewRoadmapHandler(c.Roadmap),
		Skill:     handler.NewSkillHandler(c.Matching),
		WS:        ws.NewHandler(c.Hub, c.Logger.Named("ws")),
	}).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
