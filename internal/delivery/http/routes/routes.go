package routes

import (
	"emploiplus/internal/delivery/http/handler"
	"emploiplus/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health    *handler.HealthHandler
	JobNotify *handler.JobNotifyHandler
	Match     *handler.MatchHandler
	Roadmap   *handler.RoadmapHandler
	Skill     *handler.SkillHandler
	WS        *ws.Handler
}

type Registry struct {
	h Handlers
}

func NewRegistry(h Handlers) *Registry {
	return &Registry{h: h}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.h.Health != nil {
		r.h.Health.RegisterRoutes(app)
	}
	if r.h.WS != nil {
		app.Get("/ws/jobs", r.h.WS.HandleJobsWS)
	}
	r.registerAPI(app.Group("/api"))
}

func (r *Registry) registerAPI(api fiber.Router) {
	if r.h.JobNotify != nil {
		r.h.JobNotify.RegisterRoutes(api)
	}
	if r.h.Match != nil {
		r.h.Match.RegisterRoutes(api)
	}
	if r.h.Roadmap != nil {
		r.h.Roadmap.RegisterRoutes(api)
	}
	if r.h.Skill != nil {
		r.h.Skill.RegisterRoutes(api)
	}
}
