package handler

import (
	"emploiplus/internal/pkg/response"
	"emploiplus/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RoadmapHandler struct {
	uc usecase.RoadmapUsecase
}

func NewRoadmapHandler(uc usecase.RoadmapUsecase) *RoadmapHandler {
	return &RoadmapHandler{uc: uc}
}

func (h *RoadmapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/users/:user_id/roadmap/:job_id", h.GetRoadmap)
}

func (h *RoadmapHandler) GetRoadmap(c fiber.Ctx) error {
	res, err := h.uc.GenerateCareerRoadmap(c.Context(), c.Params("user_id"), c.Params("job_id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
