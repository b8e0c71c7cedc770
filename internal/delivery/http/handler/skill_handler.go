package handler

import (
	"emploiplus/internal/delivery/http/dto"
	"emploiplus/internal/delivery/http/middleware"
	"emploiplus/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type skillExtractor interface {
	ExtractSkills(text string) []string
}

type SkillHandler struct {
	extractor skillExtractor
}

func NewSkillHandler(extractor skillExtractor) *SkillHandler {
	return &SkillHandler{extractor: extractor}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/skills/extract", h.Extract)
}

func (h *SkillHandler) Extract(c fiber.Ctx) error {
	var req dto.ExtractSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ExtractSkillsResponse{
		Skills: h.extractor.ExtractSkills(req.Text),
	})
}
