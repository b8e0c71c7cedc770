package handler

import (
	"emploiplus/internal/delivery/http/dto"
	"emploiplus/internal/pkg/response"
	"emploiplus/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/users/:user_id")
	grp.Get("/jobs/:job_id/match", h.GetMatch)
	grp.Delete("/match-cache", h.ClearCache)
}

func (h *MatchHandler) GetMatch(c fiber.Ctx) error {
	res, err := h.uc.CalculateMatchScore(c.Context(), c.Params("user_id"), c.Params("job_id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *MatchHandler) ClearCache(c fiber.Ctx) error {
	n, err := h.uc.ClearMatchingCacheForUser(c.Context(), c.Params("user_id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ClearCacheResponse{Cleared: n})
}
