package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learning-catalog/internal/pkg/utils"
	"github.com/learning-catalog/internal/usecase"
)

type ProfileHandler struct {
	profileUC *usecase.ProfileUseCase
}

func NewProfileHandler(profileUC *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{profileUC: profileUC}
}

// Get godoc
// @Summary Contributions of a user
// @Description Comments and annotations written by username
// @Tags Profiles
// @Produce json
// @Param username path string true "Author name"
// @Success 200 {object} utils.SuccessResponse{data=dto.ProfileResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/profiles/{username} [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	profile, err := h.profileUC.Get(c.Context(), c.Params("username"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, profile, nil)
}
