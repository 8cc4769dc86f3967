package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learning-catalog/internal/delivery/http/middleware"
	"github.com/learning-catalog/internal/pkg/utils"
	"github.com/learning-catalog/internal/usecase"
	"github.com/learning-catalog/internal/usecase/dto"
	"go.uber.org/zap"
)

// VersionHandler exposes resource history and moderation
type VersionHandler struct {
	versionUC  *usecase.VersionUseCase
	resourceUC *usecase.ResourceUseCase
	logger     *zap.Logger
}

func NewVersionHandler(versionUC *usecase.VersionUseCase, resourceUC *usecase.ResourceUseCase, logger *zap.Logger) *VersionHandler {
	return &VersionHandler{
		versionUC:  versionUC,
		resourceUC: resourceUC,
		logger:     logger,
	}
}

// List godoc
// @Summary History of a resource
// @Description Versions are written asynchronously by the worker, newest first
// @Tags Versions
// @Produce json
// @Param id path int true "Resource id"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.ResourceVersion}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/resources/{id}/versions [get]
func (h *VersionHandler) List(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	versions, err := h.versionUC.List(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, versions, &utils.Meta{Total: len(versions)})
}

// Get godoc
// @Summary One version of a resource
// @Tags Versions
// @Produce json
// @Param id path int true "Resource id"
// @Param versionId path int true "Version id"
// @Success 200 {object} utils.SuccessResponse{data=domain.ResourceVersion}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/resources/{id}/versions/{versionId} [get]
func (h *VersionHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}
	versionID, err := paramID(c, "versionId")
	if err != nil {
		return utils.SendError(c, err)
	}

	version, err := h.versionUC.Get(c.Context(), id, versionID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, version, nil)
}

// Revert godoc
// @Summary Revert a resource to a version
// @Description Restores name, description, visibility, avatar and details, then saves through the usual validation
// @Tags Versions
// @Accept json
// @Produce json
// @Param id path int true "Resource id"
// @Param versionId path int true "Version id"
// @Param request body dto.RevertRequest false "Moderator"
// @Success 200 {object} utils.SuccessResponse{data=dto.ResourceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/resources/{id}/versions/{versionId}/revert [post]
func (h *VersionHandler) Revert(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}
	versionID, err := paramID(c, "versionId")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.RevertRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return utils.SendError(c, err)
		}
	}

	resp, err := h.resourceUC.Revert(c.Context(), id, versionID, req.Author, middleware.GetLocale(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}
