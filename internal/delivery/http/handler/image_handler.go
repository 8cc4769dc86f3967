package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learning-catalog/internal/pkg/utils"
	"github.com/learning-catalog/internal/usecase"
	"github.com/learning-catalog/internal/usecase/dto"
	"go.uber.org/zap"
)

type ImageHandler struct {
	imageUC *usecase.ImageUseCase
	logger  *zap.Logger
}

func NewImageHandler(imageUC *usecase.ImageUseCase, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{
		imageUC: imageUC,
		logger:  logger,
	}
}

// Register godoc
// @Summary Register an avatar image
// @Tags Images
// @Accept json
// @Produce json
// @Param request body dto.RegisterImageRequest true "Image"
// @Success 201 {object} utils.SuccessResponse{data=domain.Image}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/images [post]
func (h *ImageHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterImageRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	img, err := h.imageUC.Register(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, img)
}

// Get godoc
// @Summary Get an image
// @Tags Images
// @Produce json
// @Param id path int true "Image id"
// @Success 200 {object} utils.SuccessResponse{data=domain.Image}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/images/{id} [get]
func (h *ImageHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	img, err := h.imageUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, img, nil)
}
