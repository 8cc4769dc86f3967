package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learning-catalog/internal/pkg/utils"
	"github.com/learning-catalog/internal/usecase"
	"github.com/learning-catalog/internal/usecase/dto"
	"go.uber.org/zap"
)

type AnnotationHandler struct {
	annotationUC *usecase.AnnotationUseCase
	logger       *zap.Logger
}

func NewAnnotationHandler(annotationUC *usecase.AnnotationUseCase, logger *zap.Logger) *AnnotationHandler {
	return &AnnotationHandler{
		annotationUC: annotationUC,
		logger:       logger,
	}
}

// List godoc
// @Summary Annotations of a resource
// @Tags Annotations
// @Produce json
// @Param id path int true "Resource id"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Annotation}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/resources/{id}/annotations [get]
func (h *AnnotationHandler) List(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	annotations, err := h.annotationUC.ListByResource(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, annotations, &utils.Meta{Total: len(annotations)})
}

// Add godoc
// @Summary Annotate a resource
// @Description Content and range are validated by the forms of their registered types (note, link; whole, textspan, timespan)
// @Tags Annotations
// @Accept json
// @Produce json
// @Param id path int true "Resource id"
// @Param request body dto.AddAnnotationRequest true "Annotation"
// @Success 201 {object} utils.SuccessResponse{data=domain.Annotation}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/resources/{id}/annotations [post]
func (h *AnnotationHandler) Add(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.AddAnnotationRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	annotation, err := h.annotationUC.Add(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, annotation)
}

// Delete godoc
// @Summary Delete an annotation
// @Tags Annotations
// @Param id path int true "Annotation id"
// @Success 204 "No Content"
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/annotations/{id} [delete]
func (h *AnnotationHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := h.annotationUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
