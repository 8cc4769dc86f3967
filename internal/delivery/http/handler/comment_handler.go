package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learning-catalog/internal/pkg/utils"
	"github.com/learning-catalog/internal/usecase"
	"github.com/learning-catalog/internal/usecase/dto"
	"go.uber.org/zap"
)

type CommentHandler struct {
	commentUC *usecase.CommentUseCase
	logger    *zap.Logger
}

func NewCommentHandler(commentUC *usecase.CommentUseCase, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		commentUC: commentUC,
		logger:    logger,
	}
}

// List godoc
// @Summary Comments of a resource
// @Tags Comments
// @Produce json
// @Param id path int true "Resource id"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.CommentResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/resources/{id}/comments [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	comments, err := h.commentUC.ListByResource(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, comments, &utils.Meta{Total: len(comments)})
}

// Add godoc
// @Summary Comment on a resource
// @Description Colour is 0 (green, OK), 1 (orange, mixed) or 2 (red, veto). Category is 0 to 3.
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path int true "Resource id"
// @Param request body dto.AddCommentRequest true "Comment"
// @Success 201 {object} utils.SuccessResponse{data=dto.CommentResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/resources/{id}/comments [post]
func (h *CommentHandler) Add(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.AddCommentRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.commentUC.Add(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, resp)
}
