package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/learning-catalog/internal/delivery/http/middleware"
	"github.com/learning-catalog/internal/pkg/utils"
	"github.com/learning-catalog/internal/usecase"
	"github.com/learning-catalog/internal/usecase/dto"
	"go.uber.org/zap"
)

const defaultSearchLimit = 20

// ResourceHandler exposes catalog resources
type ResourceHandler struct {
	resourceUC *usecase.ResourceUseCase
	logger     *zap.Logger
}

func NewResourceHandler(resourceUC *usecase.ResourceUseCase, logger *zap.Logger) *ResourceHandler {
	return &ResourceHandler{
		resourceUC: resourceUC,
		logger:     logger,
	}
}

// List godoc
// @Summary Search resources
// @Description Searches public resources by name and description, optionally restricted to kinds or a parent way
// @Tags Resources
// @Produce json
// @Param q query string false "Search terms"
// @Param type query string false "Comma separated resource kinds"
// @Param parent query int false "Parent way id"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} utils.SuccessResponse{data=domain.SearchPage}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/resources [get]
func (h *ResourceHandler) List(c *fiber.Ctx) error {
	req := dto.SearchResourcesRequest{
		Query:  c.Query("q"),
		Limit:  c.QueryInt("limit", defaultSearchLimit),
		Offset: c.QueryInt("offset", 0),
	}
	for _, t := range strings.Split(c.Query("type"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			req.Types = append(req.Types, t)
		}
	}
	if parent := c.QueryInt("parent", 0); parent != 0 {
		id := int64(parent)
		req.ParentID = &id
	}

	if err := validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	page, err := h.resourceUC.Search(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, page, &utils.Meta{
		Total: page.Total,
		Limit: page.Limit,
	})
}

// Create godoc
// @Summary Create a resource
// @Description Validates the kind-specific details, derives the slug and stores the resource. Languages default to the session locale.
// @Tags Resources
// @Accept json
// @Produce json
// @Param request body dto.SaveResourceRequest true "Resource"
// @Success 201 {object} utils.SuccessResponse{data=dto.ResourceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/resources [post]
func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	var req dto.SaveResourceRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.resourceUC.Create(c.Context(), req, middleware.GetLocale(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, resp)
}

// Get godoc
// @Summary Get a resource
// @Tags Resources
// @Produce json
// @Param id path int true "Resource id"
// @Success 200 {object} utils.SuccessResponse{data=dto.ResourceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/resources/{id} [get]
func (h *ResourceHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.resourceUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// Update godoc
// @Summary Update a resource
// @Description Runs the full save sequence again. The kind cannot change; an empty slug keeps the current one.
// @Tags Resources
// @Accept json
// @Produce json
// @Param id path int true "Resource id"
// @Param request body dto.SaveResourceRequest true "Resource"
// @Success 200 {object} utils.SuccessResponse{data=dto.ResourceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/resources/{id} [put]
func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.SaveResourceRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.resourceUC.Update(c.Context(), id, req, middleware.GetLocale(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// Delete godoc
// @Summary Delete a resource
// @Description Resources filed under it are detached
// @Tags Resources
// @Param id path int true "Resource id"
// @Success 204 "No Content"
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/resources/{id} [delete]
func (h *ResourceHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := h.resourceUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// URL godoc
// @Summary Canonical URL of a resource
// @Description Resources not filed under a way have no URL and answer 404
// @Tags Resources
// @Produce json
// @Param id path int true "Resource id"
// @Success 200 {object} utils.SuccessResponse{data=dto.URLResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/resources/{id}/url [get]
func (h *ResourceHandler) URL(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	url, err := h.resourceUC.AbsoluteURL(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.URLResponse{ID: id, URL: url}, nil)
}

// Preview godoc
// @Summary Resource preview
// @Tags Resources
// @Produce json
// @Param id path int true "Resource id"
// @Success 200 {object} utils.SuccessResponse{data=domain.Preview}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/resources/{id}/preview [get]
func (h *ResourceHandler) Preview(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	preview, err := h.resourceUC.Preview(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, preview, nil)
}

// Children godoc
// @Summary Resources filed under a way
// @Tags Resources
// @Produce json
// @Param id path int true "Way id"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Preview}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/resources/{id}/children [get]
func (h *ResourceHandler) Children(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	children, err := h.resourceUC.Children(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, children, &utils.Meta{Total: len(children)})
}

// SetSeeAlso godoc
// @Summary Replace see-also links
// @Tags Resources
// @Accept json
// @Param id path int true "Resource id"
// @Param request body dto.SeeAlsoRequest true "Related resource ids"
// @Success 204 "No Content"
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/resources/{id}/see-also [put]
func (h *ResourceHandler) SetSeeAlso(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.SeeAlsoRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.resourceUC.SetSeeAlso(c.Context(), id, req.ResourceIDs); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
