package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learning-catalog/internal/pkg/utils"
	"github.com/learning-catalog/internal/usecase"
	"github.com/learning-catalog/internal/usecase/dto"
	"go.uber.org/zap"
)

// CatalogHandler serves the browsing entry points of the catalog
type CatalogHandler struct {
	resourceUC *usecase.ResourceUseCase
	registryUC *usecase.RegistryUseCase
	logger     *zap.Logger
}

func NewCatalogHandler(resourceUC *usecase.ResourceUseCase, registryUC *usecase.RegistryUseCase, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		resourceUC: resourceUC,
		registryUC: registryUC,
		logger:     logger,
	}
}

// Home godoc
// @Summary Catalog home
// @Description Lists the public root ways and the registered resource kinds
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.HomeResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/ [get]
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	ways, err := h.resourceUC.Home(c.Context(), h.registryUC.ContainerTypes())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.HomeResponse{
		Ways:  ways,
		Kinds: h.registryUC.Kinds(),
	}, nil)
}

// Kinds godoc
// @Summary Resource kinds
// @Description Lists every registered resource kind with its detail fields and capabilities
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.KindResponse}
// @Router /api/v1/kinds [get]
func (h *CatalogHandler) Kinds(c *fiber.Ctx) error {
	kinds := h.registryUC.Kinds()
	return utils.SendSuccess(c, kinds, &utils.Meta{Total: len(kinds)})
}

// SearchEngines godoc
// @Summary External search engines
// @Description Lists the external search engines declared by resource kinds
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.SearchEngine}
// @Router /api/v1/search-engines [get]
func (h *CatalogHandler) SearchEngines(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.registryUC.SearchEngines(), nil)
}

// SearchURL godoc
// @Summary External search link
// @Description Builds the search URL of the engine declared by a resource kind
// @Tags Catalog
// @Produce json
// @Param type path string true "Resource kind"
// @Param q query string true "Search terms"
// @Success 200 {object} utils.SuccessResponse{data=dto.SearchURLResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/search-engines/{type} [get]
func (h *CatalogHandler) SearchURL(c *fiber.Ctx) error {
	resp, err := h.registryUC.SearchURL(c.Params("type"), c.Query("q"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// Resolve godoc
// @Summary Resolve a catalog path
// @Description Finds the resource addressed by a path of type/slug pairs starting at a root way
// @Tags Catalog
// @Produce json
// @Param path path string true "Path such as way/jardinage/meeting/atelier"
// @Success 200 {object} utils.SuccessResponse{data=dto.ResourceResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/catalog/{path} [get]
func (h *CatalogHandler) Resolve(c *fiber.Ctx) error {
	resp, err := h.resourceUC.ResolvePath(c.Context(), c.Params("*"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}
