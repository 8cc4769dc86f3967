package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/pkg/utils"
	"github.com/learning-catalog/internal/usecase"
	"github.com/learning-catalog/internal/usecase/dto"
	"go.uber.org/zap"
)

type GeoLocationHandler struct {
	geoUC  *usecase.GeoLocationUseCase
	logger *zap.Logger
}

func NewGeoLocationHandler(geoUC *usecase.GeoLocationUseCase, logger *zap.Logger) *GeoLocationHandler {
	return &GeoLocationHandler{
		geoUC:  geoUC,
		logger: logger,
	}
}

// Create godoc
// @Summary Geocode and store an address
// @Description When the provider cannot resolve the address it is stored at (0,0) and the call still succeeds
// @Tags GeoLocations
// @Accept json
// @Produce json
// @Param request body dto.SaveGeoLocationRequest true "Address"
// @Success 201 {object} utils.SuccessResponse{data=dto.GeoLocationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/geolocations [post]
func (h *GeoLocationHandler) Create(c *fiber.Ctx) error {
	var req dto.SaveGeoLocationRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	g, err := h.geoUC.Create(c.Context(), req.Address)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, geoLocationResponse(g))
}

// Get godoc
// @Summary Get a stored location
// @Tags GeoLocations
// @Produce json
// @Param id path int true "GeoLocation id"
// @Success 200 {object} utils.SuccessResponse{data=dto.GeoLocationResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/geolocations/{id} [get]
func (h *GeoLocationHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	g, err := h.geoUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, geoLocationResponse(g), nil)
}

// FromSlug godoc
// @Summary Location from a coordinate slug
// @Description Builds an unsaved location from "lat,lon" and looks up its address
// @Tags GeoLocations
// @Produce json
// @Param slug path string true "Coordinates as lat,lon"
// @Success 200 {object} utils.SuccessResponse{data=dto.GeoLocationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geolocations/from-slug/{slug} [get]
func (h *GeoLocationHandler) FromSlug(c *fiber.Ctx) error {
	g, err := h.geoUC.FromSlug(c.Context(), c.Params("slug"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, geoLocationResponse(g), nil)
}

func geoLocationResponse(g *domain.GeoLocation) dto.GeoLocationResponse {
	return dto.GeoLocationResponse{GeoLocation: g, Slug: g.Slug()}
}
