package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/learning-catalog/internal/delivery/http/middleware"
	"github.com/learning-catalog/internal/pkg/errors"
	"github.com/learning-catalog/internal/pkg/utils"
	"github.com/learning-catalog/internal/usecase/dto"
)

const localeCookieAge = 365 * 24 * time.Hour

// I18nHandler switches the session locale
type I18nHandler struct {
	cookieName string
	matcher    *middleware.LocaleMatcher
}

func NewI18nHandler(cookieName string, matcher *middleware.LocaleMatcher) *I18nHandler {
	return &I18nHandler{cookieName: cookieName, matcher: matcher}
}

// SetLanguage godoc
// @Summary Switch the session language
// @Description Stores the language in the locale cookie. It becomes the default language of resources created afterwards.
// @Tags I18n
// @Accept json
// @Produce json
// @Param request body dto.SetLanguageRequest true "Language code"
// @Success 200 {object} utils.SuccessResponse{data=map[string]string}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/i18n/setlang [post]
func (h *I18nHandler) SetLanguage(c *fiber.Ctx) error {
	var req dto.SetLanguageRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	code, ok := h.matcher.Match(req.Language)
	if !ok {
		return utils.SendError(c, errors.FieldError(errors.ErrInvalidRequest, "language", "Unsupported language"))
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    code,
		Path:     "/",
		Expires:  time.Now().Add(localeCookieAge),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return utils.SendSuccess(c, fiber.Map{"language": code}, nil)
}
