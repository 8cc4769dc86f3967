package handler

import (
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/learning-catalog/internal/pkg/errors"
	"github.com/learning-catalog/internal/pkg/validator"
)

// paramID reads a positive integer path parameter
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.FieldError(errors.ErrInvalidRequest, name, "Invalid identifier")
	}
	return id, nil
}

// parseBody decodes and validates a JSON request body into req
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errors.ErrInvalidRequest.WithMessage("Invalid request body")
	}
	return validate(req)
}

// validate maps validator failures onto a field-scoped request error. The
// first failing field (by name) is reported; all of them are in details.
func validate(req interface{}) error {
	err := validator.Validate(req)
	if err == nil {
		return nil
	}
	fields := validator.FieldErrors(err)
	if len(fields) == 0 {
		return errors.ErrInvalidRequest
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	appErr := errors.FieldError(errors.ErrInvalidRequest, names[0], fields[names[0]])
	appErr.Details["fields"] = fields
	return appErr
}
