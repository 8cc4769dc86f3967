package errors

import "net/http"

var (
	ErrResourceNotFound = New(
		"RESOURCE_NOT_FOUND",
		"Resource not found",
		http.StatusNotFound,
	)

	ErrUnknownResourceType = New(
		"UNKNOWN_RESOURCE_TYPE",
		"Unknown resource type",
		http.StatusBadRequest,
	)

	ErrDuplicateSlug = New(
		"DUPLICATE_SLUG",
		"An entry of the same type with the same slug already exists in this way",
		http.StatusConflict,
	)

	ErrDuplicateName = New(
		"DUPLICATE_NAME",
		"An entry of the same type with the same name already exists in this way",
		http.StatusConflict,
	)

	ErrInvalidParent = New(
		"INVALID_PARENT",
		"Parent must be an existing way",
		http.StatusBadRequest,
	)

	ErrInvalidForm = New(
		"INVALID_FORM",
		"Invalid form content",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrLocationNotFound = New(
		"LOCATION_NOT_FOUND",
		"Location not found",
		http.StatusNotFound,
	)

	ErrCommentInvalid = New(
		"INVALID_COMMENT",
		"Invalid comment",
		http.StatusBadRequest,
	)

	ErrAnnotationNotFound = New(
		"ANNOTATION_NOT_FOUND",
		"Annotation not found",
		http.StatusNotFound,
	)

	ErrVersionNotFound = New(
		"VERSION_NOT_FOUND",
		"Version not found",
		http.StatusNotFound,
	)

	ErrImageNotFound = New(
		"IMAGE_NOT_FOUND",
		"Image not found",
		http.StatusNotFound,
	)

	ErrSearchEngineNotFound = New(
		"SEARCH_ENGINE_NOT_FOUND",
		"No external search engine for this resource type",
		http.StatusNotFound,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

// FieldError builds a field-scoped copy of a validation sentinel.
func FieldError(base *AppError, field, message string) *AppError {
	e := base.WithDetails(map[string]interface{}{"field": field})
	if message != "" {
		e.Message = message
	}
	return e
}
