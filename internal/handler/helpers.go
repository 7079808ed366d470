package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/tradecore/tradecore/api/internal/pkg/errors"
	"github.com/tradecore/tradecore/api/internal/query"
	"github.com/tradecore/tradecore/api/internal/validator"
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// statusText maps a status code to its response error name.
func statusText(statusCode int) string {
	switch statusCode {
	case fiber.StatusBadRequest:
		return "Bad Request"
	case fiber.StatusUnauthorized:
		return "Unauthorized"
	case fiber.StatusForbidden:
		return "Forbidden"
	case fiber.StatusNotFound:
		return "Not Found"
	case fiber.StatusConflict:
		return "Conflict"
	case fiber.StatusTooManyRequests:
		return "Too Many Requests"
	case fiber.StatusInternalServerError:
		return "Internal Server Error"
	}
	return "Error"
}

// errorResponse creates a standardized JSON error response.
func errorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorResponse{
		Error:   statusText(statusCode),
		Message: message,
	})
}

// respondError maps a service error onto an HTTP response. Query and body
// validation failures become 400 responses enumerating every invalid field;
// AppErrors carry their own status; anything else is a logged 500.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	if verrs, ok := query.AsValidationErrors(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Bad Request",
			Message: "invalid query",
			Details: verrs,
		})
	}

	if verrs, ok := err.(validator.ValidationErrors); ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Bad Request",
			Message: "invalid request body",
			Details: verrs,
		})
	}

	if appErr := apperrors.GetAppError(err); appErr != nil {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error:   statusText(appErr.StatusCode),
			Message: appErr.Message,
			Details: appErr.Details,
		})
	}

	logger.Error(fallback, zap.Error(err), zap.String("path", c.Path()))
	return errorResponse(c, fiber.StatusInternalServerError, fallback)
}

// queryParams collects the raw query string into url.Values, preserving
// repeated keys.
func queryParams(c *fiber.Ctx) url.Values {
	params := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		params.Add(string(key), string(value))
	})
	return params
}

// parseBody decodes and validates a JSON request body.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.BadRequest("invalid request body: " + err.Error())
	}
	return validator.Validate(dst)
}
