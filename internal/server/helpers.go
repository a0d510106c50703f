package server

import (
	"errors"

	"devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint. A malformed
// id deliberately yields the same response as a missing record (notFound with
// the given status), so the two cases are indistinguishable on the wire.
// On failure it writes the response and returns errResponseWritten; callers
// should check: if err != nil { return nil }.
func parseID(c *fiber.Ctx, param string, status int, notFound *models.AppError) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, status, notFound)
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondAppError maps an AppError from a lower layer onto its HTTP status.
// notFoundStatus parameterizes the NOT_FOUND mapping: profile lookups report
// 400 while post/comment lookups report 404.
func respondAppError(c *fiber.Ctx, err error, notFoundStatus int) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return models.RespondWithError(c, notFoundStatus, appErr)
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		default:
			return models.RespondWithError(c, fiber.StatusInternalServerError, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}
