package http

import (
	"prizeledger/internal/model"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func respondJSON(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func statusOf(class model.ErrorClass) int {
	switch class {
	case model.ClassNotFound:
		return fiber.StatusNotFound
	case model.ClassConflict:
		return fiber.StatusConflict
	case model.ClassInsufficient, model.ClassIntegrity:
		return fiber.StatusUnprocessableEntity
	case model.ClassUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusBadRequest
	}
}

// respondError maps domain rejections to their status and kind. Anything else
// is an internal failure and its text is not returned to the caller.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	e, ok := model.AsError(err)
	if !ok {
		h.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "INTERNAL",
			"message": "internal error",
		})
	}
	body := fiber.Map{
		"success": false,
		"error":   e.Code,
		"message": e.Message,
	}
	if e.Shortfall != nil {
		body["shortfall"] = e.Shortfall
	}
	return c.Status(statusOf(e.Code.Class())).JSON(body)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   model.CodeInvalidParams,
		"message": "invalid JSON body",
	})
}
