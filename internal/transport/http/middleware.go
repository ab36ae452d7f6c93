package http

import (
	"crypto/subtle"

	"prizeledger/internal/model"

	"github.com/gofiber/fiber/v2"
)

const (
	headerAdminKey     = "X-Admin-Key"
	headerOperatorID   = "X-Operator-ID"
	headerOperatorName = "X-Operator-Name"
	headerOperatorRole = "X-Operator-Role"
	headerAccountID    = "X-Account-ID"

	localOperator = "operator"
	localAccount  = "account"
)

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"error":   model.CodeUnauthorized,
		"message": msg,
	})
}

// AdminAuth checks the shared operator key and stores the operator identity.
// Operators without a role header are sellers.
func AdminAuth(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got := c.Get(headerAdminKey)
		if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			return unauthorized(c, "invalid admin key")
		}
		op := model.Operator{
			ID:   c.Get(headerOperatorID),
			Name: c.Get(headerOperatorName),
			Role: model.OperatorRole(c.Get(headerOperatorRole, string(model.RoleSeller))),
		}
		if op.ID == "" {
			return unauthorized(c, "operator id is required")
		}
		if !op.Role.Valid() {
			return unauthorized(c, "unknown operator role")
		}
		c.Locals(localOperator, op)
		return c.Next()
	}
}

// AccountAuth requires the account id set by the upstream auth proxy.
func AccountAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(headerAccountID)
		if id == "" {
			return unauthorized(c, "account id is required")
		}
		c.Locals(localAccount, id)
		return c.Next()
	}
}

func operatorOf(c *fiber.Ctx) model.Operator {
	op, _ := c.Locals(localOperator).(model.Operator)
	return op
}

func accountOf(c *fiber.Ctx) string {
	id, _ := c.Locals(localAccount).(string)
	return id
}
