package server

import (
	"fmt"
	"strconv"
	"strings"

	"agora/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID extracts and validates a numeric path parameter.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError(fmt.Sprintf("Invalid %s", humanizeParam(param)))
	}
	return uint(id), nil
}

// humanizeParam turns "sideId" into "side id" for error messages.
func humanizeParam(param string) string {
	var b strings.Builder
	for i, r := range param {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parsePagination reads page/page_size query params with sane bounds.
func parsePagination(c *fiber.Ctx) (page, pageSize int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = c.QueryInt("page_size", 20)
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// currentUserID reads the authenticated user's ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) (uint, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return 0, models.NewUnauthorizedError("Authentication required")
	}
	return userID, nil
}
