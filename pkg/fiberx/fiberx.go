// Package fiberx holds the HTTP glue shared by every API package.
package fiberx

import (
	"errors"

	"github.com/Abraxas-365/relaymatch/pkg/errx"
	"github.com/Abraxas-365/relaymatch/pkg/kernel"
	"github.com/Abraxas-365/relaymatch/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler converts internal errors to standard HTTP responses
func ErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  fe.Code,
		})
	}

	// If it's our custom errx.Error
	var xe *errx.Error
	if errors.As(err, &xe) {
		if xe.HTTPStatus >= fiber.StatusInternalServerError {
			logx.With("path", c.Path(), "code", xe.Code).Errorw("request failed", "error", err)
		}
		return c.Status(xe.HTTPStatus).JSON(xe.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}

// PaginationOptions reads page and limit (or page_size) from the query.
// Missing values fall back to page 1 and defaultSize; larger sizes are capped at maxSize.
func PaginationOptions(c *fiber.Ctx, defaultSize, maxSize int) kernel.PaginationOptions {
	size := c.QueryInt("limit", 0)
	if size == 0 {
		size = c.QueryInt("page_size", 0)
	}

	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: size,
	}.Normalize(defaultSize, maxSize)
}
