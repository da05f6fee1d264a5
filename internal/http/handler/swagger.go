package handler

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"formapi/docs"
)

// swaggerMu guards docs.SwaggerInfo, which swag renders on every doc.json read.
var swaggerMu sync.Mutex

// Swagger serves the Swagger UI with the host and scheme taken from the request.
func Swagger() fiber.Handler {
	serve := swagger.HandlerDefault
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		swaggerMu.Lock()
		defer swaggerMu.Unlock()

		docs.SwaggerInfo.Host = c.Get(fiber.HeaderHost)
		docs.SwaggerInfo.Schemes = []string{scheme}

		return serve(c)
	}
}
