package handler

import (
	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"formapi/internal/filestore"
)

// ServeFile streams a stored file of one category, e.g. GET /images/<name>.
func ServeFile(files filestore.FileStore, category filestore.Category) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url := "/" + string(category) + "/" + c.Params("*")
		rc, info, err := files.Open(c.UserContext(), url)
		if err != nil {
			if errx.GetType(err) == errx.T_Validation {
				return writeError(c, fiber.StatusNotFound, filestore.CodeFileNotFound, messageFor(fiber.StatusNotFound))
			}
			return err
		}
		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		size := -1
		if info.Size > 0 {
			size = int(info.Size)
		}
		return c.SendStream(rc, size)
	}
}
