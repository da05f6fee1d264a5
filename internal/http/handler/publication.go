package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"formapi/internal/model"
	"formapi/internal/pagination"
	"formapi/internal/service"
)

type publicationForm struct {
	Description string `form:"description" validate:"required"`
	FormationID string `form:"formationId" validate:"omitempty,numeric"`
}

// publicationInput parses the multipart form shared by create and update.
// A nil *uploads means the error response has already been written.
func publicationInput(c *fiber.Ctx) (service.PublicationInput, *uploads, error) {
	var form publicationForm
	if err := c.BodyParser(&form); err != nil {
		return service.PublicationInput{}, nil, invalidBody(c)
	}
	if err := validate.Struct(form); err != nil {
		return service.PublicationInput{}, nil, validationFailed(c)
	}

	in := service.PublicationInput{Description: form.Description}
	if form.FormationID != "" {
		id, err := strconv.ParseInt(form.FormationID, 10, 64)
		if err != nil {
			return service.PublicationInput{}, nil, validationFailed(c)
		}
		in.FormationID = &id
	}

	ups := newUploads(c)
	var err error
	if in.Media, err = ups.open("media"); err != nil {
		ups.Close()
		return service.PublicationInput{}, nil, fileOpenError(c)
	}
	return in, ups, nil
}

// CreatePublication handles multipart creation with an optional media file.
// The media type is derived from the file's content type.
//
// @Summary  Create a publication
// @Tags     publications
// @Accept   mpfd
// @Produce  json
// @Param    description formData string true  "Description"
// @Param    formationId formData int    false "Parent formation"
// @Param    media       formData file   false "Image, MP3 or MP4"
// @Success  201 {object} model.Publication
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /api/publications [post]
func CreatePublication(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, ups, err := publicationInput(c)
		if ups == nil {
			return err
		}
		defer ups.Close()

		p, err := svc.CreateWithMedia(c.UserContext(), in)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// pagedPublications adapts a paginated service call to a handler.
func pagedPublications(list func(ctx context.Context, c *fiber.Ctx, req pagination.Request) (*pagination.Response[model.Publication], error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, ok := pageRequest(c)
		if !ok {
			return invalidPage(c)
		}
		page, err := list(c.UserContext(), c, req)
		if err != nil {
			return err
		}
		return c.JSON(page)
	}
}

// @Summary  List publications
// @Tags     publications
// @Produce  json
// @Param    page    query int    false "0-based page"
// @Param    size    query int    false "Page size (max 100)"
// @Param    sortBy  query string false "Sort field"
// @Param    sortDir query string false "ASC or DESC"
// @Success  200 {object} pagination.Response[model.Publication]
// @Router   /api/publications [get]
func ListPublications(svc service.PublicationService) fiber.Handler {
	return pagedPublications(func(ctx context.Context, _ *fiber.Ctx, req pagination.Request) (*pagination.Response[model.Publication], error) {
		return svc.List(ctx, req)
	})
}

func ListAllPublications(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListAll(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(items)
	}
}

// @Summary  Search publications by description
// @Tags     publications
// @Produce  json
// @Param    keyword query string true "Substring, case-insensitive"
// @Success  200 {object} pagination.Response[model.Publication]
// @Router   /api/publications/search [get]
func SearchPublications(svc service.PublicationService) fiber.Handler {
	return pagedPublications(func(ctx context.Context, c *fiber.Ctx, req pagination.Request) (*pagination.Response[model.Publication], error) {
		return svc.Search(ctx, c.Query("keyword"), req)
	})
}

// @Summary  Publications of one media type
// @Tags     publications
// @Produce  json
// @Param    mediaType path string true "IMAGE, MP3, MP4 or NONE"
// @Success  200 {object} pagination.Response[model.Publication]
// @Failure  400 {object} errorPayload
// @Router   /api/publications/type/{mediaType} [get]
func ListPublicationsByType(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mediaType, ok := model.ParseMediaType(c.Params("mediaType"))
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_MEDIA_TYPE", "unknown media type")
		}
		req, ok := pageRequest(c)
		if !ok {
			return invalidPage(c)
		}
		page, err := svc.ListByMediaType(c.UserContext(), mediaType, req)
		if err != nil {
			return err
		}
		return c.JSON(page)
	}
}

// @Summary  Publications of one formation
// @Tags     publications
// @Produce  json
// @Param    id path int true "Formation ID"
// @Success  200 {object} pagination.Response[model.Publication]
// @Router   /api/publications/formation/{id} [get]
func ListPublicationsByFormation(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return invalidID(c)
		}
		req, ok := pageRequest(c)
		if !ok {
			return invalidPage(c)
		}
		page, err := svc.ListByFormation(c.UserContext(), id, req)
		if err != nil {
			return err
		}
		return c.JSON(page)
	}
}

// CountPublicationsByFormation answers with a bare JSON number.
//
// @Summary  Count publications of one formation
// @Tags     publications
// @Produce  json
// @Param    id path int true "Formation ID"
// @Success  200 {integer} int64
// @Router   /api/publications/formation/{id}/count [get]
func CountPublicationsByFormation(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return invalidID(c)
		}
		n, err := svc.CountByFormation(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(n)
	}
}

// @Summary  Publications without media
// @Tags     publications
// @Produce  json
// @Success  200 {object} pagination.Response[model.Publication]
// @Router   /api/publications/no-media [get]
func ListPublicationsWithoutMedia(svc service.PublicationService) fiber.Handler {
	return pagedPublications(func(ctx context.Context, _ *fiber.Ctx, req pagination.Request) (*pagination.Response[model.Publication], error) {
		return svc.ListWithoutMedia(ctx, req)
	})
}

// @Summary  Publications with media
// @Tags     publications
// @Produce  json
// @Success  200 {object} pagination.Response[model.Publication]
// @Router   /api/publications/with-media [get]
func ListPublicationsWithMedia(svc service.PublicationService) fiber.Handler {
	return pagedPublications(func(ctx context.Context, _ *fiber.Ctx, req pagination.Request) (*pagination.Response[model.Publication], error) {
		return svc.ListWithMedia(ctx, req)
	})
}

// @Summary  Publications from the last 30 days, newest first
// @Tags     publications
// @Produce  json
// @Success  200 {object} pagination.Response[model.Publication]
// @Router   /api/publications/recent [get]
func ListRecentPublications(svc service.PublicationService) fiber.Handler {
	return pagedPublications(func(ctx context.Context, _ *fiber.Ctx, req pagination.Request) (*pagination.Response[model.Publication], error) {
		return svc.ListRecent(ctx, req)
	})
}

// @Summary  Get a publication
// @Tags     publications
// @Produce  json
// @Param    id path int true "Publication ID"
// @Success  200 {object} model.Publication
// @Failure  404 {object} errorPayload
// @Router   /api/publications/{id} [get]
func GetPublication(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return invalidID(c)
		}
		p, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(p)
	}
}

// UpdatePublication keeps the stored media unless a new file is sent.
// An absent formationId detaches the publication from its formation.
//
// @Summary  Update a publication
// @Tags     publications
// @Accept   mpfd
// @Produce  json
// @Param    id          path     int    true  "Publication ID"
// @Param    description formData string true  "Description"
// @Param    formationId formData int    false "Parent formation"
// @Param    media       formData file   false "Image, MP3 or MP4"
// @Success  200 {object} model.Publication
// @Failure  404 {object} errorPayload
// @Router   /api/publications/{id} [put]
func UpdatePublication(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return invalidID(c)
		}
		in, ups, err := publicationInput(c)
		if ups == nil {
			return err
		}
		defer ups.Close()

		p, err := svc.UpdateWithMedia(c.UserContext(), id, in)
		if err != nil {
			return err
		}
		return c.JSON(p)
	}
}

// @Summary  Delete a publication and its media
// @Tags     publications
// @Param    id path int true "Publication ID"
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /api/publications/{id} [delete]
func DeletePublication(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return invalidID(c)
		}
		if err := svc.DeleteWithMedia(c.UserContext(), id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
