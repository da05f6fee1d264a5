package handler

import (
	"github.com/gofiber/fiber/v2"

	"formapi/internal/service"
)

type formationForm struct {
	Titre       string `form:"titre" validate:"required,max=255"`
	Description string `form:"description"`
}

// formationInput parses the multipart form shared by create and update.
// A nil *uploads means the error response has already been written. The
// caller closes the returned uploads otherwise.
func formationInput(c *fiber.Ctx) (service.FormationInput, *uploads, error) {
	var form formationForm
	if err := c.BodyParser(&form); err != nil {
		return service.FormationInput{}, nil, invalidBody(c)
	}
	if err := validate.Struct(form); err != nil {
		return service.FormationInput{}, nil, validationFailed(c)
	}

	ups := newUploads(c)
	in := service.FormationInput{Titre: form.Titre, Description: form.Description}
	var err error
	if in.Image, err = ups.open("image"); err != nil {
		ups.Close()
		return service.FormationInput{}, nil, fileOpenError(c)
	}
	if in.PDF, err = ups.open("pdf"); err != nil {
		ups.Close()
		return service.FormationInput{}, nil, fileOpenError(c)
	}
	return in, ups, nil
}

// CreateFormation handles multipart creation with an optional image and PDF.
//
// @Summary  Create a formation
// @Tags     formations
// @Accept   mpfd
// @Produce  json
// @Param    titre       formData string true  "Title"
// @Param    description formData string false "Description"
// @Param    image       formData file   false "Cover image"
// @Param    pdf         formData file   false "PDF document"
// @Success  201 {object} model.Formation
// @Failure  400 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /api/formations [post]
func CreateFormation(svc service.FormationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, ups, err := formationInput(c)
		if ups == nil {
			return err
		}
		defer ups.Close()

		f, err := svc.CreateWithFiles(c.UserContext(), in)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(f)
	}
}

// ListFormations returns one page of formations.
//
// @Summary  List formations
// @Tags     formations
// @Produce  json
// @Param    page    query int    false "0-based page"
// @Param    size    query int    false "Page size (max 100)"
// @Param    sortBy  query string false "Sort field"
// @Param    sortDir query string false "ASC or DESC"
// @Success  200 {object} pagination.Response[model.Formation]
// @Router   /api/formations [get]
func ListFormations(svc service.FormationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, ok := pageRequest(c)
		if !ok {
			return invalidPage(c)
		}
		page, err := svc.List(c.UserContext(), req)
		if err != nil {
			return err
		}
		return c.JSON(page)
	}
}

func ListAllFormations(svc service.FormationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListAll(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(items)
	}
}

// SearchFormations matches keyword against title and description.
//
// @Summary  Search formations
// @Tags     formations
// @Produce  json
// @Param    keyword query string true "Substring, case-insensitive"
// @Success  200 {object} pagination.Response[model.Formation]
// @Router   /api/formations/search [get]
func SearchFormations(svc service.FormationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, ok := pageRequest(c)
		if !ok {
			return invalidPage(c)
		}
		page, err := svc.Search(c.UserContext(), c.Query("keyword"), req)
		if err != nil {
			return err
		}
		return c.JSON(page)
	}
}

// @Summary  Get a formation
// @Tags     formations
// @Produce  json
// @Param    id path int true "Formation ID"
// @Success  200 {object} model.Formation
// @Failure  404 {object} errorPayload
// @Router   /api/formations/{id} [get]
func GetFormation(svc service.FormationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return invalidID(c)
		}
		f, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(f)
	}
}

// UpdateFormation replaces title and description. Image and PDF change only
// when a new file is sent.
//
// @Summary  Update a formation
// @Tags     formations
// @Accept   mpfd
// @Produce  json
// @Param    id          path     int    true  "Formation ID"
// @Param    titre       formData string true  "Title"
// @Param    description formData string false "Description"
// @Param    image       formData file   false "Cover image"
// @Param    pdf         formData file   false "PDF document"
// @Success  200 {object} model.Formation
// @Failure  404 {object} errorPayload
// @Router   /api/formations/{id} [put]
func UpdateFormation(svc service.FormationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return invalidID(c)
		}
		in, ups, err := formationInput(c)
		if ups == nil {
			return err
		}
		defer ups.Close()

		f, err := svc.UpdateWithFiles(c.UserContext(), id, in)
		if err != nil {
			return err
		}
		return c.JSON(f)
	}
}

// @Summary  Delete a formation and its files
// @Tags     formations
// @Param    id path int true "Formation ID"
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /api/formations/{id} [delete]
func DeleteFormation(svc service.FormationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return invalidID(c)
		}
		if err := svc.DeleteWithFiles(c.UserContext(), id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
