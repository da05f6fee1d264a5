package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"formapi/internal/model"
	"formapi/internal/service"
)

const (
	loginSucceeded = "Connexion réussie"
	loginFailed    = "Email ou mot de passe incorrect"
)

type userRequest struct {
	Nom    string      `json:"nom" validate:"max=255"`
	Email  string      `json:"email" validate:"omitempty,email,max=255"`
	Mdp    string      `json:"mdp"`
	Statut string      `json:"statut" validate:"max=255"`
	Date   *model.Date `json:"date"`
}

func (r userRequest) user(id int64) *model.User {
	return &model.User{ID: id, Nom: r.Nom, Email: r.Email, Mdp: r.Mdp, Statut: r.Statut, Date: r.Date}
}

type loginRequest struct {
	Email string `json:"email"`
	Mdp   string `json:"mdp"`
}

type loginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    *model.User `json:"user,omitempty"`
}

func parseUser(c *fiber.Ctx) (userRequest, bool, error) {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return req, false, invalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return req, false, validationFailed(c)
	}
	return req, true, nil
}

// ListUsers never exposes password hashes.
//
// @Summary  List users
// @Tags     utilisateurs
// @Produce  json
// @Success  200 {array} model.User
// @Router   /api/utilisateurs [get]
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}
		out := make([]model.User, 0, len(users))
		for _, u := range users {
			out = append(out, u.Redacted())
		}
		return c.JSON(out)
	}
}

// @Summary  Get a user
// @Tags     utilisateurs
// @Produce  json
// @Param    id path int true "User ID"
// @Success  200 {object} model.User
// @Failure  404 {object} errorPayload
// @Router   /api/utilisateurs/{id} [get]
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return invalidID(c)
		}
		u, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(u.Redacted())
	}
}

// @Summary  Create a user
// @Tags     utilisateurs
// @Accept   json
// @Produce  json
// @Param    user body userRequest true "User"
// @Success  201 {object} model.User
// @Failure  400 {object} errorPayload
// @Router   /api/utilisateurs [post]
func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, ok, err := parseUser(c)
		if !ok {
			return err
		}
		u, err := svc.Save(c.UserContext(), req.user(0))
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(u.Redacted())
	}
}

// UpdateUser replaces every field. An empty mdp keeps the stored password.
//
// @Summary  Update a user
// @Tags     utilisateurs
// @Accept   json
// @Produce  json
// @Param    id   path int         true "User ID"
// @Param    user body userRequest true "User"
// @Success  200 {object} model.User
// @Failure  404 {object} errorPayload
// @Router   /api/utilisateurs/{id} [put]
func UpdateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return invalidID(c)
		}
		req, ok, err := parseUser(c)
		if !ok {
			return err
		}
		u, err := svc.Save(c.UserContext(), req.user(id))
		if err != nil {
			return err
		}
		return c.JSON(u.Redacted())
	}
}

// @Summary  Delete a user
// @Tags     utilisateurs
// @Param    id path int true "User ID"
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /api/utilisateurs/{id} [delete]
func DeleteUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return invalidID(c)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Login answers 200 for both outcomes; success tells them apart.
//
// @Summary  Check an email and password
// @Tags     utilisateurs
// @Accept   json
// @Produce  json
// @Param    credentials body loginRequest true "Credentials"
// @Success  200 {object} loginResponse
// @Router   /api/utilisateurs/login [post]
func Login(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		u, err := svc.Login(c.UserContext(), req.Email, req.Mdp)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return c.JSON(loginResponse{Success: false, Message: loginFailed})
			}
			return err
		}
		redacted := u.Redacted()
		return c.JSON(loginResponse{Success: true, Message: loginSucceeded, User: &redacted})
	}
}
