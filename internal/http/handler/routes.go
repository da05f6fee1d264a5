package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"formapi/internal/filestore"
	"formapi/internal/service"
)

// Deps are the collaborators the HTTP routes need.
type Deps struct {
	DB           *sql.DB
	Formations   service.FormationService
	Publications service.PublicationService
	Users        service.UserService
	Files        filestore.FileStore
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Fixed segments are registered before the /:id routes they would otherwise shadow.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	for _, category := range filestore.Categories {
		app.Get("/"+string(category)+"/*", ServeFile(d.Files, category))
	}

	api := app.Group("/api")

	formations := api.Group("/formations")
	formations.Post("/", CreateFormation(d.Formations))
	formations.Get("/", ListFormations(d.Formations))
	formations.Get("/all", ListAllFormations(d.Formations))
	formations.Get("/search", SearchFormations(d.Formations))
	formations.Get("/:id", GetFormation(d.Formations))
	formations.Put("/:id", UpdateFormation(d.Formations))
	formations.Delete("/:id", DeleteFormation(d.Formations))

	publications := api.Group("/publications")
	publications.Post("/", CreatePublication(d.Publications))
	publications.Get("/", ListPublications(d.Publications))
	publications.Get("/all", ListAllPublications(d.Publications))
	publications.Get("/search", SearchPublications(d.Publications))
	publications.Get("/type/:mediaType", ListPublicationsByType(d.Publications))
	publications.Get("/formation/:id/count", CountPublicationsByFormation(d.Publications))
	publications.Get("/formation/:id", ListPublicationsByFormation(d.Publications))
	publications.Get("/no-media", ListPublicationsWithoutMedia(d.Publications))
	publications.Get("/with-media", ListPublicationsWithMedia(d.Publications))
	publications.Get("/recent", ListRecentPublications(d.Publications))
	publications.Get("/:id", GetPublication(d.Publications))
	publications.Put("/:id", UpdatePublication(d.Publications))
	publications.Delete("/:id", DeletePublication(d.Publications))

	users := api.Group("/utilisateurs")
	users.Get("/", ListUsers(d.Users))
	users.Post("/", CreateUser(d.Users))
	users.Post("/login", Login(d.Users))
	users.Get("/:id", GetUser(d.Users))
	users.Put("/:id", UpdateUser(d.Users))
	users.Delete("/:id", DeleteUser(d.Users))
}
