package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/http/handlers"
	"github.com/spec-kit/portfolio-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Projects *handlers.ProjectsHandler
	Skills   *handlers.SkillsHandler
	About    *handlers.AboutHandler
	Blog     *handlers.BlogHandler
	Tags     *handlers.TagsHandler
	Contacts *handlers.ContactsHandler
	Pages    *handlers.PagesHandler
	Gate     *auth.Gate
	Guard    *auth.EdgeGuard
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Guard.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	protect := cfg.Gate.Protect()
	gated := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, protect...), h)
	}
	// public=true reads skip both gate steps.
	gatedUnlessPublic := func(h fiber.Handler) []fiber.Handler {
		return []fiber.Handler{
			auth.Unless(auth.PublicQuery, cfg.Gate.Authenticate),
			auth.Unless(auth.PublicQuery, cfg.Gate.Authorize),
			h,
		}
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/update-users", gated(cfg.Auth.PromoteUsers)...)

	projects := api.Group("/projects")
	projects.Get("/", cfg.Projects.List)
	projects.Get("/:id", cfg.Projects.Get)
	projects.Post("/", gated(cfg.Projects.Create)...)
	projects.Put("/:id", gated(cfg.Projects.Update)...)
	projects.Delete("/:id", gated(cfg.Projects.Delete)...)

	skills := api.Group("/skills")
	skills.Get("/", cfg.Skills.List)
	skills.Get("/:id", cfg.Skills.Get)
	skills.Post("/", gated(cfg.Skills.Create)...)
	skills.Put("/", gated(cfg.Skills.Replace)...)
	skills.Delete("/", gated(cfg.Skills.DeleteByQuery)...)
	skills.Put("/:id", gated(cfg.Skills.Patch)...)
	skills.Delete("/:id", gated(cfg.Skills.Delete)...)

	api.Get("/about", cfg.About.Get)
	api.Post("/about", gated(cfg.About.Upsert)...)

	blog := api.Group("/blog")
	blog.Get("/", gatedUnlessPublic(cfg.Blog.List)...)
	blog.Get("/:id", gatedUnlessPublic(cfg.Blog.Get)...)
	blog.Post("/", gated(cfg.Blog.Create)...)
	blog.Put("/:id", gated(cfg.Blog.Update)...)
	blog.Patch("/:id", gated(cfg.Blog.Patch)...)
	blog.Delete("/:id", gated(cfg.Blog.Delete)...)

	tags := api.Group("/tags")
	tags.Get("/", cfg.Gate.Authenticate, cfg.Tags.List)
	tags.Post("/", gated(cfg.Tags.Create)...)

	contact := api.Group("/contact")
	contact.Post("/", cfg.Contacts.Submit)
	contact.Get("/", gated(cfg.Contacts.List)...)
	contact.Get("/:id", gated(cfg.Contacts.Get)...)
	contact.Put("/:id", gated(cfg.Contacts.MarkRead)...)
	contact.Patch("/:id", gated(cfg.Contacts.MarkRead)...)
	contact.Delete("/:id", gated(cfg.Contacts.Delete)...)

	app.Get(auth.AdminPrefix, cfg.Pages.Render)
	app.Get(auth.AdminPrefix+"/*", cfg.Pages.Render)
}
