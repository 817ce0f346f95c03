package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/service"
)

// ProjectsHandler serves /api/projects.
type ProjectsHandler struct {
	projects *service.ProjectService
}

func NewProjectsHandler(projects *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	items, err := h.projects.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProjects(items)})
}

func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	project, err := h.projects.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProject(project)})
}

func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	project, err := h.projects.Create(c.UserContext(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromProject(project)})
}

func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.ProjectRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	project, err := h.projects.Update(c.UserContext(), id, req.Input())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProject(project)})
}

func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.projects.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Project deleted"}})
}
