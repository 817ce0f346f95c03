package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/service"
)

// SkillsHandler serves /api/skills. Besides the /:id routes it keeps the collection-level
// PUT (id in body) and DELETE (?id=) forms used by the admin console.
type SkillsHandler struct {
	skills *service.SkillService
}

func NewSkillsHandler(skills *service.SkillService) *SkillsHandler {
	return &SkillsHandler{skills: skills}
}

func (h *SkillsHandler) List(c *fiber.Ctx) error {
	items, err := h.skills.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromSkills(items)})
}

func (h *SkillsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	skill, err := h.skills.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromSkill(skill)})
}

func (h *SkillsHandler) Create(c *fiber.Ctx) error {
	var req dto.SkillRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	skill, err := h.skills.Create(c.UserContext(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromSkill(skill)})
}

// Replace handles PUT /api/skills with the id in the body.
func (h *SkillsHandler) Replace(c *fiber.Ctx) error {
	var req dto.SkillRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.ID != "" {
		if _, err := uuid.Parse(req.ID); err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid id")
		}
	}
	skill, err := h.skills.Replace(c.UserContext(), req.ID, req.Input())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromSkill(skill)})
}

// Patch handles PUT /api/skills/:id.
func (h *SkillsHandler) Patch(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.SkillRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	skill, err := h.skills.Patch(c.UserContext(), id, req.Input())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromSkill(skill)})
}

// DeleteByQuery handles DELETE /api/skills?id=.
func (h *SkillsHandler) DeleteByQuery(c *fiber.Ctx) error {
	id := c.Query("id")
	if id != "" {
		if _, err := uuid.Parse(id); err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid id")
		}
	}
	return h.delete(c, id)
}

func (h *SkillsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return h.delete(c, id)
}

func (h *SkillsHandler) delete(c *fiber.Ctx, id string) error {
	if err := h.skills.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Skill deleted successfully"}})
}
