package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/service"
)

// TagsHandler serves /api/tags.
type TagsHandler struct {
	tags *service.TagService
}

func NewTagsHandler(tags *service.TagService) *TagsHandler {
	return &TagsHandler{tags: tags}
}

func (h *TagsHandler) List(c *fiber.Ctx) error {
	items, err := h.tags.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTags(items)})
}

func (h *TagsHandler) Create(c *fiber.Ctx) error {
	var req dto.TagRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	tag, err := h.tags.Create(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromTag(tag)})
}
