package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/service"
)

// AboutHandler serves /api/about.
type AboutHandler struct {
	about *service.AboutService
}

func NewAboutHandler(about *service.AboutService) *AboutHandler {
	return &AboutHandler{about: about}
}

func (h *AboutHandler) Get(c *fiber.Ctx) error {
	about, err := h.about.Get(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromAbout(about)})
}

// Upsert answers 201 when the record was created and 200 when it was updated.
func (h *AboutHandler) Upsert(c *fiber.Ctx) error {
	var req dto.AboutRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	about, created, err := h.about.Upsert(c.UserContext(), req.Input())
	if err != nil {
		return err
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"data": dto.FromAbout(about)})
}
