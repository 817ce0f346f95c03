package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/service"
)

// ContactsHandler serves /api/contact. Submission is public; the inbox is gated.
type ContactsHandler struct {
	contacts *service.ContactService
}

func NewContactsHandler(contacts *service.ContactService) *ContactsHandler {
	return &ContactsHandler{contacts: contacts}
}

func (h *ContactsHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	msg, err := h.contacts.Submit(c.UserContext(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromContactMessage(msg)})
}

func (h *ContactsHandler) List(c *fiber.Ctx) error {
	items, err := h.contacts.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromContactMessages(items)})
}

func (h *ContactsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	msg, err := h.contacts.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromContactMessage(msg)})
}

// MarkRead handles PUT and PATCH /api/contact/:id.
func (h *ContactsHandler) MarkRead(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.MarkReadRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	msg, err := h.contacts.MarkRead(c.UserContext(), id, req.Read)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromContactMessage(msg)})
}

func (h *ContactsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.contacts.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Message deleted"}})
}
