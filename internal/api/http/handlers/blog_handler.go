package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/service"
)

// BlogHandler serves /api/blog. Reads with ?public=true bypass the gate and only see published posts.
type BlogHandler struct {
	posts *service.BlogService
}

func NewBlogHandler(posts *service.BlogService) *BlogHandler {
	return &BlogHandler{posts: posts}
}

func (h *BlogHandler) List(c *fiber.Ctx) error {
	items, err := h.posts.List(c.UserContext(), service.BlogQuery{
		Public:        auth.PublicQuery(c),
		PublishedOnly: c.Query("published") == "true",
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromBlogPosts(items)})
}

func (h *BlogHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	post, err := h.posts.Get(c.UserContext(), id, auth.PublicQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromBlogPost(post)})
}

func (h *BlogHandler) Create(c *fiber.Ctx) error {
	var req dto.BlogRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	post, err := h.posts.Create(c.UserContext(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromBlogPost(post)})
}

func (h *BlogHandler) Update(c *fiber.Ctx) error {
	return h.write(c, h.posts.Update)
}

func (h *BlogHandler) Patch(c *fiber.Ctx) error {
	return h.write(c, h.posts.Patch)
}

func (h *BlogHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.posts.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Blog post deleted"}})
}

type blogWrite func(ctx context.Context, id string, in service.BlogInput) (*domain.BlogPost, error)

func (h *BlogHandler) write(c *fiber.Ctx, apply blogWrite) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.BlogRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	post, err := apply(c.UserContext(), id, req.Input())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromBlogPost(post)})
}
