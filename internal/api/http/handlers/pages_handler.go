package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/auth"
)

//go:embed templates/admin.html
var pageFiles embed.FS

var adminPage = template.Must(template.ParseFS(pageFiles, "templates/admin.html"))

type pageData struct {
	Service string
	Title   string
	Page    string
	Form    string
}

// PagesHandler renders the admin console shell. Access control is done by the edge guard.
type PagesHandler struct {
	serviceName string
}

func NewPagesHandler(serviceName string) *PagesHandler {
	return &PagesHandler{serviceName: serviceName}
}

// Render serves /admin and everything below it.
func (h *PagesHandler) Render(c *fiber.Ctx) error {
	page := strings.Trim(strings.TrimPrefix(c.Path(), auth.AdminPrefix), "/")
	data := pageData{Service: h.serviceName, Page: page, Title: "Dashboard"}
	switch "/admin/" + page {
	case auth.LoginPath:
		data.Title, data.Form = "Login", "/api/auth/login"
	case auth.RegisterPath:
		data.Title, data.Form = "Register", "/api/auth/register"
	default:
		if page != "" {
			data.Title = strings.ToUpper(page[:1]) + page[1:]
		}
	}

	var buf bytes.Buffer
	if err := adminPage.Execute(&buf, data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
