package http

import (
	"context"
	"errors"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/observability"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// HeaderRequestID carries the request id in and out.
const HeaderRequestID = "X-Request-Id"

// MiddlewareConfig tunes the global middleware chain.
type MiddlewareConfig struct {
	Timeout          time.Duration
	CORSAllowOrigins string
}

// RegisterMiddlewares attaches global middlewares: request id, CORS, logging, error rendering, timeout.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, cfg MiddlewareConfig) {
	app.Use(requestIDMiddleware())
	if origins := strings.TrimSpace(cfg.CORSAllowOrigins); origins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
			AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowCredentials: origins != "*",
		}))
	}
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics))
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
}

func requestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Locals(observability.RequestIDLocal, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				status, body, code := renderError(err)
				metrics.RecordError(c.Path(), c.Method(), code)
				if status >= fiber.StatusInternalServerError {
					logger.Error("request failed",
						zap.String("method", c.Method()),
						zap.String("path", c.Path()),
						zap.Error(err))
				}
				err = c.Status(status).JSON(body)
			}
		}()
		return c.Next()
	}
}

// ErrorHandler is the fiber.Config ErrorHandler. It renders errors raised outside the middleware chain.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status, body, _ := renderError(err)
	return c.Status(status).JSON(body)
}

func renderError(err error) (int, fiber.Map, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fiber.Map{"error": fe.Message}, "HTTP_" + strconv.Itoa(fe.Code)
	}
	domainErr := apperrors.ToDomainError(err)
	body := fiber.Map{"error": domainErr.Message}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}
	return domainErr.HTTPStatus, body, domainErr.Code
}
