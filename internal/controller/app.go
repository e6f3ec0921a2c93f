package controller

import (
	"strings"

	"note-share-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

type Router interface {
	RegisterRoutes(r fiber.Router)
}

// NewApp builds the fiber app with permissive CORS, the shared error
// handling and every controller mounted under /api.
func NewApp(bodyLimit int, controllers ...Router) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    bodyLimit,
		ErrorHandler: serverutils.WriteError,
	})

	app.Use(logger.New())
	app.Use(preflightOK)
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: strings.Join([]string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPut,
			fiber.MethodPatch,
			fiber.MethodDelete,
			fiber.MethodHead,
			fiber.MethodOptions,
		}, ","),
	}))
	app.Use(serverutils.ErrorHandlerMiddleware())

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	api := app.Group("/api")
	for _, c := range controllers {
		c.RegisterRoutes(api)
	}

	return app
}

// preflightOK answers CORS preflight requests with 200 instead of 204.
func preflightOK(c *fiber.Ctx) error {
	if err := c.Next(); err != nil {
		return err
	}
	if c.Method() == fiber.MethodOptions && c.Response().StatusCode() == fiber.StatusNoContent {
		c.Response().ResetBody()
		c.Status(fiber.StatusOK)
	}
	return nil
}
