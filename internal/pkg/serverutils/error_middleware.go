package serverutils

import (
	"errors"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func ErrorHandlerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("[PANIC RECOVERED] %v\n%s", r, debug.Stack())
				err = c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(
					fiber.StatusInternalServerError, ErrInternal.Error(),
				))
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}
		return WriteError(c, err)
	}
}

// WriteError maps err onto a status code and JSON body. Collaborator failures
// are logged here and never echoed back to the client.
func WriteError(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse(ve.ToErrorDetails()))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, ErrNotFound.Error()))
	case errors.Is(err, ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse(fiber.StatusConflict, ErrConflict.Error()))
	case errors.Is(err, ErrBadRequest):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, err.Error()))
	case errors.Is(err, ErrStoreUnavailable):
		log.Errorf("[STORE] %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(
			fiber.StatusInternalServerError, ErrStoreUnavailable.Error(),
		))
	case errors.Is(err, ErrBlobStore):
		log.Errorf("[BLOB] %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(
			fiber.StatusInternalServerError, ErrBlobStore.Error(),
		))
	}

	log.Errorf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(
		fiber.StatusInternalServerError, ErrInternal.Error(),
	))
}
