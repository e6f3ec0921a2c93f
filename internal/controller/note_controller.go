package controller

import (
	"strings"

	"note-share-be/internal/dto"
	"note-share-be/internal/pkg/serverutils"
	"note-share-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	service service.INoteService
}

func NewNoteController(service service.INoteService) INoteController {
	return &noteController{service: service}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	r.Get("/notes", c.List)
	r.Get("/data", c.List)
	r.Get("/data/:id", c.Show)
	r.Post("/upload", c.Upload)
	r.Delete("/data/:id", c.Delete)
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	notes, err := c.service.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(notes)
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	note, err := c.service.Show(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(note)
}

func (c *noteController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	var req dto.UploadNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form data")
	}
	req.Title = strings.TrimSpace(req.Title)

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	note, err := c.service.Upload(ctx.Context(), &req, dto.UploadNoteFile{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Size:        fileHeader.Size,
	}, file)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.UploadNoteResponse{
		Message: "File uploaded successfully",
		Note:    note,
	})
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.MessageResponse("Note deleted successfully"))
}
