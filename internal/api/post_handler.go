package api

import (
	"github.com/fathima-sithara/social-service/internal/service"
	"github.com/gofiber/fiber/v2"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

type createPostReq struct {
	Text       string    `json:"text" validate:"max=10000"`
	Image      string    `json:"image" validate:"max=2048"`
	Author     string    `json:"author" validate:"max=320"`
	AuthorName string    `json:"authorName" validate:"max=200"`
	Date       Timestamp `json:"date"`
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	var req createPostReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body.", err)
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Invalid post.", err)
	}

	post, err := h.svc.Create(c.UserContext(), service.CreatePostInput{
		Text:       req.Text,
		Image:      req.Image,
		Author:     req.Author,
		AuthorName: req.AuthorName,
		Date:       req.Date.Time,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Post submitted successfully!",
		"post":    post,
	})
}

// List answers a bare array, as the feed clients expect.
func (h *PostHandler) List(c *fiber.Ctx) error {
	posts, err := h.svc.List(c.UserContext(), c.Query("authorEmail"))
	if err != nil {
		return err
	}
	return c.JSON(posts)
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Post deleted successfully."})
}
