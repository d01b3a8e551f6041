package api

import (
	"github.com/fathima-sithara/social-service/internal/service"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type registerUserReq struct {
	Name      string    `json:"name" validate:"max=200"`
	Email     string    `json:"email" validate:"required,max=320"`
	Photo     string    `json:"photo" validate:"max=2048"`
	Password  string    `json:"password" validate:"max=72"`
	CreatedAt Timestamp `json:"createdAt"`
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req registerUserReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body.", err)
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Email is required", err)
	}

	created, err := h.svc.Register(c.UserContext(), service.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Photo:     req.Photo,
		Password:  req.Password,
		CreatedAt: req.CreatedAt.Time,
	})
	if err != nil {
		return err
	}
	if !created {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "User already exists."})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User saved successfully!"})
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.svc.ListOthers(c.UserContext(), c.Query("email"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"users": users})
}
