package api

import (
	"github.com/fathima-sithara/social-service/internal/service"
	"github.com/gofiber/fiber/v2"
)

type MessageHandler struct {
	svc *service.MessagingService
}

func NewMessageHandler(svc *service.MessagingService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

type sendMessageReq struct {
	Sender    string    `json:"sender" validate:"required,max=320"`
	Receiver  string    `json:"receiver" validate:"required,max=320"`
	Text      string    `json:"text" validate:"max=10000"`
	ImageURL  string    `json:"imageUrl" validate:"max=2048"`
	Timestamp Timestamp `json:"timestamp"`
}

const msgSendRequired = "Sender, receiver, and timestamp are required."

// Send handles POST /messages.
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var req sendMessageReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, msgSendRequired, err)
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, msgSendRequired, err)
	}

	msg, err := h.svc.SendMessage(c.UserContext(), service.SendInput{
		Sender:    req.Sender,
		Receiver:  req.Receiver,
		Text:      req.Text,
		ImageURL:  req.ImageURL,
		Timestamp: req.Timestamp.Time,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Message sent successfully.",
		"data":    msg,
	})
}

// List handles GET /messages?user=U[&chatWith=P]. With chatWith it returns
// the ordered thread, otherwise the user's conversation partners.
func (h *MessageHandler) List(c *fiber.Ctx) error {
	conv, err := h.svc.ListOrThread(c.UserContext(), c.Query("user"), c.Query("chatWith"))
	if err != nil {
		return err
	}
	if conv.IsThread {
		return c.JSON(fiber.Map{"success": true, "messages": conv.Messages})
	}
	return c.JSON(fiber.Map{"success": true, "users": conv.Partners})
}
