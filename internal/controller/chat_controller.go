package controller

import (
	"knowthee-be/internal/dto"
	"knowthee-be/internal/pkg/serverutils"
	"knowthee-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	SessionInsights(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
}

type chatController struct {
	queryService service.IQueryService
}

func NewChatController(queryService service.IQueryService) IChatController {
	return &chatController{
		queryService: queryService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/talent/v1")
	h.Post("chat", c.Chat)
	h.Get("session/:id", c.SessionInsights)
	h.Delete("session/:id", c.ClearSession)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.queryService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process chat", res))
}

func (c *chatController) SessionInsights(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	res, err := c.queryService.SessionInsights(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *chatController) ClearSession(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	res, err := c.queryService.ClearSession(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clear session", res))
}
