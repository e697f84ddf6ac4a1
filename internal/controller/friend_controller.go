package controller

import (
	"moviematch-be/internal/dto"
	"moviematch-be/internal/pkg/serverutils"
	"moviematch-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFriendController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	SendRequest(ctx *fiber.Ctx) error
	Respond(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type friendController struct {
	service service.IFriendService
}

func NewFriendController(service service.IFriendService) IFriendController {
	return &friendController{service: service}
}

func (c *friendController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/friends/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.SendRequest)
	h.Put(":requesterId", c.Respond)
	h.Delete(":friendId", c.Delete)
}

func (c *friendController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.List(ctx.Context(), userId)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get friend list", res))
}

func (c *friendController) SendRequest(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.SendFriendRequestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.SendRequest(ctx.Context(), userId, req.Username)
	if err != nil {
		return httpError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success send friend request", res))
}

func (c *friendController) Respond(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	requesterId, err := uuid.Parse(ctx.Params("requesterId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid requester id")
	}

	var req dto.RespondFriendRequestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := c.service.Respond(ctx.Context(), userId, requesterId, req.Accept); err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success respond to friend request", nil))
}

func (c *friendController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	friendId, err := uuid.Parse(ctx.Params("friendId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid friend id")
	}

	if err := c.service.Delete(ctx.Context(), userId, friendId); err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete friend", nil))
}
