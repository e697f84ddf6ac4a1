package controller

import (
	"moviematch-be/internal/dto"
	"moviematch-be/internal/pkg/serverutils"
	"moviematch-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Initialize(ctx *fiber.Ctx) error
	SetDeviceToken(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
}

func NewUserController(service service.IUserService) IUserController {
	return &userController{service: service}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users/v1")
	h.Post("/register", c.Register)

	protected := h.Use(serverutils.JwtMiddleware)
	protected.Post("/initialize", c.Initialize)
	protected.Put("/device-token", c.SetDeviceToken)
	protected.Get("/me", c.Me)
}

func (c *userController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.Register(ctx.Context(), &req)
	if err != nil {
		return httpError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success register user", res))
}

func (c *userController) Initialize(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.InitializeUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := c.service.Initialize(ctx.Context(), userId, &req); err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success initialize user", nil))
}

func (c *userController) SetDeviceToken(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.DeviceTokenRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := c.service.SetDeviceToken(ctx.Context(), userId, req.Token); err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set device token", nil))
}

func (c *userController) Me(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.GetProfile(ctx.Context(), userId)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}
