package controller

import (
	"moviematch-be/internal/dto"
	"moviematch-be/internal/pkg/serverutils"
	"moviematch-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	OpenPaired(ctx *fiber.Ctx) error
	OpenSimilarity(ctx *fiber.Ctx) error
	PersonalRecommendations(ctx *fiber.Ctx) error
	SubmitVotes(ctx *fiber.Ctx) error
	GetState(ctx *fiber.Ctx) error
	GetResults(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type sessionController struct {
	service        service.ISessionService
	recommendation service.IRecommendationService
}

func NewSessionController(sessionService service.ISessionService, recommendation service.IRecommendationService) ISessionController {
	return &sessionController{
		service:        sessionService,
		recommendation: recommendation,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.OpenPaired)
	h.Post("/similarity", c.OpenSimilarity)
	h.Get("/recommendations", c.PersonalRecommendations)
	h.Get("/history", c.History)
	h.Post(":id/votes", c.SubmitVotes)
	h.Get(":id/results", c.GetResults)
	h.Get(":id", c.GetState)
	h.Delete(":id", c.Close)
}

func (c *sessionController) OpenPaired(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.OpenPairedSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sessionId, err := c.service.OpenPairedSession(ctx.Context(), userId, req.FriendId, req.GenreIds)
	if err != nil {
		return httpError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success open session", dto.OpenSessionResponse{SessionId: sessionId}))
}

func (c *sessionController) OpenSimilarity(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.OpenSimilaritySessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sessionId, err := c.service.OpenSimilaritySession(ctx.Context(), userId, req.FriendId, req.SeedMovieId)
	if err != nil {
		return httpError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success open session", dto.OpenSessionResponse{SessionId: sessionId}))
}

func (c *sessionController) PersonalRecommendations(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	movieIds, err := c.recommendation.PersonalRecommendations(ctx.Context(), userId)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get recommendations", dto.PersonalRecommendationResponse{MovieIds: movieIds}))
}

func (c *sessionController) SubmitVotes(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	var req dto.SubmitVotesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	state, err := c.service.SubmitVotes(ctx.Context(), sessionId, userId, req.Votes)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success submit votes", dto.SessionStateResponse{
		SessionId: sessionId,
		State:     string(state),
	}))
}

func (c *sessionController) GetState(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	session, err := c.service.GetSession(ctx.Context(), sessionId, userId)
	if err != nil {
		return httpError(err)
	}

	res := dto.SessionStateResponse{
		SessionId: session.Id,
		State:     string(session.State),
	}
	if progress, ok := session.Progress[userId]; ok {
		res.Status = string(progress.Status)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session state", res))
}

func (c *sessionController) GetResults(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	state, movieIds, err := c.service.GetResults(ctx.Context(), sessionId, userId)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session results", dto.SessionResultsResponse{
		State:    string(state),
		MovieIds: movieIds,
	}))
}

func (c *sessionController) Close(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	if err := c.service.CloseSession(ctx.Context(), sessionId, userId); err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success close session", nil))
}

func (c *sessionController) History(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.MatchHistory(ctx.Context(), userId)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get match history", res))
}
