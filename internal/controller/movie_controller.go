package controller

import (
	"strconv"
	"strings"

	"moviematch-be/internal/dto"
	"moviematch-be/internal/pkg/serverutils"
	"moviematch-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMovieController interface {
	RegisterRoutes(r fiber.Router)
	Starter(ctx *fiber.Ctx) error
	Browse(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Details(ctx *fiber.Ctx) error
	Rate(ctx *fiber.Ctx) error
	SessionMovies(ctx *fiber.Ctx) error
}

type movieController struct {
	service service.IMovieService
}

func NewMovieController(service service.IMovieService) IMovieController {
	return &movieController{service: service}
}

func (c *movieController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/movies/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/starter", c.Starter)
	h.Get("/search", c.Search)
	h.Get("/session/:sessionId", c.SessionMovies)
	h.Get("/:id", c.Details)
	h.Put("/:id/rating", c.Rate)
	h.Get("", c.Browse)
}

func (c *movieController) Starter(ctx *fiber.Ctx) error {
	res, err := c.service.Starter(ctx.Context())
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get starter movies", res))
}

func (c *movieController) Browse(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	genreIds := parseGenreIds(ctx.Query("genres"))

	res, err := c.service.Browse(ctx.Context(), genreIds, page)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success browse movies", res))
}

func (c *movieController) Search(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing query parameter 'q'")
	}

	res, err := c.service.Search(ctx.Context(), query)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search movies", res))
}

func (c *movieController) Details(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.Details(ctx.Context(), userId, ctx.Params("id"))
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get movie details", res))
}

func (c *movieController) Rate(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.RateMovieRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := c.service.Rate(ctx.Context(), userId, ctx.Params("id"), req.Rating); err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success rate movie", nil))
}

func (c *movieController) SessionMovies(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	pageKey := ctx.QueryInt("page_key", 0)

	res, err := c.service.SessionMovies(ctx.Context(), sessionId, userId, pageKey)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session movies", res))
}

// parseGenreIds reads a comma separated genre id list ("28,35").
func parseGenreIds(raw string) []int {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
