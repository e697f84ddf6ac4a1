package controller

import (
	"errors"

	"moviematch-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// httpError maps service sentinels onto HTTP statuses. Anything unmapped is
// surfaced as a 500 by the error handler middleware.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrRelationExists),
		errors.Is(err, service.ErrAlreadyInSession):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrSelfRequest),
		errors.Is(err, service.ErrInvalidVoteSequence):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrOracleUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	default:
		return err
	}
}
