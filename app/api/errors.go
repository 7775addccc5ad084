package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func ErrorHandler(c *fiber.Ctx, err error) error {
	if apiError, ok := err.(Error); ok {
		return c.Status(apiError.Code).JSON(apiError)
	}
	if valError, ok := err.(ValidationError); ok {
		return c.Status(valError.Status).JSON(valError)
	}

	var fiberError *fiber.Error
	if errors.As(err, &fiberError) {
		return c.Status(fiberError.Code).JSON(NewError(fiberError.Code, fiberError.Message))
	}

	apiError := NewError(fiber.StatusInternalServerError, err.Error())
	log.Error().Int("code", apiError.Code).Str("message", apiError.Message).Msg("request failed")
	return c.Status(apiError.Code).JSON(apiError)
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e Error) Error() string {
	return e.Message
}

func NewError(code int, err string) Error {
	return Error{
		Code:    code,
		Message: err,
	}
}

type ValidationError struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func (e ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(errors map[string]string) ValidationError {
	return ValidationError{
		Status: fiber.StatusUnprocessableEntity,
		Errors: errors,
	}
}

func ErrBadRequest() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "invalid JSON request",
	}
}

func ErrUnAuthorized(msg string) Error {
	return Error{
		Code:    fiber.StatusUnauthorized,
		Message: msg,
	}
}

func ErrBadDocument(msg string) Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: msg,
	}
}
