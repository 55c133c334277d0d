// Package response содержит общие функции формирования HTTP-ответов.
package response

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"filmorate/internal/filmorate/adapters/http/dto"
	"filmorate/internal/filmorate/domain/entities"
)

// Сообщения об ошибках.
const (
	ErrMsgInternal           = "internal server error"
	ErrMsgInvalidRequestBody = "invalid request body"
)

// ErrInvalidID возвращается при некорректном id в пути или параметрах.
var ErrInvalidID = errors.New("id must be a positive integer")

// StatusFor сопоставляет ошибку сценария с HTTP-статусом.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, entities.ErrConflict),
		errors.Is(err, entities.ErrInvalidArgument),
		errors.Is(err, dto.ErrValidation),
		errors.Is(err, ErrInvalidID):
		return fiber.StatusBadRequest
	default:
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return fiberErr.Code
		}
		return fiber.StatusInternalServerError
	}
}

// Error отправляет ошибку в виде {"error": "..."}.
// Для 500 текст ошибки не раскрывается.
func Error(ctx fiber.Ctx, err error) error {
	status := StatusFor(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = ErrMsgInternal
	}

	if err := ctx.Status(status).JSON(fiber.Map{"error": message}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}
	return nil
}

// JSON отправляет тело с указанным статусом.
func JSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// NoContent отправляет пустой ответ 204.
func NoContent(ctx fiber.Ctx) error {
	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ParamID разбирает положительный целочисленный параметр пути.
func ParamID(ctx fiber.Ctx, name string) (int64, error) {
	raw := ctx.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidID, name, raw)
	}
	return id, nil
}
