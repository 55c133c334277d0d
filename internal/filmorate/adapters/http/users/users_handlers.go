// Package users содержит HTTP-обработчики для пользователей и дружбы.
package users

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/adapters/http/dto"
	"filmorate/internal/filmorate/adapters/http/response"
	"filmorate/internal/filmorate/ports/services"
	"filmorate/pkg/logger"
)

// Handler обработчик HTTP-запросов для работы с пользователями.
type Handler struct {
	userService services.UserService
}

// NewHandler создает новый экземпляр обработчика пользователей.
func NewHandler(userService services.UserService) *Handler {
	return &Handler{
		userService: userService,
	}
}

func (h *Handler) CreateUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateUser"))

	var req dto.UserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Warn(requestCtx, response.ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Error(ctx, fmt.Errorf("%w: %s", dto.ErrValidation, response.ErrMsgInvalidRequestBody))
	}

	user, err := req.ToUser()
	if err != nil {
		log.Warn(requestCtx, "user validation failed", zap.Error(err))
		return response.Error(ctx, err)
	}

	created, err := h.userService.Create(requestCtx, user)
	if err != nil {
		log.Error(requestCtx, "failed to create user", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusCreated, dto.NewUserResponse(created))
}

func (h *Handler) UpdateUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateUser"))

	var req dto.UserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Warn(requestCtx, response.ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Error(ctx, fmt.Errorf("%w: %s", dto.ErrValidation, response.ErrMsgInvalidRequestBody))
	}

	user, err := req.ToUserUpdate()
	if err != nil {
		log.Warn(requestCtx, "user validation failed", zap.Error(err))
		return response.Error(ctx, err)
	}

	updated, err := h.userService.Update(requestCtx, user)
	if err != nil {
		log.Error(requestCtx, "failed to update user", zap.Error(err), zap.Int64("user_id", user.ID))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NewUserResponse(updated))
}

func (h *Handler) GetUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	id, err := response.ParamID(ctx, "id")
	if err != nil {
		return response.Error(ctx, err)
	}

	user, err := h.userService.Get(requestCtx, id)
	if err != nil {
		logger.Log(requestCtx).Error(requestCtx, "failed to get user", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NewUserResponse(user))
}

func (h *Handler) ListUsers(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	users, err := h.userService.List(requestCtx)
	if err != nil {
		logger.Log(requestCtx).Error(requestCtx, "failed to list users", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NewUserResponses(users))
}

// DeleteUser удаляет пользователя вместе с его дружбой и лайками.
func (h *Handler) DeleteUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	id, err := response.ParamID(ctx, "id")
	if err != nil {
		return response.Error(ctx, err)
	}

	if err := h.userService.Delete(requestCtx, id); err != nil {
		logger.Log(requestCtx).Error(requestCtx, "failed to delete user", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.NoContent(ctx)
}

func (h *Handler) AddFriend(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	userID, friendID, err := pairParams(ctx, "friendId")
	if err != nil {
		return response.Error(ctx, err)
	}

	if err := h.userService.AddFriend(requestCtx, userID, friendID); err != nil {
		logger.Log(requestCtx).Warn(requestCtx, "failed to add friend", zap.Error(err))
		return response.Error(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusOK)
}

func (h *Handler) RemoveFriend(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	userID, friendID, err := pairParams(ctx, "friendId")
	if err != nil {
		return response.Error(ctx, err)
	}

	if err := h.userService.RemoveFriend(requestCtx, userID, friendID); err != nil {
		logger.Log(requestCtx).Warn(requestCtx, "failed to remove friend", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.NoContent(ctx)
}

func (h *Handler) Friends(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	id, err := response.ParamID(ctx, "id")
	if err != nil {
		return response.Error(ctx, err)
	}

	friends, err := h.userService.Friends(requestCtx, id)
	if err != nil {
		logger.Log(requestCtx).Error(requestCtx, "failed to list friends", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NewUserResponses(friends))
}

func (h *Handler) CommonFriends(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	userID, otherID, err := pairParams(ctx, "otherId")
	if err != nil {
		return response.Error(ctx, err)
	}

	common, err := h.userService.CommonFriends(requestCtx, userID, otherID)
	if err != nil {
		logger.Log(requestCtx).Error(requestCtx, "failed to list common friends", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NewUserResponses(common))
}

func pairParams(ctx fiber.Ctx, second string) (int64, int64, error) {
	first, err := response.ParamID(ctx, "id")
	if err != nil {
		return 0, 0, err
	}
	other, err := response.ParamID(ctx, second)
	if err != nil {
		return 0, 0, err
	}
	return first, other, nil
}
