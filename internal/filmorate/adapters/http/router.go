// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"filmorate/internal/filmorate/adapters/http/films"
	"filmorate/internal/filmorate/adapters/http/middleware"
	"filmorate/internal/filmorate/adapters/http/users"
	"filmorate/internal/filmorate/config"
	"filmorate/internal/filmorate/ports/services"
)

// ErrMsgRouteNotFound - ответ на запрос к несуществующему маршруту.
const ErrMsgRouteNotFound = "route not found"

// Options задает необязательные части маршрутизации.
type Options struct {
	RateLimit           config.RateLimitConfig
	PopularDefaultCount int
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, filmService services.FilmService, userService services.UserService, opts Options) {
	filmsHandler := films.NewHandler(filmService, opts.PopularDefaultCount)
	usersHandler := users.NewHandler(userService)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewMetricsMiddleware())
	if opts.RateLimit.Enabled() {
		app.Use(middleware.NewRateLimitMiddleware(opts.RateLimit))
	}

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// /films/popular регистрируется раньше /films/:id.
	filmRoutes := app.Group("/films")
	filmRoutes.Get("/", filmsHandler.ListFilms)
	filmRoutes.Post("/", filmsHandler.CreateFilm)
	filmRoutes.Put("/", filmsHandler.UpdateFilm)
	filmRoutes.Get("/popular", filmsHandler.Popular)
	filmRoutes.Get("/:id", filmsHandler.GetFilm)
	filmRoutes.Delete("/:id", filmsHandler.DeleteFilm)
	filmRoutes.Put("/:id/like/:userId", filmsHandler.Like)
	filmRoutes.Delete("/:id/like/:userId", filmsHandler.Unlike)

	userRoutes := app.Group("/users")
	userRoutes.Get("/", usersHandler.ListUsers)
	userRoutes.Post("/", usersHandler.CreateUser)
	userRoutes.Put("/", usersHandler.UpdateUser)
	userRoutes.Get("/:id", usersHandler.GetUser)
	userRoutes.Delete("/:id", usersHandler.DeleteUser)
	userRoutes.Get("/:id/friends", usersHandler.Friends)
	userRoutes.Get("/:id/friends/common/:otherId", usersHandler.CommonFriends)
	userRoutes.Put("/:id/friends/:friendId", usersHandler.AddFriend)
	userRoutes.Delete("/:id/friends/:friendId", usersHandler.RemoveFriend)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrMsgRouteNotFound,
		})
	})
}
