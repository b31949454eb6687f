package handlers

import (
	"pokemon-game-system/middleware"
	"pokemon-game-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPokemonRoutes(app *fiber.App, catalogService *services.CatalogService) {
	// 🔓 Public routes: no user context, but still behind Gateway auth
	app.Get("/pokemons", func(c *fiber.Ctx) error {
		pokemons, err := catalogService.List(c.UserContext())
		if err != nil {
			return respondError(c, err, "failed to list pokemons")
		}
		return c.JSON(pokemons)
	})

	app.Get("/pokemons/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return badRequest(c, "invalid pokemon id", err)
		}
		p, err := catalogService.Get(c.UserContext(), id)
		if err != nil {
			return respondError(c, err, "failed to get pokemon")
		}
		return c.JSON(p)
	})

	// 🔐 Any authenticated user may add a catalog entry
	app.Post("/pokemons", middleware.UserContextMiddleware(), func(c *fiber.Ctx) error {
		var req services.PokemonInput
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON", err)
		}
		p, err := catalogService.Create(c.UserContext(), req)
		if err != nil {
			return respondError(c, err, "failed to create pokemon")
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	})

	// Admin endpoints
	admin := app.Group("/admin", middleware.UserContextMiddleware(), middleware.RequireRole("admin"))

	admin.Put("/pokemons/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return badRequest(c, "invalid pokemon id", err)
		}
		var req services.PokemonInput
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON", err)
		}
		p, err := catalogService.Update(c.UserContext(), id, req)
		if err != nil {
			return respondError(c, err, "failed to update pokemon")
		}
		return c.JSON(p)
	})

	admin.Delete("/pokemons/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return badRequest(c, "invalid pokemon id", err)
		}
		if err := catalogService.Delete(c.UserContext(), id); err != nil {
			return respondError(c, err, "failed to delete pokemon")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
