package handlers

import (
	"errors"

	"pokemon-game-system/middleware"
	"pokemon-game-system/services"

	"github.com/gofiber/fiber/v2"
)

var errPriceRequired = errors.New("price is required")

func SetupShopRoutes(app *fiber.App, gameService *services.GameService, guards ...fiber.Handler) {
	shop := app.Group("/shop", middleware.UserContextMiddleware())

	shop.Post("/buy", withGuards(guards, func(c *fiber.Ctx) error {
		var req struct {
			ItemType string `json:"itemType"`
			Price    *int64 `json:"price"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON", err)
		}
		if req.Price == nil {
			return badRequest(c, "invalid purchase", errPriceRequired)
		}

		view, err := gameService.BuyItem(c.UserContext(), currentUser(c), req.ItemType, *req.Price)
		if err != nil {
			return respondError(c, err, "purchase failed")
		}
		return c.JSON(view)
	})...)

	shop.Post("/booster", withGuards(guards, func(c *fiber.Ctx) error {
		var req struct {
			Price *int64 `json:"price"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON", err)
		}
		if req.Price == nil {
			return badRequest(c, "invalid purchase", errPriceRequired)
		}

		pack, err := gameService.BuyBoosterPack(c.UserContext(), currentUser(c), *req.Price)
		if err != nil {
			return respondError(c, err, "booster purchase failed")
		}
		return c.JSON(pack)
	})...)

	shop.Get("/inventory", func(c *fiber.Ctx) error {
		view, err := gameService.GetInventory(c.UserContext(), currentUser(c))
		if err != nil {
			return respondError(c, err, "failed to get inventory")
		}
		return c.JSON(view)
	})
}
