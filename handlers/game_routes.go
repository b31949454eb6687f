package handlers

import (
	"strconv"

	"pokemon-game-system/middleware"
	"pokemon-game-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupGameRoutes registers the player progression routes. guards run before every
// mutating route (e.g. the rate limiter).
func SetupGameRoutes(app *fiber.App, gameService *services.GameService, achievementService *services.AchievementService, guards ...fiber.Handler) {
	// 🔐 Secured routes: require user context from the Gateway
	game := app.Group("/game", middleware.UserContextMiddleware())

	game.Post("/choose-starter", withGuards(guards, func(c *fiber.Ctx) error {
		var req struct {
			PokemonID int `json:"pokemonId"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON", err)
		}

		choice, err := gameService.ChooseStarter(c.UserContext(), currentUser(c), req.PokemonID)
		if err != nil {
			return respondError(c, err, "failed to choose starter")
		}
		return c.JSON(choice)
	})...)

	game.Post("/battle", withGuards(guards, func(c *fiber.Ctx) error {
		var req struct {
			OpponentID    int `json:"opponentId"`
			UsedPokemonID int `json:"usedPokemonId"`
			UserPokemonID int `json:"userPokemonId"` // older clients
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON", err)
		}
		used := req.UsedPokemonID
		if used == 0 {
			used = req.UserPokemonID
		}

		outcome, err := gameService.ResolveBattle(c.UserContext(), currentUser(c), req.OpponentID, used)
		if err != nil {
			return respondError(c, err, "battle failed")
		}
		return c.JSON(outcome)
	})...)

	game.Post("/battle/end", withGuards(guards, func(c *fiber.Ctx) error {
		var req struct {
			Result     string `json:"result"`
			XPEarned   int64  `json:"xpEarned"`
			GoldEarned int64  `json:"goldEarned"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON", err)
		}

		stats, err := gameService.EndBattle(c.UserContext(), currentUser(c), req.Result, req.XPEarned, req.GoldEarned)
		if err != nil {
			return respondError(c, err, "failed to end battle")
		}
		return c.JSON(stats)
	})...)

	game.Post("/open-booster", withGuards(guards, func(c *fiber.Ctx) error {
		opened, err := gameService.OpenBooster(c.UserContext(), currentUser(c))
		if err != nil {
			return respondError(c, err, "failed to open booster")
		}
		return c.JSON(opened)
	})...)

	game.Post("/use-potion/:type", withGuards(guards, func(c *fiber.Ctx) error {
		used, err := gameService.UsePotion(c.UserContext(), currentUser(c), c.Params("type"))
		if err != nil {
			return respondError(c, err, "failed to use potion")
		}
		return c.JSON(used)
	})...)

	game.Get("/progress", func(c *fiber.Ctx) error {
		progress, err := gameService.GetProgress(c.UserContext(), currentUser(c))
		if err != nil {
			return respondError(c, err, "failed to get progress")
		}
		return c.JSON(progress)
	})

	game.Get("/stats", func(c *fiber.Ctx) error {
		stats, err := gameService.GetStats(c.UserContext(), currentUser(c))
		if err != nil {
			return respondError(c, err, "failed to get stats")
		}
		return c.JSON(stats)
	})

	// limit must be an integer; values outside 1..MaxHistoryLimit fall back to the default.
	game.Get("/battles", func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(services.DefaultHistoryLimit)))
		if err != nil {
			return badRequest(c, "limit must be an integer", err)
		}
		battles, err := gameService.GetBattleHistory(c.UserContext(), currentUser(c), limit)
		if err != nil {
			return respondError(c, err, "failed to get battle history")
		}
		return c.JSON(fiber.Map{"battles": battles})
	})

	game.Get("/achievements", func(c *fiber.Ctx) error {
		achievements, err := achievementService.List(c.UserContext(), currentUser(c))
		if err != nil {
			return respondError(c, err, "failed to get achievements")
		}
		return c.JSON(fiber.Map{"achievements": achievements})
	})
}
