package handlers

import (
	"errors"
	"log"

	"pokemon-game-system/progression"
	"pokemon-game-system/services"

	"github.com/gofiber/fiber/v2"
)

// errorKinds maps engine and service errors to an HTTP status and a stable code.
var errorKinds = []struct {
	err    error
	status int
	code   string
}{
	{progression.ErrValidation, fiber.StatusBadRequest, "validation_error"},
	{progression.ErrNotOwned, fiber.StatusBadRequest, "not_owned"},
	{progression.ErrOutOfStock, fiber.StatusBadRequest, "out_of_stock"},
	{progression.ErrInsufficientGold, fiber.StatusBadRequest, "insufficient_gold"},
	{progression.ErrAlreadyChosen, fiber.StatusBadRequest, "already_chosen"},
	{progression.ErrCatalogExhausted, fiber.StatusConflict, "catalog_exhausted"},
	{services.ErrPokemonNotFound, fiber.StatusNotFound, "not_found"},
	{progression.ErrPersistence, fiber.StatusServiceUnavailable, "persistence_error"},
}

func classify(err error) (int, string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.status, k.code
		}
	}
	return fiber.StatusInternalServerError, "internal_error"
}

func respondError(c *fiber.Ctx, err error, message string) error {
	status, code := classify(err)
	if status >= fiber.StatusInternalServerError {
		log.Printf("❌ [HTTP] %s %s: %s: %v", c.Method(), c.Path(), message, err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": message,
		"code":  code,
		"cause": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string, cause error) error {
	body := fiber.Map{"error": message, "code": "validation_error"}
	if cause != nil {
		body["cause"] = cause.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

func currentUser(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// withGuards returns guards followed by h without aliasing the guards slice.
func withGuards(guards []fiber.Handler, h fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(guards)+1)
	out = append(out, guards...)
	return append(out, h)
}
