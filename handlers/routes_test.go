package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pokemon-game-system/locks"
	"pokemon-game-system/models"
	"pokemon-game-system/progression"
	"pokemon-game-system/repository"
	"pokemon-game-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alwaysWin struct{}

func (alwaysWin) IntN(int) int            { return 0 }
func (alwaysWin) Bernoulli(float64) bool { return true }

type testServer struct {
	app     *fiber.App
	players *repository.MemoryPlayerRepository
}

func newTestServer(t *testing.T, pokemonIDs ...int) *testServer {
	t.Helper()

	catalog := make([]models.Pokemon, 0, len(pokemonIDs))
	for _, id := range pokemonIDs {
		catalog = append(catalog, models.Pokemon{ID: id, Name: fmt.Sprintf("Pokemon %d", id)})
	}
	players := repository.NewMemoryPlayerRepository()
	catalogRepo := repository.NewMemoryCatalogRepository(catalog...)
	achievements := services.NewAchievementService(repository.NewMemoryAchievementRepository())

	gameService := services.NewGameService(players, catalogRepo, achievements, progression.NewEngine(alwaysWin{}), locks.NewMemoryLocker())

	app := fiber.New()
	SetupGameRoutes(app, gameService, achievements)
	SetupShopRoutes(app, gameService)
	SetupPokemonRoutes(app, services.NewCatalogService(catalogRepo))
	return &testServer{app: app, players: players}
}

func (s *testServer) do(t *testing.T, method, path, user, roles, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	if roles != "" {
		req.Header.Set("X-User-Roles", roles)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (s *testServer) seed(t *testing.T, user string, edit func(p *models.PlayerState)) {
	t.Helper()
	ctx := context.Background()
	p, err := s.players.EnsurePlayer(ctx, user)
	require.NoError(t, err)
	edit(p)
	require.NoError(t, s.players.Commit(ctx, &repository.Mutation{Player: p}))
}

func TestGameRoutes_RequireUser(t *testing.T) {
	s := newTestServer(t)
	status, _ := s.do(t, http.MethodGet, "/game/progress", "", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestGameRoutes_StarterAndBattle(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/game/choose-starter", "ash", "", `{"pokemonId":1}`)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.EqualValues(t, 1, body["starterPokemon"])

	status, body = s.do(t, http.MethodPost, "/game/choose-starter", "ash", "", `{"pokemonId":4}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "already_chosen", body["code"])

	status, body = s.do(t, http.MethodPost, "/game/battle", "ash", "", `{"opponentId":16,"userPokemonId":1}`)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "win", body["result"])
	assert.EqualValues(t, 100, body["xpEarned"])
	assert.EqualValues(t, 1, body["boostersOwned"])

	status, body = s.do(t, http.MethodPost, "/game/battle", "ash", "", `{"opponentId":16,"usedPokemonId":150}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "not_owned", body["code"])

	status, body = s.do(t, http.MethodGet, "/game/battles?limit=5", "ash", "", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["battles"], 1)

	status, body = s.do(t, http.MethodGet, "/game/battles?limit=ten", "ash", "", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "validation_error", body["code"])

	status, body = s.do(t, http.MethodGet, "/game/battles?limit=0", "ash", "", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["battles"], 1)

	status, body = s.do(t, http.MethodGet, "/game/achievements", "ash", "", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["achievements"], 2)
}

func TestGameRoutes_EndBattleAndStats(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/game/battle/end", "ash", "", `{"result":"draw","xpEarned":1000,"goldEarned":25}`)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.EqualValues(t, 2, body["level"])

	status, body = s.do(t, http.MethodPost, "/game/battle/end", "ash", "", `{"result":"flee","xpEarned":1,"goldEarned":0}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "validation_error", body["code"])

	status, body = s.do(t, http.MethodGet, "/game/stats", "ash", "", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 25, body["gold"])
	stats := body["battleStats"].(map[string]any)
	assert.EqualValues(t, 1, stats["draws"])
}

func TestGameRoutes_Potions(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, "ash", func(p *models.PlayerState) { p.Inventory.Potions = 1 })

	status, body := s.do(t, http.MethodPost, "/game/use-potion/1", "ash", "", "")
	require.Equal(t, fiber.StatusOK, status, body)
	assert.EqualValues(t, 20, body["hpRestored"])

	status, body = s.do(t, http.MethodPost, "/game/use-potion/1", "ash", "", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "out_of_stock", body["code"])

	status, _ = s.do(t, http.MethodPost, "/game/use-potion/9", "ash", "", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestShopRoutes(t *testing.T) {
	s := newTestServer(t, 1, 2, 3, 4)
	s.seed(t, "ash", func(p *models.PlayerState) { p.Gold = 100 })

	status, body := s.do(t, http.MethodPost, "/shop/buy", "ash", "", `{"itemType":"potion","price":150}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "insufficient_gold", body["code"])

	status, _ = s.do(t, http.MethodPost, "/shop/buy", "ash", "", `{"itemType":"potion"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = s.do(t, http.MethodPost, "/shop/buy", "ash", "", `{"itemType":"hyperPotion","price":40}`)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.EqualValues(t, 60, body["gold"])

	status, body = s.do(t, http.MethodPost, "/shop/booster", "ash", "", `{"price":50}`)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Len(t, body["newPokemons"], 4)

	status, body = s.do(t, http.MethodPost, "/shop/booster", "ash", "", `{"price":0}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "catalog_exhausted", body["code"])

	status, body = s.do(t, http.MethodGet, "/shop/inventory", "ash", "", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 10, body["gold"])
	inv := body["inventory"].(map[string]any)
	assert.EqualValues(t, 1, inv["hyperPotions"])
	assert.EqualValues(t, 1, inv["boosters"])
}

func TestPokemonRoutes(t *testing.T) {
	s := newTestServer(t, 1)

	status, _ := s.do(t, http.MethodGet, "/pokemons/1", "", "", "")
	assert.Equal(t, fiber.StatusOK, status)

	status, body := s.do(t, http.MethodGet, "/pokemons/404", "", "", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "not_found", body["code"])

	status, _ = s.do(t, http.MethodPost, "/pokemons", "", "", `{"id":25,"name":"pikachu"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body = s.do(t, http.MethodPost, "/pokemons", "ash", "", `{"id":25,"name":"pikachu","types":["Electric"]}`)
	require.Equal(t, fiber.StatusCreated, status, body)
	assert.Equal(t, "Pikachu", body["name"])
	assert.Equal(t, "25-pikachu", body["slug"])

	status, _ = s.do(t, http.MethodPut, "/admin/pokemons/25", "ash", "player", `{"name":"Raichu"}`)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = s.do(t, http.MethodPut, "/admin/pokemons/25", "oak", "admin", `{"name":"raichu"}`)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "Raichu", body["name"])

	status, _ = s.do(t, http.MethodDelete, "/admin/pokemons/25", "oak", "admin", "")
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = s.do(t, http.MethodGet, "/pokemons/25", "", "", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: bad", progression.ErrValidation), fiber.StatusBadRequest, "validation_error"},
		{fmt.Errorf("%w: x", progression.ErrCatalogExhausted), fiber.StatusConflict, "catalog_exhausted"},
		{fmt.Errorf("%w: db down", progression.ErrPersistence), fiber.StatusServiceUnavailable, "persistence_error"},
		{fmt.Errorf("%w: 7", services.ErrPokemonNotFound), fiber.StatusNotFound, "not_found"},
		{errors.New("boom"), fiber.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		status, code := classify(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}
