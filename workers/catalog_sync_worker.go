package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"pokemon-game-system/models"
	"pokemon-game-system/repository"
	"pokemon-game-system/services"
	"pokemon-game-system/utils"
)

// UpstreamPokemon matches one entry of the upstream catalog feed.
type UpstreamPokemon struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Types     []string `json:"types"`
	SpriteURL string   `json:"sprite_url"`
}

// CatalogFeedResponse is the top-level structure of the upstream catalog feed.
type CatalogFeedResponse struct {
	Pokemons []UpstreamPokemon `json:"pokemons"`
}

type CatalogSyncWorker struct {
	repo         repository.CatalogRepository
	sourceURL    string // e.g., "https://catalog.internal/api/v1/pokemons"
	serviceToken string
	httpClient   *http.Client
}

func NewCatalogSyncWorker(repo repository.CatalogRepository, sourceURL, serviceToken string) *CatalogSyncWorker {
	return &CatalogSyncWorker{
		repo:         repo,
		sourceURL:    sourceURL,
		serviceToken: serviceToken,
		httpClient:   utils.HTTPClient,
	}
}

// Sync fetches the upstream catalog and upserts every valid entry by id. It returns how
// many entries were written.
func (w *CatalogSyncWorker) Sync(ctx context.Context) (int, error) {
	log.Printf("[CATALOG_SYNC] ➡️  GET %s", w.sourceURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.sourceURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request to %s: %w", w.sourceURL, err)
	}
	if w.serviceToken != "" {
		req.Header.Set("X-Service-Token", w.serviceToken)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request to catalog source failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("catalog source non-200 response: %d: %s", resp.StatusCode, string(body))
	}

	var feed CatalogFeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return 0, fmt.Errorf("failed to decode catalog feed: %w", err)
	}

	if len(feed.Pokemons) == 0 {
		log.Printf("[CATALOG_SYNC] ✅ Upstream catalog is empty, nothing to do")
		return 0, nil
	}

	pokemons := make([]models.Pokemon, 0, len(feed.Pokemons))
	seen := make(map[int]bool, len(feed.Pokemons))
	var skipped int
	for _, remote := range feed.Pokemons {
		p, err := services.NormalizePokemon(services.PokemonInput{
			ID:        remote.ID,
			Name:      remote.Name,
			Types:     remote.Types,
			SpriteURL: remote.SpriteURL,
		})
		if err != nil || seen[p.ID] {
			skipped++
			log.Printf("[CATALOG_SYNC] ⚠️ Skipping entry id=%d name=%q: invalid or duplicate", remote.ID, remote.Name)
			continue
		}
		seen[p.ID] = true
		pokemons = append(pokemons, p)
	}

	if err := w.repo.Upsert(ctx, pokemons); err != nil {
		return 0, fmt.Errorf("failed to upsert catalog: %w", err)
	}

	log.Printf("[CATALOG_SYNC] ✅ Synced %d pokemon(s) (%d skipped)", len(pokemons), skipped)
	return len(pokemons), nil
}
