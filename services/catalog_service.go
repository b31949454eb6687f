package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pokemon-game-system/models"
	"pokemon-game-system/progression"
	"pokemon-game-system/repository"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrPokemonNotFound = errors.New("pokemon not found")

// slugSubs spells out symbols slug.Make would otherwise drop.
var slugSubs = map[string]string{
	"♀": " female",
	"♂": " male",
}

// pokemonSlug is unique per dex number, so distinct Pokémon never share a slug.
func pokemonSlug(id int, name string) string {
	return slug.Make(fmt.Sprintf("%d %s", id, slug.Substitute(name, slugSubs)))
}

type CatalogService struct {
	Repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	return &CatalogService{Repo: repo}
}

// PokemonInput is the writable part of a catalog entry.
type PokemonInput struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Types     []string `json:"types"`
	SpriteURL string   `json:"sprite_url"`
}

// NormalizePokemon validates in and turns it into a catalog row: title-cased name,
// lower-cased deduplicated types and a slug derived from the dex number and name.
func NormalizePokemon(in PokemonInput) (models.Pokemon, error) {
	if in.ID <= 0 {
		return models.Pokemon{}, fmt.Errorf("%w: pokemon id must be positive", progression.ErrValidation)
	}
	name := strings.Join(strings.Fields(in.Name), " ")
	if name == "" {
		return models.Pokemon{}, fmt.Errorf("%w: pokemon name is required", progression.ErrValidation)
	}
	name = cases.Title(language.English).String(strings.ToLower(name))

	types := make([]string, 0, len(in.Types))
	seen := make(map[string]bool, len(in.Types))
	for _, t := range in.Types {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		types = append(types, t)
	}

	return models.Pokemon{
		ID:        in.ID,
		Name:      name,
		Slug:      pokemonSlug(in.ID, name),
		Types:     types,
		SpriteURL: strings.TrimSpace(in.SpriteURL),
	}, nil
}

func (s *CatalogService) List(ctx context.Context) ([]models.Pokemon, error) {
	pokemons, err := s.Repo.All(ctx)
	if err != nil {
		return nil, persistenceError("list pokemons", err)
	}
	if pokemons == nil {
		pokemons = []models.Pokemon{}
	}
	return pokemons, nil
}

func (s *CatalogService) Get(ctx context.Context, id int) (*models.Pokemon, error) {
	p, err := s.Repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrPokemonNotFound, id)
	}
	if err != nil {
		return nil, persistenceError("get pokemon", err)
	}
	return p, nil
}

func (s *CatalogService) Create(ctx context.Context, in PokemonInput) (*models.Pokemon, error) {
	p, err := NormalizePokemon(in)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: pokemon %d already exists", progression.ErrValidation, p.ID)
		}
		return nil, persistenceError("create pokemon", err)
	}
	return &p, nil
}

// Update replaces the entry with the given id; the id in the body is ignored.
func (s *CatalogService) Update(ctx context.Context, id int, in PokemonInput) (*models.Pokemon, error) {
	in.ID = id
	p, err := NormalizePokemon(in)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrPokemonNotFound, id)
		}
		return nil, persistenceError("update pokemon", err)
	}
	return &p, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrPokemonNotFound, id)
		}
		return persistenceError("delete pokemon", err)
	}
	return nil
}
