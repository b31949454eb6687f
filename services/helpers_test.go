package services

import (
	"context"
	"testing"

	"pokemon-game-system/locks"
	"pokemon-game-system/models"
	"pokemon-game-system/progression"
	"pokemon-game-system/repository"

	"github.com/stretchr/testify/require"
)

// fixedRand answers every Bernoulli draw with win and every IntN with 0.
type fixedRand struct {
	win bool
}

func (r fixedRand) IntN(int) int            { return 0 }
func (r fixedRand) Bernoulli(float64) bool { return r.win }

type fixture struct {
	svc          *GameService
	players      *repository.MemoryPlayerRepository
	catalog      *repository.MemoryCatalogRepository
	achievements *repository.MemoryAchievementRepository
}

func newFixture(t *testing.T, win bool, pokemonIDs ...int) *fixture {
	t.Helper()

	catalog := make([]models.Pokemon, 0, len(pokemonIDs))
	for _, id := range pokemonIDs {
		catalog = append(catalog, models.Pokemon{ID: id, Name: "Pokemon"})
	}

	f := &fixture{
		players:      repository.NewMemoryPlayerRepository(),
		catalog:      repository.NewMemoryCatalogRepository(catalog...),
		achievements: repository.NewMemoryAchievementRepository(),
	}
	achievements := NewAchievementService(f.achievements)
	require.NoError(t, achievements.Seed(context.Background()))

	f.svc = NewGameService(
		f.players,
		f.catalog,
		achievements,
		progression.NewEngine(fixedRand{win: win}),
		locks.NewMemoryLocker(),
	)
	return f
}

// seed commits arbitrary starting state for userID.
func (f *fixture) seed(t *testing.T, userID string, edit func(p *models.PlayerState)) {
	t.Helper()
	ctx := context.Background()
	p, err := f.players.EnsurePlayer(ctx, userID)
	require.NoError(t, err)
	edit(p)
	require.NoError(t, f.players.Commit(ctx, &repository.Mutation{Player: p}))
}

func (f *fixture) state(t *testing.T, userID string) *models.PlayerState {
	t.Helper()
	p, err := f.players.EnsurePlayer(context.Background(), userID)
	require.NoError(t, err)
	return p
}

// conflictingRepo loses the version race a fixed number of times before delegating.
type conflictingRepo struct {
	*repository.MemoryPlayerRepository
	conflicts int
	commits   int
}

func (r *conflictingRepo) Commit(ctx context.Context, m *repository.Mutation) error {
	r.commits++
	if r.conflicts > 0 {
		r.conflicts--
		return repository.ErrVersionConflict
	}
	return r.MemoryPlayerRepository.Commit(ctx, m)
}
