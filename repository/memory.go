package repository

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"pokemon-game-system/models"

	"github.com/google/uuid"
)

// MemoryPlayerRepository keeps player state in process. It honours the same version
// check as the gorm store and hands out copies, never its own pointers.
type MemoryPlayerRepository struct {
	mu        sync.Mutex
	players   map[string]*models.PlayerState
	battles   []models.BattleRecord
	purchases []models.PurchaseRecord

	// CommitErr, when set, fails every Commit before anything is written.
	CommitErr error
}

func NewMemoryPlayerRepository() *MemoryPlayerRepository {
	return &MemoryPlayerRepository{players: make(map[string]*models.PlayerState)}
}

func (r *MemoryPlayerRepository) EnsurePlayer(_ context.Context, externalUserID string) (*models.PlayerState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.players[externalUserID]; ok {
		return p.Clone(), nil
	}
	now := time.Now().UTC()
	p := &models.PlayerState{
		ID:               uuid.NewString(),
		ExternalUserID:   externalUserID,
		Level:            1,
		UnlockedPokemons: []int{},
		Version:          1,
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	r.players[externalUserID] = p
	return p.Clone(), nil
}

func (r *MemoryPlayerRepository) Commit(_ context.Context, m *Mutation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CommitErr != nil {
		return r.CommitErr
	}

	p := m.Player
	stored, ok := r.players[p.ExternalUserID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != p.Version {
		return ErrVersionConflict
	}

	p.RecomputeLevel()
	next := p.Clone()
	next.Version = p.Version + 1
	next.UpdatedAt = time.Now().UTC()
	r.players[p.ExternalUserID] = next

	for i := range m.Battles {
		b := &m.Battles[i]
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		if b.CreatedAt.IsZero() {
			b.CreatedAt = next.UpdatedAt
		}
		r.battles = append(r.battles, *b)
	}
	for i := range m.Purchases {
		pr := &m.Purchases[i]
		if pr.ID == "" {
			pr.ID = uuid.NewString()
		}
		if pr.CreatedAt.IsZero() {
			pr.CreatedAt = next.UpdatedAt
		}
		pr.Pokemons = slices.Clone(pr.Pokemons)
		r.purchases = append(r.purchases, *pr)
	}

	p.Version = next.Version
	p.UpdatedAt = next.UpdatedAt
	return nil
}

func (r *MemoryPlayerRepository) ListBattles(_ context.Context, playerID string, limit int) ([]models.BattleRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.BattleRecord, 0, limit)
	for i := len(r.battles) - 1; i >= 0 && len(out) < limit; i-- {
		if r.battles[i].PlayerID == playerID {
			out = append(out, r.battles[i])
		}
	}
	return out, nil
}

func (r *MemoryPlayerRepository) ListBattlesBetween(_ context.Context, from, to time.Time) ([]models.BattleRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.BattleRecord
	for _, b := range r.battles {
		if !b.CreatedAt.Before(from) && b.CreatedAt.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

// Purchases returns the logged purchases for a player, oldest first.
func (r *MemoryPlayerRepository) Purchases(playerID string) []models.PurchaseRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.PurchaseRecord
	for _, pr := range r.purchases {
		if pr.PlayerID == playerID {
			out = append(out, pr)
		}
	}
	return out
}

// AppendBattle stores a battle record as-is, for seeding history.
func (r *MemoryPlayerRepository) AppendBattle(b models.BattleRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.battles = append(r.battles, b)
}

type MemoryCatalogRepository struct {
	mu       sync.RWMutex
	pokemons map[int]models.Pokemon
}

func NewMemoryCatalogRepository(seed ...models.Pokemon) *MemoryCatalogRepository {
	r := &MemoryCatalogRepository{pokemons: make(map[int]models.Pokemon, len(seed))}
	for _, p := range seed {
		r.pokemons[p.ID] = p
	}
	return r
}

func (r *MemoryCatalogRepository) All(_ context.Context) ([]models.Pokemon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Pokemon, 0, len(r.pokemons))
	for _, p := range r.pokemons {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryCatalogRepository) Get(_ context.Context, id int) (*models.Pokemon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pokemons[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryCatalogRepository) Create(_ context.Context, p *models.Pokemon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pokemons[p.ID]; ok {
		return ErrAlreadyExists
	}
	r.pokemons[p.ID] = *p
	return nil
}

func (r *MemoryCatalogRepository) Update(_ context.Context, p *models.Pokemon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pokemons[p.ID]; !ok {
		return ErrNotFound
	}
	r.pokemons[p.ID] = *p
	return nil
}

func (r *MemoryCatalogRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pokemons[id]; !ok {
		return ErrNotFound
	}
	delete(r.pokemons, id)
	return nil
}

func (r *MemoryCatalogRepository) Upsert(_ context.Context, pokemons []models.Pokemon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range pokemons {
		r.pokemons[p.ID] = p
	}
	return nil
}

type MemoryAchievementRepository struct {
	mu      sync.Mutex
	types   map[string]models.AchievementType
	awarded map[string][]models.PlayerAchievement
}

func NewMemoryAchievementRepository() *MemoryAchievementRepository {
	return &MemoryAchievementRepository{
		types:   make(map[string]models.AchievementType),
		awarded: make(map[string][]models.PlayerAchievement),
	}
}

func (r *MemoryAchievementRepository) SeedTypes(_ context.Context, types []models.AchievementType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range types {
		r.types[t.Code] = t
	}
	return nil
}

func (r *MemoryAchievementRepository) Types(_ context.Context) ([]models.AchievementType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.AchievementType, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *MemoryAchievementRepository) Awarded(_ context.Context, playerID string) ([]models.PlayerAchievement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.awarded[playerID]), nil
}

func (r *MemoryAchievementRepository) Award(_ context.Context, playerID, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.awarded[playerID] {
		if a.Code == code {
			return false, nil
		}
	}
	r.awarded[playerID] = append(r.awarded[playerID], models.PlayerAchievement{
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		Code:      code,
		AwardedAt: time.Now().UTC(),
	})
	return true, nil
}
