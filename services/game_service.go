package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"pokemon-game-system/locks"
	"pokemon-game-system/models"
	"pokemon-game-system/progression"
	"pokemon-game-system/repository"

	"github.com/google/uuid"
)

// maxCommitAttempts bounds how often a mutation is recomputed after losing a version race.
const maxCommitAttempts = 3

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type GameService struct {
	Players      repository.PlayerRepository
	Catalog      repository.CatalogRepository
	Achievements *AchievementService // optional
	Engine       *progression.Engine
	Locks        locks.Locker
}

func NewGameService(
	players repository.PlayerRepository,
	catalog repository.CatalogRepository,
	achievements *AchievementService,
	engine *progression.Engine,
	locker locks.Locker,
) *GameService {
	return &GameService{
		Players:      players,
		Catalog:      catalog,
		Achievements: achievements,
		Engine:       engine,
		Locks:        locker,
	}
}

type BattleOutcome struct {
	Battle        models.BattleRecord `json:"battle"`
	Result        models.BattleResult `json:"result"`
	XPEarned      int64               `json:"xpEarned"`
	NewLevel      int                 `json:"newLevel"`
	BoosterWon    bool                `json:"boosterWon"`
	BoostersOwned int64               `json:"boostersOwned"`
}

type BoosterOpening struct {
	NewPokemon        models.DrawnPokemon `json:"newPokemon"`
	RemainingBoosters int64               `json:"remainingBoosters"`
}

type Progress struct {
	XP                int64            `json:"xp"`
	Level             int              `json:"level"`
	UnlockedPokemons  []int            `json:"unlockedPokemons"`
	Inventory         models.Inventory `json:"inventory"`
	StarterPokemon    *int             `json:"starterPokemon"`
	TutorialCompleted bool             `json:"tutorialCompleted"`
}

type Stats struct {
	BattleStats models.BattleStats `json:"battleStats"`
	XP          int64              `json:"xp"`
	Level       int                `json:"level"`
	Gold        int64              `json:"gold"`
}

type PotionUse struct {
	Inventory  models.Inventory `json:"inventory"`
	HPRestored int              `json:"hpRestored"`
	Message    string           `json:"message"`
}

type InventoryView struct {
	Gold      int64            `json:"gold"`
	Inventory models.Inventory `json:"inventory"`
}

type PackPurchase struct {
	Gold        int64                 `json:"gold"`
	Inventory   models.Inventory      `json:"inventory"`
	NewPokemons []models.DrawnPokemon `json:"newPokemons"`
}

type StarterChoice struct {
	StarterPokemon   int   `json:"starterPokemon"`
	UnlockedPokemons []int `json:"unlockedPokemons"`
}

// mutate runs apply against a freshly loaded PlayerState and commits the result together
// with whatever records apply appended to the mutation. A business error from apply aborts
// with nothing written. A lost version race reloads and reapplies, up to maxCommitAttempts.
func (s *GameService) mutate(ctx context.Context, userID, op string, apply func(p *models.PlayerState, m *repository.Mutation) error) (*models.PlayerState, error) {
	unlock, err := s.Locks.Lock(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: acquire player lock: %v", progression.ErrPersistence, err)
	}
	defer unlock()

	for attempt := 1; ; attempt++ {
		player, err := s.Players.EnsurePlayer(ctx, userID)
		if err != nil {
			return nil, persistenceError("load player", err)
		}

		m := &repository.Mutation{Player: player}
		if err := apply(player, m); err != nil {
			log.Printf("🚫 [PLAYER] %s rejected for %s: %v", op, userID, err)
			return nil, err
		}

		err = s.Players.Commit(ctx, m)
		if err == nil {
			log.Printf("✅ [PLAYER] %s committed for %s → XP=%d, Lvl=%d, Gold=%d, v%d",
				op, userID, player.XP, player.Level, player.Gold, player.Version)
			if s.Achievements != nil {
				s.Achievements.Evaluate(ctx, player)
			}
			return player, nil
		}

		if errors.Is(err, repository.ErrVersionConflict) && attempt < maxCommitAttempts {
			log.Printf("🔁 [PLAYER] %s lost a version race for %s, retrying (%d/%d)", op, userID, attempt, maxCommitAttempts)
			continue
		}
		log.Printf("❌ [PLAYER] %s commit failed for %s: %v", op, userID, err)
		return nil, persistenceError("commit "+op, err)
	}
}

func (s *GameService) load(ctx context.Context, userID string) (*models.PlayerState, error) {
	player, err := s.Players.EnsurePlayer(ctx, userID)
	if err != nil {
		return nil, persistenceError("load player", err)
	}
	return player, nil
}

func (s *GameService) catalog(ctx context.Context) ([]models.Pokemon, error) {
	pokemons, err := s.Catalog.All(ctx)
	if err != nil {
		return nil, persistenceError("load catalog", err)
	}
	return pokemons, nil
}

func persistenceError(action string, err error) error {
	return fmt.Errorf("%w: %s: %v", progression.ErrPersistence, action, err)
}

// ChooseStarter picks the player's first Pokémon from ValidStarters.
func (s *GameService) ChooseStarter(ctx context.Context, userID string, pokemonID int) (*StarterChoice, error) {
	player, err := s.mutate(ctx, userID, "choose-starter", func(p *models.PlayerState, _ *repository.Mutation) error {
		return progression.ChooseStarter(p, pokemonID)
	})
	if err != nil {
		return nil, err
	}
	return &StarterChoice{StarterPokemon: *player.StarterPokemon, UnlockedPokemons: player.UnlockedPokemons}, nil
}

// ResolveBattle decides a battle, records it and applies the rewards in one commit.
func (s *GameService) ResolveBattle(ctx context.Context, userID string, opponentID, usedPokemonID int) (*BattleOutcome, error) {
	var out BattleOutcome
	player, err := s.mutate(ctx, userID, "battle", func(p *models.PlayerState, m *repository.Mutation) error {
		result, xp, err := s.Engine.Resolver.Resolve(p, opponentID, usedPokemonID)
		if err != nil {
			return err
		}
		boosterWon, err := s.Engine.Ledger.ApplyBattleResult(p, result, xp)
		if err != nil {
			return err
		}

		record := models.BattleRecord{
			ID:            uuid.NewString(),
			PlayerID:      userID,
			OpponentID:    opponentID,
			UsedPokemonID: usedPokemonID,
			Result:        result,
			XPEarned:      xp,
			CreatedAt:     time.Now().UTC(),
		}
		m.Battles = append(m.Battles, record)

		out = BattleOutcome{Battle: record, Result: result, XPEarned: xp, BoosterWon: boosterWon}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out.NewLevel = player.Level
	out.BoostersOwned = player.Inventory.Boosters
	return &out, nil
}

// EndBattle applies a battle outcome decided by the client. No booster is rolled.
func (s *GameService) EndBattle(ctx context.Context, userID string, result string, xpEarned, goldEarned int64) (*Stats, error) {
	outcome := models.BattleResult(strings.ToLower(strings.TrimSpace(result)))
	if goldEarned < 0 {
		return nil, fmt.Errorf("%w: goldEarned cannot be negative", progression.ErrValidation)
	}

	player, err := s.mutate(ctx, userID, "battle-end", func(p *models.PlayerState, _ *repository.Mutation) error {
		if err := progression.CheckGold(p, goldEarned); err != nil {
			return err
		}
		if err := s.Engine.Ledger.RecordOutcome(p, outcome, xpEarned); err != nil {
			return err
		}
		return progression.ApplyGold(p, goldEarned)
	})
	if err != nil {
		return nil, err
	}
	return statsOf(player), nil
}

// OpenBooster spends one owned booster on a single random Pokémon.
func (s *GameService) OpenBooster(ctx context.Context, userID string) (*BoosterOpening, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	var drawn models.DrawnPokemon
	player, err := s.mutate(ctx, userID, "open-booster", func(p *models.PlayerState, _ *repository.Mutation) error {
		var err error
		drawn, err = s.Engine.Boosters.OpenOwned(p, catalog)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &BoosterOpening{NewPokemon: drawn, RemainingBoosters: player.Inventory.Boosters}, nil
}

// UsePotion consumes one potion. kind is a potion name or its tier ("1", "2", "3").
func (s *GameService) UsePotion(ctx context.Context, userID, kind string) (*PotionUse, error) {
	k, err := progression.ParseItemKind(kind)
	if err != nil {
		return nil, err
	}
	if !k.IsPotion() {
		return nil, fmt.Errorf("%w: %s is not a potion", progression.ErrValidation, k)
	}

	var effect progression.Effect
	player, err := s.mutate(ctx, userID, "use-potion", func(p *models.PlayerState, _ *repository.Mutation) error {
		var err error
		effect, err = progression.Consume(p, k)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &PotionUse{
		Inventory:  player.Inventory,
		HPRestored: effect.HPRestored,
		Message:    fmt.Sprintf("Used a %s and restored %d HP", effect.Kind, effect.HPRestored),
	}, nil
}

// BuyItem buys one potion for price gold.
func (s *GameService) BuyItem(ctx context.Context, userID, item string, price int64) (*InventoryView, error) {
	k, err := progression.ParseItemKind(item)
	if err != nil {
		return nil, err
	}

	player, err := s.mutate(ctx, userID, "shop-buy", func(p *models.PlayerState, m *repository.Mutation) error {
		if err := s.Engine.Shop.PurchaseItem(p, k, price); err != nil {
			return err
		}
		m.Purchases = append(m.Purchases, models.PurchaseRecord{
			ID:        uuid.NewString(),
			PlayerID:  userID,
			Kind:      models.PurchaseKindItem,
			Item:      k.String(),
			Price:     price,
			CreatedAt: time.Now().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("🛒 [SHOP] %s bought a %s for %d gold", userID, k, price)
	return &InventoryView{Gold: player.Gold, Inventory: player.Inventory}, nil
}

// BuyBoosterPack buys a pack of PackSize Pokémon the player does not own yet.
func (s *GameService) BuyBoosterPack(ctx context.Context, userID string, price int64) (*PackPurchase, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	var pack []models.DrawnPokemon
	player, err := s.mutate(ctx, userID, "shop-booster", func(p *models.PlayerState, m *repository.Mutation) error {
		var err error
		pack, err = s.Engine.Shop.PurchaseBoosterPack(p, price, catalog)
		if err != nil {
			return err
		}
		m.Purchases = append(m.Purchases, models.PurchaseRecord{
			ID:        uuid.NewString(),
			PlayerID:  userID,
			Kind:      models.PurchaseKindBoosterPack,
			Price:     price,
			Pokemons:  pack,
			CreatedAt: time.Now().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("🛒 [SHOP] %s bought a booster pack for %d gold (%d new Pokémon)", userID, price, len(pack))
	return &PackPurchase{Gold: player.Gold, Inventory: player.Inventory, NewPokemons: pack}, nil
}

func (s *GameService) GetProgress(ctx context.Context, userID string) (*Progress, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked := p.UnlockedPokemons
	if unlocked == nil {
		unlocked = []int{}
	}
	return &Progress{
		XP:                p.XP,
		Level:             p.Level,
		UnlockedPokemons:  unlocked,
		Inventory:         p.Inventory,
		StarterPokemon:    p.StarterPokemon,
		TutorialCompleted: p.TutorialCompleted,
	}, nil
}

func (s *GameService) GetStats(ctx context.Context, userID string) (*Stats, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return statsOf(p), nil
}

func (s *GameService) GetInventory(ctx context.Context, userID string) (*InventoryView, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &InventoryView{Gold: p.Gold, Inventory: p.Inventory}, nil
}

// GetBattleHistory returns the newest battles first; an out-of-range limit falls back to the default.
func (s *GameService) GetBattleHistory(ctx context.Context, userID string, limit int) ([]models.BattleRecord, error) {
	if limit < 1 || limit > MaxHistoryLimit {
		limit = DefaultHistoryLimit
	}
	battles, err := s.Players.ListBattles(ctx, userID, limit)
	if err != nil {
		return nil, persistenceError("list battles", err)
	}
	if battles == nil {
		battles = []models.BattleRecord{}
	}
	return battles, nil
}

func statsOf(p *models.PlayerState) *Stats {
	return &Stats{BattleStats: p.BattleStats, XP: p.XP, Level: p.Level, Gold: p.Gold}
}
