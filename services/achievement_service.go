package services

import (
	"context"
	"log"

	"pokemon-game-system/models"
	"pokemon-game-system/repository"
)

type AchievementService struct {
	Repo     repository.AchievementRepository
	Triggers []models.AchievementType
}

func NewAchievementService(repo repository.AchievementRepository) *AchievementService {
	return &AchievementService{Repo: repo, Triggers: models.AchievementTriggers}
}

// Seed upserts the trigger definitions so the catalog of achievements is queryable.
func (s *AchievementService) Seed(ctx context.Context) error {
	return s.Repo.SeedTypes(ctx, s.Triggers)
}

// Evaluate awards every trigger the player now meets and returns the newly awarded codes.
// Failures are logged and skipped; they never undo the mutation that led here.
func (s *AchievementService) Evaluate(ctx context.Context, player *models.PlayerState) []string {
	var awarded []string
	for _, trigger := range s.Triggers {
		if !meetsThreshold(player, trigger.Threshold) {
			continue
		}
		fresh, err := s.Repo.Award(ctx, player.ExternalUserID, trigger.Code)
		if err != nil {
			log.Printf("⚠️ [ACHIEVEMENT] Failed to award %s to %s: %v", trigger.Code, player.ExternalUserID, err)
			continue
		}
		if fresh {
			awarded = append(awarded, trigger.Code)
			log.Printf("🎖️ [ACHIEVEMENT] %s → %s", trigger.Name, player.ExternalUserID)
		}
	}
	return awarded
}

type AwardedAchievement struct {
	models.PlayerAchievement
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      string `json:"rarity"`
}

func (s *AchievementService) List(ctx context.Context, playerID string) ([]AwardedAchievement, error) {
	awarded, err := s.Repo.Awarded(ctx, playerID)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]models.AchievementType, len(s.Triggers))
	for _, t := range s.Triggers {
		byCode[t.Code] = t
	}

	out := make([]AwardedAchievement, 0, len(awarded))
	for _, a := range awarded {
		t := byCode[a.Code]
		out = append(out, AwardedAchievement{
			PlayerAchievement: a,
			Name:              t.Name,
			Description:       t.Description,
			Rarity:            t.Rarity,
		})
	}
	return out, nil
}

// meetsThreshold requires every key of req to be satisfied. Unknown keys never match.
func meetsThreshold(p *models.PlayerState, req map[string]int64) bool {
	if len(req) == 0 {
		return false
	}
	for key, required := range req {
		var have int64
		switch key {
		case "starter":
			if p.StarterPokemon != nil {
				have = 1
			}
		case "wins":
			have = p.BattleStats.Wins
		case "battles":
			have = p.BattleStats.Total()
		case "level":
			have = int64(p.Level)
		case "unlocked":
			have = int64(len(p.UnlockedPokemons))
		default:
			return false
		}
		if have < required {
			return false
		}
	}
	return true
}
