package services

import (
	"context"
	"errors"
	"testing"

	"pokemon-game-system/models"
	"pokemon-game-system/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetsThreshold(t *testing.T) {
	starter := 1
	player := &models.PlayerState{
		Level:            5,
		StarterPokemon:   &starter,
		BattleStats:      models.BattleStats{Wins: 2, Losses: 40, Draws: 8},
		UnlockedPokemons: []int{1, 2, 3},
	}

	tests := []struct {
		name string
		req  map[string]int64
		want bool
	}{
		{"starter chosen", map[string]int64{"starter": 1}, true},
		{"wins met", map[string]int64{"wins": 2}, true},
		{"battles count all outcomes", map[string]int64{"battles": 50}, true},
		{"level met", map[string]int64{"level": 5}, true},
		{"unlocked short", map[string]int64{"unlocked": 10}, false},
		{"all keys must hold", map[string]int64{"wins": 1, "unlocked": 10}, false},
		{"unknown key", map[string]int64{"referrals": 1}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, meetsThreshold(player, tt.req))
		})
	}
}

func TestAchievementService_AwardsOnce(t *testing.T) {
	repo := repository.NewMemoryAchievementRepository()
	svc := NewAchievementService(repo)
	ctx := context.Background()

	player := &models.PlayerState{ExternalUserID: "ash", Level: 5, BattleStats: models.BattleStats{Wins: 1}}

	first := svc.Evaluate(ctx, player)
	assert.ElementsMatch(t, []string{"FIRST_WIN", "LEVEL_5"}, first)
	assert.Empty(t, svc.Evaluate(ctx, player))

	listed, err := svc.List(ctx, "ash")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	for _, a := range listed {
		assert.NotEmpty(t, a.Name)
	}
}

type failingAchievementRepo struct {
	*repository.MemoryAchievementRepository
}

func (failingAchievementRepo) Award(context.Context, string, string) (bool, error) {
	return false, errors.New("table locked")
}

func TestAchievementService_FailuresDoNotBreakMutations(t *testing.T) {
	f := newFixture(t, true)
	f.svc.Achievements = NewAchievementService(failingAchievementRepo{repository.NewMemoryAchievementRepository()})

	_, err := f.svc.ChooseStarter(context.Background(), "ash", 1)
	require.NoError(t, err)
	assert.NotNil(t, f.state(t, "ash").StarterPokemon)
}

func TestGameService_AwardsAchievementsAfterCommit(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, err := f.svc.ChooseStarter(ctx, "ash", 7)
	require.NoError(t, err)
	_, err = f.svc.ResolveBattle(ctx, "ash", 10, 7)
	require.NoError(t, err)

	listed, err := f.svc.Achievements.List(ctx, "ash")
	require.NoError(t, err)
	codes := make([]string, 0, len(listed))
	for _, a := range listed {
		codes = append(codes, a.Code)
	}
	assert.ElementsMatch(t, []string{"FIRST_STEPS", "FIRST_WIN"}, codes)
}
