package progression

import "pokemon-game-system/models"

// scriptedRand replays fixed answers; once a script runs out it answers 0 / false.
type scriptedRand struct {
	ints  []int
	bools []bool
}

func (s *scriptedRand) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedRand) Bernoulli(float64) bool {
	if len(s.bools) == 0 {
		return false
	}
	v := s.bools[0]
	s.bools = s.bools[1:]
	return v
}

func newPlayer() *models.PlayerState {
	return &models.PlayerState{ExternalUserID: "player-1", Level: 1, Version: 1}
}

func catalogOf(ids ...int) []models.Pokemon {
	out := make([]models.Pokemon, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Pokemon{ID: id, Name: "pokemon"})
	}
	return out
}
