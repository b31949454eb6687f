package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"pokemon-game-system/models"
	"pokemon-game-system/repository"
	"pokemon-game-system/utils"

	"github.com/google/uuid"
)

// BattleArchive is the JSON document uploaded for one UTC day of battles.
type BattleArchive struct {
	Date    string                `json:"date"`
	Count   int                   `json:"count"`
	Battles []models.BattleRecord `json:"battles"`
}

type BattleArchiver struct {
	Players repository.PlayerRepository
	Store   utils.ObjectStore
	Now     func() time.Time
}

func NewBattleArchiver(players repository.PlayerRepository, store utils.ObjectStore) *BattleArchiver {
	return &BattleArchiver{Players: players, Store: store, Now: time.Now}
}

// ArchiveDay uploads the battles of the UTC day containing day and returns the object key.
// A day without battles uploads nothing and returns an empty key.
func (a *BattleArchiver) ArchiveDay(ctx context.Context, day time.Time) (string, error) {
	y, m, d := day.UTC().Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	date := from.Format(time.DateOnly)

	battles, err := a.Players.ListBattlesBetween(ctx, from, to)
	if err != nil {
		return "", fmt.Errorf("failed to list battles for %s: %w", date, err)
	}
	if len(battles) == 0 {
		log.Printf("[ARCHIVE] No battles on %s, skipping upload", date)
		return "", nil
	}

	body, err := json.Marshal(BattleArchive{Date: date, Count: len(battles), Battles: battles})
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("battles/%s/%s.json", date, uuid.NewString())
	if err := a.Store.Put(ctx, key, body, "application/json"); err != nil {
		return "", err
	}
	log.Printf("📦 [ARCHIVE] Uploaded %d battle(s) for %s → %s", len(battles), date, key)
	return key, nil
}

// ArchiveYesterday archives the previous UTC day.
func (a *BattleArchiver) ArchiveYesterday(ctx context.Context) (string, error) {
	return a.ArchiveDay(ctx, a.Now().UTC().AddDate(0, 0, -1))
}
