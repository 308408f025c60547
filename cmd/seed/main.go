// Command seed loads the tournament schedule and the world ranking into the
// database. The API only reads tournaments; they are written here.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"golf-backend/internal/config"
	"golf-backend/internal/database"
	"golf-backend/internal/services"
	"golf-backend/internal/upstream"
)

func main() {
	skipPlayers := flag.Bool("skip-players", false, "only sync tournaments")
	flag.Parse()

	cfg := config.Load()

	db, err := database.Init(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	opts := upstream.Options{
		Timeout:       cfg.Upstream.Timeout,
		MaxAttempts:   cfg.Upstream.MaxAttempts,
		RetryInterval: cfg.Upstream.RetryInterval,
	}
	sportsData := upstream.NewSportsData(cfg.Upstream.SportsDataURL, cfg.Upstream.SportsDataKey, opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tournaments := services.NewTournamentService(db, sportsData, services.NewEnricher(nil))
	n, err := tournaments.SyncTournaments(ctx)
	if err != nil {
		log.Fatalf("Failed to sync tournaments: %v", err)
	}
	log.Printf("Synced %d tournaments", n)

	if *skipPlayers {
		return
	}

	liveGolf := upstream.NewLiveGolf(cfg.Upstream.LiveGolfURL, cfg.Upstream.RapidAPIKey, cfg.Upstream.RapidAPIHost, opts)
	players := services.NewPlayerService(db, liveGolf, sportsData, cfg.RankingYear)
	result, err := players.UpdatePlayers(ctx)
	if err != nil {
		log.Fatalf("Failed to update players: %v", err)
	}
	log.Printf("Stored %d players (%d skipped)", result.Stored, result.Skipped)
}
