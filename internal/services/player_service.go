package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"golf-backend/internal/database"
	"golf-backend/internal/dto"
	"golf-backend/internal/models"
	"golf-backend/internal/upstream"

	"github.com/hashicorp/go-multierror"
)

type RankingFeed interface {
	WorldRanking(ctx context.Context, year int) (upstream.Ranking, error)
	PlayerProfile(ctx context.Context, playerID string) (json.RawMessage, error)
}

type PlayerDirectory interface {
	Players(ctx context.Context) ([]upstream.SportsDataPlayer, error)
	PlayerSeasonStats(ctx context.Context, playerID string) (json.RawMessage, error)
}

type PlayerService struct {
	db          *database.DB
	ranking     RankingFeed
	directory   PlayerDirectory
	rankingYear int
}

func NewPlayerService(db *database.DB, ranking RankingFeed, directory PlayerDirectory, rankingYear int) *PlayerService {
	if rankingYear <= 0 {
		rankingYear = time.Now().Year()
	}
	return &PlayerService{db: db, ranking: ranking, directory: directory, rankingYear: rankingYear}
}

const playerColumns = `id, first_name, last_name, country, current_rank, previous_rank, rank_trend,
	total_points, average_points, total_events, flag_url, updated_at`

func (s *PlayerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players := []models.Player{}
	query := "select " + playerColumns + " from players order by current_rank, last_name"

	if err := s.db.SelectContext(ctx, &players, query); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	var player models.Player
	query := "select " + playerColumns + " from players where id = ?"

	if err := s.db.GetContext(ctx, &player, s.db.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &player, nil
}

// PlayerDetails returns the stored player with the provider profile attached
// when it can be fetched.
func (s *PlayerService) PlayerDetails(ctx context.Context, id string) (*dto.PlayerDetailsResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalid("player id is required")
	}

	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &dto.PlayerDetailsResponse{Player: *player}
	profile, err := s.ranking.PlayerProfile(ctx, id)
	if err != nil {
		log.Printf("[players] profile for %s unavailable: %v", id, err)
	} else if len(profile) > 0 {
		details.Profile = profile
	}
	return details, nil
}

// UpdatePlayers replaces the players table with the current world ranking.
// The table is left untouched when the feed cannot be fetched or is empty.
func (s *PlayerService) UpdatePlayers(ctx context.Context) (*dto.PlayersUpdateResponse, error) {
	ranking, err := s.ranking.WorldRanking(ctx, s.rankingYear)
	if err != nil {
		return nil, err
	}

	skipped := ranking.Skipped
	players := make([]models.Player, 0, len(ranking.Entries))
	seen := make(map[string]bool, len(ranking.Entries))
	now := time.Now().UTC()

	for _, entry := range ranking.Entries {
		id := strings.TrimSpace(string(entry.PlayerID))
		if seen[id] {
			skipped = multierror.Append(skipped, fmt.Errorf("player %s: duplicate row", id))
			continue
		}
		seen[id] = true
		players = append(players, toPlayer(entry, now))
	}

	if skipped.ErrorOrNil() != nil {
		log.Printf("[players] skipped %d ranking rows: %v", skipped.Len(), skipped)
	}
	if len(players) == 0 {
		return nil, ErrEmptyRanking
	}

	if err := s.replacePlayers(ctx, players); err != nil {
		return nil, err
	}

	log.Printf("[players] stored %d players", len(players))
	resp := &dto.PlayersUpdateResponse{Stored: len(players)}
	if skipped != nil {
		resp.Skipped = skipped.Len()
	}
	return resp, nil
}

func (s *PlayerService) replacePlayers(ctx context.Context, players []models.Player) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "delete from players"); err != nil {
		return fmt.Errorf("failed to clear players: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
		insert into players (id, first_name, last_name, country, current_rank, previous_rank, rank_trend,
			total_points, average_points, total_events, flag_url, updated_at)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare player insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range players {
		_, err := stmt.ExecContext(ctx, p.ID, p.FirstName, p.LastName, p.Country, p.CurrentRank, p.PreviousRank,
			p.RankTrend, p.TotalPoints, p.AveragePoints, p.TotalEvents, p.FlagURL, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit players: %w", err)
	}
	return nil
}

func toPlayer(entry upstream.RankingEntry, updatedAt time.Time) models.Player {
	p := models.Player{
		ID:            strings.TrimSpace(string(entry.PlayerID)),
		FirstName:     strings.TrimSpace(entry.FirstName),
		LastName:      strings.TrimSpace(entry.LastName),
		Country:       entry.Country,
		CurrentRank:   entry.Rank.Int(),
		PreviousRank:  entry.PreviousRank.Int(),
		TotalPoints:   entry.TotalPoints.Float(),
		AveragePoints: entry.AvgPoints.Float(),
		TotalEvents:   entry.Events.Int(),
		FlagURL:       entry.FlagURL,
		UpdatedAt:     updatedAt,
	}
	p.RankTrend = rankTrend(p.CurrentRank, p.PreviousRank)
	return p
}

// rankTrend compares ranks where a lower number is better.
func rankTrend(current, previous int) models.RankTrend {
	switch {
	case previous <= 0:
		return models.TrendNew
	case current < previous:
		return models.TrendUp
	case current > previous:
		return models.TrendDown
	default:
		return models.TrendSame
	}
}

func (s *PlayerService) SearchPlayers(ctx context.Context, q string) ([]upstream.SportsDataPlayer, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil, invalid("query is required")
	}

	all, err := s.directory.Players(ctx)
	if err != nil {
		return nil, err
	}

	matches := []upstream.SportsDataPlayer{}
	for _, p := range all {
		first := strings.ToLower(p.FirstName)
		last := strings.ToLower(p.LastName)
		if strings.Contains(first, q) || strings.Contains(last, q) || strings.Contains(first+" "+last, q) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// ComparePlayers returns the directory entries for ids, in directory order.
func (s *PlayerService) ComparePlayers(ctx context.Context, ids []string) ([]upstream.SportsDataPlayer, error) {
	wanted := make(map[int64]bool, len(ids))
	for _, raw := range ids {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, invalid(fmt.Sprintf("invalid player id %q", raw))
		}
		wanted[id] = true
	}
	if len(wanted) == 0 {
		return nil, invalid("at least one player id is required")
	}

	all, err := s.directory.Players(ctx)
	if err != nil {
		return nil, err
	}

	matches := []upstream.SportsDataPlayer{}
	for _, p := range all {
		if wanted[p.PlayerID] {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (s *PlayerService) SeasonStats(ctx context.Context, playerID string) (json.RawMessage, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, invalid("player id is required")
	}
	return s.directory.PlayerSeasonStats(ctx, playerID)
}
