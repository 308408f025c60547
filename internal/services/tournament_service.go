package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golf-backend/internal/database"
	"golf-backend/internal/models"
	"golf-backend/internal/upstream"
)

type TournamentDirectory interface {
	Tournaments(ctx context.Context) ([]upstream.SportsDataTournament, error)
	Leaderboard(ctx context.Context, tournamentID string) (json.RawMessage, error)
}

type TournamentService struct {
	db        *database.DB
	directory TournamentDirectory
	enricher  *Enricher
}

func NewTournamentService(db *database.DB, directory TournamentDirectory, enricher *Enricher) *TournamentService {
	return &TournamentService{db: db, directory: directory, enricher: enricher}
}

const tournamentColumns = "id, name, start_date, end_date, year, format, status, purse, winners_share, fedex_points, image_url"

func (s *TournamentService) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	tournaments := []models.Tournament{}
	query := "select " + tournamentColumns + " from tournaments order by start_date, id"

	if err := s.db.SelectContext(ctx, &tournaments, query); err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

// EnrichTournament returns t with image_url filled in when one is stored or
// can be found.
func (s *TournamentService) EnrichTournament(ctx context.Context, t models.Tournament) (models.Tournament, error) {
	if t.ID <= 0 {
		return t, invalid("tournament id is required")
	}

	name := strings.TrimSpace(t.Name)
	query := ""
	if name != "" {
		query = name + " golf tournament"
	}

	imageURL := s.enricher.resolve(ctx, "tournament", t.ID, query,
		func(ctx context.Context) (string, error) { return s.storedImage(ctx, t.ID) },
		func(ctx context.Context, url string) (string, error) { return s.saveImage(ctx, t.ID, url) },
	)
	if imageURL != "" {
		t.ImageURL = &imageURL
	}
	return t, nil
}

func (s *TournamentService) storedImage(ctx context.Context, id int64) (string, error) {
	var imageURL sql.NullString
	err := s.db.GetContext(ctx, &imageURL, s.db.Rebind("select image_url from tournaments where id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return imageURL.String, nil
}

// saveImage only fills an empty image_url, so concurrent enrichments agree on
// the first stored value. Tournaments without a row are not created.
func (s *TournamentService) saveImage(ctx context.Context, id int64, imageURL string) (string, error) {
	query := `
		update tournaments set image_url = ?
		where id = ? and (image_url is null or image_url = '')
	`
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), imageURL, id); err != nil {
		return "", err
	}
	return s.storedImage(ctx, id)
}

func (s *TournamentService) SearchTournaments(ctx context.Context, q string) ([]upstream.SportsDataTournament, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil, invalid("query is required")
	}

	all, err := s.directory.Tournaments(ctx)
	if err != nil {
		return nil, err
	}

	matches := []upstream.SportsDataTournament{}
	for _, t := range all {
		if strings.Contains(strings.ToLower(t.Name), q) {
			matches = append(matches, t)
		}
	}
	return matches, nil
}

func (s *TournamentService) Leaderboard(ctx context.Context, tournamentID string) (json.RawMessage, error) {
	if strings.TrimSpace(tournamentID) == "" {
		return nil, invalid("tournament id is required")
	}
	return s.directory.Leaderboard(ctx, tournamentID)
}

// SyncTournaments seeds the tournaments table from the upstream schedule.
// Existing image URLs are kept.
func (s *TournamentService) SyncTournaments(ctx context.Context) (int, error) {
	upstreamTournaments, err := s.directory.Tournaments(ctx)
	if err != nil {
		return 0, err
	}

	tournaments := make([]models.Tournament, 0, len(upstreamTournaments))
	for _, u := range upstreamTournaments {
		if u.TournamentID <= 0 || strings.TrimSpace(u.Name) == "" {
			continue
		}
		tournaments = append(tournaments, fromSportsData(u))
	}
	if err := s.UpsertTournaments(ctx, tournaments); err != nil {
		return 0, err
	}
	return len(tournaments), nil
}

func (s *TournamentService) UpsertTournaments(ctx context.Context, tournaments []models.Tournament) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
		insert into tournaments (id, name, start_date, end_date, year, format, status, purse, winners_share, fedex_points)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		on conflict (id) do update set
			name = excluded.name,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			year = excluded.year,
			format = excluded.format,
			status = excluded.status,
			purse = excluded.purse,
			winners_share = excluded.winners_share,
			fedex_points = excluded.fedex_points
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare tournament upsert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tournaments {
		if _, err := stmt.ExecContext(ctx, t.ID, t.Name, t.StartDate, t.EndDate, t.Year, t.Format, t.Status,
			t.Purse, t.WinnersShare, t.FedexPoints); err != nil {
			return fmt.Errorf("failed to upsert tournament %d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tournaments: %w", err)
	}
	return nil
}

func fromSportsData(u upstream.SportsDataTournament) models.Tournament {
	t := models.Tournament{
		ID:        u.TournamentID,
		Name:      strings.TrimSpace(u.Name),
		StartDate: datePart(u.StartDate),
		EndDate:   datePart(u.EndDate),
		Format:    strings.ToLower(u.Format),
		Purse:     u.Purse,
	}
	if len(t.StartDate) >= 4 {
		t.Year, _ = strconv.Atoi(t.StartDate[:4])
	}

	switch {
	case u.Canceled:
		t.Status = "Canceled"
	case u.IsOver:
		t.Status = "Finished"
	case u.IsInProgress:
		t.Status = "In Progress"
	default:
		t.Status = "Upcoming"
	}
	return t
}

// datePart trims SportsData's "2025-04-10T00:00:00" to the date.
func datePart(s string) string {
	if i := strings.IndexByte(s, 'T'); i > 0 {
		return s[:i]
	}
	return s
}
