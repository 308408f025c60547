package services

import (
	"context"
	"encoding/json"
	"sync"

	"golf-backend/internal/models"
	"golf-backend/internal/upstream"
)

type fakeImages struct {
	mu      sync.Mutex
	url     string
	err     error
	queries []string
}

func (f *fakeImages) FirstImage(ctx context.Context, query string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.url, f.err
}

func (f *fakeImages) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type fakeCourses struct {
	courses []models.Course
	err     error
	queries []string
}

func (f *fakeCourses) Search(ctx context.Context, q string) ([]models.Course, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Course(nil), f.courses...), nil
}

type fakeRanking struct {
	ranking    upstream.Ranking
	err        error
	profile    json.RawMessage
	profileErr error
}

func (f *fakeRanking) WorldRanking(ctx context.Context, year int) (upstream.Ranking, error) {
	return f.ranking, f.err
}

func (f *fakeRanking) PlayerProfile(ctx context.Context, playerID string) (json.RawMessage, error) {
	return f.profile, f.profileErr
}

type fakeDirectory struct {
	players     []upstream.SportsDataPlayer
	tournaments []upstream.SportsDataTournament
	stats       json.RawMessage
	board       json.RawMessage
	err         error
}

func (f *fakeDirectory) Players(ctx context.Context) ([]upstream.SportsDataPlayer, error) {
	return f.players, f.err
}

func (f *fakeDirectory) PlayerSeasonStats(ctx context.Context, playerID string) (json.RawMessage, error) {
	return f.stats, f.err
}

func (f *fakeDirectory) Tournaments(ctx context.Context) ([]upstream.SportsDataTournament, error) {
	return f.tournaments, f.err
}

func (f *fakeDirectory) Leaderboard(ctx context.Context, tournamentID string) (json.RawMessage, error) {
	return f.board, f.err
}

func strPtr(s string) *string { return &s }
