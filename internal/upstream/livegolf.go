package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-multierror"
)

const worldRankingStatID = "186"

// LiveGolf wraps the RapidAPI "live-golf-data" service.
type LiveGolf struct {
	gw *Gateway
}

func NewLiveGolf(baseURL, apiKey, host string, opts Options) *LiveGolf {
	opts.Name = "livegolf"
	opts.BaseURL = baseURL
	opts.Header = http.Header{
		"X-Rapidapi-Key":  {apiKey},
		"X-Rapidapi-Host": {host},
	}
	return &LiveGolf{gw: NewGateway(opts)}
}

type RankingEntry struct {
	PlayerID     ID     `json:"playerId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Country      string `json:"country"`
	FlagURL      string `json:"countryFlag"`
	Rank         Number `json:"rank"`
	PreviousRank Number `json:"previousRank"`
	TotalPoints  Number `json:"totalPoints"`
	AvgPoints    Number `json:"avgPoints"`
	Events       Number `json:"events"`
}

// Ranking is a decoded ranking feed. Rows that could not be used are listed
// in Skipped instead of failing the whole feed.
type Ranking struct {
	Entries []RankingEntry
	Skipped *multierror.Error
}

func (r Ranking) SkippedCount() int {
	if r.Skipped == nil {
		return 0
	}
	return r.Skipped.Len()
}

type rankingParams struct {
	Year   int    `url:"year"`
	StatID string `url:"statId"`
}

func (l *LiveGolf) WorldRanking(ctx context.Context, year int) (Ranking, error) {
	var body struct {
		Rankings []json.RawMessage `json:"rankings"`
	}
	if err := l.gw.Get(ctx, "stats", rankingParams{Year: year, StatID: worldRankingStatID}, &body); err != nil {
		return Ranking{}, err
	}

	var ranking Ranking
	for i, raw := range body.Rankings {
		var entry RankingEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			ranking.Skipped = multierror.Append(ranking.Skipped, fmt.Errorf("row %d: %w", i, err))
			continue
		}
		if entry.PlayerID == "" {
			ranking.Skipped = multierror.Append(ranking.Skipped, fmt.Errorf("row %d: missing playerId", i))
			continue
		}
		ranking.Entries = append(ranking.Entries, entry)
	}
	return ranking, nil
}

type playerParams struct {
	PlayerID string `url:"playerId"`
}

func (l *LiveGolf) PlayerProfile(ctx context.Context, playerID string) (json.RawMessage, error) {
	var profile json.RawMessage
	if err := l.gw.Get(ctx, "players", playerParams{PlayerID: playerID}, &profile); err != nil {
		return nil, err
	}
	return profile, nil
}
