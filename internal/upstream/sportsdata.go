package upstream

import (
	"context"
	"encoding/json"
	"net/url"
)

// SportsData wraps the SportsData.io golf v2 JSON feed.
type SportsData struct {
	gw *Gateway
}

func NewSportsData(baseURL, apiKey string, opts Options) *SportsData {
	opts.Name = "sportsdata"
	opts.BaseURL = baseURL
	opts.Query = url.Values{"key": {apiKey}}
	return &SportsData{gw: NewGateway(opts)}
}

// SportsDataPlayer keeps the fields used for filtering and the raw upstream
// object, which is what gets re-encoded.
type SportsDataPlayer struct {
	PlayerID  int64  `json:"PlayerID"`
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Country   string `json:"Country"`

	raw json.RawMessage
}

func (p *SportsDataPlayer) UnmarshalJSON(b []byte) error {
	type alias SportsDataPlayer
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*p = SportsDataPlayer(a)
	p.raw = append(json.RawMessage(nil), b...)
	return nil
}

func (p SportsDataPlayer) MarshalJSON() ([]byte, error) {
	if len(p.raw) > 0 {
		return p.raw, nil
	}
	type alias SportsDataPlayer
	return json.Marshal(alias(p))
}

type SportsDataTournament struct {
	TournamentID int64   `json:"TournamentID"`
	Name         string  `json:"Name"`
	StartDate    string  `json:"StartDate"`
	EndDate      string  `json:"EndDate"`
	Format       string  `json:"Format"`
	Purse        float64 `json:"Purse"`
	IsOver       bool    `json:"IsOver"`
	IsInProgress bool    `json:"IsInProgress"`
	Canceled     bool    `json:"Canceled"`

	raw json.RawMessage
}

func (t *SportsDataTournament) UnmarshalJSON(b []byte) error {
	type alias SportsDataTournament
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*t = SportsDataTournament(a)
	t.raw = append(json.RawMessage(nil), b...)
	return nil
}

func (t SportsDataTournament) MarshalJSON() ([]byte, error) {
	if len(t.raw) > 0 {
		return t.raw, nil
	}
	type alias SportsDataTournament
	return json.Marshal(alias(t))
}

func (s *SportsData) Players(ctx context.Context) ([]SportsDataPlayer, error) {
	var players []SportsDataPlayer
	if err := s.gw.Get(ctx, "Players", nil, &players); err != nil {
		return nil, err
	}
	return players, nil
}

func (s *SportsData) PlayerSeasonStats(ctx context.Context, playerID string) (json.RawMessage, error) {
	var stats json.RawMessage
	if err := s.gw.Get(ctx, "PlayerSeasonStats/"+url.PathEscape(playerID), nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *SportsData) Tournaments(ctx context.Context) ([]SportsDataTournament, error) {
	var tournaments []SportsDataTournament
	if err := s.gw.Get(ctx, "Tournaments", nil, &tournaments); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (s *SportsData) Leaderboard(ctx context.Context, tournamentID string) (json.RawMessage, error) {
	var board json.RawMessage
	if err := s.gw.Get(ctx, "Leaderboard/"+url.PathEscape(tournamentID), nil, &board); err != nil {
		return nil, err
	}
	return board, nil
}
