package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func serveJSON(t *testing.T, body string, check func(r *http.Request)) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLiveGolf_WorldRanking(t *testing.T) {
	body := `{"rankings": [
		{"playerId": "46046", "firstName": "Scottie", "lastName": "Scheffler", "country": "USA",
		 "rank": {"$numberInt": "1"}, "previousRank": {"$numberInt": "1"},
		 "totalPoints": {"$numberDouble": "612.5"}, "avgPoints": {"$numberDouble": "15.31"},
		 "events": {"$numberInt": "40"}},
		{"playerId": "", "firstName": "No", "lastName": "Id"},
		{"playerId": "28237", "rank": "not-a-number"},
		{"playerId": 28237, "firstName": "Rory", "lastName": "McIlroy", "rank": 2, "previousRank": "3"}
	]}`

	srv := serveJSON(t, body, func(r *http.Request) {
		if r.URL.Path != "/stats" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("statId") != "186" || r.URL.Query().Get("year") != "2025" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if r.Header.Get("X-RapidAPI-Key") != "k" || r.Header.Get("X-RapidAPI-Host") != "h" {
			t.Errorf("missing rapidapi headers: %v", r.Header)
		}
	})

	lg := NewLiveGolf(srv.URL, "k", "h", testOptions(1))
	ranking, err := lg.WorldRanking(context.Background(), 2025)
	if err != nil {
		t.Fatalf("WorldRanking failed: %v", err)
	}

	if len(ranking.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(ranking.Entries))
	}
	if ranking.SkippedCount() != 2 {
		t.Errorf("expected 2 skipped rows, got %d", ranking.SkippedCount())
	}

	first := ranking.Entries[0]
	if first.PlayerID != "46046" || first.Rank.Int() != 1 || first.TotalPoints.Float() != 612.5 || first.Events.Int() != 40 {
		t.Errorf("unexpected first entry %+v", first)
	}
	second := ranking.Entries[1]
	if second.PlayerID != "28237" || second.PreviousRank.Int() != 3 {
		t.Errorf("unexpected second entry %+v", second)
	}
}

func TestRanking_SkippedCountNil(t *testing.T) {
	if (Ranking{}).SkippedCount() != 0 {
		t.Error("expected zero skipped rows")
	}
}

func TestImageSearch_SkipsDenylistedHosts(t *testing.T) {
	body := `{"images_results": [
		{"original": "https://lookaside.fbsbx.com/a.jpg"},
		{"original": "https://scontent.cdninstagram.com/b.jpg"},
		{"original": ""},
		{"original": "https://images.example.com/augusta.jpg"},
		{"original": "https://other.example.com/later.jpg"}
	]}`
	srv := serveJSON(t, body, func(r *http.Request) {
		q := r.URL.Query()
		if q.Get("engine") != "google_images" || q.Get("q") != "Augusta golf course" || q.Get("api_key") != "key" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
	})

	s := NewImageSearch(srv.URL, "key", []string{"fbsbx.com", " Instagram.com ", "cdninstagram.com"}, testOptions(1))
	got, err := s.FirstImage(context.Background(), "Augusta golf course")
	if err != nil {
		t.Fatalf("FirstImage failed: %v", err)
	}
	if got != "https://images.example.com/augusta.jpg" {
		t.Errorf("unexpected image %q", got)
	}
}

func TestImageSearch_AllDenied(t *testing.T) {
	srv := serveJSON(t, `{"images_results": [{"original": "https://www.instagram.com/x.jpg"}]}`, nil)

	s := NewImageSearch(srv.URL, "key", []string{"instagram.com"}, testOptions(1))
	got, err := s.FirstImage(context.Background(), "x")
	if err != nil {
		t.Fatalf("FirstImage failed: %v", err)
	}
	if got != "" {
		t.Errorf("expected no image, got %q", got)
	}
}

func TestImageSearch_NotConfigured(t *testing.T) {
	var calls atomic.Int32
	srv := serveJSON(t, `{}`, func(r *http.Request) { calls.Add(1) })

	s := NewImageSearch(srv.URL, "", nil, testOptions(1))
	if _, err := s.FirstImage(context.Background(), "x"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
	if calls.Load() != 0 {
		t.Error("provider should not be called without a key")
	}
}

func TestGolfCourses_SearchFlattens(t *testing.T) {
	body := `{"courses": [
		{"id": 101, "club_name": "Pebble Beach Golf Links", "course_name": "Pebble Beach Golf Links",
		 "location": {"address": "1700 17 Mile Dr", "city": "Pebble Beach", "state": "CA", "country": "United States"},
		 "tees": {"male": [{"tee_name": "Blue", "course_rating": 74.9, "slope_rating": 144, "total_yards": 6828, "par_total": 72, "number_of_holes": 18}],
		          "female": []}},
		{"id": "202", "club_name": "Spyglass", "course_name": "Hill", "location": {}}
	]}`
	srv := serveJSON(t, body, func(r *http.Request) {
		if r.URL.Path != "/v1/search" || r.URL.Query().Get("search_query") != "pebble" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		if r.Header.Get("Authorization") != "Key secret" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
	})

	gc := NewGolfCourses(srv.URL, "secret", testOptions(1))
	courses, err := gc.Search(context.Background(), "pebble")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(courses))
	}

	pebble := courses[0]
	if pebble.ID != 101 || pebble.Name != "Pebble Beach Golf Links" || pebble.City != "Pebble Beach" {
		t.Errorf("unexpected course %+v", pebble)
	}
	if pebble.Tees == nil || len(pebble.Tees.Male) != 1 || pebble.Tees.Male[0].ParTotal != 72 || pebble.Tees.Male[0].SlopeRating != 144 {
		t.Errorf("unexpected tees %+v", pebble.Tees)
	}

	if courses[1].ID != 202 || courses[1].Name != "Spyglass - Hill" {
		t.Errorf("unexpected second course %+v", courses[1])
	}
}

func TestSportsData_PassesRawPlayersThrough(t *testing.T) {
	body := `[{"PlayerID": 40000001, "FirstName": "Tiger", "LastName": "Woods", "Country": "USA", "PhotoUrl": "https://x/y.png"}]`
	srv := serveJSON(t, body, func(r *http.Request) {
		if r.URL.Path != "/Players" || r.URL.Query().Get("key") != "sd" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
	})

	sd := NewSportsData(srv.URL, "sd", testOptions(1))
	players, err := sd.Players(context.Background())
	if err != nil {
		t.Fatalf("Players failed: %v", err)
	}
	if len(players) != 1 || players[0].PlayerID != 40000001 || players[0].LastName != "Woods" {
		t.Fatalf("unexpected players %+v", players)
	}

	out, err := json.Marshal(players[0])
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded["PhotoUrl"] != "https://x/y.png" {
		t.Errorf("expected upstream fields to survive, got %s", out)
	}
}

func TestSportsData_EscapesPathSegments(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"Tournament": {}}`))
	}))
	defer srv.Close()

	sd := NewSportsData(srv.URL, "sd", testOptions(1))
	if _, err := sd.Leaderboard(context.Background(), "58/../x"); err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if gotPath != "/Leaderboard/58%2F..%2Fx" {
		t.Errorf("unexpected path %s", gotPath)
	}
}
