package services

import (
	"context"
	"errors"
	"testing"

	"golf-backend/internal/database"
	"golf-backend/internal/database/dbtest"
	"golf-backend/internal/models"
	"golf-backend/internal/upstream"
)

func setupTournamentService(t *testing.T, images *fakeImages, dir *fakeDirectory) (*TournamentService, *database.DB) {
	db := dbtest.New(t)
	return NewTournamentService(db, dir, NewEnricher(images)), db
}

func seedTournament(t *testing.T, db *database.DB, id int64, name string, imageURL *string) {
	_, err := db.Exec(db.Rebind("insert into tournaments (id, name, start_date, image_url) values (?, ?, ?, ?)"),
		id, name, "2025-04-10", imageURL)
	if err != nil {
		t.Fatalf("failed to seed tournament: %v", err)
	}
}

func TestEnrichTournament_StoredImageSkipsSearch(t *testing.T) {
	images := &fakeImages{url: "https://img.test/new.jpg"}
	s, db := setupTournamentService(t, images, &fakeDirectory{})
	seedTournament(t, db, 7, "The Masters", strPtr("https://img.test/stored.jpg"))

	got, err := s.EnrichTournament(context.Background(), models.Tournament{ID: 7, Name: "The Masters"})
	if err != nil {
		t.Fatalf("EnrichTournament failed: %v", err)
	}

	if got.ImageURL == nil || *got.ImageURL != "https://img.test/stored.jpg" {
		t.Errorf("expected stored image, got %v", got.ImageURL)
	}
	if images.calls() != 0 {
		t.Errorf("expected no image searches, got %d", images.calls())
	}
}

func TestEnrichTournament_FillsEmptyRow(t *testing.T) {
	images := &fakeImages{url: "https://img.test/masters.jpg"}
	s, db := setupTournamentService(t, images, &fakeDirectory{})
	seedTournament(t, db, 7, "The Masters", nil)

	got, err := s.EnrichTournament(context.Background(), models.Tournament{ID: 7, Name: "The Masters"})
	if err != nil {
		t.Fatalf("EnrichTournament failed: %v", err)
	}
	if got.ImageURL == nil || *got.ImageURL != "https://img.test/masters.jpg" {
		t.Errorf("expected found image, got %v", got.ImageURL)
	}
	if len(images.queries) != 1 || images.queries[0] != "The Masters golf tournament" {
		t.Errorf("unexpected queries %v", images.queries)
	}

	stored, err := s.storedImage(context.Background(), 7)
	if err != nil {
		t.Fatalf("storedImage failed: %v", err)
	}
	if stored != "https://img.test/masters.jpg" {
		t.Errorf("expected image to be persisted, got %q", stored)
	}

	// second call is served from the row
	if _, err := s.EnrichTournament(context.Background(), models.Tournament{ID: 7, Name: "The Masters"}); err != nil {
		t.Fatalf("EnrichTournament failed: %v", err)
	}
	if images.calls() != 1 {
		t.Errorf("expected one image search, got %d", images.calls())
	}
}

func TestEnrichTournament_NoRowNoImage(t *testing.T) {
	images := &fakeImages{}
	s, _ := setupTournamentService(t, images, &fakeDirectory{})

	in := models.Tournament{ID: 99, Name: "Unknown Open", Status: "Upcoming"}
	got, err := s.EnrichTournament(context.Background(), in)
	if err != nil {
		t.Fatalf("EnrichTournament failed: %v", err)
	}
	if got.ImageURL != nil {
		t.Errorf("expected no image, got %s", *got.ImageURL)
	}
	if got.Name != in.Name || got.Status != in.Status {
		t.Errorf("expected tournament unchanged, got %+v", got)
	}
}

func TestEnrichTournament_SearchFailureDegrades(t *testing.T) {
	images := &fakeImages{err: upstream.ErrUnavailable}
	s, _ := setupTournamentService(t, images, &fakeDirectory{})

	got, err := s.EnrichTournament(context.Background(), models.Tournament{ID: 3, Name: "Open"})
	if err != nil {
		t.Fatalf("expected search failure to be swallowed, got %v", err)
	}
	if got.ImageURL != nil {
		t.Errorf("expected no image, got %s", *got.ImageURL)
	}
}

func TestEnrichTournament_EmptyNameAndInvalidID(t *testing.T) {
	images := &fakeImages{url: "https://img.test/x.jpg"}
	s, _ := setupTournamentService(t, images, &fakeDirectory{})

	if _, err := s.EnrichTournament(context.Background(), models.Tournament{ID: 5, Name: "  "}); err != nil {
		t.Fatalf("EnrichTournament failed: %v", err)
	}
	if images.calls() != 0 {
		t.Errorf("expected no search for an empty name, got %d", images.calls())
	}

	_, err := s.EnrichTournament(context.Background(), models.Tournament{Name: "Open"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestSyncAndListTournaments(t *testing.T) {
	dir := &fakeDirectory{tournaments: []upstream.SportsDataTournament{
		{TournamentID: 2, Name: "US Open", StartDate: "2025-06-12T00:00:00", IsInProgress: true},
		{TournamentID: 1, Name: "The Masters", StartDate: "2025-04-10T00:00:00", IsOver: true},
		{TournamentID: 0, Name: "No id"},
	}}
	s, db := setupTournamentService(t, &fakeImages{}, dir)
	ctx := context.Background()

	n, err := s.SyncTournaments(ctx)
	if err != nil {
		t.Fatalf("SyncTournaments failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 tournaments, got %d", n)
	}

	// an enriched image survives a resync
	if _, err := db.Exec(db.Rebind("update tournaments set image_url = ? where id = ?"), "https://img.test/m.jpg", 1); err != nil {
		t.Fatalf("failed to set image: %v", err)
	}
	if _, err := s.SyncTournaments(ctx); err != nil {
		t.Fatalf("second SyncTournaments failed: %v", err)
	}

	list, err := s.ListTournaments(ctx)
	if err != nil {
		t.Fatalf("ListTournaments failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 tournaments, got %d", len(list))
	}
	if list[0].Name != "The Masters" || list[0].StartDate != "2025-04-10" || list[0].Year != 2025 {
		t.Errorf("unexpected first tournament %+v", list[0])
	}
	if list[0].Status != "Finished" || list[1].Status != "In Progress" {
		t.Errorf("unexpected statuses %q %q", list[0].Status, list[1].Status)
	}
	if list[0].ImageURL == nil || *list[0].ImageURL != "https://img.test/m.jpg" {
		t.Errorf("expected image to survive resync, got %v", list[0].ImageURL)
	}
}

func TestSearchTournaments(t *testing.T) {
	dir := &fakeDirectory{tournaments: []upstream.SportsDataTournament{
		{TournamentID: 1, Name: "The Masters"},
		{TournamentID: 2, Name: "US Open"},
		{TournamentID: 3, Name: "The Open Championship"},
	}}
	s, _ := setupTournamentService(t, &fakeImages{}, dir)

	got, err := s.SearchTournaments(context.Background(), "OPEN")
	if err != nil {
		t.Fatalf("SearchTournaments failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 matches, got %d", len(got))
	}

	if _, err := s.SearchTournaments(context.Background(), " "); err == nil {
		t.Error("expected an error for an empty query")
	}
}

func TestEnrichTournament_SaveFailureKeepsImage(t *testing.T) {
	images := &fakeImages{url: "https://img.test/open.jpg"}
	s, db := setupTournamentService(t, images, &fakeDirectory{})

	if _, err := db.Exec("drop table tournaments"); err != nil {
		t.Fatalf("failed to drop tournaments: %v", err)
	}

	got, err := s.EnrichTournament(context.Background(), models.Tournament{ID: 4, Name: "The Open"})
	if err != nil {
		t.Fatalf("expected a failed write to be swallowed, got %v", err)
	}
	if got.ImageURL == nil || *got.ImageURL != "https://img.test/open.jpg" {
		t.Errorf("expected searched image, got %v", got.ImageURL)
	}
}
