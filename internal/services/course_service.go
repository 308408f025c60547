package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golf-backend/internal/database"
	"golf-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/patrickmn/go-cache"
)

type CourseSearcher interface {
	Search(ctx context.Context, q string) ([]models.Course, error)
}

type CourseService struct {
	db           *database.DB
	searcher     CourseSearcher
	enricher     *Enricher
	featured     *cache.Cache
	defaultQuery string
}

func NewCourseService(db *database.DB, searcher CourseSearcher, enricher *Enricher, ttl time.Duration, defaultQuery string) *CourseService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CourseService{
		db:           db,
		searcher:     searcher,
		enricher:     enricher,
		featured:     cache.New(ttl, 2*ttl),
		defaultQuery: defaultQuery,
	}
}

// SearchCourses always asks the provider; stored images are attached to the
// results it returns.
func (s *CourseService) SearchCourses(ctx context.Context, q string) ([]models.Course, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, invalid("search query is required")
	}

	courses, err := s.searcher.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	s.attachStoredImages(ctx, courses)
	return courses, nil
}

// FeaturedCourses serves the course list page. Results are cached per query;
// an empty q means the configured default.
func (s *CourseService) FeaturedCourses(ctx context.Context, q string) ([]models.Course, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		q = s.defaultQuery
	}

	if cached, ok := s.featured.Get(q); ok {
		courses := append([]models.Course(nil), cached.([]models.Course)...)
		s.attachStoredImages(ctx, courses)
		return courses, nil
	}

	courses, err := s.searcher.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	s.featured.SetDefault(q, courses)

	courses = append([]models.Course(nil), courses...)
	s.attachStoredImages(ctx, courses)
	return courses, nil
}

// attachStoredImages fills image_url from the courses table. Failures only
// cost the images.
func (s *CourseService) attachStoredImages(ctx context.Context, courses []models.Course) {
	ids := make([]int64, 0, len(courses))
	for _, c := range courses {
		if c.ID > 0 {
			ids = append(ids, c.ID)
		}
	}
	if len(ids) == 0 {
		return
	}

	query, args, err := sqlx.In("select id, image_url from courses where id in (?) and image_url is not null and image_url <> ''", ids)
	if err != nil {
		log.Printf("[enrich] failed to build course image query: %v", err)
		return
	}

	var rows []struct {
		ID       int64  `db:"id"`
		ImageURL string `db:"image_url"`
	}
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		log.Printf("[enrich] failed to load course images: %v", err)
		return
	}

	images := make(map[int64]string, len(rows))
	for _, r := range rows {
		images[r.ID] = r.ImageURL
	}
	for i := range courses {
		if url, ok := images[courses[i].ID]; ok {
			courses[i].ImageURL = &url
		}
	}
}

// EnrichCourse returns c with image_url filled in when one is stored or can be
// found. A found image is stored together with the course's core fields.
func (s *CourseService) EnrichCourse(ctx context.Context, c models.Course) (models.Course, error) {
	if c.ID <= 0 {
		return c, invalid("course id is required")
	}

	name := strings.TrimSpace(c.Name)
	query := ""
	if name != "" {
		query = name + " golf course"
	}

	imageURL := s.enricher.resolve(ctx, "course", c.ID, query,
		func(ctx context.Context) (string, error) { return s.storedImage(ctx, c.ID) },
		func(ctx context.Context, url string) (string, error) { return s.saveImage(ctx, c, url) },
	)
	if imageURL != "" {
		c.ImageURL = &imageURL
	}
	return c, nil
}

func (s *CourseService) storedImage(ctx context.Context, id int64) (string, error) {
	var imageURL sql.NullString
	err := s.db.GetContext(ctx, &imageURL, s.db.Rebind("select image_url from courses where id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return imageURL.String, nil
}

// saveImage inserts the course or fills an empty image_url; an image that is
// already stored is never replaced.
func (s *CourseService) saveImage(ctx context.Context, c models.Course, imageURL string) (string, error) {
	query := `
		insert into courses (id, name, city, state, country, address, image_url, updated_at)
		values (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		on conflict (id) do update set
			image_url = excluded.image_url,
			updated_at = CURRENT_TIMESTAMP
		where courses.image_url is null or courses.image_url = ''
	`
	_, err := s.db.ExecContext(ctx, s.db.Rebind(query),
		c.ID, strings.TrimSpace(c.Name), c.City, c.State, c.Country, c.Address, imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to upsert course %d: %w", c.ID, err)
	}
	return s.storedImage(ctx, c.ID)
}
