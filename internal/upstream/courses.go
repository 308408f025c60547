package upstream

import (
	"context"
	"net/http"
	"strings"

	"golf-backend/internal/models"
)

// GolfCourses wraps GolfCourseAPI.
type GolfCourses struct {
	gw *Gateway
}

func NewGolfCourses(baseURL, apiKey string, opts Options) *GolfCourses {
	opts.Name = "golfcourseapi"
	opts.BaseURL = baseURL
	opts.Header = http.Header{"Authorization": {"Key " + apiKey}}
	return &GolfCourses{gw: NewGateway(opts)}
}

type courseRecord struct {
	ID         Number `json:"id"`
	ClubName   string `json:"club_name"`
	CourseName string `json:"course_name"`
	Location   struct {
		Address string `json:"address"`
		City    string `json:"city"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"location"`
	Tees struct {
		Male   []teeRecord `json:"male"`
		Female []teeRecord `json:"female"`
	} `json:"tees"`
}

type teeRecord struct {
	TeeName       string `json:"tee_name"`
	CourseRating  Number `json:"course_rating"`
	SlopeRating   Number `json:"slope_rating"`
	TotalYards    Number `json:"total_yards"`
	ParTotal      Number `json:"par_total"`
	NumberOfHoles Number `json:"number_of_holes"`
}

type courseSearchParams struct {
	SearchQuery string `url:"search_query"`
}

func (c *GolfCourses) Search(ctx context.Context, q string) ([]models.Course, error) {
	var body struct {
		Courses []courseRecord `json:"courses"`
	}
	if err := c.gw.Get(ctx, "v1/search", courseSearchParams{SearchQuery: q}, &body); err != nil {
		return nil, err
	}

	courses := make([]models.Course, 0, len(body.Courses))
	for _, rec := range body.Courses {
		courses = append(courses, rec.toCourse())
	}
	return courses, nil
}

func (rec courseRecord) toCourse() models.Course {
	course := models.Course{
		ID:         int64(rec.ID.Int()),
		ClubName:   strings.TrimSpace(rec.ClubName),
		CourseName: strings.TrimSpace(rec.CourseName),
		City:       rec.Location.City,
		State:      rec.Location.State,
		Country:    rec.Location.Country,
		Address:    rec.Location.Address,
		Tees: &models.Tees{
			Male:   toTees(rec.Tees.Male),
			Female: toTees(rec.Tees.Female),
		},
	}
	switch {
	case course.ClubName == "":
		course.Name = course.CourseName
	case course.CourseName == "" || strings.EqualFold(course.CourseName, course.ClubName):
		course.Name = course.ClubName
	default:
		course.Name = course.ClubName + " - " + course.CourseName
	}
	return course
}

func toTees(in []teeRecord) []models.Tee {
	out := make([]models.Tee, 0, len(in))
	for _, t := range in {
		out = append(out, models.Tee{
			TeeName:       t.TeeName,
			CourseRating:  t.CourseRating.Float(),
			SlopeRating:   t.SlopeRating.Int(),
			TotalYards:    t.TotalYards.Int(),
			ParTotal:      t.ParTotal.Int(),
			NumberOfHoles: t.NumberOfHoles.Int(),
		})
	}
	return out
}
