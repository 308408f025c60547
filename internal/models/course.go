package models

// Course is the flattened course shape served to the client. Tees come from
// the upstream provider and are not persisted.
type Course struct {
	ID         int64   `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	ClubName   string  `db:"-" json:"club_name,omitempty"`
	CourseName string  `db:"-" json:"course_name,omitempty"`
	City       string  `db:"city" json:"city,omitempty"`
	State      string  `db:"state" json:"state,omitempty"`
	Country    string  `db:"country" json:"country,omitempty"`
	Address    string  `db:"address" json:"address,omitempty"`
	Tees       *Tees   `db:"-" json:"tees,omitempty"`
	ImageURL   *string `db:"image_url" json:"image_url,omitempty"`
}

type Tees struct {
	Male   []Tee `json:"male"`
	Female []Tee `json:"female"`
}

type Tee struct {
	TeeName       string  `json:"tee_name"`
	CourseRating  float64 `json:"course_rating"`
	SlopeRating   int     `json:"slope_rating"`
	TotalYards    int     `json:"total_yards"`
	ParTotal      int     `json:"par_total"`
	NumberOfHoles int     `json:"number_of_holes"`
}

type CourseFlag struct {
	UserID   string `db:"user_id" json:"userId"`
	CourseID int64  `db:"course_id" json:"courseId"`
}
