package models

type Tournament struct {
	ID           int64   `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	StartDate    string  `db:"start_date" json:"start_date,omitempty"`
	EndDate      string  `db:"end_date" json:"end_date,omitempty"`
	Year         int     `db:"year" json:"year,omitempty"`
	Format       string  `db:"format" json:"format,omitempty"`
	Status       string  `db:"status" json:"status,omitempty"`
	Purse        float64 `db:"purse" json:"purse,omitempty"`
	WinnersShare float64 `db:"winners_share" json:"winners_share,omitempty"`
	FedexPoints  int     `db:"fedex_points" json:"fedex_points,omitempty"`
	ImageURL     *string `db:"image_url" json:"image_url,omitempty"`
}
