package dto

import "golf-backend/internal/models"

type EnrichTournamentRequest struct {
	Tournament models.Tournament `json:"tournament"`
}

type EnrichCourseRequest struct {
	Course models.Course `json:"course"`
}

type FlagCourseRequest struct {
	UserID   string `json:"userId"`
	CourseID int64  `json:"courseId"`
	Flagged  *bool  `json:"flagged"`
}

type FlagStatusResponse struct {
	UserID   string `json:"userId"`
	CourseID int64  `json:"courseId"`
	Flagged  bool   `json:"flagged"`
}

type FlaggedCoursesResponse struct {
	UserID    string  `json:"userId"`
	CourseIDs []int64 `json:"courseIds"`
}

type PlayerDetailsResponse struct {
	models.Player
	Profile any `json:"profile,omitempty"`
}

type PlayersUpdateResponse struct {
	Stored  int `json:"stored"`
	Skipped int `json:"skipped"`
}
