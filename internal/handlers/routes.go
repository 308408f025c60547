package handlers

import (
	"net/http"

	"golf-backend/internal/middleware"
)

type Routes struct {
	Auth        *AuthHandler
	Players     *PlayerHandler
	Tournaments *TournamentHandler
	Courses     *CourseHandler
	Middleware  *middleware.AuthMiddleware
}

func NewRouter(rt Routes) *http.ServeMux {
	router := http.NewServeMux()
	auth := rt.Middleware

	router.HandleFunc("GET /up", Health)

	router.HandleFunc("POST /auth/register", rt.Auth.RegisterUser)
	router.HandleFunc("POST /auth/login", rt.Auth.LoginUser)
	router.Handle("GET /auth/me", auth.RequireAuth(http.HandlerFunc(rt.Auth.GetMe)))
	router.HandleFunc("POST /auth/logout", rt.Auth.Logout)

	router.HandleFunc("GET /players", rt.Players.ListPlayers)
	router.HandleFunc("GET /players/search", rt.Players.SearchPlayers)
	router.HandleFunc("GET /players/compare", rt.Players.ComparePlayers)
	router.HandleFunc("GET /players/update", rt.Players.UpdatePlayers)
	router.HandleFunc("GET /players/{id}/details", rt.Players.PlayerDetails)
	router.HandleFunc("GET /players/{id}/stats", rt.Players.SeasonStats)

	router.HandleFunc("GET /tournaments", rt.Tournaments.ListTournaments)
	router.HandleFunc("GET /tournaments/search", rt.Tournaments.SearchTournaments)
	router.HandleFunc("GET /tournaments/{id}/leaderboard", rt.Tournaments.Leaderboard)
	router.HandleFunc("POST /api/golf/tournaments/enrich", rt.Tournaments.EnrichTournament)

	router.HandleFunc("GET /api/golf/courses", rt.Courses.FeaturedCourses)
	router.HandleFunc("GET /api/golf/search", rt.Courses.SearchCourses)
	router.HandleFunc("POST /api/golf/courses/enrich", rt.Courses.EnrichCourse)
	router.Handle("POST /api/golf/courses/flag", auth.OptionalAuth(http.HandlerFunc(rt.Courses.FlagCourse)))
	router.Handle("POST /api/golf/courses/isFlagged", auth.OptionalAuth(http.HandlerFunc(rt.Courses.IsFlagged)))
	router.HandleFunc("GET /api/golf/courses/flagged/{userId}", rt.Courses.FlaggedCourses)

	return router
}
