package handlers

import (
	"net/http"

	"golf-backend/internal/dto"
	"golf-backend/internal/middleware"
	"golf-backend/internal/services"
	"golf-backend/utils/response"
)

type CourseHandler struct {
	courses *services.CourseService
	flags   *services.FlagService
}

func NewCourseHandler(courses *services.CourseService, flags *services.FlagService) *CourseHandler {
	return &CourseHandler{courses: courses, flags: flags}
}

func (h *CourseHandler) FeaturedCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.FeaturedCourses(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err, "Failed to load courses")
		return
	}
	response.Success(w, courses, "")
}

func (h *CourseHandler) SearchCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.SearchCourses(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err, "Failed to search courses")
		return
	}
	response.Success(w, courses, "")
}

func (h *CourseHandler) EnrichCourse(w http.ResponseWriter, r *http.Request) {
	var req dto.EnrichCourseRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	course, err := h.courses.EnrichCourse(r.Context(), req.Course)
	if err != nil {
		writeError(w, err, "Failed to enrich course")
		return
	}
	response.Success(w, course, "")
}

// decodeFlag reads a flag request. A session attached by OptionalAuth
// always decides the user; the body's userId is only used without one.
func decodeFlag(r *http.Request) (dto.FlagCourseRequest, error) {
	var req dto.FlagCourseRequest
	if err := response.Decode(r, &req); err != nil {
		return req, err
	}
	if claims := middleware.GetUserFromContext(r.Context()); claims != nil {
		req.UserID = claims.UserID
	}
	return req, nil
}

func (h *CourseHandler) FlagCourse(w http.ResponseWriter, r *http.Request) {
	req, err := decodeFlag(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	flagged := req.Flagged == nil || *req.Flagged
	if flagged {
		err = h.flags.SetFlag(r.Context(), req.UserID, req.CourseID)
	} else {
		err = h.flags.UnsetFlag(r.Context(), req.UserID, req.CourseID)
	}
	if err != nil {
		writeError(w, err, "Failed to update flag")
		return
	}

	response.Success(w, dto.FlagStatusResponse{UserID: req.UserID, CourseID: req.CourseID, Flagged: flagged}, "")
}

func (h *CourseHandler) IsFlagged(w http.ResponseWriter, r *http.Request) {
	req, err := decodeFlag(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	flagged, err := h.flags.IsFlagged(r.Context(), req.UserID, req.CourseID)
	if err != nil {
		writeError(w, err, "Failed to check flag")
		return
	}

	response.Success(w, dto.FlagStatusResponse{UserID: req.UserID, CourseID: req.CourseID, Flagged: flagged}, "")
}

func (h *CourseHandler) FlaggedCourses(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	ids, err := h.flags.FlaggedCourseIDs(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to list flagged courses")
		return
	}

	response.Success(w, dto.FlaggedCoursesResponse{UserID: userID, CourseIDs: ids}, "")
}
