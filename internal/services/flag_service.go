package services

import (
	"context"
	"fmt"
	"strings"

	"golf-backend/internal/database"
)

// FlagService stores which courses each user has flagged. A (user, course)
// pair is either flagged or not; there are no duplicates.
type FlagService struct {
	db *database.DB
}

func NewFlagService(db *database.DB) *FlagService {
	return &FlagService{db: db}
}

func validateFlag(userID string, courseID int64) error {
	if strings.TrimSpace(userID) == "" {
		return invalid("userId is required")
	}
	if courseID <= 0 {
		return invalid("courseId must be a positive integer")
	}
	return nil
}

func (s *FlagService) SetFlag(ctx context.Context, userID string, courseID int64) error {
	if err := validateFlag(userID, courseID); err != nil {
		return err
	}

	query := "insert into course_flags (user_id, course_id) values (?, ?) on conflict (user_id, course_id) do nothing"
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), userID, courseID); err != nil {
		return fmt.Errorf("failed to flag course: %w", err)
	}
	return nil
}

// UnsetFlag succeeds whether or not the course was flagged.
func (s *FlagService) UnsetFlag(ctx context.Context, userID string, courseID int64) error {
	if err := validateFlag(userID, courseID); err != nil {
		return err
	}

	query := "delete from course_flags where user_id = ? and course_id = ?"
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), userID, courseID); err != nil {
		return fmt.Errorf("failed to unflag course: %w", err)
	}
	return nil
}

func (s *FlagService) IsFlagged(ctx context.Context, userID string, courseID int64) (bool, error) {
	if err := validateFlag(userID, courseID); err != nil {
		return false, err
	}

	var count int
	query := "select count(*) from course_flags where user_id = ? and course_id = ?"
	if err := s.db.GetContext(ctx, &count, s.db.Rebind(query), userID, courseID); err != nil {
		return false, fmt.Errorf("failed to check flag: %w", err)
	}
	return count > 0, nil
}

func (s *FlagService) FlaggedCourseIDs(ctx context.Context, userID string) ([]int64, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalid("userId is required")
	}

	ids := []int64{}
	query := "select course_id from course_flags where user_id = ? order by course_id"
	if err := s.db.SelectContext(ctx, &ids, s.db.Rebind(query), userID); err != nil {
		return nil, fmt.Errorf("failed to list flagged courses: %w", err)
	}
	return ids, nil
}
