package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golf-backend/internal/database"
	"golf-backend/internal/dto"
	"golf-backend/internal/models"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const SessionTTL = 24 * time.Hour

type AuthService struct {
	db        *database.DB
	jwtSecret string
}

func NewAuthService(db *database.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(req *dto.RegisterUserRequest) error {
	if req.Email == "" || req.Password == "" {
		return invalid("email and password are required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return invalid("invalid email address")
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return invalid("first and last name are required")
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		return invalid("passwords do not match")
	}
	if req.Age < 0 {
		return invalid("age must not be negative")
	}
	return nil
}

// RegisterUser stores a new account and returns it with a session token.
func (s *AuthService) RegisterUser(ctx context.Context, req *dto.RegisterUserRequest) (*models.User, string, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateRegistration(req); err != nil {
		return nil, "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(bytes),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Age:          req.Age,
		CreatedAt:    time.Now().UTC(),
	}

	query := `
		insert into users (id, email, password_hash, first_name, last_name, age, created_at)
		values (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, s.db.Rebind(query),
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Age, user.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginUser reports ErrInvalidCredentials for both an unknown email and a
// wrong password.
func (s *AuthService) LoginUser(ctx context.Context, req *dto.LoginUserRequest) (*models.User, string, error) {
	var user models.User
	query := "select id, email, password_hash, first_name, last_name, age, created_at from users where email = ?"

	if err := s.db.GetContext(ctx, &user, s.db.Rebind(query), normalizeEmail(req.Email)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userID": user.ID,
		"email":  user.Email,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(SessionTTL).Unix(),
	})

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	query := "select id, email, first_name, last_name, age, created_at from users where id = ?"

	if err := s.db.GetContext(ctx, &user, s.db.Rebind(query), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
