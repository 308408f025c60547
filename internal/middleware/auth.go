package middleware

import (
	"context"
	"net/http"

	"golf-backend/utils/response"

	"github.com/golang-jwt/jwt"
)

type contextKey string

const UserContextKey contextKey = "user"

type UserClaims struct {
	UserID string `json:"userID"`
	Email  string `json:"email"`
}

type AuthMiddleware struct {
	jwtSecret  string
	cookieName string
}

func NewAuthMiddleware(jwtSecret, cookieName string) *AuthMiddleware {
	if cookieName == "" {
		cookieName = "token"
	}
	return &AuthMiddleware{jwtSecret: jwtSecret, cookieName: cookieName}
}

// RequireAuth rejects requests without a valid session cookie.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.claimsFromRequest(r)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "no user")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth attaches the session when one is present and valid, and
// otherwise passes the request through untouched.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, err := m.claimsFromRequest(r); err == nil {
			r = r.WithContext(context.WithValue(r.Context(), UserContextKey, claims))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) claimsFromRequest(r *http.Request) (*UserClaims, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, err
	}
	return m.validateToken(cookie.Value)
}

func (m *AuthMiddleware) validateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(m.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrInvalidKey
	}

	userID, ok := mapClaims["userID"].(string)
	if !ok || userID == "" {
		return nil, jwt.ErrInvalidKey
	}
	email, _ := mapClaims["email"].(string)

	return &UserClaims{UserID: userID, Email: email}, nil
}

func GetUserFromContext(ctx context.Context) *UserClaims {
	claims, ok := ctx.Value(UserContextKey).(*UserClaims)
	if !ok {
		return nil
	}
	return claims
}
