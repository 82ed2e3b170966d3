package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/attendance-tracker/internal/user"
)

// ServiceAPI is the surface the HTTP handler depends on.
type ServiceAPI interface {
	Register(dto RegisterDTO) (*AuthResponse, error)
	Login(dto LoginDTO) (*AuthResponse, error)
	CurrentUser(userID int64) (*user.User, error)
	UpdateProfile(userID int64, dto UpdateProfileDTO) (*user.User, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUser(userID int64) (*user.User, error)
}

// TokenGeneratorAPI creates and verifies bearer tokens.
type TokenGeneratorAPI interface {
	GenerateToken(userID int64, role string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// AuthResponse is the wire shape returned by register and login.
type AuthResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// Claims carries the authenticated identity inside the JWT. Role travels in
// the token so the routing-boundary predicate can reject non-managers before
// touching the store.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	Secret   []byte
	TokenTTL time.Duration
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
