package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/user"
)

// UserRepository is the slice of the user store the auth service needs.
type UserRepository interface {
	Create(u *user.User) error
	GetByID(id int64) (*user.User, error)
	GetByEmail(email string) (*user.User, error)
}

// ProfileAPI delegates self-service profile mutation to the user service.
type ProfileAPI interface {
	UpdateProfile(id int64, name, email, department string) (*user.User, error)
}

type Service struct {
	users          UserRepository
	profiles       ProfileAPI
	tokenGenerator TokenGeneratorAPI
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(users UserRepository, profiles ProfileAPI, tokenGen TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		users:          users,
		profiles:       profiles,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		TokenTTL: ttl,
	}
}

// NewEmployeeID mints a unique employee identifier at registration time.
func NewEmployeeID() string {
	return "EMP" + strings.ToUpper(uuid.NewString()[:8])
}

// Register creates a user and returns an identity payload with a fresh token.
// Role defaults to employee; it cannot be changed afterwards.
func (s *Service) Register(dto RegisterDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.users.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.ErrEmailTaken
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return nil, internal.NewInternalError("registration failed", err)
	}

	u := &user.User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         dto.Role,
		EmployeeID:   NewEmployeeID(),
		Department:   dto.Department,
	}

	if err := s.users.Create(u); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("user creation failed", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("registration failed", err)
	}

	token, err := s.tokenGenerator.GenerateToken(u.ID, u.Role)
	if err != nil {
		s.logger.Error("token generation failed", "error", err, "user_id", u.ID)
		return nil, internal.NewInternalError("registration failed", err)
	}

	s.logger.Info("user registered", "user_id", u.ID, "role", u.Role)

	return &AuthResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		Token: token,
	}, nil
}

// Login validates credentials and returns the identity payload with a token.
func (s *Service) Login(dto LoginDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(dto.Email)
	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	if err := VerifyPassword(u.PasswordHash, dto.Password); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateToken(u.ID, u.Role)
	if err != nil {
		s.logger.Error("token generation failed", "error", err, "user_id", u.ID)
		return nil, internal.NewInternalError("login failed", err)
	}

	return &AuthResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		Token: token,
	}, nil
}

func (s *Service) CurrentUser(userID int64) (*user.User, error) {
	return s.users.GetByID(userID)
}

func (s *Service) UpdateProfile(userID int64, dto UpdateProfileDTO) (*user.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return s.profiles.UpdateProfile(userID, dto.Name, dto.Email, dto.Department)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

func (s *Service) GetUser(userID int64) (*user.User, error) {
	return s.users.GetByID(userID)
}

// GenerateToken creates a signed bearer token carrying user id and role.
func (j *JWTTokenGenerator) GenerateToken(userID int64, role string) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// ValidateToken verifies the signature and expiry and returns the claims.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}
