package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"filmhub/internal/config"
	"filmhub/internal/microservices/http-api/dto"
	"filmhub/internal/microservices/http-api/models"
	"filmhub/internal/microservices/http-api/repository"
	"filmhub/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims is the payload of an access token.
type Claims struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// Requester converts verified claims into the caller identity services use.
func (c *Claims) Requester() Requester {
	return Requester{UserID: c.UserID, Username: c.Username, Roles: c.Roles}
}

type AuthService interface {
	Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo       repository.UserRepository
	jwtSecret      []byte
	issuer         string
	accessTokenTTL time.Duration
	now            func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:       userRepo,
		jwtSecret:      []byte(cfg.JWTSecret),
		issuer:         cfg.JWTIssuer,
		accessTokenTTL: cfg.AccessTokenTTL,
		now:            time.Now,
	}
}

// Register creates a User-role account. The username defaults to the email.
func (s *authService) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, invalid("email is required")
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = email
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, invalidErr(err)
		}
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, conflict("email %s is already registered", email)
		}
		return nil, err
	}

	return &dto.RegisterResponse{UserID: user.ID, Email: user.Email, Username: user.Username}, nil
}

// Login checks the credentials and issues an access token.
func (s *authService) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find user: %w", err)
		}
		auth.BurnCompare(in.Password)
		return nil, &Error{Kind: ErrUnauthorized, Msg: ErrInvalidCredentials.Error()}
	}

	if err := auth.VerifyPassword(user.Password, in.Password); err != nil {
		if auth.IsMismatch(err) {
			return nil, &Error{Kind: ErrUnauthorized, Msg: ErrInvalidCredentials.Error()}
		}
		return nil, fmt.Errorf("verify password: %w", err)
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	// last_login is informational
	_ = s.userRepo.TouchLastLogin(ctx, user.ID)

	return &dto.AuthResponse{
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		Roles:     user.Roles(),
		ExpiresIn: int64(s.accessTokenTTL.Seconds()),
	}, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Roles:    user.Roles(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature, issuer and expiry and returns the claims.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.jwtSecret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
