package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/memberhub/memberhub/internal/models"
	"github.com/memberhub/memberhub/internal/repository/contract"
	"github.com/memberhub/memberhub/pkg/apperr"
	"github.com/memberhub/memberhub/pkg/config"
	"github.com/memberhub/memberhub/pkg/logctx"
)

// Service implements the identity rules: account registration, credential
// checks, profile updates and deactivation.
type Service struct {
	users contract.UserRepository
	cfg   *config.Config
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewService(users contract.UserRepository, cfg *config.Config, log *zap.SugaredLogger) *Service {
	return &Service{users: users, cfg: cfg, log: log, now: time.Now}
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error) {
	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}

	cost := s.cfg.Auth.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}
	logctx.FromCtx(ctx, s.log).Infow("user_registered", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("account is deactivated")
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// CurrentUser resolves the authenticated account, rejecting deactivated ones.
func (s *Service) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.RequireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("account is deactivated")
	}
	return user, nil
}

// RequireUser is the existence precondition used by every cross-entity
// creation operation.
func (s *Service) RequireUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.RequireUser(ctx, userID)
}

func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

// UserUpdate carries the optional profile fields; only non-nil fields are
// applied.
type UserUpdate struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

func (s *Service) UpdateUser(ctx context.Context, userID uint, update *UserUpdate) (*models.User, error) {
	user, err := s.RequireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	user.UpdatedAt = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeactivateUser is idempotent: deactivating an already-inactive account
// succeeds silently.
func (s *Service) DeactivateUser(ctx context.Context, userID uint) error {
	user, err := s.RequireUser(ctx, userID)
	if err != nil {
		return err
	}
	user.IsActive = false
	user.UpdatedAt = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("user_deactivated", "user_id", userID)
	return nil
}

// Claims carried by access tokens.
type TokenClaims struct {
	UserID  uint `json:"user_id"`
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

func (s *Service) signToken(user *models.User) (string, error) {
	now := s.now()
	claims := &TokenClaims{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Auth.TokenTTL())),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a bearer token and returns its claims.
func (s *Service) ParseToken(tokenStr string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Auth.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("invalid token")
	}
	return claims, nil
}
