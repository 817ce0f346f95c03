package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID string, role domain.Role) (string, time.Time, error)
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users             repository.UserRepository
	tokens            TokenIssuer
	bcryptCost        int
	allowRegistration bool
	logger            *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Tokens   TokenIssuer
	Logger   *zap.Logger
}

// Session is the result of a successful login.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:             deps.UserRepo,
		tokens:            deps.Tokens,
		bcryptCost:        cfg.BcryptCost,
		allowRegistration: cfg.AllowRegistration,
		logger:            logger,
	}
}

// Register creates an admin account. Every registered user is an admin.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if !s.allowRegistration {
		return nil, apperrors.NewForbidden("Registration is disabled")
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("All fields are required", nil)
	}

	user, err := s.createUser(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login checks credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("Email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNoRows(err) {
			s.logger.Debug("login for unknown email")
			return nil, apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if auth.IsPasswordMismatch(err) {
			s.logger.Debug("login with wrong password", zap.String("user_id", user.ID))
			return nil, apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, err
	}

	role := user.Role
	if role == "" {
		role = domain.RoleAdmin
	}
	token, expiresAt, err := s.tokens.Issue(user.ID, role)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// PromoteAllToAdmin assigns the admin role to every stored user.
func (s *AuthService) PromoteAllToAdmin(ctx context.Context) (int64, error) {
	count, err := s.users.SetRoleForAll(ctx, domain.RoleAdmin)
	if err != nil {
		return 0, err
	}
	s.logger.Info("users promoted to admin", zap.Int64("count", count), zap.String("actor_id", auth.ActorID(ctx)))
	return count, nil
}

type seedFile struct {
	Users []struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"users"`
}

// SeedUsersFromFile creates the admin accounts listed in a YAML file, skipping emails that already exist.
// It ignores the registration switch.
func (s *AuthService) SeedUsersFromFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}

	created := 0
	for _, u := range file.Users {
		email := strings.TrimSpace(u.Email)
		if email == "" || u.Password == "" {
			continue
		}
		if _, err := s.users.GetByEmail(ctx, email); err == nil {
			continue
		} else if !apperrors.IsNoRows(err) {
			return created, err
		}
		if _, err := s.createUser(ctx, email, u.Password); err != nil {
			return created, err
		}
		created++
	}
	s.logger.Info("seeded users", zap.String("path", path), zap.Int("created", created))
	return created, nil
}

func (s *AuthService) createUser(ctx context.Context, email, password string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewValidationError("Email already registered", nil)
	} else if !apperrors.IsNoRows(err) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewValidationError("Email already registered", nil)
		}
		return nil, err
	}
	return user, nil
}
