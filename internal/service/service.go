package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/bancasol/core-service/internal/config"
	"github.com/bancasol/core-service/internal/models"
	"github.com/bancasol/core-service/internal/payments"
	"github.com/bancasol/core-service/internal/repository"
	"github.com/bancasol/core-service/internal/scoring"
)

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Service handles business logic
type Service struct {
	repo    *repository.Repository
	scores  *scoring.Engine
	settler *payments.Settler
	sender  ReminderSender
	log     *logrus.Logger
	config  *config.Config
	now     func() time.Time
}

// NewService initializes a new service. sender may be nil when no SMTP
// relay is configured; reminder delivery is then skipped.
func NewService(repo *repository.Repository, scores *scoring.Engine, settler *payments.Settler, sender ReminderSender, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:    repo,
		scores:  scores,
		settler: settler,
		sender:  sender,
		log:     log,
		config:  cfg,
		now:     time.Now,
	}
}

// WithNow overrides the service clock. Used by tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// authorize enforces the ownership-or-admin rule before any mutation of a
// user-owned resource.
func authorize(actor Actor, ownerID string) error {
	if actor.IsAdmin() || actor.UserID == ownerID {
		return nil
	}
	return models.ErrPermissionDenied
}

// Register creates a new user with a hashed password. Registration is
// always with the standard role; admins exist only in seeded data.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, &models.ValidationError{Reason: "name, email and password are required"}
	}

	if _, err := s.repo.FindUserByEmail(ctx, email); err == nil {
		return nil, &models.ValidationError{Reason: "email already registered"}
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           "user-" + uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         models.RoleUser,
		PasswordHash: string(hashedPassword),
		CreatedAt:    s.now(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", &models.ValidationError{Reason: "invalid credentials"}
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", &models.ValidationError{Reason: "invalid credentials"}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  jwt.NewNumericDate(s.now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// ComputeScore recalculates and returns the actor's credit score.
func (s *Service) ComputeScore(ctx context.Context, actor Actor) (*models.CreditScore, error) {
	return s.scores.ComputeScore(ctx, actor.UserID)
}

// UserScore returns the stored score record for a user. Admins may look up
// any user; others only themselves.
func (s *Service) UserScore(ctx context.Context, actor Actor, userID string) (*models.CreditScore, error) {
	if err := authorize(actor, userID); err != nil {
		return nil, err
	}
	return s.scores.UserScore(ctx, userID)
}
