package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthcrm/healthcrm-api/internal/config"
	"github.com/healthcrm/healthcrm-api/internal/domain"
	"github.com/healthcrm/healthcrm-api/internal/repository"
	"github.com/healthcrm/healthcrm-api/pkg/auth"
	"github.com/healthcrm/healthcrm-api/pkg/metrics"
)

// dummyHash keeps login timing uniform when the email is unknown.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type AuthService struct {
	users    UserRepository
	tokens   *auth.JWTManager
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewAuthService(users UserRepository, tokens *auth.JWTManager, auditSvc *AuditService, collector *metrics.Collector, log *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		auditSvc: auditSvc,
		metrics:  collector,
		log:      log,
	}
}

type RegisterCommand struct {
	Email           string
	FullName        string
	Password        string
	ConfirmPassword string
}

type LoginCommand struct {
	Email    string
	Password string
	IP       string
}

// Register creates a new account. New users always start as Staff; an admin
// promotes them afterwards.
func (s *AuthService) Register(ctx context.Context, cmd *RegisterCommand) (*domain.User, error) {
	var errs []string
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if !validEmail(email) {
		errs = append(errs, "email format is invalid")
	}
	errs = requireField(errs, cmd.FullName, "fullName", 50)
	errs = appendPasswordErrors(errs, cmd.Password)
	if cmd.ConfirmPassword != cmd.Password {
		errs = append(errs, "confirmPassword must match password")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &domain.User{
		Email:        email,
		FullName:     strings.TrimSpace(cmd.FullName),
		PasswordHash: string(hash),
		Role:         domain.RoleStaff,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", u.ID.String()))
	return u, nil
}

// Login verifies credentials and issues a token plus its expiry for the
// cookie. Unknown emails still pay the bcrypt cost.
func (s *AuthService) Login(ctx context.Context, cmd *LoginCommand) (*domain.User, string, time.Time, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(cmd.Password))
			s.recordLogin("failure")
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(cmd.Password)); err != nil {
		s.recordLogin("failure")
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Generate(&domain.Claims{
		UserID:   u.ID,
		Email:    u.Email,
		Username: u.FullName,
		Roles:    []string{string(u.Role)},
	})
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("issuing token: %w", err)
	}

	s.recordLogin("success")
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       u.ID,
		UserRole:     string(u.Role),
		Action:       "login",
		ResourceType: "user",
		ResourceID:   u.ID.String(),
		IPAddress:    cmd.IP,
	})

	return u, token, expiresAt, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *AuthService) ChangeRole(ctx context.Context, userID uuid.UUID, role string, caller Caller) error {
	r := domain.Role(role)
	if !r.IsValid() {
		return ErrInvalidRole
	}

	if err := s.users.UpdateRole(ctx, userID, r); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     caller.Role,
		Action:       "update",
		ResourceType: "user_role",
		ResourceID:   userID.String(),
		IPAddress:    caller.IP,
	})
	s.log.Info("user role changed",
		zap.String("user_id", userID.String()),
		zap.String("role", role))
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword, confirmPassword string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}

	errs := appendPasswordErrors(nil, newPassword)
	if confirmPassword != newPassword {
		errs = append(errs, "confirmPassword must match password")
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// DeleteUser removes an account. Admins cannot remove themselves.
func (s *AuthService) DeleteUser(ctx context.Context, userID uuid.UUID, caller Caller) error {
	if userID == caller.UserID {
		return ErrForbidden
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     caller.Role,
		Action:       "delete",
		ResourceType: "user",
		ResourceID:   userID.String(),
		IPAddress:    caller.IP,
	})
	return nil
}

// SeedAdmin creates the bootstrap admin account from configuration when no
// account with that email exists yet.
func (s *AuthService) SeedAdmin(ctx context.Context, cfg config.AdminConfig) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	u := &domain.User{
		Email:        email,
		FullName:     "Administrator",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return nil
		}
		return err
	}

	s.log.Info("admin account seeded", zap.String("email", email))
	return nil
}

func (s *AuthService) recordLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}

func appendPasswordErrors(errs []string, password string) []string {
	if len(password) < 6 {
		errs = append(errs, "password must be at least 6 characters")
		return errs
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		errs = append(errs, "password must contain upper and lower case letters, a digit, and a special character")
	}
	return errs
}
