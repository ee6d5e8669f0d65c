package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tacslabs/tacs-console/internal/auth"
	"github.com/tacslabs/tacs-console/internal/config"
	"github.com/tacslabs/tacs-console/internal/logger"
	"github.com/tacslabs/tacs-console/internal/model"
	"github.com/tacslabs/tacs-console/internal/store"
)

// Common service errors
var (
	// ErrInvalidCredentials is deliberately coarse: the same error covers an
	// unknown username and a wrong password, to avoid account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotActive   = errors.New("account is not active")
	ErrAccountLocked      = errors.New("account is locked, try again later")
	ErrAlreadyInitialized = errors.New("admin users already exist, cannot initialize")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrPasswordTooWeak    = errors.New("password does not meet requirements")
)

// AuthService validates console credentials against the record store,
// enforces lockout policy and account status, and writes the audit trail.
type AuthService struct {
	store       *store.Store
	audit       *AuditRecorder
	tokens      *auth.TokenService
	cfg         *config.Config
	argonParams *auth.Argon2Params
	log         *logger.Logger
	now         func() time.Time
	sleep       func(time.Duration)
}

// NewAuthService creates an AuthService.
func NewAuthService(st *store.Store, audit *AuditRecorder, cfg *config.Config, log *logger.Logger) *AuthService {
	return &AuthService{
		store:  st,
		audit:  audit,
		tokens: auth.NewTokenService(cfg.Security.Session.TokenTTL),
		cfg:    cfg,
		argonParams: auth.NewParams(
			cfg.Security.Password.Argon2Memory,
			cfg.Security.Password.Argon2Iterations,
			cfg.Security.Password.Argon2Parallelism,
		),
		log:   log.WithComponent("auth_service"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// WithClock overrides the clock, for tests.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	s.tokens.WithClock(now)
	return s
}

// Tokens exposes the session token service.
func (s *AuthService) Tokens() *auth.TokenService {
	return s.tokens
}

// LoginResponse carries the outcome of a successful authentication.
type LoginResponse struct {
	User        *model.AdminUser `json:"user"`
	Role        model.Role       `json:"role"`
	Permissions []string         `json:"permissions"`
}

// Authenticate validates a username/password pair.
//
// The flow is strict: unknown user or wrong password both end in
// ErrInvalidCredentials; an inactive account ends in ErrAccountNotActive; an
// account inside its lockout window ends in ErrAccountLocked regardless of
// password correctness. Every rejected attempt is audited. A uniform
// configurable delay applies before the credential check, including to
// logins that ultimately succeed.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*LoginResponse, error) {
	if d := s.cfg.Security.Lockout.LoginDelay; d > 0 {
		s.sleep(d)
	}

	user, err := store.FindByIndex[model.AdminUser](ctx, s.store, store.TableAdminUsers, "username", username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		s.audit.Record(ctx, model.AuditActionLoginFailed, username, "", "user not found")
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive() {
		s.audit.Record(ctx, model.AuditActionLoginBlocked, username, "", fmt.Sprintf("account status: %s", user.Status))
		return nil, ErrAccountNotActive
	}

	now := s.now()
	if user.IsLockedAt(now) {
		s.audit.Record(ctx, model.AuditActionLoginBlocked, username, "", "account locked")
		return nil, ErrAccountLocked
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		s.handleFailedLogin(ctx, user, now)
		s.audit.Record(ctx, model.AuditActionLoginFailed, username, "", "invalid password")
		return nil, ErrInvalidCredentials
	}

	// Successful login: clear the counter and lockout, stamp last login,
	// and upgrade a legacy digest while the plaintext is available.
	user.LoginAttempts = 0
	user.LockoutUntil = nil
	user.LastLogin = &now
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, hashErr := auth.HashPassword(password, s.argonParams); hashErr == nil {
			user.PasswordHash = newHash
			s.log.Info().Str("username", username).Msg("migrated legacy password hash")
		} else {
			s.log.Error().Err(hashErr).Str("username", username).Msg("failed to rehash password")
		}
	}
	if err := s.store.Update(ctx, store.TableAdminUsers, user); err != nil {
		return nil, fmt.Errorf("failed to persist login state: %w", err)
	}

	s.audit.Record(ctx, model.AuditActionLoginSuccess, username, "", "successful authentication")
	s.log.Info().Str("username", username).Msg("user logged in")

	return &LoginResponse{
		User:        user,
		Role:        user.Role,
		Permissions: user.Permissions,
	}, nil
}

// handleFailedLogin counts the attempt atomically and applies the lockout
// once the threshold is reached.
func (s *AuthService) handleFailedLogin(ctx context.Context, user *model.AdminUser, now time.Time) {
	attempts, err := s.store.IncrementField(ctx, store.TableAdminUsers, user.ID, "loginAttempts")
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to count login attempt")
		return
	}
	user.LoginAttempts = attempts

	if attempts >= s.cfg.Security.Lockout.MaxAttempts {
		until := now.Add(s.cfg.Security.Lockout.Duration)
		user.LockoutUntil = &until
		if err := s.store.Update(ctx, store.TableAdminUsers, user); err != nil {
			s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to persist lockout")
			return
		}
		s.log.Warn().
			Str("username", user.Username).
			Int("attempts", attempts).
			Time("lockout_until", until).
			Msg("account locked due to failed attempts")
	}
}

// HasAdminUsers reports whether any admin account exists. The setup flow is
// only available while this is false.
func (s *AuthService) HasAdminUsers(ctx context.Context) (bool, error) {
	n, err := s.store.Count(ctx, store.TableAdminUsers)
	if err != nil {
		return false, fmt.Errorf("failed to count admin users: %w", err)
	}
	return n > 0, nil
}

// SetupRequest contains the data for bootstrapping the first admin account.
type SetupRequest struct {
	Username string
	Password string
	Email    string
}

// InitializeFirstAdmin creates the first super_admin account with the full
// permission set. It fails with ErrAlreadyInitialized once any admin user
// exists; the guard is table emptiness, not a flag, so the flow becomes
// permanently unavailable after the first success.
func (s *AuthService) InitializeFirstAdmin(ctx context.Context, req SetupRequest) (string, error) {
	hasUsers, err := s.HasAdminUsers(ctx)
	if err != nil {
		return "", err
	}
	if hasUsers {
		return "", ErrAlreadyInitialized
	}

	if err := auth.ValidateUsername(req.Username); err != nil {
		return "", err
	}
	if err := auth.ValidatePassword(req.Password, s.cfg.Security.Password.MinLength); err != nil {
		return "", fmt.Errorf("%w: %s", ErrPasswordTooWeak, err.Error())
	}
	if !isValidEmail(req.Email) {
		return "", fmt.Errorf("invalid email address")
	}

	return s.CreateAdminUser(ctx, CreateUserRequest{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		Role:        model.RoleSuperAdmin,
		Permissions: model.AllPermissions,
	})
}

// CreateUserRequest contains the data for creating an admin account.
type CreateUserRequest struct {
	Username    string
	Password    string
	Email       string
	Role        model.Role
	Permissions []string
}

// CreateAdminUser creates an admin account. The caller is responsible for
// authorization; the store only enforces username uniqueness.
func (s *AuthService) CreateAdminUser(ctx context.Context, req CreateUserRequest) (string, error) {
	existing, err := store.FindByIndex[model.AdminUser](ctx, s.store, store.TableAdminUsers, "username", req.Username)
	if err != nil {
		return "", fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return "", ErrUsernameTaken
	}

	passwordHash, err := auth.HashPassword(req.Password, s.argonParams)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.AdminUser{
		ID:           generateID("usr"),
		Username:     req.Username,
		PasswordHash: passwordHash,
		Role:         req.Role,
		Permissions:  req.Permissions,
		Email:        req.Email,
		CreatedAt:    s.now(),
		Status:       model.UserStatusActive,
	}

	if _, err := s.store.Insert(ctx, store.TableAdminUsers, user); err != nil {
		if errors.Is(err, store.ErrConstraintViolation) {
			return "", ErrUsernameTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	s.audit.Record(ctx, model.AuditActionAdminUserCreated, "system", user.ID,
		fmt.Sprintf("Created %s user: %s", req.Role, req.Username))
	s.log.Info().Str("username", req.Username).Str("role", string(req.Role)).Msg("admin user created")

	return user.ID, nil
}

// ListUsers returns every admin account.
func (s *AuthService) ListUsers(ctx context.Context) ([]model.AdminUser, error) {
	return store.GetAll[model.AdminUser](ctx, s.store, store.TableAdminUsers)
}

// UpdateUserStatus transitions an account between active, suspended and
// disabled. Accounts are never hard-deleted; status changes are the only
// lifecycle exit. Returns false when the id does not exist.
func (s *AuthService) UpdateUserStatus(ctx context.Context, userID string, status model.UserStatus) (bool, error) {
	user, err := store.GetByID[model.AdminUser](ctx, s.store, store.TableAdminUsers, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return false, nil
	}

	user.Status = status
	if err := s.store.Update(ctx, store.TableAdminUsers, user); err != nil {
		return false, fmt.Errorf("failed to update user status: %w", err)
	}

	s.audit.Record(ctx, model.AuditActionUserStatusUpdated, "system", userID,
		fmt.Sprintf("Status changed to %s", status))
	s.log.Info().Str("username", user.Username).Str("status", string(status)).Msg("user status updated")
	return true, nil
}

func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(email, " \t")
}
