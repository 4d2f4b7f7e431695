package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/internal/utils"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,50}$`)

// Registration is the input of Register
type Registration struct {
	Username string
	Email    string
	Password string
}

// LoginResult is what a successful login hands back to the client
type LoginResult struct {
	Token    string      `json:"token"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// AuthService registers users and issues bearer tokens
type AuthService struct {
	users    UserStore
	secret   string
	ttl      time.Duration
	attempts *utils.LoginAttempts
}

// NewAuthService builds the service; attempts may be nil to disable lockout
func NewAuthService(users UserStore, secret string, ttl time.Duration, attempts *utils.LoginAttempts) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl, attempts: attempts}
}

// Register creates a USER account with a bcrypt-hashed password
func (s *AuthService) Register(ctx context.Context, reg Registration) (domain.User, error) {
	reg.Username = strings.ToLower(strings.TrimSpace(reg.Username))
	if !usernamePattern.MatchString(reg.Username) {
		return domain.User{}, domain.Invalid("username must be 3-50 letters, digits or underscores")
	}
	if n := len(reg.Password); n < 6 || n > 72 {
		return domain.User{}, domain.Invalid("password must be 6-72 characters")
	}
	_, taken, err := s.users.FindByUsername(ctx, reg.Username)
	if err != nil {
		return domain.User{}, err
	}
	if taken {
		return domain.User{}, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, errors.Wrap(err, "hash password")
	}
	u := domain.User{
		Username: reg.Username,
		Email:    strings.TrimSpace(reg.Email),
		Password: string(hash),
		Role:     domain.RoleUser,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return domain.User{}, err
	}
	logrus.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("User registered")
	return u, nil
}

// Login verifies credentials and issues a token.
// Unknown users and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	blocked, err := s.attempts.Blocked(ctx, username)
	if err != nil {
		logrus.WithError(err).Warn("Login attempt counter unavailable")
	}
	if blocked {
		return LoginResult{}, domain.ErrTooManyAttempts
	}

	u, found, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, err
	}
	if !found || bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		if _, err := s.attempts.RecordFailure(ctx, username); err != nil {
			logrus.WithError(err).Warn("Failed to record login failure")
		}
		logrus.WithField("username", username).Warn("Login failed")
		return LoginResult{}, domain.ErrInvalidCredentials
	}
	if err := s.attempts.Reset(ctx, username); err != nil {
		logrus.WithError(err).Warn("Failed to reset login failures")
	}

	token, err := utils.GenerateJWT(u, s.secret, s.ttl)
	if err != nil {
		return LoginResult{}, errors.Wrap(err, "sign token")
	}
	logrus.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("User logged in")
	return LoginResult{Token: token, Username: u.Username, Role: u.Role}, nil
}

// Principal loads the caller identity with the role currently stored for userID
func (s *AuthService) Principal(ctx context.Context, userID uint) (domain.Principal, error) {
	u, found, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.Principal{}, err
	}
	if !found {
		return domain.Principal{}, domain.ErrUserNotFound
	}
	return domain.Principal{UserID: u.ID, Username: u.Username, Role: u.Role}, nil
}
