// Package auth covers account session operations (/auth/*) and the
// subscription status lookup (/subscriptions/*).
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/notelab/notelab-cli/internal/api"
	appErrors "github.com/notelab/notelab-cli/internal/errors"
)

// User is the authenticated account profile.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Session is the login response: a bearer token plus the profile it
// authenticates.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Subscription is the account's current plan.
type Subscription struct {
	Plan     string     `json:"plan"`
	Status   string     `json:"status"`
	RenewsAt *time.Time `json:"renewsAt,omitempty"`
}

// Service implements session and subscription operations.
type Service struct {
	client *api.Client
	logger *logrus.Logger
}

// NewService creates the auth service.
func NewService(client *api.Client, logger *logrus.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Login exchanges credentials for a session and installs its bearer token on
// the client for subsequent calls.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if strings.TrimSpace(email) == "" {
		return nil, appErrors.EmptyFieldError("email")
	}
	if password == "" {
		return nil, appErrors.EmptyFieldError("password")
	}

	body := map[string]string{"email": email, "password": password}

	var session Session
	if err := s.client.Post(ctx, "/auth/login", body, &session); err != nil {
		if api.IsUnauthorized(err) {
			return nil, appErrors.AuthenticationError("backend", "invalid credentials")
		}
		return nil, appErrors.WrapWithContext(err, "log in")
	}

	s.client.SetToken(session.Token)
	s.logger.WithField("email", session.User.Email).Info("Logged in")

	return &session, nil
}

// Logout invalidates the current session and clears the client token.
func (s *Service) Logout(ctx context.Context) error {
	err := s.client.Post(ctx, "/auth/logout", nil, nil)
	s.client.SetToken("")
	if err != nil {
		return appErrors.WrapWithContext(err, "log out")
	}
	return nil
}

// Whoami returns the profile behind the current token.
func (s *Service) Whoami(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.Get(ctx, "/auth/me", &user); err != nil {
		if api.IsUnauthorized(err) {
			return nil, appErrors.ErrNotLoggedIn
		}
		return nil, appErrors.WrapWithContext(err, "fetch profile")
	}
	return &user, nil
}

// CurrentSubscription returns the account's active plan.
func (s *Service) CurrentSubscription(ctx context.Context) (*Subscription, error) {
	var sub Subscription
	if err := s.client.Get(ctx, "/subscriptions/current", &sub); err != nil {
		if api.IsUnauthorized(err) {
			return nil, appErrors.ErrNotLoggedIn
		}
		return nil, appErrors.WrapWithContext(err, "fetch subscription")
	}
	return &sub, nil
}
