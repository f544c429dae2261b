package agent

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/notelab/notelab-cli/internal/api"
	appErrors "github.com/notelab/notelab-cli/internal/errors"
)

// Service implements the agent-token dashboard operations.
type Service struct {
	client *api.Client
	logger *logrus.Logger
}

// NewService creates the /coding-agent/* service.
func NewService(client *api.Client, logger *logrus.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Issue creates a new agent token. The returned secret is shown exactly
// once and never retrievable again.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (*IssuedToken, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, appErrors.EmptyFieldError("token name")
	}
	if req.ExpiresInDays < 0 {
		return nil, appErrors.ValidationError("token expiry", "must not be negative")
	}

	var issued IssuedToken
	if err := s.client.Post(ctx, "/coding-agent/tokens", req, &issued); err != nil {
		return nil, appErrors.WrapWithContext(err, "issue agent token")
	}

	s.logger.WithFields(logrus.Fields{
		"token_id": issued.ID,
		"name":     issued.Name,
	}).Info("Agent token issued")

	return &issued, nil
}

// List returns all tokens for the account, masked.
func (s *Service) List(ctx context.Context) ([]Token, error) {
	var tokens []Token
	if err := s.client.Get(ctx, "/coding-agent/tokens", &tokens); err != nil {
		return nil, appErrors.WrapWithContext(err, "list agent tokens")
	}
	return tokens, nil
}

// Revoke permanently disables a token.
func (s *Service) Revoke(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/coding-agent/tokens/"+url.PathEscape(id), nil); err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("%w: %s", appErrors.ErrAgentTokenNotFound, id)
		}
		return appErrors.WrapWithContext(err, "revoke agent token")
	}

	s.logger.WithField("token_id", id).Info("Agent token revoked")
	return nil
}

// Usage returns the usage audit log, newest first. tokenID scopes the log to
// one token when non-empty; limit caps the row count when positive.
func (s *Service) Usage(ctx context.Context, tokenID string, limit int) ([]UsageEntry, error) {
	query := url.Values{}
	if tokenID != "" {
		query.Set("token", tokenID)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	path := "/coding-agent/usage"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var entries []UsageEntry
	if err := s.client.Get(ctx, path, &entries); err != nil {
		return nil, appErrors.WrapWithContext(err, "fetch usage log")
	}
	return entries, nil
}

// GetQuota returns the account's current agent-call allowance.
func (s *Service) GetQuota(ctx context.Context) (*Quota, error) {
	var quota Quota
	if err := s.client.Get(ctx, "/coding-agent/quota", &quota); err != nil {
		return nil, appErrors.WrapWithContext(err, "fetch quota")
	}
	return &quota, nil
}
