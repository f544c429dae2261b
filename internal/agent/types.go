// Package agent manages coding-agent API tokens: issuance, listing,
// revocation, usage auditing, and quota, over /coding-agent/*.
package agent

import "time"

// Token is the backend's record of an issued agent token. The secret itself
// is only returned at issuance; listings carry the masked form.
type Token struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	MaskedToken string     `json:"maskedToken"`
	Scopes      []string   `json:"scopes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	LastUsedAt  *time.Time `json:"lastUsedAt,omitempty"`
	Revoked     bool       `json:"isRevoked"`
}

// IssuedToken is the issuance response: the token record plus the one-time
// secret.
type IssuedToken struct {
	Token
	Secret string `json:"secret"`
}

// IssueRequest describes a token to issue.
type IssueRequest struct {
	Name          string   `json:"name"`
	Scopes        []string `json:"scopes,omitempty"`
	ExpiresInDays int      `json:"expiresInDays,omitempty"`
}

// UsageEntry is one row of the token usage audit log.
type UsageEntry struct {
	ID        string    `json:"id"`
	TokenID   string    `json:"tokenId"`
	Agent     string    `json:"agent,omitempty"`
	Operation string    `json:"operation"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Quota is the account's agent-call allowance.
type Quota struct {
	Limit    int       `json:"limit"`
	Used     int       `json:"used"`
	ResetsAt time.Time `json:"resetsAt"`
}

// Remaining returns the calls left in the current window, never negative.
func (q Quota) Remaining() int {
	if q.Used >= q.Limit {
		return 0
	}
	return q.Limit - q.Used
}
