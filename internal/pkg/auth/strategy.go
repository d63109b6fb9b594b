package auth

import "time"

type Strategy interface {
	IssueToken(userID int64, role string) (string, error)
	ParseToken(token string) (int64, string, error)
	Name() string
}

// GrantSigner issues short-lived signed grants scoped to a single resource.
// The content viewer uses these as one-shot open permissions: issuing the
// grant acquires access, its TTL releases it without any paired teardown.
type GrantSigner interface {
	IssueGrant(subject string, ttl time.Duration) (string, error)
	ParseGrant(token string) (string, error)
}

type Options struct {
	TTL time.Duration
}
