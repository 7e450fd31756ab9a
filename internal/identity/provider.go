// Package identity defines the external identity-provider collaborator.
// The sign-in flow itself (OAuth, SSO, whatever the deployment uses) lives
// outside this module; the core only consumes the resulting opaque token.
package identity

import "context"

// Provider authenticates the user with an external identity service and
// returns an opaque identity token. An empty token with a nil error means
// the user cancelled — that is a normal outcome, not a failure.
//
// The token deterministically seeds a wallet, so it must be handled like
// key material: never logged, never persisted by this module.
type Provider interface {
	Authenticate(ctx context.Context) (token string, err error)
}

// Static is a Provider that returns a fixed token. Used by the CLI (token
// from flag or environment) and by tests.
type Static struct {
	Token string
}

// Authenticate returns the configured token.
func (s Static) Authenticate(ctx context.Context) (string, error) {
	return s.Token, nil
}
