// Package services contains the application services of the help-desk
// client. Each service wraps the REST transport with role-aware paths and
// persists whatever state must survive restarts through the session store.
package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/deskmate/internal/client/api"
	"github.com/dmitrijs2005/deskmate/internal/client/config"
	"github.com/dmitrijs2005/deskmate/internal/client/session"
)

// AuthService defines authentication operations for the client.
//
// Contract:
//   - Login: authenticate against the backend and persist the access token.
//     On failure the previously stored token (if any) is left untouched.
//   - Logout: drop the stored token for the current role.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
}

type authService struct {
	api     api.Client
	session *session.Session
	role    config.Role
}

// NewAuthService constructs an AuthService bound to the given transport,
// session store and portal role.
func NewAuthService(client api.Client, sess *session.Session, role config.Role) AuthService {
	return &authService{api: client, session: sess, role: role}
}

func loginPath(role config.Role) string {
	if role == config.RoleAgent {
		return "/agents/agent_login"
	}
	return "/users/user_login"
}

// Login posts the credentials form-url-encoded and stores the returned
// access token. The token write happens only after a successful response,
// so a failed login never clobbers a valid stored token.
func (a *authService) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := a.api.PostForm(ctx, loginPath(a.role), form, &resp); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return fmt.Errorf("%w: login response carried no access token", api.ErrUnexpectedShape)
	}

	return a.session.SetToken(ctx, resp.AccessToken)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.ClearToken(ctx)
}
