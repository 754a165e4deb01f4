package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/hacklens/hacklens-go/internal/identity"
)

// User is the platform's account record as returned by /auth/me and signup.
type User struct {
	ID       string        `json:"_id"`
	Name     string        `json:"name"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Role     identity.Role `json:"role"`
	Disabled bool          `json:"disabled"`
}

type SignupRequest struct {
	Name     string        `json:"name"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Password string        `json:"password"`
	Role     identity.Role `json:"role"`
}

// Login exchanges credentials for a bearer token. The platform's login
// endpoint is a form-encoded OAuth2 password grant, so the exchange goes
// through x/oauth2 rather than a hand-built form post. On success the token
// is persisted and the identity it asserts is returned.
func (c *Client) Login(ctx context.Context, username, password string) (*identity.Identity, error) {
	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.baseURL + "/auth/login",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	token, err := conf.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: incorrect username or password", ErrUnauthorized)
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}

	id, err := identity.Decode(token.AccessToken, time.Now())
	if err != nil {
		return nil, fmt.Errorf("server issued an unusable token: %w", err)
	}
	if err := c.store.SetToken(token.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to persist session token: %w", err)
	}
	zap.S().Infof("logged in as %s (%s)", id.Subject, id.Role)
	return id, nil
}

// Logout clears the persisted session token.
func (c *Client) Logout() error {
	return c.store.Clear()
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	if _, err := identity.ParseRole(string(req.Role)); err != nil {
		return nil, err
	}
	var user User
	if err := c.postJSON(ctx, "/auth/signup", false, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me returns the account behind the current session token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "/auth/me", true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
