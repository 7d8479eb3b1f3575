package api

import (
	"context"
	"net/http"
)

// AuthResponse is the login/register payload. Older backend builds named the
// token field "token" instead of "accessToken"; BearerToken accepts both.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	Token       string `json:"token"`
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
}

func (r AuthResponse) BearerToken() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

// UserProfile is the bearer-authenticated profile/validation endpoint payload.
type UserProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, username, password string) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", credentials{Username: username, Password: password}, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, username, email, password string) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", "", credentials{Username: username, Email: email, Password: password}, &out)
	return out, err
}

// Profile validates a token by fetching the profile behind it.
func (c *Client) Profile(ctx context.Context, token string) (UserProfile, error) {
	var out UserProfile
	err := c.do(ctx, http.MethodGet, "/auth/profile", token, nil, &out)
	return out, err
}
