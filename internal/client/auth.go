package client

import (
	"context"
	"net/http"

	"github.com/mohmadimran/books-manager-frontend/internal/model"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// RegisterUser creates an account on the backend. Registration does NOT
// log the user in — there is no session side effect here or anywhere in
// this package.
func (c *Client) RegisterUser(ctx context.Context, name, email, password string) error {
	body := signupRequest{Name: name, Email: email, Password: password}
	return c.do(ctx, http.MethodPost, "/api/auth/signup", body, nil)
}

// LoginUser exchanges credentials for an identity and a bearer token.
// The caller (auth flow) decides what to do with them; this method does
// not touch the session store.
func (c *Client) LoginUser(ctx context.Context, email, password string) (*model.User, string, error) {
	body := loginRequest{Email: email, Password: password}

	var res loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &res); err != nil {
		return nil, "", err
	}
	return res.User, res.Token, nil
}
