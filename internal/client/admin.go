package client

import (
	"context"
	"net/http"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates an admin account and returns the new session. The client's
// token is updated so subsequent calls are authenticated.
func (c *Client) Register(ctx context.Context, username, password string) (*Session, error) {
	var session Session
	err := c.sendJSON(ctx, http.MethodPost, "/admin/register",
		credentials{Username: username, Password: password}, http.StatusCreated, &session)
	if err != nil {
		return nil, err
	}
	c.token = session.Token
	return &session, nil
}

// Login verifies credentials and returns the session. The client's token is
// updated so subsequent calls are authenticated.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var session Session
	err := c.sendJSON(ctx, http.MethodPost, "/admin/login",
		credentials{Username: username, Password: password}, http.StatusOK, &session)
	if err != nil {
		return nil, err
	}
	c.token = session.Token
	return &session, nil
}

// Dashboard fetches the protected admin overview.
func (c *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	var dash Dashboard
	if err := c.getJSON(ctx, "/admin/dashboard", http.StatusOK, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}
