// Package auth provides the operator login check and the access gate in
// front of the analytics endpoint.
package auth

import (
	"crypto/subtle"
	"errors"
)

var (
	// ErrUnauthorized is returned when a request carries no valid bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Gate decides whether a request may read analytics.
// header is the raw value of the Authorization request header.
type Gate interface {
	Authorize(header string) error
}

// Authenticator exchanges operator credentials for an access token.
type Authenticator interface {
	Login(login, password string) (string, error)
}

// StaticTokenGate accepts exactly "Bearer <token>" for one shared token.
type StaticTokenGate struct {
	expected []byte
}

// NewStaticTokenGate creates a gate for the shared token.
func NewStaticTokenGate(token string) *StaticTokenGate {
	return &StaticTokenGate{expected: []byte("Bearer " + token)}
}

// Authorize implements Gate.
func (g *StaticTokenGate) Authorize(header string) error {
	if header == "" || !constantTimeEqual([]byte(header), g.expected) {
		return ErrUnauthorized
	}
	return nil
}

// StaticCredentials is a single fixed login/password pair bound to a fixed token.
type StaticCredentials struct {
	login    []byte
	password []byte
	token    string
}

// NewStaticCredentials creates an authenticator for one operator account.
func NewStaticCredentials(login, password, token string) *StaticCredentials {
	return &StaticCredentials{
		login:    []byte(login),
		password: []byte(password),
		token:    token,
	}
}

// Login implements Authenticator.
func (c *StaticCredentials) Login(login, password string) (string, error) {
	loginOK := constantTimeEqual([]byte(login), c.login)
	passwordOK := constantTimeEqual([]byte(password), c.password)
	if !loginOK || !passwordOK {
		return "", ErrInvalidCredentials
	}
	return c.token, nil
}

func constantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
