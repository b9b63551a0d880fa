package services

import (
	"crypto/subtle"

	srvErrors "github.com/kubev2v/smtp-gateway-agent/pkg/errors"
)

// Authenticator checks the login gate credentials. With no username or
// password configured the gate is open.
type Authenticator struct {
	username string
	password string
}

func NewAuthenticator(username, password string) *Authenticator {
	return &Authenticator{username: username, password: password}
}

func (a *Authenticator) Enabled() bool {
	return a.username != "" && a.password != ""
}

// Verify returns InvalidCredentialsError when the gate is enabled and the
// credentials do not match.
func (a *Authenticator) Verify(username, password string) error {
	if !a.Enabled() {
		return nil
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	if !userOK || !passOK {
		return srvErrors.NewInvalidCredentialsError()
	}
	return nil
}
