package webauthnhandler

import (
	"crypto/rand"
	"fmt"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/myrjola/kompassi/internal/errors"
	"time"
)

type user struct {
	id          []byte
	displayName string
	credentials []webauthn.Credential
}

const webauthnIDSize = 64

// newRandomUser initialises a user with a random handle. The display name
// carries no identity, answers stay anonymous even with a passkey attached.
func newRandomUser() (webauthn.User, error) {
	id := make([]byte, webauthnIDSize)
	if _, err := rand.Read(id); err != nil {
		return nil, errors.Wrap(err, "generate user id")
	}

	return &user{
		displayName: fmt.Sprintf("Anonymous user created at %s", time.Now().Format(time.RFC3339)),
		id:          id,
		credentials: []webauthn.Credential{},
	}, nil
}

// WebAuthnID provides the user handle, an opaque byte sequence of at most 64
// bytes never shown to the user. Authorization decisions MUST be made on this
// id, not the display name.
//
// Specification: §5.4.3. User Account Parameters for Credential Generation
// (https://w3c.github.io/webauthn/#dom-publickeycredentialuserentity-id)
func (u user) WebAuthnID() []byte {
	return u.id
}

// WebAuthnName provides the human-palatable name attribute of the user
// account, intended only for display.
func (u user) WebAuthnName() string {
	return u.displayName
}

// WebAuthnDisplayName provides the display name attribute of the user
// account, intended only for display.
func (u user) WebAuthnDisplayName() string {
	return u.displayName
}

// WebAuthnCredentials provides the list of [webauthn.Credential] owned by the user.
func (u user) WebAuthnCredentials() []webauthn.Credential {
	return u.credentials
}
