// Package auth provides passphrase-based authenticators for unlocking the face collection.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/kozaktomas/name-that-face/internal/config"
	"github.com/kozaktomas/name-that-face/internal/workflow"
	"golang.org/x/crypto/bcrypt"
)

// ErrNoPassphrase is wrapped when no passphrase hash is configured.
var ErrNoPassphrase = errors.New("no passphrase hash configured")

// PassphraseFunc supplies the passphrase to check. reason explains to the user
// why it is being asked for.
type PassphraseFunc func(ctx context.Context, reason string) (string, error)

// Passphrase checks a user-supplied passphrase against a bcrypt hash.
type Passphrase struct {
	hash     []byte
	input    PassphraseFunc
	messages config.AuthMessages
}

// NewPassphrase creates an authenticator. An empty hash makes every attempt
// fail with the "unavailable" message.
func NewPassphrase(hash string, input PassphraseFunc, messages config.AuthMessages) *Passphrase {
	return &Passphrase{
		hash:     []byte(hash),
		input:    input,
		messages: messages,
	}
}

// Available reports whether a hash is configured.
func (p *Passphrase) Available() bool {
	return len(p.hash) > 0
}

// Authenticate implements workflow.Authenticator.
func (p *Passphrase) Authenticate(ctx context.Context, reason string) error {
	if !p.Available() || p.input == nil {
		return &workflow.AuthenticationError{Reason: p.messages.Unavailable, Err: ErrNoPassphrase}
	}

	passphrase, err := p.input(ctx, reason)
	if err != nil {
		return &workflow.AuthenticationError{Reason: p.messages.Failed, Err: fmt.Errorf("read passphrase: %w", err)}
	}

	if err := bcrypt.CompareHashAndPassword(p.hash, []byte(passphrase)); err != nil {
		return &workflow.AuthenticationError{Reason: p.messages.Failed, Err: err}
	}
	return nil
}

// Hash returns the bcrypt hash of passphrase at the default cost.
func Hash(passphrase string) (string, error) {
	if passphrase == "" {
		return "", errors.New("passphrase must not be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash passphrase: %w", err)
	}
	return string(h), nil
}

// Given returns a PassphraseFunc that yields a fixed value, e.g. one taken from a request body.
func Given(passphrase string) PassphraseFunc {
	return func(ctx context.Context, reason string) (string, error) {
		return passphrase, nil
	}
}
