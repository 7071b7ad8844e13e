package auth

import (
	"context"
	"errors"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

// Identity is the external collaborator's full contract with this app: a
// stable subject identifier, a display name and an email.
type Identity struct {
	Subject string
	Name    string
	Email   string
}

// OIDCService runs the authorization-code flow against a third-party
// identity provider and upserts the resulting identity as a local user row.
type OIDCService struct {
	users    userStore
	verifier *oidc.IDTokenVerifier
	oauth    oauth2.Config
}

func NewOIDCService(
	ctx context.Context,
	users userStore,
	issuer, clientID, clientSecret, redirectURL string,
) (*OIDCService, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}

	return &OIDCService{
		users:    users,
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
		oauth: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// AuthURL builds the provider redirect for a login attempt; state must be
// held in the session and checked in the callback.
func (s *OIDCService) AuthURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// Exchange redeems the callback code, verifies the ID token and returns the
// matching user row, creating it on first login.
func (s *OIDCService) Exchange(ctx context.Context, code string) (models.User, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return models.User{}, err
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return models.User{}, errors.New("token response is missing id_token")
	}

	idToken, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return models.User{}, err
	}

	var claims struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return models.User{}, err
	}

	ident := Identity{Subject: idToken.Subject, Name: claims.Name, Email: claims.Email}
	if ident.Name == "" {
		ident.Name = ident.Email
	}

	return s.users.UpsertBySubject(ident.Subject, ident.Name, ident.Email)
}
