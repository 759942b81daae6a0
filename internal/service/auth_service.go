package service

import (
	"fmt"

	"emotispell/internal/models"
	"emotispell/internal/security"
	"emotispell/internal/token"
)

// AuthService verifies credentials and mints session tokens.
type AuthService struct {
	accounts AccountStore
	issuer   *token.Issuer
}

// NewAuthService creates a new auth service
func NewAuthService(accounts AccountStore, issuer *token.Issuer) *AuthService {
	return &AuthService{accounts: accounts, issuer: issuer}
}

// Login authenticates an identity and returns a signed session token.
// Every failure surfaces as ErrInvalidCredentials.
func (s *AuthService) Login(username, password string) (string, *models.Account, error) {
	account, err := s.accounts.GetAccountByUsername(username)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil || !account.Active {
		return "", nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(password, account.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(account)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return signed, account, nil
}

// ResolveToken validates a raw token and loads the current account record.
// Expiry is re-checked here on every authenticated call, and an account
// disabled after issuance is rejected even while its token is still live.
func (s *AuthService) ResolveToken(raw string) (*models.Account, *token.Claims, error) {
	claims, err := s.issuer.Verify(raw)
	if err != nil {
		return nil, nil, ErrUnauthorized
	}

	account, err := s.accounts.GetAccountByID(claims.Identity)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load token identity: %w", err)
	}
	if account == nil || !account.Active {
		return nil, nil, ErrUnauthorized
	}

	return account, claims, nil
}
