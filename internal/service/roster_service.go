package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"emotispell/internal/credentials"
	"emotispell/internal/models"
	"emotispell/internal/repository"
	"emotispell/internal/security"
	"emotispell/internal/validation"
)

// RosterService manages the supervised account hierarchy. Every roster
// mutation publishes an envelope scoped to the owning supervisor so
// dashboards stay live-consistent without polling.
type RosterService struct {
	accounts AccountStore
	hub      Broadcaster
	email    *EmailService
}

// NewRosterService creates a new roster service
func NewRosterService(accounts AccountStore, hub Broadcaster, email *EmailService) *RosterService {
	return &RosterService{accounts: accounts, hub: hub, email: email}
}

// rosterEntry is the payload shape shared by all roster events.
type rosterEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Username string `json:"username"`
	Active   bool   `json:"active"`
}

func entryFor(account *models.Account) rosterEntry {
	return rosterEntry{
		ID:       account.ID,
		Name:     account.Name,
		Contact:  account.Contact,
		Username: account.Username,
		Active:   account.Active,
	}
}

// RegisterChild creates a child account under the given supervisor with
// generated credentials. The plaintext password is returned once and
// never stored.
func (s *RosterService) RegisterChild(supervisor *models.Account, name, contact string) (*models.Account, string, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, "", fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	if err := validation.ValidateContact(contact); err != nil {
		return nil, "", fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}

	login, err := s.uniqueChildLogin()
	if err != nil {
		return nil, "", err
	}

	password, err := credentials.GenerateChildPassword()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	child := &models.Account{
		ID:           login,
		Role:         models.RoleChild,
		Name:         name,
		Contact:      contact,
		Username:     login,
		PasswordHash: hash,
		OwnerID:      supervisor.ID,
		Active:       true,
	}
	if err := s.accounts.CreateAccount(child); err != nil {
		// The login pre-check races with concurrent inserts.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, "", fmt.Errorf("login %s taken: %w", login, ErrConflict)
		}
		return nil, "", fmt.Errorf("%v: %w", err, ErrTransient)
	}

	s.publish(models.EventRosterAdded, supervisor.ID, entryFor(child))
	s.deliverCredentials(supervisor, child, password)

	return child, password, nil
}

// uniqueChildLogin generates a login ID not yet present in the store.
func (s *RosterService) uniqueChildLogin() (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		login, err := credentials.GenerateChildLogin()
		if err != nil {
			return "", fmt.Errorf("failed to generate login: %w", err)
		}
		existing, err := s.accounts.GetAccountByUsername(login)
		if err != nil {
			return "", fmt.Errorf("failed to check login: %w", err)
		}
		if existing == nil {
			return login, nil
		}
	}
	return "", fmt.Errorf("could not allocate child login: %w", ErrConflict)
}

// deliverCredentials emails generated credentials to the supervisor when
// the email service is configured and the contact handle is an address.
// Delivery failure never fails the registration.
func (s *RosterService) deliverCredentials(supervisor *models.Account, child *models.Account, password string) {
	if s.email == nil || !s.email.IsEnabled() {
		return
	}
	if !strings.Contains(supervisor.Contact, "@") {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.email.SendChildCredentials(ctx, supervisor.Contact, supervisor.Name, child.Name, child.Username, password); err != nil {
		log.Printf("roster: failed to email credentials for child %s: %v", child.ID, err)
	}
}

// ResolveChild loads a child account, ErrNotFound when absent.
func (s *RosterService) ResolveChild(childID string) (*models.Account, error) {
	account, err := s.accounts.GetAccountByID(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve child: %w", err)
	}
	if account == nil || account.Role != models.RoleChild {
		return nil, fmt.Errorf("child %s: %w", childID, ErrNotFound)
	}
	return account, nil
}

// UpdateChild edits a child's profile fields and publishes roster-updated.
func (s *RosterService) UpdateChild(childID, name, contact string) (*models.Account, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	if err := validation.ValidateContact(contact); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}

	child, err := s.ResolveChild(childID)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.UpdateAccount(childID, name, contact); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrTransient)
	}
	child.Name = name
	child.Contact = contact

	s.publish(models.EventRosterUpdated, child.OwnerID, entryFor(child))
	return child, nil
}

// RemoveChild deletes a child account and publishes roster-removed.
// Persisted history rows are retained for trend continuity.
func (s *RosterService) RemoveChild(childID string) error {
	child, err := s.ResolveChild(childID)
	if err != nil {
		return err
	}

	if err := s.accounts.DeleteAccount(childID); err != nil {
		return fmt.Errorf("%v: %w", err, ErrTransient)
	}

	s.publish(models.EventRosterRemoved, child.OwnerID, entryFor(child))
	return nil
}

// SetChildStatus toggles the active flag and publishes
// roster-status-changed. A disabled child cannot authenticate or be the
// target of new events; existing history is kept.
func (s *RosterService) SetChildStatus(childID string, active bool) (*models.Account, error) {
	child, err := s.ResolveChild(childID)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.SetAccountActive(childID, active); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrTransient)
	}
	child.Active = active

	s.publish(models.EventRosterStatusChanged, child.OwnerID, entryFor(child))
	return child, nil
}

// ListRoster returns the children visible to the caller: a supervisor
// sees its own roster, the operator sees every child.
func (s *RosterService) ListRoster(caller *models.Account) ([]models.Account, error) {
	scope := caller.ID
	if caller.Role == models.RoleOperator {
		scope = ""
	}
	children, err := s.accounts.ListAccounts(models.RoleChild, scope)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrTransient)
	}
	return children, nil
}

// CreateSupervisor registers a supervisor account under the operator.
func (s *RosterService) CreateSupervisor(operator *models.Account, name, contact, username, password string) (*models.Account, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("username is required: %w", ErrInvalidInput)
	}

	existing, err := s.accounts.GetAccountByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("username %s taken: %w", username, ErrConflict)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	supervisor := &models.Account{
		ID:           security.NewAccountID(),
		Role:         models.RoleSupervisor,
		Name:         name,
		Contact:      contact,
		Username:     username,
		PasswordHash: hash,
		OwnerID:      operator.ID,
		Active:       true,
	}
	if err := s.accounts.CreateAccount(supervisor); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("username %s taken: %w", username, ErrConflict)
		}
		return nil, fmt.Errorf("%v: %w", err, ErrTransient)
	}

	return supervisor, nil
}

// ListSupervisors returns all supervisor accounts (operator only).
func (s *RosterService) ListSupervisors() ([]models.Account, error) {
	supervisors, err := s.accounts.ListAccounts(models.RoleSupervisor, "")
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrTransient)
	}
	return supervisors, nil
}

func (s *RosterService) publish(kind models.EventKind, scope string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("roster: failed to encode %s payload: %v", kind, err)
		return
	}
	s.hub.Publish(models.Envelope{Kind: kind, OwnerID: scope, Payload: raw})
}
