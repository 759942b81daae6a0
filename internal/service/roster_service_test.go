package service

import (
	"errors"
	"fmt"
	"testing"

	"emotispell/internal/models"
	"emotispell/internal/repository"
)

func supervisor() *models.Account {
	return &models.Account{
		ID:      "sup-1",
		Role:    models.RoleSupervisor,
		Name:    "Asha",
		Contact: "asha@example.com",
		OwnerID: "op-1",
		Active:  true,
	}
}

func newRosterFixture(accounts ...*models.Account) (*RosterService, *fakeAccountStore, *fakeBroadcaster) {
	store := newFakeAccountStore(accounts...)
	broadcaster := &fakeBroadcaster{}
	return NewRosterService(store, broadcaster, nil), store, broadcaster
}

func TestRegisterChild(t *testing.T) {
	svc, store, broadcaster := newRosterFixture(supervisor())

	child, password, err := svc.RegisterChild(supervisor(), "Mia", "0771234567")
	if err != nil {
		t.Fatalf("RegisterChild() error = %v", err)
	}
	if len(child.ID) != 6 {
		t.Errorf("child ID = %q, want 6-digit login", child.ID)
	}
	if len(password) != 4 {
		t.Errorf("password length = %d, want 4", len(password))
	}
	if child.OwnerID != "sup-1" {
		t.Errorf("OwnerID = %q, want %q", child.OwnerID, "sup-1")
	}
	if !child.Active {
		t.Error("new child not active")
	}
	if child.PasswordHash == password {
		t.Error("password stored in plaintext")
	}

	stored, _ := store.GetAccountByID(child.ID)
	if stored == nil {
		t.Fatal("child not persisted")
	}

	envelopes := broadcaster.published()
	if len(envelopes) != 1 {
		t.Fatalf("published %d envelopes, want 1", len(envelopes))
	}
	if envelopes[0].Kind != models.EventRosterAdded || envelopes[0].OwnerID != "sup-1" {
		t.Errorf("envelope = %+v, want roster-added for sup-1", envelopes[0])
	}
}

func TestRegisterChildValidation(t *testing.T) {
	svc, _, broadcaster := newRosterFixture(supervisor())

	tests := []struct {
		name    string
		child   string
		contact string
	}{
		{"empty name", "", "0771234567"},
		{"short name", "M", "0771234567"},
		{"bad contact", "Mia", "not-a-phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.RegisterChild(supervisor(), tt.child, tt.contact)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("RegisterChild() error = %v, want ErrInvalidInput", err)
			}
		})
	}

	if envelopes := broadcaster.published(); len(envelopes) != 0 {
		t.Errorf("published %d envelopes after rejected calls, want 0", len(envelopes))
	}
}

func TestUpdateChildPublishes(t *testing.T) {
	child := activeChild()
	svc, store, broadcaster := newRosterFixture(supervisor(), child)

	updated, err := svc.UpdateChild(child.ID, "Mia Rose", "0779999999")
	if err != nil {
		t.Fatalf("UpdateChild() error = %v", err)
	}
	if updated.Name != "Mia Rose" {
		t.Errorf("Name = %q, want %q", updated.Name, "Mia Rose")
	}

	stored, _ := store.GetAccountByID(child.ID)
	if stored.Contact != "0779999999" {
		t.Errorf("stored contact = %q, want updated", stored.Contact)
	}

	envelopes := broadcaster.published()
	if len(envelopes) != 1 || envelopes[0].Kind != models.EventRosterUpdated {
		t.Fatalf("published = %+v, want one roster-updated envelope", envelopes)
	}
}

func TestRemoveChildPublishes(t *testing.T) {
	child := activeChild()
	svc, store, broadcaster := newRosterFixture(supervisor(), child)

	if err := svc.RemoveChild(child.ID); err != nil {
		t.Fatalf("RemoveChild() error = %v", err)
	}
	if stored, _ := store.GetAccountByID(child.ID); stored != nil {
		t.Error("child still present after RemoveChild()")
	}

	envelopes := broadcaster.published()
	if len(envelopes) != 1 || envelopes[0].Kind != models.EventRosterRemoved {
		t.Fatalf("published = %+v, want one roster-removed envelope", envelopes)
	}
}

func TestSetChildStatusPublishes(t *testing.T) {
	child := activeChild()
	svc, store, broadcaster := newRosterFixture(supervisor(), child)

	updated, err := svc.SetChildStatus(child.ID, false)
	if err != nil {
		t.Fatalf("SetChildStatus() error = %v", err)
	}
	if updated.Active {
		t.Error("child still active after disable")
	}

	stored, _ := store.GetAccountByID(child.ID)
	if stored.Active {
		t.Error("stored child still active")
	}

	envelopes := broadcaster.published()
	if len(envelopes) != 1 || envelopes[0].Kind != models.EventRosterStatusChanged {
		t.Fatalf("published = %+v, want one roster-status-changed envelope", envelopes)
	}
}

func TestListRosterScoping(t *testing.T) {
	other := activeChild()
	other.ID = "200300"
	other.Username = "200300"
	other.OwnerID = "sup-2"
	svc, _, _ := newRosterFixture(supervisor(), activeChild(), other)

	mine, err := svc.ListRoster(supervisor())
	if err != nil {
		t.Fatalf("ListRoster() error = %v", err)
	}
	if len(mine) != 1 || mine[0].ID != "100200" {
		t.Errorf("supervisor roster = %+v, want only own child", mine)
	}

	operator := &models.Account{ID: "op-1", Role: models.RoleOperator, Active: true}
	all, err := svc.ListRoster(operator)
	if err != nil {
		t.Fatalf("ListRoster() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("operator roster length = %d, want 2", len(all))
	}
}

func TestCreateAccountErrorClassification(t *testing.T) {
	operator := &models.Account{ID: "op-1", Role: models.RoleOperator, Active: true}

	t.Run("duplicate key maps to conflict", func(t *testing.T) {
		// A concurrent insert can beat the username pre-check; the
		// constraint violation must read as a conflict, not a retryable
		// store failure.
		svc, store, _ := newRosterFixture(supervisor())
		store.createErr = fmt.Errorf("failed to create account: %w", repository.ErrDuplicateKey)

		if _, _, err := svc.RegisterChild(supervisor(), "Mia", "0771234567"); !errors.Is(err, ErrConflict) {
			t.Errorf("RegisterChild() error = %v, want ErrConflict", err)
		}
		if _, err := svc.CreateSupervisor(operator, "Asha", "asha@example.com", "asha2", "s3cret"); !errors.Is(err, ErrConflict) {
			t.Errorf("CreateSupervisor() error = %v, want ErrConflict", err)
		}
	})

	t.Run("other store failure maps to transient", func(t *testing.T) {
		svc, store, _ := newRosterFixture(supervisor())
		store.createErr = errors.New("connection reset")

		if _, _, err := svc.RegisterChild(supervisor(), "Mia", "0771234567"); !errors.Is(err, ErrTransient) {
			t.Errorf("RegisterChild() error = %v, want ErrTransient", err)
		}
		if _, err := svc.CreateSupervisor(operator, "Asha", "asha@example.com", "asha2", "s3cret"); !errors.Is(err, ErrTransient) {
			t.Errorf("CreateSupervisor() error = %v, want ErrTransient", err)
		}
	})
}

func TestCreateSupervisor(t *testing.T) {
	operator := &models.Account{ID: "op-1", Role: models.RoleOperator, Active: true}
	svc, store, _ := newRosterFixture()

	created, err := svc.CreateSupervisor(operator, "Asha", "asha@example.com", "asha", "s3cret")
	if err != nil {
		t.Fatalf("CreateSupervisor() error = %v", err)
	}
	if created.Role != models.RoleSupervisor || created.OwnerID != "op-1" {
		t.Errorf("created = %+v, want supervisor owned by op-1", created)
	}

	if _, err := svc.CreateSupervisor(operator, "Asha Two", "a2@example.com", "asha", "s3cret"); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate username error = %v, want ErrConflict", err)
	}

	if stored, _ := store.GetAccountByUsername("asha"); stored == nil {
		t.Error("supervisor not persisted")
	}
}
