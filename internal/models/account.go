package models

import "time"

// Role tags the account variant. Children are supervised by supervisors,
// supervisors by the operator, and the operator owns itself.
type Role string

const (
	RoleChild      Role = "child"
	RoleSupervisor Role = "supervisor"
	RoleOperator   Role = "operator"
)

// Account represents any identity in the system, dispatched by Role.
type Account struct {
	ID           string
	Role         Role
	Name         string
	Contact      string
	Username     string
	PasswordHash string
	// OwnerID is the supervising account: child -> supervisor,
	// supervisor -> operator, operator -> "".
	OwnerID   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerScope returns the identifier entitled to observe this account's
// events. Supervisors observe their own scope.
func (a *Account) OwnerScope() string {
	if a.Role == RoleChild {
		return a.OwnerID
	}
	return a.ID
}

// CanObserve reports whether this account may see events scoped to ownerID.
// The operator dominates every scope.
func (a *Account) CanObserve(ownerID string) bool {
	switch a.Role {
	case RoleOperator:
		return true
	case RoleSupervisor:
		return a.ID == ownerID
	default:
		return false
	}
}
