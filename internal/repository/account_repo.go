package repository

import (
	"database/sql"
	"fmt"
	"time"

	"emotispell/internal/database"
	"emotispell/internal/models"
)

// AccountRepository handles database operations for accounts
type AccountRepository struct {
	db *database.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = "id, role, name, contact, username, password_hash, owner_id, active, created_at, updated_at"

func scanAccount(row interface{ Scan(...interface{}) error }) (*models.Account, error) {
	account := &models.Account{}
	err := row.Scan(
		&account.ID,
		&account.Role,
		&account.Name,
		&account.Contact,
		&account.Username,
		&account.PasswordHash,
		&account.OwnerID,
		&account.Active,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// CreateAccount inserts a new account
func (r *AccountRepository) CreateAccount(account *models.Account) error {
	query := `
		INSERT INTO accounts (id, role, name, contact, username, password_hash, owner_id, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		account.ID,
		account.Role,
		account.Name,
		account.Contact,
		account.Username,
		account.PasswordHash,
		account.OwnerID,
		account.Active,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("failed to create account: %w", ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	return nil
}

// GetAccountByID retrieves an account by its identifier, nil when absent
func (r *AccountRepository) GetAccountByID(id string) (*models.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE id = ?"
	account, err := scanAccount(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// GetAccountByUsername retrieves an account by login name, nil when absent
func (r *AccountRepository) GetAccountByUsername(username string) (*models.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE username = ?"
	account, err := scanAccount(r.db.QueryRow(query, username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by username: %w", err)
	}
	return account, nil
}

// ListAccounts retrieves accounts of the given role, optionally limited to
// one owner scope. An empty ownerID lists across all scopes.
func (r *AccountRepository) ListAccounts(role models.Role, ownerID string) ([]models.Account, error) {
	query := "SELECT " + accountColumns + " FROM accounts WHERE role = ?"
	args := []interface{}{role}
	if ownerID != "" {
		query += " AND owner_id = ?"
		args = append(args, ownerID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}

	return accounts, rows.Err()
}

// UpdateAccount updates an account's mutable profile fields
func (r *AccountRepository) UpdateAccount(id, name, contact string) error {
	query := "UPDATE accounts SET name = ?, contact = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := r.db.Exec(query, name, contact, id)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

// SetAccountActive flips the active flag. History rows are retained.
func (r *AccountRepository) SetAccountActive(id string, active bool) error {
	query := "UPDATE accounts SET active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := r.db.Exec(query, active, id)
	if err != nil {
		return fmt.Errorf("failed to set account status: %w", err)
	}
	return nil
}

// DeleteAccount removes an account row
func (r *AccountRepository) DeleteAccount(id string) error {
	query := "DELETE FROM accounts WHERE id = ?"
	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
