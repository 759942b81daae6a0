package security

import "testing"

func TestHashPassword(t *testing.T) {
	password := "testPassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" {
		t.Error("HashPassword() returned empty string")
	}
	if hash == password {
		t.Error("HashPassword() returned the plaintext unchanged")
	}

	if !CheckPassword(password, hash) {
		t.Error("CheckPassword() = false for matching password")
	}
	if CheckPassword("wrongPassword", hash) {
		t.Error("CheckPassword() = true for non-matching password")
	}
}

func TestNewAccountID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := NewAccountID()
		if id == "" {
			t.Fatal("NewAccountID() returned empty string")
		}
		if seen[id] {
			t.Fatalf("duplicate account ID generated: %s", id)
		}
		seen[id] = true
	}
}
