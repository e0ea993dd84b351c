package cashflowr

import (
	"errors"
	"strings"
	"testing"
)

func TestUsers_SignupLogin(t *testing.T) {
	users := NewUsers()
	created, err := users.Signup("Alice Reyes", "Alice@Example.com ", "hunter22")
	if err != nil {
		t.Fatalf("Signup() error: %v", err)
	}
	if created.Email != "alice@example.com" {
		t.Errorf("email not normalized: %q", created.Email)
	}
	if created.PasswordHash == "hunter22" || created.PasswordHash == "" {
		t.Error("password stored in the clear or missing")
	}
	if !strings.HasPrefix(created.ID, "user_") {
		t.Errorf("unexpected ID shape %q", created.ID)
	}

	logged, err := users.Login("alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if logged.ID != created.ID {
		t.Errorf("Login returned a different user: %q vs %q", logged.ID, created.ID)
	}
}

func TestUsers_LoginFailuresAreOpaque(t *testing.T) {
	users := NewUsers()
	if _, err := users.Signup("Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatal(err)
	}

	_, unknownErr := users.Login("nobody@example.com", "hunter22")
	_, wrongErr := users.Login("alice@example.com", "wrong-password")
	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Error("login failures are distinguishable")
	}
}

func TestUsers_SignupRejections(t *testing.T) {
	testCases := []struct {
		name                  string
		uname, email, passwd string
	}{
		{"missing name", "", "a@b.co", "hunter22"},
		{"missing email", "Alice", "", "hunter22"},
		{"missing password", "Alice", "a@b.co", ""},
		{"malformed email", "Alice", "not-an-email", "hunter22"},
		{"short password", "Alice", "a@b.co", "abc"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			users := NewUsers()
			if _, err := users.Signup(tc.uname, tc.email, tc.passwd); err == nil {
				t.Error("signup succeeded with invalid input")
			}
		})
	}
}

func TestUsers_DuplicateEmail(t *testing.T) {
	users := NewUsers()
	if _, err := users.Signup("Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatal(err)
	}
	// same email, different case, is still a duplicate
	if _, err := users.Signup("Alice Again", "ALICE@example.com", "different"); err == nil {
		t.Error("duplicate signup succeeded")
	}
}

func TestUsers_SaveLoad(t *testing.T) {
	dir := t.TempDir()

	users := NewUsers()
	created, err := users.Signup("Alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if err := SaveUsers(dir, users); err != nil {
		t.Fatalf("SaveUsers() error: %v", err)
	}

	loaded, err := LoadUsers(dir)
	if err != nil {
		t.Fatalf("LoadUsers() error: %v", err)
	}
	got := loaded.Lookup("alice@example.com")
	if got == nil || got.ID != created.ID {
		t.Fatalf("Lookup after reload = %+v, want the original account", got)
	}
	// credentials survive the round trip
	if _, err := loaded.Login("alice@example.com", "hunter22"); err != nil {
		t.Errorf("Login after reload: %v", err)
	}
}

func TestLoadUsers_MissingFile(t *testing.T) {
	users, err := LoadUsers(t.TempDir())
	if err != nil {
		t.Fatalf("LoadUsers() error: %v", err)
	}
	if users.Lookup("anyone@example.com") != nil {
		t.Error("empty registry resolved an account")
	}
}

func TestUser_Initials(t *testing.T) {
	testCases := []struct {
		name string
		want string
	}{
		{"Alice Reyes", "AR"},
		{"alice", "A"},
		{"Juan Miguel de la Cruz", "JM"},
		{"Éloise Dupont", "ÉD"},
		{"ángel", "Á"},
		{"", ""},
	}
	for _, tc := range testCases {
		u := &User{Name: tc.name}
		if got := u.Initials(); got != tc.want {
			t.Errorf("Initials(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
