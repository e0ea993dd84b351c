package cashflowr

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// The account registry is a local-only convenience layer: it partitions
// stored data per user. It is not a security boundary, but passwords are
// still hashed with bcrypt rather than stored in the clear.

// ErrInvalidCredentials is returned on any login failure. It is deliberately
// opaque: the caller learns nothing about which part was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User is one registered account. Its ID is the identity partition key.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"createdAt"`
	LastLogin    time.Time `json:"lastLogin"`
}

// Initials returns up to two initials for display.
func (u *User) Initials() string {
	var initials []rune
	for _, word := range strings.Fields(u.Name) {
		r, _ := utf8.DecodeRuneInString(word)
		initials = append(initials, unicode.ToUpper(r))
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}

// Users is the on-disk account registry, indexed by email.
type Users struct {
	byEmail map[string]*User
}

// NewUsers creates an empty registry.
func NewUsers() *Users {
	return &Users{byEmail: make(map[string]*User)}
}

// Lookup returns the user registered under this email, or nil.
func (u *Users) Lookup(email string) *User {
	return u.byEmail[normalizeEmail(email)]
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newUserID() string {
	buf := make([]byte, 5)
	rand.Read(buf)
	return fmt.Sprintf("user_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}

// Signup registers a new account. The email must be well formed and unused,
// the password at least 6 characters.
func (u *Users) Signup(name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email and password are all required")
	}
	if !emailRe.MatchString(email) {
		return nil, fmt.Errorf("invalid email address %q", email)
	}
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters long")
	}
	if _, exists := u.byEmail[email]; exists {
		return nil, fmt.Errorf("an account with email %q already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	now := time.Now()
	user := &User{
		ID:           newUserID(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		LastLogin:    now,
	}
	u.byEmail[email] = user
	return user, nil
}

// Login authenticates an account and updates its last-login time. Both an
// unknown email and a wrong password yield ErrInvalidCredentials.
func (u *Users) Login(email, password string) (*User, error) {
	user, ok := u.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	user.LastLogin = time.Now()
	return user, nil
}

func usersFile(path string) string {
	return filepath.Join(path, "users.json")
}

// LoadUsers loads the account registry from the data directory. A missing
// file yields an empty registry.
func LoadUsers(path string) (*Users, error) {
	data, err := os.ReadFile(usersFile(path))
	if errors.Is(err, fs.ErrNotExist) {
		return NewUsers(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read users file: %w", err)
	}
	byEmail := make(map[string]*User)
	if err := json.Unmarshal(data, &byEmail); err != nil {
		return nil, fmt.Errorf("could not decode users file: %w", err)
	}
	return &Users{byEmail: byEmail}, nil
}

// SaveUsers overwrites the account registry file.
func SaveUsers(path string, u *Users) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}
	data, err := json.MarshalIndent(u.byEmail, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(usersFile(path), append(data, '\n'), 0644)
}
