package session

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Account is a storefront user account. The demo deployment ships with a
// static account table; there is no registration flow.
type Account struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`

	passwordHash string
}

// Accounts is an in-memory account table keyed by username.
type Accounts struct {
	byUsername map[string]Account
}

// NewAccounts builds an account table from the given accounts.
func NewAccounts(accounts ...Account) *Accounts {
	byUsername := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		byUsername[a.Username] = a
	}
	return &Accounts{byUsername: byUsername}
}

// DefaultAccounts returns the built-in demo accounts.
func DefaultAccounts() *Accounts {
	return NewAccounts(
		account("user-001", "demo", "Demo Shopper", "demo@example.com", "customer", "demo123"),
		account("user-002", "vip", "VIP Member", "vip@example.com", "customer", "vip123"),
		account("user-100", "admin", "Store Admin", "admin@example.com", "admin", "admin123"),
	)
}

func account(id, username, name, email, role, password string) Account {
	return Account{
		ID:           id,
		Username:     username,
		Name:         name,
		Email:        email,
		Role:         role,
		passwordHash: hashPassword(password),
	}
}

// Authenticate verifies the username/password pair and returns the matching
// account. The comparison is constant-time over the password hash.
func (a *Accounts) Authenticate(username, password string) (*Account, bool) {
	acct, ok := a.byUsername[username]
	if !ok {
		// Burn a comparison anyway so unknown usernames cost the same.
		subtle.ConstantTimeCompare([]byte(hashPassword(password)), []byte(hashPassword("")))
		return nil, false
	}

	if subtle.ConstantTimeCompare([]byte(hashPassword(password)), []byte(acct.passwordHash)) != 1 {
		return nil, false
	}
	return &acct, true
}

// Get returns an account by ID.
func (a *Accounts) Get(id string) (*Account, bool) {
	for _, acct := range a.byUsername {
		if acct.ID == id {
			return &acct, true
		}
	}
	return nil, false
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
