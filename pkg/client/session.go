package client

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Credentials is the access/refresh pair returned by the token
// endpoint, persisted as-is under a single file.
type Credentials struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Identity is what the access token's payload decodes to. The client
// never verifies the signature; it only reads claims for presentation.
// Authorization is the server's job on every call.
type Identity struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Session holds the current credential pair and decoded identity,
// backed by one file so identity survives a restart.
type Session struct {
	path     string
	creds    *Credentials
	identity *Identity
}

// NewSession loads any persisted credentials from path. A missing or
// unreadable file just means no session.
func NewSession(path string) *Session {
	s := &Session{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil || creds.Access == "" {
		return s
	}
	identity, err := decodeIdentity(creds.Access)
	if err != nil {
		return s
	}
	s.creds = &creds
	s.identity = identity
	return s
}

// Identity returns the decoded identity, or nil when logged out.
func (s *Session) Identity() *Identity {
	return s.identity
}

// AccessToken returns the current access token, or "".
func (s *Session) AccessToken() string {
	if s.creds == nil {
		return ""
	}
	return s.creds.Access
}

// store persists the pair and decodes the identity. Existing state is
// untouched when the access token does not decode.
func (s *Session) store(creds Credentials) error {
	identity, err := decodeIdentity(creds.Access)
	if err != nil {
		return err
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return err
	}
	s.creds = &creds
	s.identity = identity
	return nil
}

// Clear wipes the persisted pair and in-memory identity. It never
// fails: a remove error still leaves the session logged out.
func (s *Session) Clear() {
	_ = os.Remove(s.path)
	s.creds = nil
	s.identity = nil
}

// decodeIdentity reads the claims out of a JWT payload without
// verifying the signature (the client has no key; the server rejects
// bad tokens on every request anyway).
func decodeIdentity(token string) (*Identity, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.New("malformed token")
	}
	payload := parts[1]
	if rem := len(payload) % 4; rem != 0 {
		payload += strings.Repeat("=", 4-rem)
	}
	decoded, err := base64.URLEncoding.DecodeString(payload)
	if err != nil {
		return nil, err
	}
	var identity Identity
	if err := json.Unmarshal(decoded, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}
