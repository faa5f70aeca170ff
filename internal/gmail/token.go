package gmail

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StoredToken is the persisted OAuth credential, matching the token.json
// written by the dashboard's one-time auth setup. ExpiryDate is
// milliseconds since the Unix epoch.
type StoredToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
	ExpiryDate   int64  `json:"expiry_date"`
}

// Expired reports whether the access token's expiry has passed. A zero
// ExpiryDate means the token never declared an expiry and is used as-is.
func (t *StoredToken) Expired(now time.Time) bool {
	return t.ExpiryDate > 0 && t.ExpiryDate < now.UnixMilli()
}

// LoadToken reads the stored token from disk. It is read fresh per send
// request; the file is the source of truth.
func LoadToken(path string) (*StoredToken, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read token at %s: %w", path, err)
	}

	var tok StoredToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse token at %s: %w", path, err)
	}
	return &tok, nil
}

// SaveToken rewrites the token file in place via a temp file and rename, so
// a concurrent reader never sees a partial write.
func SaveToken(path string, tok *StoredToken) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
