package auth

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Credentials is what login persists: the token and the scopes granted
type Credentials struct {
	Token  *oauth2.Token `json:"token"`
	Scopes []string      `json:"scopes"`
}

// Store reads and writes credentials.json
type Store struct {
	path string
}

// NewStore creates a store backed by path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns nil, nil when no credentials are stored
func (s *Store) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	if creds.Token == nil {
		return nil, nil
	}
	return &creds, nil
}

// Save writes creds readable by the owner only
func (s *Store) Save(creds *Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	return writePrivate(s.path, data)
}

// Delete removes stored credentials. A missing file is not an error.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	return nil
}

// persistingTokenSource writes refreshed tokens back to the store
type persistingTokenSource struct {
	mu     sync.Mutex
	base   oauth2.TokenSource
	store  *Store
	creds  Credentials
	logger *zap.Logger
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	token, err := p.base.Token()
	if err != nil {
		return nil, err
	}
	if p.creds.Token == nil || token.AccessToken != p.creds.Token.AccessToken {
		p.creds.Token = token
		if err := p.store.Save(&p.creds); err != nil {
			p.logger.Warn("failed to save refreshed credentials", zap.Error(err))
		} else {
			p.logger.Debug("saved refreshed token", zap.Time("expiry", token.Expiry))
		}
	}
	return token, nil
}
