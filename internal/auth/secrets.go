package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

const (
	googleAuthURI  = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURI = "https://oauth2.googleapis.com/token"
)

// ErrNoClientSecrets is returned when init has not been run
var ErrNoClientSecrets = errors.New("no client secrets found, run 'yts init' first")

type clientSecrets struct {
	Installed *clientApp `json:"installed,omitempty"`
	Web       *clientApp `json:"web,omitempty"`
}

type clientApp struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	AuthURI      string   `json:"auth_uri"`
	TokenURI     string   `json:"token_uri"`
	RedirectURIs []string `json:"redirect_uris"`
}

// ValidateClientSecrets checks that data is a Google OAuth client file of the
// installed or web application type
func ValidateClientSecrets(data []byte) error {
	var secrets clientSecrets
	if err := json.Unmarshal(data, &secrets); err != nil {
		return fmt.Errorf("invalid JSON format: %w", err)
	}
	app := secrets.Installed
	if app == nil {
		app = secrets.Web
	}
	if app == nil {
		return errors.New("expected an \"installed\" or \"web\" OAuth client")
	}
	if app.ClientID == "" || app.ClientSecret == "" {
		return errors.New("client_id and client_secret are required")
	}
	return nil
}

// CopyClientSecrets validates the file at source and stores it at dest
func CopyClientSecrets(source, dest string) error {
	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("cannot read client secrets file: %w", err)
	}
	if err := ValidateClientSecrets(data); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	return writePrivate(dest, data)
}

// WriteClientSecrets stores an installed-app client built from an ID and secret
func WriteClientSecrets(dest, clientID, clientSecret string) error {
	if clientID == "" || clientSecret == "" {
		return errors.New("client ID and client secret are required")
	}
	data, err := json.MarshalIndent(clientSecrets{
		Installed: &clientApp{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			AuthURI:      googleAuthURI,
			TokenURI:     googleTokenURI,
			RedirectURIs: []string{"http://localhost"},
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode client secrets: %w", err)
	}
	return writePrivate(dest, data)
}

func writePrivate(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
