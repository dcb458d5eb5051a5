package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/alanpramil7/ytstudio/internal/config"
	"github.com/alanpramil7/ytstudio/internal/yt"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const loginTimeout = 5 * time.Minute

const callbackPage = `<!DOCTYPE html>
<html>
<head><title>yts: authorization complete</title><meta charset="utf-8"></head>
<body style="font-family: sans-serif; text-align: center; padding: 50px;">
<h2>Authorization complete</h2>
<p>You can close this window and return to the terminal.</p>
</body>
</html>`

// Manager runs the OAuth flow and hands out authenticated HTTP clients
type Manager struct {
	paths  config.Paths
	port   int
	store  *Store
	logger *zap.Logger

	// OpenBrowser is called with the consent URL. It defaults to the
	// platform opener.
	OpenBrowser func(url string) error
}

// NewManager creates a manager for the files in paths. port is the loopback
// callback port; 0 picks a free one.
func NewManager(paths config.Paths, port int, logger *zap.Logger) *Manager {
	return &Manager{
		paths:       paths,
		port:        port,
		store:       NewStore(paths.Credentials),
		logger:      logger,
		OpenBrowser: openBrowser,
	}
}

// Store exposes the credentials store
func (m *Manager) Store() *Store {
	return m.store
}

func (m *Manager) oauthConfig(scopes []string) (*oauth2.Config, error) {
	data, err := os.ReadFile(m.paths.ClientSecrets)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoClientSecrets
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}

	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file: %w", err)
	}
	return cfg, nil
}

// Login runs the installed-app consent flow through a loopback callback
// server and stores the resulting token. Progress is written to out.
func (m *Manager) Login(ctx context.Context, monetary bool, out io.Writer) (*Credentials, error) {
	scopes := Scopes(monetary)
	cfg, err := m.oauthConfig(scopes)
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", m.port))
	if err != nil {
		return nil, fmt.Errorf("failed to start OAuth callback server: %w", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	cfg.RedirectURL = fmt.Sprintf("http://localhost:%d/", port)

	state, err := randomState()
	if err != nil {
		listener.Close()
		return nil, err
	}

	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		if e := query.Get("error"); e != "" {
			http.Error(w, "authorization denied", http.StatusForbidden)
			sendErr(errChan, fmt.Errorf("authorization denied: %s", e))
			return
		}
		code := query.Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			sendErr(errChan, errors.New("no authorization code received"))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, callbackPage)
		select {
		case codeChan <- code:
		default:
		}
	})

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sendErr(errChan, fmt.Errorf("OAuth callback server failed: %w", err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			m.logger.Warn("failed to shut down callback server", zap.Error(err))
		}
	}()

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Fprintln(out, "Opening browser for authorization...")
	if err := m.OpenBrowser(authURL); err != nil {
		m.logger.Debug("could not open browser", zap.Error(err))
		fmt.Fprintf(out, "Go to: %s\n", authURL)
	}

	var code string
	select {
	case code = <-codeChan:
	case err := <-errChan:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(loginTimeout):
		return nil, errors.New("authorization timeout, please try again")
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token: %w", err)
	}

	creds := &Credentials{Token: token, Scopes: scopes}
	if err := m.store.Save(creds); err != nil {
		return nil, err
	}
	m.logger.Debug("stored credentials", zap.Strings("scopes", scopes))
	return creds, nil
}

// HTTPClient returns a client that authorizes requests with the stored token
// and persists refreshed tokens
func (m *Manager) HTTPClient(ctx context.Context) (*http.Client, error) {
	creds, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, fmt.Errorf("%w: run 'yts login' first", yt.ErrNotAuthenticated)
	}

	cfg, err := m.oauthConfig(creds.Scopes)
	if err != nil {
		return nil, err
	}

	source := &persistingTokenSource{
		base:   cfg.TokenSource(ctx, creds.Token),
		store:  m.store,
		creds:  *creds,
		logger: m.logger,
	}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(creds.Token, source)), nil
}

// GrantedScopes returns the scopes stored at login, nil when logged out
func (m *Manager) GrantedScopes() ([]string, error) {
	creds, err := m.store.Load()
	if err != nil || creds == nil {
		return nil, err
	}
	return creds.Scopes, nil
}

// Logout deletes the stored credentials
func (m *Manager) Logout() error {
	return m.store.Delete()
}

func sendErr(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start"}
	case "darwin":
		cmd = "open"
	default:
		cmd = "xdg-open"
	}

	args = append(args, url)
	return exec.Command(cmd, args...).Start()
}
