package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alanpramil7/ytstudio/internal/auth"
	"github.com/alanpramil7/ytstudio/internal/format"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var clientSecretsFile string

// initCmd stores the Google OAuth client used by login
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize with Google OAuth credentials",
	Long: `Store the Google OAuth client that yts uses to log in.

Create an OAuth client of type "Desktop app" in the Google Cloud console with
the YouTube Data API v3 and YouTube Analytics API enabled, then either pass
the downloaded JSON file or paste the client ID and secret when prompted.

Examples:
  yts init -c ~/Downloads/client_secret.json
  yts init`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&clientSecretsFile, "client-secrets", "c", "", "Path to Google OAuth client secrets JSON file")
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if clientSecretsFile != "" {
		if err := auth.CopyClientSecrets(clientSecretsFile, paths.ClientSecrets); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, format.TitleStyle.Render("yts setup"))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "You need a Google Cloud project with an OAuth client (Desktop app).")
		fmt.Fprintln(out, "Enable the YouTube Data API v3 and the YouTube Analytics API for it.")
		fmt.Fprintln(out)

		reader := bufio.NewReader(cmd.InOrStdin())
		clientID, err := prompt(out, reader, "Client ID: ")
		if err != nil {
			return err
		}
		clientSecret, err := prompt(out, reader, "Client secret: ")
		if err != nil {
			return err
		}
		if clientID == "" || clientSecret == "" {
			return errors.New("client ID and client secret are both required")
		}
		if err := auth.WriteClientSecrets(paths.ClientSecrets, clientID, clientSecret); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, format.SuccessStyle.Render("✓ Client secrets saved to "+paths.ClientSecrets))

	if _, err := os.Stat(paths.Config); errors.Is(err, os.ErrNotExist) {
		if err := cfg.Save(paths.Config); err != nil {
			return err
		}
		logger.Debug("wrote default config", zap.String("path", paths.Config))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'yts login' to authenticate with YouTube.")
	return nil
}

func prompt(out io.Writer, reader *bufio.Reader, message string) (string, error) {
	fmt.Fprint(out, message)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
