package cmd

import (
	"fmt"

	"github.com/alanpramil7/ytstudio/internal/auth"
	"github.com/alanpramil7/ytstudio/internal/format"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var loginMonetary bool

// authCmd groups the authentication commands; login, logout and status are
// also available at the top level
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
}

func newLoginCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with YouTube via OAuth",
		Long: `Open the Google consent page and store the resulting token.

Use --monetary to also request access to revenue metrics
(estimatedRevenue, cpm, adImpressions, ...).`,
		Args: cobra.NoArgs,
		RunE: runLogin,
	}
	c.Flags().BoolVar(&loginMonetary, "monetary", false, "Also request the monetary analytics scope")
	return c
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		Args:  cobra.NoArgs,
		RunE:  runLogout,
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show current authentication status",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func init() {
	rootCmd.AddCommand(newLoginCmd(), newLogoutCmd(), newStatusCmd())

	authCmd.AddCommand(newLoginCmd(), newLogoutCmd(), newStatusCmd())
	rootCmd.AddCommand(authCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if cfg.Demo {
		fmt.Fprintln(out, format.WarningStyle.Render("Demo mode is on, no login needed."))
		return nil
	}

	creds, err := authManager().Login(cmd.Context(), loginMonetary, out)
	if err != nil {
		return err
	}
	logger.Debug("login complete", zap.Strings("scopes", creds.Scopes))

	svc, err := newServices(cmd.Context())
	if err != nil {
		return err
	}
	channel, err := svc.Channels.Mine(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, format.SuccessStyle.Render("✓ Logged in as "+channel.Title))
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := authManager().Logout(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), format.SuccessStyle.Render("✓ Logged out"))
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var granted []string
	if !cfg.Demo {
		scopes, err := authManager().GrantedScopes()
		if err != nil {
			return err
		}
		if scopes == nil {
			fmt.Fprintln(out, format.WarningStyle.Render("Not authenticated. Run 'yts login' first."))
			return nil
		}
		granted = scopes
	}

	svc, err := newServices(cmd.Context())
	if err != nil {
		return err
	}
	channel, err := svc.Channels.Mine(cmd.Context())
	if err != nil {
		return err
	}

	opts, err := outputOptions()
	if err != nil {
		return err
	}
	if opts.Format == format.JSON {
		return format.WriteJSON(out, map[string]any{
			"authenticated": true,
			"demo":          cfg.Demo,
			"channel":       channel,
			"monetary":      auth.HasMonetary(granted),
		})
	}

	state := format.SuccessStyle.Render("✓ Authenticated")
	if cfg.Demo {
		state = format.WarningStyle.Render("Demo mode")
	}
	fmt.Fprintln(out, state)
	fmt.Fprintln(out)

	subscribers := format.Count(channel.SubscriberCount, opts.Raw)
	if channel.HiddenSubscriber {
		subscribers = "hidden"
	}
	monetary := "no (yts login --monetary)"
	if auth.HasMonetary(granted) {
		monetary = "yes"
	}
	fmt.Fprintln(out, format.KeyValue([][2]string{
		{"channel", channel.Title},
		{"id", format.IDStyle.Render(channel.ID)},
		{"subscribers", subscribers},
		{"videos", format.Count(channel.VideoCount, opts.Raw)},
		{"views", format.Count(channel.ViewCount, opts.Raw)},
		{"monetary scope", monetary},
	}))
	return nil
}
