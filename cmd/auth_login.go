package cmd

import (
	"bufio"
	"fmt"
	"net/url"
	"strings"

	"webdam/internal/cli"

	"github.com/spf13/cobra"
)

var loginReturnPath string

// newAuthLoginCmd creates the auth login command.
func newAuthLoginCmd() *cobra.Command {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain a user-delegated token via OAuth",
		Long: `Obtain a user-delegated token through the OAuth
authorization-code flow.

The command prints an authorization URL to open in a browser. After
consenting, the browser lands on the configured callback URL; paste
that full URL (or just its query string) back here to complete the
exchange. The resulting token is stored for commands run with
--as-user.

Examples:
  webdam auth login
  webdam --as-user ls          # afterwards, browse as the user`,
		RunE: runAuthLogin,
	}

	loginCmd.Flags().StringVar(&loginReturnPath, "return-path", "/",
		"Application path the browser is sent back to after consent")
	return loginCmd
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	cfg, dir, err := loadConfig()
	if err != nil {
		return err
	}

	broker, err := newBroker(cfg)
	if err != nil {
		return err
	}

	authURL, state, err := broker.AuthorizationURL(loginReturnPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Open this URL in your browser and authorize access:")
	fmt.Fprintf(out, "\n  %s\n\n", authURL)
	fmt.Fprint(out, "Paste the URL you were redirected to: ")

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("failed to read callback URL: %w", err)
	}

	code, receivedState, err := parseCallback(strings.TrimSpace(line))
	if err != nil {
		return &cli.AuthFailedError{Endpoint: cfg.API.BaseURL, Reason: err}
	}

	// The state must match the one minted for this attempt. A mismatch
	// means the response was not produced by this login.
	if !broker.ValidateState(receivedState, state) {
		return &cli.AuthFailedError{
			Endpoint: cfg.API.BaseURL,
			Reason:   fmt.Errorf("state mismatch, possible cross-site request forgery"),
		}
	}

	token, err := broker.ExchangeCode(cmd.Context(), code, loginReturnPath)
	if err != nil {
		return &cli.AuthFailedError{Endpoint: cfg.API.BaseURL, Reason: err}
	}

	if err := cli.NewTokenStore(dir).Save(token); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nAuthenticated. Token valid %s.\n", cli.FormatExpiry(token.ExpiresAt))
	return nil
}

// parseCallback extracts code and state from the pasted callback URL.
// A bare query string is accepted too.
func parseCallback(input string) (code, state string, err error) {
	if input == "" {
		return "", "", fmt.Errorf("no callback URL provided")
	}

	var query url.Values
	if u, parseErr := url.Parse(input); parseErr == nil && u.RawQuery != "" {
		query = u.Query()
	} else {
		query, err = url.ParseQuery(strings.TrimPrefix(input, "?"))
		if err != nil {
			return "", "", fmt.Errorf("unrecognized callback input: %w", err)
		}
	}

	code = query.Get("code")
	state = query.Get("state")
	if code == "" {
		return "", "", fmt.Errorf("callback carries no authorization code")
	}
	return code, state, nil
}
