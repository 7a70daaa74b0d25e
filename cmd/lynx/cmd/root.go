// Package cmd implements the lynx CLI commands.
package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/paoloronco/lynx/client"
	"github.com/paoloronco/lynx/credentials"
	bboltstorage "github.com/paoloronco/lynx/storage/bbolt"
)

var (
	serverURL  string
	profileDir string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "lynx",
	Short: "Lynx is a self-hosted link-in-bio manager",
	Long: `Manage the profile, links and theme of a self-hosted Lynx page.
The session token is encrypted at rest in a local profile store.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", os.Getenv("LYNX_SERVER"),
		"base URL of the Lynx server (defaults to $LYNX_SERVER)")
	rootCmd.PersistentFlags().StringVar(&profileDir, "profile-dir", "",
		"directory of the local profile store (defaults to the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log client internals to stderr")
}

// session bundles the API client with its backing profile store for one
// command invocation. Callers must Close it.
type session struct {
	client *client.Client
	creds  *credentials.Store
	store  *bboltstorage.Store
}

func (s *session) Close() error {
	return s.store.Close()
}

func openSession() (*session, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("no server configured: pass --server or set LYNX_SERVER")
	}
	origin, err := client.Origin(serverURL)
	if err != nil {
		return nil, err
	}

	dir := profileDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locating user config dir: %w", err)
		}
		dir = filepath.Join(base, "lynx")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating profile dir: %w", err)
	}

	store, err := bboltstorage.NewStoreFromFile(filepath.Join(dir, "profile.db"), nil)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	creds := credentials.NewStore(store, origin, credentials.WithLogger(logger))
	c, err := client.New(serverURL, creds, client.WithLogger(logger))
	if err != nil {
		store.Close()
		return nil, err
	}
	return &session{client: c, creds: creds, store: store}, nil
}

// startSpinner shows progress during network calls. The returned cleanup
// stops it; set FinalMSG before calling cleanup to leave a closing line.
func startSpinner(message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	_ = s.Color("cyan")
	if !verbose {
		s.Start()
	}
	return s, func() { s.Stop() }
}

// readPassword prompts without echo on a terminal and falls back to a plain
// line read when stdin is piped.
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		defer fmt.Fprintln(os.Stderr)
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
