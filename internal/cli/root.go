package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cloudnav/cloudnav/internal/cache"
	"github.com/cloudnav/cloudnav/internal/logger"
	"github.com/cloudnav/cloudnav/internal/remote"
	"github.com/cloudnav/cloudnav/internal/state"
	"github.com/cloudnav/cloudnav/internal/version"
)

// Env bundles everything a command needs. It is built lazily so that
// commands like `navctl version` work without a session file.
type Env struct {
	Session *Session
	Remote  *remote.Client
	Cache   *cache.Cache
	Store   *state.Store
}

// Close releases the local cache handle.
func (e *Env) Close() {
	if e.Cache != nil {
		_ = e.Cache.Close()
	}
}

// setup loads the session, opens the local cache and boots the state
// store. serverFlag overrides the session's stored server for this run.
func setup(ctx context.Context, serverFlag string) (*Env, error) {
	session, err := LoadSession()
	if err != nil {
		return nil, err
	}

	server := session.Server
	if serverFlag != "" {
		server = serverFlag
	}
	if server == "" {
		return nil, fmt.Errorf("no server configured: run `navctl login --server <url>` first")
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate cache dir: %w", err)
	}
	localCache, err := cache.Open(filepath.Join(cacheDir, "cloudnav", "cache.db"), logger.Nop())
	if err != nil {
		return nil, fmt.Errorf("failed to open local cache: %w", err)
	}

	client := remote.New(server)
	store := state.New(localCache, client, session, logger.Nop(),
		state.WithAuthExpiredHandler(func() {
			fmt.Fprintln(os.Stderr, "credential rejected by the server: run `navctl login` again")
		}))
	store.Init(ctx)

	// A customized engine set in the session overrides the built-ins.
	if len(session.Engines) > 0 {
		store.SetSearchEngines(session.EngineSet())
	}

	return &Env{
		Session: session,
		Remote:  client,
		Cache:   localCache,
		Store:   store,
	}, nil
}

// NewRootCmd assembles the navctl command tree.
func NewRootCmd() *cobra.Command {
	var serverFlag string

	root := &cobra.Command{
		Use:           "navctl",
		Short:         "Terminal client for a CloudNav dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&serverFlag, "server", "", "gateway base URL (overrides the saved session)")

	root.AddCommand(
		newLoginCmd(&serverFlag),
		newLogoutCmd(),
		newStatusCmd(&serverFlag),
		newListCmd(&serverFlag),
		newAddCmd(&serverFlag),
		newEditCmd(&serverFlag),
		newMoveCmd(&serverFlag),
		newQuickAddCmd(&serverFlag),
		newRemoveCmd(&serverFlag),
		newPinCmd(&serverFlag),
		newUnlockCmd(&serverFlag),
		newSearchCmd(&serverFlag),
		newEngineCmd(&serverFlag),
		newCategoryCmd(&serverFlag),
		newImportCmd(&serverFlag),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("navctl %s (commit=%s, built=%s, go=%s)\n",
				version.Version, version.Commit, version.BuildDate, version.GoVersion)
		},
	}
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
