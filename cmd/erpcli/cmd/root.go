package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stitchwork/go-erp-client/auth"
	"github.com/stitchwork/go-erp-client/client"
	"github.com/stitchwork/go-erp-client/credentials/boltrepo"
	"github.com/stitchwork/go-erp-client/internal/config"
	"github.com/stitchwork/go-erp-client/session"
)

// app holds the wired-up SDK for the lifetime of one command.
type app struct {
	config   config.Config
	logger   zerolog.Logger
	store    *boltrepo.Store
	client   *client.Client
	sessions *session.Manager
	auth     *auth.Service
}

var application *app

var rootCmd = &cobra.Command{
	Use:   "erpcli",
	Short: "Command line client for the ERP backend",
	Long: `erpcli is a diagnostic command line client for the ERP backend.
It maintains a local session (access and refresh tokens) and issues
authenticated requests, refreshing expired tokens automatically.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		application = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil && application.store != nil {
			_ = application.store.Close()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newApp() (*app, error) {
	c := config.New()
	logger := newLogger(c)

	store, err := boltrepo.NewStoreFromFile(c.GetCredentialsFile(), nil)
	if err != nil {
		return nil, fmt.Errorf("opening credential store: %w", err)
	}

	sessions, err := session.NewManager(store,
		session.WithNavigator(session.NavigatorFunc(func() {
			fmt.Fprintln(os.Stderr, "Session expired. Run `erpcli login` to sign in again.")
		})),
		session.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	httpClient, err := client.New(c.GetBaseURL(), store,
		client.WithTimeout(c.GetRequestTimeout()),
		client.WithRefreshBuffer(c.GetRefreshBuffer()),
		client.WithLogger(logger),
		client.WithSessionExpiredHook(func() {
			sessions.Apply(session.RefreshFailed{})
		}),
	)
	if err != nil {
		return nil, err
	}

	authService, err := auth.NewService(auth.Deps{
		Client:   httpClient,
		Sessions: sessions,
		Store:    store,
	}, auth.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return &app{
		config:   c,
		logger:   logger,
		store:    store,
		client:   httpClient,
		sessions: sessions,
		auth:     authService,
	}, nil
}

func newLogger(c config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
