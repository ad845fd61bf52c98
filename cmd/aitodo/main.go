// Command aitodo is a local todo manager with AI-assisted task generation.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/aitodo/internal/activity"
	"github.com/sandeepkv93/aitodo/internal/ai"
	"github.com/sandeepkv93/aitodo/internal/app"
	"github.com/sandeepkv93/aitodo/internal/auth"
	"github.com/sandeepkv93/aitodo/internal/config"
	"github.com/sandeepkv93/aitodo/internal/logging"
	"github.com/sandeepkv93/aitodo/internal/storage"
)

var errNotSignedIn = errors.New("not signed in: run `aitodo signup` or `aitodo login`")

func main() {
	os.Exit(run())
}

func run() int {
	s := &session{}
	defer s.close()
	root := newRootCmd(s)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "aitodo: %v\n", err)
		return 1
	}
	return 0
}

// session holds what every subcommand opens: config, logger and the store.
type session struct {
	configPath string
	userEmail  string

	cfg     config.Config
	logger  *slog.Logger
	closers []io.Closer
	adapter *storage.Adapter
	ws      *app.Workspace
}

func newRootCmd(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:           "aitodo",
		Short:         "Local todos with projects, undo and AI generation",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, s)
		},
	}
	root.PersistentFlags().StringVar(&s.configPath, "config", os.Getenv("AITODO_CONFIG"), "config file (default: user config dir)")
	root.PersistentFlags().StringVar(&s.userEmail, "user", "", "act as the user with this email")

	root.AddCommand(
		newAddCmd(s),
		newListCmd(s),
		newDoneCmd(s),
		newEditCmd(s),
		newRmCmd(s),
		newMoveCmd(s),
		newStatsCmd(s),
		newProjectCmd(s),
		newFilterCmd(s),
		newActivityCmd(s),
		newSignupCmd(s),
		newLoginCmd(s),
		newLogoutCmd(s),
		newWhoamiCmd(s),
		newGenerateCmd(s),
		newConfigCmd(s),
	)
	return root
}

// open loads config, the logger and the storage adapter once per process.
func (s *session) open(cmd *cobra.Command) error {
	if s.adapter != nil {
		return nil
	}
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return err
	}
	if s.userEmail != "" {
		cfg.User.Email = s.userEmail
	}
	logger, closer, err := logging.New(cfg.Log.Level, cfg.Log.File, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	s.closers = append(s.closers, closer)

	kv, err := storage.Open(cmd.Context(), storage.Options{
		Driver:   cfg.Storage.Driver,
		Path:     cfg.Storage.Path,
		RedisURL: cfg.Storage.RedisURL,
	})
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	s.cfg, s.logger = cfg, logger
	s.adapter = storage.NewAdapter(kv, logger)
	s.closers = append(s.closers, s.adapter)
	logger.Debug("session opened", slog.String("driver", cfg.Storage.Driver), slog.String("command", cmd.CommandPath()))
	return nil
}

func (s *session) auth() *auth.Store {
	return auth.New(s.adapter, auth.Options{
		Activity: activity.New(s.adapter, activity.Options{Logger: s.logger}),
	})
}

// user resolves the acting user: --user / AITODO_USER first, then whoever
// signed in last.
func (s *session) user(cmd *cobra.Command) (string, error) {
	a := s.auth()
	if email := s.cfg.User.Email; email != "" {
		u, ok := a.FindByEmail(cmd.Context(), email)
		if !ok {
			return "", fmt.Errorf("%w: %s", auth.ErrUserNotFound, email)
		}
		return u.ID, nil
	}
	u, ok := a.Current(cmd.Context())
	if !ok {
		return "", errNotSignedIn
	}
	return u.ID, nil
}

// workspace opens the signed-in user's workspace.
func (s *session) workspace(cmd *cobra.Command) (*app.Workspace, error) {
	if s.ws != nil {
		return s.ws, nil
	}
	if err := s.open(cmd); err != nil {
		return nil, err
	}
	userID, err := s.user(cmd)
	if err != nil {
		return nil, err
	}
	svc, err := s.aiService(cmd)
	if err != nil {
		return nil, err
	}
	ws, err := app.Open(cmd.Context(), app.Options{
		Store:          s.adapter,
		UserID:         userID,
		Logger:         s.logger,
		HistoryLimit:   s.cfg.History.Limit,
		SearchMinScore: s.cfg.Search.MinScore,
		DeletePolicy:   app.DeletePolicy(s.cfg.Projects.DeletePolicy),
		AI:             svc,
	})
	if err != nil {
		return nil, err
	}
	s.ws = ws
	return ws, nil
}

// aiService returns a service without a generator when no key is set, so
// generation reports ErrNoCredential instead of failing at startup.
func (s *session) aiService(cmd *cobra.Command) (*ai.Service, error) {
	opts := ai.Options{Timeout: s.cfg.AI.Timeout.Duration(), Logger: s.logger}
	if s.cfg.AI.APIKey == "" {
		return ai.NewService(nil, opts), nil
	}
	gen, err := ai.NewGemini(cmd.Context(), s.cfg.AI.APIKey, s.cfg.AI.Model)
	if err != nil {
		return nil, err
	}
	return ai.NewService(gen, opts), nil
}

func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i].Close()
	}
	s.closers = nil
}
