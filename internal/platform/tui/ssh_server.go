package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.blockfall/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// ListenTimeout bounds how long a busy address is retried.
	ListenTimeout time.Duration

	// Game is the board configuration every session plays with.
	Game config.BlockfallConfig

	// TickRate is the simulation rate of every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:       ":23234",
		IdleTimeout:   30 * time.Minute,
		ListenTimeout: 30 * time.Second,
		Game:          config.DefaultBlockfallConfig(),
		TickRate:      60,
	}
}

// SSHServer serves one independent blockfall run per SSH session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// An invalid board configuration is rejected here rather than per session.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "blockfall-ssh",
		})
	}
	if _, err := blockfall.New(cfg.Game); err != nil {
		return nil, err
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".blockfall", "host_key")
	}

	// Ensure host key directory exists
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a fresh game and model for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	game, err := blockfall.New(s.config.Game)
	if err != nil {
		s.logger.Error("cannot create game", "user", sshSession.User(), "error", err)
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	model := NewModel(game, cfg, s.logger.With("user", sshSession.User()))

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts the server down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	ln, err := s.listen(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("starting SSH server", "address", ln.Addr().String())

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("tui: ssh serve: %w", err)
		}
		return nil
	})
	grp.Go(func() error {
		<-grpCtx.Done()
		s.logger.Info("shutting down...")
		return s.Shutdown()
	})
	return grp.Wait()
}

// listen retries a busy address with exponential backoff until ListenTimeout.
func (s *SSHServer) listen(ctx context.Context) (net.Listener, error) {
	exp := &backoff.ExponentialBackOff{
		InitialInterval:     250 * time.Millisecond,
		RandomizationFactor: 0.2,
		Multiplier:          2,
		MaxInterval:         5 * time.Second,
	}
	var lc net.ListenConfig
	ln, err := backoff.Retry(ctx, func() (net.Listener, error) {
		return lc.Listen(ctx, "tcp", s.config.Address)
	},
		backoff.WithBackOff(exp),
		backoff.WithMaxElapsedTime(s.config.ListenTimeout),
		backoff.WithNotify(func(err error, d time.Duration) {
			s.logger.Warn("listen failed", "address", s.config.Address, "error", err, "retrying", d)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot listen on %s: %w", s.config.Address, err)
	}
	return ln, nil
}

// Shutdown gracefully stops the server. Sessions still open after ten
// seconds are closed.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		if errors.Is(err, context.DeadlineExceeded) {
			return s.server.Close()
		}
		return err
	}
	return nil
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
