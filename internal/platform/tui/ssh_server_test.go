package tui

import (
	"context"
	"io"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

func testSSHConfig(t *testing.T) SSHServerConfig {
	t.Helper()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")
	cfg.ListenTimeout = 300 * time.Millisecond
	return cfg
}

func TestNewSSHServerRejectsInvalidBoard(t *testing.T) {
	cfg := testSSHConfig(t)
	cfg.Game.Board.Cols = 2

	_, err := NewSSHServer(cfg, log.New(io.Discard))
	require.ErrorIs(t, err, engine.ErrInvalidConfig)
}

func TestSSHServerStopsOnCancel(t *testing.T) {
	srv, err := NewSSHServer(testSSHConfig(t), log.New(io.Discard))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	assert.NoError(t, srv.ListenAndServe(ctx))
}

func TestListenGivesUpOnBusyAddress(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := testSSHConfig(t)
	cfg.Address = busy.Addr().String()
	srv, err := NewSSHServer(cfg, log.New(io.Discard))
	require.NoError(t, err)

	start := time.Now()
	_, err = srv.listen(context.Background())
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)
}
