package cmd

import (
	"fmt"

	"github.com/bnema/gowlc/internal/config"
	"github.com/bnema/gowlc/internal/ipc"
	"github.com/bnema/gowlc/internal/logger"
	"github.com/bnema/gowlc/internal/script"
	"github.com/bnema/gowlc/wlc"
)

// session wires a binding to the script host and the status socket.
type session struct {
	binding *wlc.Binding
	script  *script.Host
	store   *ipc.Store
	server  *ipc.SocketServer
}

func newSession(native wlc.Native, cfg *config.Config, scriptPath string) (*session, error) {
	s := &session{store: &ipc.Store{}}
	s.binding = wlc.New(native, wlc.Options{
		OnChange: func(b *wlc.Binding) {
			s.store.Publish(b.Snapshot())
		},
	})

	if scriptPath != "" {
		h, err := script.New(s.binding)
		if err != nil {
			return nil, fmt.Errorf("failed to start script host: %w", err)
		}
		if err := h.Load(scriptPath); err != nil {
			h.Close()
			return nil, err
		}
		s.script = h
		logger.Info("Script loaded", "path", scriptPath, "handlers", len(h.Handlers()))
	}

	if cfg.IPC.Enabled {
		srv, err := ipc.NewSocketServer(cfg.SocketPath(), &ipc.StatusHandler{
			Store:   s.store,
			Backend: cfg.Native.Backend,
			Script:  scriptPath,
		})
		if err == nil {
			err = srv.Start()
		}
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to start status socket: %w", err)
		}
		s.server = srv
	}
	return s, nil
}

// run blocks in the compositor loop. A non-OK status comes back as an
// *ExitError.
func (s *session) run(env map[string]string) error {
	status, err := s.binding.Run(wlc.Config{Env: env})
	if failures := s.binding.HandlerFailures(); failures > 0 {
		logger.Warn("Handlers failed during the run", "count", failures, "last", s.binding.LastError())
	}
	if status != wlc.ExitOK || err != nil {
		return &ExitError{Status: status, Err: err}
	}
	return nil
}

func (s *session) Close() {
	if s.server != nil {
		s.server.Stop()
	}
	if s.script != nil {
		s.script.Close()
	}
}
