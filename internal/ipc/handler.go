package ipc

import (
	"os"

	"google.golang.org/protobuf/types/known/structpb"
)

// StatusHandler answers queries from a Store.
type StatusHandler struct {
	Store   *Store
	Backend string
	Script  string
}

func (h *StatusHandler) HandleStatusQuery() (*structpb.Struct, error) {
	snap, updates := h.Store.Load()
	return NewStatusResponseMessage(Status{
		PID:      os.Getpid(),
		Backend:  h.Backend,
		Script:   h.Script,
		Updates:  updates,
		Snapshot: snap,
	})
}

func (h *StatusHandler) HandlePing() (*structpb.Struct, error) {
	return NewPongMessage()
}
