package ipc

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/gowlc/wlc"
	"google.golang.org/protobuf/types/known/structpb"
)

// MockHandler implements MessageHandler for testing
type MockHandler struct {
	statusCalled bool
	pingCalled   bool
	statusError  error
}

func (m *MockHandler) HandleStatusQuery() (*structpb.Struct, error) {
	m.statusCalled = true
	if m.statusError != nil {
		return nil, m.statusError
	}
	return NewStatusResponseMessage(Status{PID: 42, Backend: "sim"})
}

func (m *MockHandler) HandlePing() (*structpb.Struct, error) {
	m.pingCalled = true
	return NewPongMessage()
}

func startServer(t *testing.T, handler MessageHandler) *SocketServer {
	t.Helper()
	server, err := NewSocketServer(filepath.Join(t.TempDir(), "test.sock"), handler)
	if err != nil {
		t.Fatalf("NewSocketServer() error = %v", err)
	}
	if err := server.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(server.Stop)
	return server
}

func TestNewSocketServer(t *testing.T) {
	if _, err := NewSocketServer("", &MockHandler{}); err == nil {
		t.Error("expected error for empty socket path")
	}
	if _, err := NewSocketServer("/tmp/x.sock", nil); err == nil {
		t.Error("expected error for nil handler")
	}
}

func TestSocketServerStartStop(t *testing.T) {
	server := startServer(t, &MockHandler{})

	info, err := os.Stat(server.Path())
	if err != nil {
		t.Fatalf("Socket file was not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected socket permissions 0600, got %o", perm)
	}

	// Starting again should not error
	if err := server.Start(); err != nil {
		t.Errorf("Start() on running server error = %v", err)
	}

	server.Stop()

	if _, err := os.Stat(server.Path()); !os.IsNotExist(err) {
		t.Error("Socket file was not cleaned up")
	}

	// Stopping again should not panic
	server.Stop()
}

func TestSocketServerCleanupExistingSocket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.sock")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create dummy socket file: %v", err)
	}
	file.Close()

	server, err := NewSocketServer(path, &MockHandler{})
	if err != nil {
		t.Fatalf("NewSocketServer() error = %v", err)
	}
	if err := server.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	server.Stop()
}

func TestClientRoundTrip(t *testing.T) {
	handler := &MockHandler{}
	server := startServer(t, handler)
	client := NewClientWithTimeout(server.Path(), time.Second)
	defer client.Close()

	if err := client.Ping(); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if !handler.pingCalled {
		t.Error("HandlePing was not called")
	}

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !handler.statusCalled {
		t.Error("HandleStatusQuery was not called")
	}
	if status.PID != 42 || status.Backend != "sim" {
		t.Errorf("Unexpected status: %+v", status)
	}

	if !client.IsRunning() {
		t.Error("IsRunning() = false with a live server")
	}
}

func TestClientHandlerError(t *testing.T) {
	server := startServer(t, &MockHandler{statusError: errors.New("store unavailable")})
	client := NewClient(server.Path())

	_, err := client.Status()
	if err == nil {
		t.Fatal("expected error from failing handler")
	}
	if got := err.Error(); got != "server error: store unavailable" {
		t.Errorf("Unexpected error: %q", got)
	}
}

func TestUnknownMessageType(t *testing.T) {
	server := startServer(t, &MockHandler{})

	msg, err := newMessage("switch", nil)
	if err != nil {
		t.Fatal(err)
	}
	client := NewClient(server.Path())
	response, err := client.sendMessage(msg)
	if err != nil {
		t.Fatalf("sendMessage() error = %v", err)
	}
	errMsg, err := GetError(response)
	if err != nil {
		t.Fatalf("Expected error response, got %q", MessageType(response))
	}
	if errMsg != `unknown message type: "switch"` {
		t.Errorf("Unexpected error message: %q", errMsg)
	}
}

func TestClientNotRunning(t *testing.T) {
	client := NewClientWithTimeout(filepath.Join(t.TempDir(), "missing.sock"), 100*time.Millisecond)

	if err := client.Ping(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Expected ErrNotRunning, got %v", err)
	}
	if client.IsRunning() {
		t.Error("IsRunning() = true without a server")
	}
}

func TestStopClosesOpenConnections(t *testing.T) {
	server := startServer(t, &MockHandler{})
	client := NewClient(server.Path())
	if err := client.Ping(); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	done := make(chan struct{})
	go func() {
		server.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Error("Stop() took too long")
	}
}

func TestStatusHandlerServesStore(t *testing.T) {
	store := &Store{}
	handler := &StatusHandler{Store: store, Backend: "wlc", Script: "init.js"}
	server := startServer(t, handler)
	client := NewClient(server.Path())

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.Updates != 0 || status.Snapshot.Running {
		t.Errorf("Expected empty snapshot before publish, got %+v", status)
	}

	store.Publish(wlc.Snapshot{
		Running: true,
		Outputs: []wlc.OutputInfo{{Handle: 1, Name: "DP-1", Resolution: wlc.Size{W: 2560, H: 1440}, Scale: 1, Focused: true, Views: []wlc.Handle{7}}},
		Views:   []wlc.ViewInfo{{Handle: 7, Title: "foot", Output: 1}},
	})

	status, err = client.Status()
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.PID != os.Getpid() {
		t.Errorf("Expected pid %d, got %d", os.Getpid(), status.PID)
	}
	if status.Backend != "wlc" || status.Script != "init.js" || status.Updates != 1 {
		t.Errorf("Unexpected status header: %+v", status)
	}
	snap := status.Snapshot
	if !snap.Running || len(snap.Outputs) != 1 || len(snap.Views) != 1 {
		t.Fatalf("Unexpected snapshot: %+v", snap)
	}
	if o := snap.Outputs[0]; o.Name != "DP-1" || o.Resolution.W != 2560 || !o.Focused || len(o.Views) != 1 || o.Views[0] != 7 {
		t.Errorf("Unexpected output: %+v", o)
	}
	if v := snap.Views[0]; v.Title != "foot" || v.Output != 1 {
		t.Errorf("Unexpected view: %+v", v)
	}
}
