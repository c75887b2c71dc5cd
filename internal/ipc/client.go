package ipc

import (
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"github.com/bnema/gowlc/internal/logger"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrNotRunning is returned when nothing listens on the socket.
var ErrNotRunning = errors.New("gowlc is not running")

// Client handles IPC communication with a running gowlc instance
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client for the socket at socketPath
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// NewClientWithTimeout creates a new IPC client with custom timeout
func NewClientWithTimeout(socketPath string, timeout time.Duration) *Client {
	c := NewClient(socketPath)
	c.timeout = timeout
	return c
}

// Status queries the running instance for its latest snapshot
func (c *Client) Status() (*Status, error) {
	msg, err := NewStatusMessage()
	if err != nil {
		return nil, err
	}

	response, err := c.sendMessage(msg)
	if err != nil {
		return nil, err
	}

	switch typ := MessageType(response); typ {
	case TypeStatusResponse:
		return GetStatus(response)
	case TypeError:
		errMsg, _ := GetError(response)
		return nil, fmt.Errorf("server error: %s", errMsg)
	default:
		return nil, fmt.Errorf("unexpected response type: %q", typ)
	}
}

// Ping checks that the instance answers
func (c *Client) Ping() error {
	msg, err := NewPingMessage()
	if err != nil {
		return err
	}

	response, err := c.sendMessage(msg)
	if err != nil {
		return err
	}

	switch typ := MessageType(response); typ {
	case TypePong:
		return nil
	case TypeError:
		errMsg, _ := GetError(response)
		return fmt.Errorf("server error: %s", errMsg)
	default:
		return fmt.Errorf("unexpected response type: %q", typ)
	}
}

// IsRunning reports whether an instance answers on the socket
func (c *Client) IsRunning() bool {
	return c.Ping() == nil
}

// Close closes the client connection
func (c *Client) Close() error {
	// Nothing to close as we create connections per request
	return nil
}

// sendMessage sends a message and returns the response
func (c *Client) sendMessage(msg *structpb.Struct) (*structpb.Struct, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		if isNotListening(err) {
			return nil, ErrNotRunning
		}
		return nil, fmt.Errorf("failed to connect to gowlc: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Errorf("Failed to close IPC connection: %v", err)
		}
	}()

	if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		logger.Warnf("Failed to set connection deadline: %v", err)
	}

	if err := writeMessage(conn, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	response, err := readMessage(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return response, nil
}

// isNotListening matches a missing socket file or a refused connection
func isNotListening(err error) bool {
	return errors.Is(err, syscall.ENOENT) || errors.Is(err, syscall.ECONNREFUSED)
}
