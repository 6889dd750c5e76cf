package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Handler serves one request.
type Handler func(*Request) *Response

// DialTimeout bounds how long the client waits for the daemon socket.
var DialTimeout = 2 * time.Second

// SendRequest connects to the daemon, sends a request, and returns the response.
func SendRequest(socketPath string, req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", socketPath, DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}
	defer conn.Close()

	enc := json.NewEncoder(conn)
	dec := json.NewDecoder(conn)

	if err := enc.Encode(req); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var resp Response
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

// ListenAndServe serves requests on socketPath until ctx is cancelled.
func ListenAndServe(ctx context.Context, socketPath string, handler Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(socketPath), 0o700); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}
	// Remove any stale socket
	_ = os.Remove(socketPath)
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on socket: %w", err)
	}
	defer os.Remove(socketPath)

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	logger.Info("IPC server listening", zap.String("socket", socketPath))
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			logger.Warn("Failed to accept IPC connection", zap.Error(err))
			continue
		}
		go handleConn(conn, handler, logger)
	}
}

func handleConn(conn net.Conn, handler Handler, logger *zap.Logger) {
	defer conn.Close()
	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	var req Request
	if err := dec.Decode(&req); err != nil {
		_ = enc.Encode(Errorf("invalid request: %v", err))
		return
	}
	logger.Debug("IPC request", zap.String("command", req.Command))

	resp := handler(&req)
	if resp == nil {
		resp = Errorf("no response for %q", req.Command)
	}
	if err := enc.Encode(resp); err != nil {
		logger.Debug("Failed to write IPC response", zap.Error(err))
	}
}
