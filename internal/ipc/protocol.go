package ipc

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Commands understood by the daemon.
const (
	CmdStatus    = "status"
	CmdHistory   = "history"
	CmdGet       = "get"
	CmdPin       = "pin"
	CmdRemove    = "remove"
	CmdClear     = "clear"
	CmdPaste     = "paste"
	CmdPasteText = "paste-text"
	CmdShutdown  = "shutdown"
)

// Response statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Request represents a command sent from the CLI to the daemon.
type Request struct {
	Command string                 `json:"command"`        // e.g. "history", "paste"
	Args    map[string]interface{} `json:"args,omitempty"` // Command-specific arguments
}

// Response represents a reply from the daemon to the CLI.
type Response struct {
	Status  string          `json:"status"`            // "ok" or "error"
	Message string          `json:"message,omitempty"` // Human-readable message or error
	Data    json.RawMessage `json:"data,omitempty"`    // Command-specific data (history, etc.)
}

// OK builds a successful response carrying data.
func OK(data interface{}) *Response {
	if data == nil {
		return &Response{Status: StatusOK}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return Errorf("failed to encode response: %v", err)
	}
	return &Response{Status: StatusOK, Data: raw}
}

// Errorf builds an error response.
func Errorf(format string, args ...interface{}) *Response {
	return &Response{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// Err returns the daemon-side failure as an error, or nil on success.
func (r *Response) Err() error {
	if r.Status == StatusOK {
		return nil
	}
	if r.Message == "" {
		return errors.New("daemon returned an error")
	}
	return errors.New(r.Message)
}

// Decode unmarshals the response data into v.
func (r *Response) Decode(v interface{}) error {
	if err := r.Err(); err != nil {
		return err
	}
	if len(r.Data) == 0 {
		return errors.New("response carries no data")
	}
	return json.Unmarshal(r.Data, v)
}

// StringArg returns a string argument.
func (r *Request) StringArg(name string) (string, error) {
	v, ok := r.Args[name]
	if !ok {
		return "", fmt.Errorf("missing argument %q", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", name)
	}
	return s, nil
}

// IntArg returns a numeric argument, or def when it is absent. JSON numbers
// arrive as float64.
func (r *Request) IntArg(name string, def int) (int, error) {
	v, ok := r.Args[name]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("argument %q must be a number", name)
	}
}
