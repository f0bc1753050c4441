package service

import (
	"errors"
	"fmt"
)

// Kind names the entity a lookup was for.
type Kind string

const (
	KindWorkspace Kind = "workspace"
	KindProject   Kind = "project"
	KindUser      Kind = "assignee"
)

// NotFoundError reports a name fragment that matched nothing.
type NotFoundError struct {
	Kind  Kind
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Query)
}

// RemoteError is a non-2xx answer from the API.
type RemoteError struct {
	Status  int
	Body    string
	Message string // first message of the error envelope, if any
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api returned %d", e.Status)
}

// TransportError wraps network, TLS and timeout failures.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "request failed: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that is not the expected JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "invalid response: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NotFoundError of the given kind.
// An empty kind matches any kind.
func IsNotFound(err error, kind Kind) bool {
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		return false
	}
	return kind == "" || nf.Kind == kind
}
