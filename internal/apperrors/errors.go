// Package apperrors defines the normalized error taxonomy of the data layer.
//
// Every data-access failure — remote rejection, missing connectivity,
// local-storage fault, or anything unclassifiable — is converted into one of
// exactly four shapes (server, network, client, unknown) before it reaches a
// caller. Downstream code switches on [KindOf] or matches with [errors.As];
// it never inspects transport internals.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a normalized error.
type Kind int

const (
	// KindUnknown covers failures that carry no usable classification.
	KindUnknown Kind = iota

	// KindServer means the remote service rejected the request with a
	// status code.
	KindServer

	// KindNetwork means the request was sent but no response arrived, or
	// connectivity is absent altogether.
	KindNetwork

	// KindClient means a malformed local call or a local-storage failure.
	KindClient
)

// Fallback messages for errors that arrive without one.
const (
	msgUnknownServer  = "unknown server error"
	msgNoResponse     = "no response from server, check your connection"
	msgUnknownFailure = "unknown error while performing the request"
)

// Error is the single normalized error type. Status is meaningful only for
// KindServer.
type Error struct {
	Kind    Kind
	Status  int
	Message string

	cause error
}

// Error implements the error interface. Server errors render as
// "Error <status>: <message>" so UI layers can show them verbatim.
func (e *Error) Error() string {
	if e.Kind == KindServer {
		return fmt.Sprintf("Error %d: %s", e.Status, e.Message)
	}
	return e.Message
}

// Unwrap exposes the original failure for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCause attaches the original failure and returns the receiver.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// Server builds a KindServer error for the given status code. An empty
// message falls back to "unknown server error".
func Server(status int, message string) *Error {
	if message == "" {
		message = msgUnknownServer
	}
	return &Error{Kind: KindServer, Status: status, Message: message}
}

// Network builds the KindNetwork error. The message is fixed: callers that
// need detail should attach the original failure via WithCause.
func Network() *Error {
	return &Error{Kind: KindNetwork, Message: msgNoResponse}
}

// Client builds a KindClient error with an explicit message.
func Client(message string) *Error {
	return &Error{Kind: KindClient, Message: message}
}

// Clientf builds a KindClient error with a formatted message.
func Clientf(format string, args ...any) *Error {
	return &Error{Kind: KindClient, Message: fmt.Sprintf(format, args...)}
}

// Unknown builds the KindUnknown error.
func Unknown() *Error {
	return &Error{Kind: KindUnknown, Message: msgUnknownFailure}
}

// KindOf returns the kind of a normalized error, or KindUnknown for foreign
// errors and nil.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNetwork reports whether err normalizes to KindNetwork.
func IsNetwork(err error) bool {
	return KindOf(err) == KindNetwork
}

// IsServer reports whether err normalizes to KindServer.
func IsServer(err error) bool {
	return KindOf(err) == KindServer
}

// IsClient reports whether err normalizes to KindClient.
func IsClient(err error) bool {
	return KindOf(err) == KindClient
}

// Recoverable reports whether a read may degrade to the local cache after
// err: server rejections and missing connectivity are recoverable, local
// faults and unknowns are not.
func Recoverable(err error) bool {
	switch KindOf(err) {
	case KindServer, KindNetwork:
		return true
	default:
		return false
	}
}
