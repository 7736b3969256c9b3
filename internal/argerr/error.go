// Package argerr defines the error taxonomy shared across the Argus
// conflict analyzer: every error raised by an internal package carries one
// of a fixed set of kinds so callers can classify and route it without
// string matching.
package argerr

import "fmt"

// Kind classifies the subsystem an error originated from.
type Kind uint8

const (
	// Provider covers RPC/data-source failures: connection errors,
	// malformed responses, exhausted retries.
	Provider Kind = iota
	// Simulation covers EVM execution failures that are not simple
	// reverts (environment setup, unsupported opcode handling).
	Simulation
	// InvalidInput covers caller-supplied arguments that are structurally
	// wrong: empty RPC endpoint, unparseable sink spec, negative block.
	InvalidInput
	// Internal covers invariant violations and unexpected failures in
	// this program's own bookkeeping (state copy, graph construction).
	Internal
)

func (k Kind) String() string {
	switch k {
	case Provider:
		return "provider"
	case Simulation:
		return "simulation"
	case InvalidInput:
		return "invalid input"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the single error type used across the analyzer. It wraps an
// underlying cause with a Kind so that errors.As can classify it.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.err }

// New builds an Error of the given kind with a plain message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

// Wrap builds an Error of the given kind around an existing cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, msg: msg, err: err}
}

// Providerf builds a Provider error with a formatted message.
func Providerf(format string, args ...any) *Error {
	return New(Provider, fmt.Sprintf(format, args...))
}

// Simulationf builds a Simulation error with a formatted message.
func Simulationf(format string, args ...any) *Error {
	return New(Simulation, fmt.Sprintf(format, args...))
}

// InvalidInputf builds an InvalidInput error with a formatted message.
func InvalidInputf(format string, args ...any) *Error {
	return New(InvalidInput, fmt.Sprintf(format, args...))
}

// Internalf builds an Internal error with a formatted message.
func Internalf(format string, args ...any) *Error {
	return New(Internal, fmt.Sprintf(format, args...))
}
