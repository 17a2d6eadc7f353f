// Package ndp implements the wire formats, transmission scheduling, and
// passive hijack responder used to forge and inject IPv6 Neighbor
// Discovery Protocol messages onto a local Ethernet link.
package ndp

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// ErrKind enumerates the failure kinds the core reports. It mirrors the
// sum type in the specification's data model: construction failures,
// device/permission problems, and syscall-mapped errno classes all share
// one small vocabulary so callers can switch on kind instead of matching
// strings.
type ErrKind uint8

const (
	ErrNone ErrKind = iota
	ErrFatal
	ErrNullInput
	ErrNoDevice
	ErrNotFound
	ErrSyscallFailed
	ErrNoMemory
	ErrTooLarge
	ErrPermissionDenied
	ErrTemporarilyUnavailable
	ErrInvalidArgument
	ErrInvalid
)

var errKindStrings = [...]string{
	ErrNone:                   "success",
	ErrFatal:                  "fatal error",
	ErrNullInput:              "null input",
	ErrNoDevice:               "no such device",
	ErrNotFound:               "not found",
	ErrSyscallFailed:          "syscall failed",
	ErrNoMemory:               "no memory",
	ErrTooLarge:               "input too large",
	ErrPermissionDenied:       "operation not permitted",
	ErrTemporarilyUnavailable: "resource temporarily unavailable",
	ErrInvalidArgument:        "invalid argument",
	ErrInvalid:                "invalid",
}

// String implements fmt.Stringer.
func (k ErrKind) String() string {
	if int(k) < len(errKindStrings) {
		return errKindStrings[k]
	}
	return errKindStrings[ErrInvalid]
}

// Error wraps an ErrKind with the operation that failed and, optionally,
// the underlying cause. It implements the error interface and supports
// errors.Is against bare ErrKind values via Is.
type Error struct {
	Kind ErrKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, SomeErrKind) work by comparing kinds, the same
// way the original's sylkie_error enum was compared directly.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrKind)
	return ok && e.Kind == k
}

// Error lets a bare ErrKind value satisfy the error interface so it can be
// used directly as an errors.Is target.
func (k ErrKind) Error() string { return k.String() }

// newError builds an *Error for op/kind, optionally wrapping cause.
func newError(op string, kind ErrKind, cause error) *Error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

// errKindFromErrno maps a host errno to an ErrKind, following the
// mapping table in the specification: EACCES/EPERM -> permission-denied,
// EAGAIN -> temporarily-unavailable, EINVAL -> invalid-argument,
// ENXIO/ENODEV/ENOENT -> no-device, ENOMEM -> no-memory, otherwise
// syscall-failed.
func errKindFromErrno(err error) ErrKind {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return ErrSyscallFailed
	}
	switch errno {
	case unix.EACCES, unix.EPERM:
		return ErrPermissionDenied
	case unix.EAGAIN:
		return ErrTemporarilyUnavailable
	case unix.EINVAL:
		return ErrInvalidArgument
	case unix.ENXIO, unix.ENODEV, unix.ENOENT:
		return ErrNoDevice
	case unix.ENOMEM:
		return ErrNoMemory
	default:
		return ErrSyscallFailed
	}
}

// wrapErrno builds an *Error from a syscall failure, classifying errno per
// errKindFromErrno.
func wrapErrno(op string, err error) *Error {
	if err == nil {
		return nil
	}
	return newError(op, errKindFromErrno(err), err)
}
