package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error. Callers decide on retries and
// user-facing messages by kind, never by message text.
type Kind string

const (
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindNotFound        Kind = "NOT_FOUND"
	KindPolicyViolation Kind = "POLICY_VIOLATION"
	KindConflict        Kind = "CONFLICT_RETRYABLE"
	KindUnavailable     Kind = "STORE_UNAVAILABLE"
)

// Stable codes carried to clients. Policy codes let the UI tell "you can't
// unlike" from "you can't un-reject without your partner".
const (
	CodeInvalidArgument        = "INVALID_ARGUMENT"
	CodeMembershipNotFound     = "MEMBERSHIP_NOT_FOUND"
	CodeCandidateNotFound      = "CANDIDATE_NOT_FOUND"
	CodeLikeIsFinal            = "LIKE_IS_FINAL"
	CodeResurrectionNotAllowed = "RESURRECTION_NOT_ALLOWED"
	CodeNotParticipant         = "NOT_A_PARTICIPANT"
	CodeConflictRetryExhausted = "CONFLICT_RETRY_EXHAUSTED"
	CodeStoreUnavailable       = "STORE_UNAVAILABLE"
)

// Error is an application error with a kind and a stable code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error without a cause.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap creates an Error around err.
func Wrap(err error, kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// InvalidArgument is used for malformed requests.
func InvalidArgument(msg string) *Error {
	return New(KindInvalidArgument, CodeInvalidArgument, msg)
}

// NotFound is used when a member, couple or candidate cannot be resolved.
func NotFound(code, msg string) *Error {
	return New(KindNotFound, code, msg)
}

// PolicyViolation wraps a rule violation of the decision engine.
func PolicyViolation(err error, code, msg string) *Error {
	return Wrap(err, KindPolicyViolation, code, msg)
}

// Conflict is returned once optimistic-concurrency retries are exhausted.
func Conflict(err error) *Error {
	return Wrap(err, KindConflict, CodeConflictRetryExhausted, "concurrent update, please retry")
}

// Unavailable wraps an infrastructure failure of the persistence layer.
func Unavailable(err error) *Error {
	return Wrap(err, KindUnavailable, CodeStoreUnavailable, "store unavailable")
}

// KindOf returns the kind of err, or "" for errors that are not *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// CodeOf returns the code of err, or "" for errors that are not *Error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
