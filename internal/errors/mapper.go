// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
)

// Domain is the ErrorInfo domain attached to every mapped *Error.
const Domain = "explore.duo-match"

// Map converts service/repo/infra errors into gRPC-friendly status errors.
// Keeps service layer clean by centralizing error mapping.
//
// *Error values keep their code as a google.rpc.ErrorInfo reason, see Reason.
func Map(err error) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	switch {
	case errors.As(err, &appErr):
		return toStatus(appErr)

	case errors.Is(err, gorm.ErrRecordNotFound):
		return status.Error(codes.NotFound, "record not found")

	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request was canceled")

	default:
		// fallback → bubble up error message for debugging
		return status.Error(codes.Internal, err.Error())
	}
}

func toStatus(e *Error) error {
	st := status.New(grpcCode(e.Kind), e.Message)
	if e.Code == "" {
		return st.Err()
	}
	withInfo, err := st.WithDetails(&errdetails.ErrorInfo{Reason: e.Code, Domain: Domain})
	if err != nil {
		return st.Err()
	}
	return withInfo.Err()
}

func grpcCode(k Kind) codes.Code {
	switch k {
	case KindInvalidArgument:
		return codes.InvalidArgument
	case KindNotFound:
		return codes.NotFound
	case KindPolicyViolation:
		return codes.FailedPrecondition
	case KindConflict:
		return codes.Aborted
	case KindUnavailable:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// Reason extracts the stable code from err. It understands both *Error and
// gRPC status errors produced by Map, so clients and tests share one helper.
func Reason(err error) string {
	if code := CodeOf(err); code != "" {
		return code
	}
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}
