package errors_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	svcErr "github.com/oggyb/duo-match/internal/errors"
)

func TestMap_Nil(t *testing.T) {
	assert.NoError(t, svcErr.Map(nil))
}

func TestMap_AppErrors(t *testing.T) {
	cause := stderrors.New("boom")

	cases := []struct {
		name     string
		err      error
		wantCode codes.Code
		reason   string
	}{
		{"invalid", svcErr.InvalidArgument("bad id"), codes.InvalidArgument, svcErr.CodeInvalidArgument},
		{"not found", svcErr.NotFound(svcErr.CodeMembershipNotFound, "no couple"), codes.NotFound, svcErr.CodeMembershipNotFound},
		{"like final", svcErr.PolicyViolation(cause, svcErr.CodeLikeIsFinal, "nope"), codes.FailedPrecondition, svcErr.CodeLikeIsFinal},
		{"resurrection", svcErr.PolicyViolation(cause, svcErr.CodeResurrectionNotAllowed, "nope"), codes.FailedPrecondition, svcErr.CodeResurrectionNotAllowed},
		{"conflict", svcErr.Conflict(cause), codes.Aborted, svcErr.CodeConflictRetryExhausted},
		{"unavailable", svcErr.Unavailable(cause), codes.Unavailable, svcErr.CodeStoreUnavailable},
		{"wrapped", fmt.Errorf("outer: %w", svcErr.Unavailable(cause)), codes.Unavailable, svcErr.CodeStoreUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := svcErr.Map(tc.err)
			assert.Equal(t, tc.wantCode, status.Code(mapped))
			assert.Equal(t, tc.reason, svcErr.Reason(mapped))
		})
	}
}

func TestMap_InfraErrors(t *testing.T) {
	assert.Equal(t, codes.NotFound, status.Code(svcErr.Map(gorm.ErrRecordNotFound)))
	assert.Equal(t, codes.DeadlineExceeded, status.Code(svcErr.Map(context.DeadlineExceeded)))
	assert.Equal(t, codes.Canceled, status.Code(svcErr.Map(context.Canceled)))
	assert.Equal(t, codes.Internal, status.Code(svcErr.Map(stderrors.New("unexpected"))))
}

func TestError_UnwrapAndKind(t *testing.T) {
	cause := stderrors.New("db down")
	err := svcErr.Unavailable(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, svcErr.KindUnavailable, svcErr.KindOf(err))
	assert.Equal(t, svcErr.CodeStoreUnavailable, svcErr.CodeOf(err))
	assert.Contains(t, err.Error(), "db down")

	assert.Equal(t, svcErr.Kind(""), svcErr.KindOf(cause))
	assert.Empty(t, svcErr.Reason(cause))
}
