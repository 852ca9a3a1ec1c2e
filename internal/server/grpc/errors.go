package grpc

import (
	"errors"

	"github.com/dmitrijs2005/graphauth/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps an engine error onto a gRPC status whose message is the
// user-facing text of the error.
func toStatus(err error) error {
	var code codes.Code
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrMethodMismatch):
		code = codes.InvalidArgument
	case errors.Is(err, common.ErrUsernameTaken):
		code = codes.AlreadyExists
	case errors.Is(err, common.ErrUserNotFound), errors.Is(err, common.ErrSessionUnknown):
		code = codes.NotFound
	case errors.Is(err, common.ErrSessionLocked):
		code = codes.PermissionDenied
	case errors.Is(err, common.ErrSessionClosed), errors.Is(err, common.ErrInvalidUserData):
		code = codes.FailedPrecondition
	case errors.Is(err, common.ErrStorage):
		code = codes.Unavailable
	default:
		code = codes.Internal
	}
	return status.Error(code, common.UserMessage(err))
}
