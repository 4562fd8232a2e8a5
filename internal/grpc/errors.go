package grpcserver

import (
	"context"
	"errors"
	"sort"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"droneVideoOps/internal/workflow"
	"droneVideoOps/repository"
)

// toStatus maps workflow and storage errors onto gRPC status codes. Errors that already
// carry a status are returned unchanged.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if st, ok := status.FromError(err); ok {
		return st.Err()
	}
	var verr *workflow.ValidationError
	switch {
	case errors.As(err, &verr):
		return badRequest(verr.Error(), verr.Fields)
	case errors.Is(err, workflow.ErrCommentRequired):
		return badRequest(err.Error(), map[string]string{"comment": "Comment is required"})
	case errors.Is(err, workflow.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, workflow.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, workflow.ErrInvalidTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, repository.ErrStatusConflict):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Errorf(codes.Internal, "internal error: %v", err)
	}
}

func badRequest(msg string, fields map[string]string) error {
	st := status.New(codes.InvalidArgument, msg)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	br := &errdetails.BadRequest{}
	for _, k := range keys {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       k,
			Description: fields[k],
		})
	}
	detailed, err := st.WithDetails(br)
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}
