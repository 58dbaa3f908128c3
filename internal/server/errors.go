package server

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/efebarandurmaz/ranker/internal/corpus"
)

// grpcError converts a service error into a gRPC status error. Errors that
// already carry a status pass through unchanged.
func grpcError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codeOf(err), err.Error())
}

func codeOf(err error) codes.Code {
	switch {
	case errors.Is(err, corpus.ErrInvalidArgument):
		return codes.InvalidArgument
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, corpus.ErrStorage), errors.Is(err, corpus.ErrConcurrency):
		return codes.Internal
	default:
		return codes.Internal
	}
}
