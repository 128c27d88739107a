package service

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var ErrModelNotFound = status.New(codes.NotFound, "the requested model is not registered").Err()
var ErrInvalidName = status.New(codes.InvalidArgument, "the export name is invalid").Err()
