package repository

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var ErrNotFound = status.New(codes.NotFound, "the requested record was not found").Err()
